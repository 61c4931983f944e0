package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
	"github.com/sktraders/tradevat-api/pkg/classify"
)

func TestCategory(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"Ladies Sandal PU Sole 38", entity.CategoryFootwear},
		{"SLIPPER EVA ASSORTED", entity.CategoryFootwear},
		{"Ceiling Fan 56 inch", entity.CategoryFan},
		{"Bio Shield Surface Disinfectant", entity.CategoryBioShield},
		{"Hematology Analyzer 3-part", entity.CategoryInstrument},
		{"CBC Reagent Pack", entity.CategoryInstrument},
		{"Dextrose Test Kit 100T", entity.CategoryInstrument},
		{"Gift Box Assorted", entity.CategoryOther},
		{"", entity.CategoryOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classify.Category(tc.description), "description %q", tc.description)
	}
}
