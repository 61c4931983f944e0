// Package classify assigns a product category from its description.
// Used when ingesting customs and sales data where rows carry free-text
// product names rather than catalog codes.
package classify

import (
	"strings"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

// keyword -> category, checked in order so more specific terms win.
var rules = []struct {
	keyword  string
	category string
}{
	{"bio shield", entity.CategoryBioShield},
	{"bio-shield", entity.CategoryBioShield},
	{"bioshield", entity.CategoryBioShield},
	{"sandal", entity.CategoryFootwear},
	{"slipper", entity.CategoryFootwear},
	{"shoe", entity.CategoryFootwear},
	{"footwear", entity.CategoryFootwear},
	{"fan", entity.CategoryFan},
	{"blower", entity.CategoryFan},
	{"analyzer", entity.CategoryInstrument},
	{"reagent", entity.CategoryInstrument},
	{"test kit", entity.CategoryInstrument},
	{"instrument", entity.CategoryInstrument},
}

// Category returns the category for a product description. Matching is
// case insensitive; unknown descriptions map to CategoryOther.
func Category(description string) string {
	d := strings.ToLower(description)
	for _, r := range rules {
		if strings.Contains(d, r.keyword) {
			return r.category
		}
	}
	return entity.CategoryOther
}
