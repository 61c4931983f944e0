package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

func TestPeriod_PrevCrossesYear(t *testing.T) {
	p := entity.Period{Year: 2024, Month: 1}
	assert.Equal(t, entity.Period{Year: 2023, Month: 12}, p.Prev())
}

func TestPeriod_Before(t *testing.T) {
	jan := entity.Period{Year: 2024, Month: 1}
	feb := entity.Period{Year: 2024, Month: 2}
	assert.True(t, jan.Before(feb))
	assert.False(t, feb.Before(jan))
	assert.False(t, jan.Before(jan))
}

func TestPeriod_Bounds(t *testing.T) {
	from, to := entity.Period{Year: 2024, Month: 12}.Bounds()
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriod_Valid(t *testing.T) {
	assert.True(t, entity.Period{Year: 2024, Month: 6}.Valid())
	assert.False(t, entity.Period{Year: 2024, Month: 0}.Valid())
	assert.False(t, entity.Period{Year: 2024, Month: 13}.Valid())
	assert.False(t, entity.Period{Year: 0, Month: 6}.Valid())
}

func TestPeriodOf(t *testing.T) {
	p := entity.PeriodOf(time.Date(2024, 7, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, entity.Period{Year: 2024, Month: 7}, p)
}
