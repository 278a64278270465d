package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAttrs() PropertyAttributes {
	return PropertyAttributes{
		Rooms: 3, Bathrooms: 2, Area: 120, Floor: -1, BuildingAge: 0, PaymentMethod: 2, City: "نابلس",
	}
}

func TestPropertyAttributes_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(a *PropertyAttributes)
		wantErr bool
	}{
		{"valid", func(a *PropertyAttributes) {}, false},
		{"zero rooms", func(a *PropertyAttributes) { a.Rooms = 0 }, true},
		{"zero bathrooms", func(a *PropertyAttributes) { a.Bathrooms = 0 }, true},
		{"furnished 2", func(a *PropertyAttributes) { a.Furnished = 2 }, true},
		{"zero area", func(a *PropertyAttributes) { a.Area = 0 }, true},
		{"NaN area", func(a *PropertyAttributes) { a.Area = math.NaN() }, true},
		{"negative age", func(a *PropertyAttributes) { a.BuildingAge = -1 }, true},
		{"mortgaged 3", func(a *PropertyAttributes) { a.Mortgaged = 3 }, true},
		{"negative payment", func(a *PropertyAttributes) { a.PaymentMethod = -1 }, true},
		{"parking 5", func(a *PropertyAttributes) { a.Parking = 5 }, true},
		{"blank city", func(a *PropertyAttributes) { a.City = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAttrs()
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAttributes)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateListedPrice(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateListedPrice(1))
	assert.ErrorIs(t, ValidateListedPrice(0), ErrInvalidAttributes)
	assert.ErrorIs(t, ValidateListedPrice(-5), ErrInvalidAttributes)
	assert.ErrorIs(t, ValidateListedPrice(math.Inf(1)), ErrInvalidAttributes)
}

func TestSortFactors(t *testing.T) {
	t.Parallel()

	fs := []Factor{{"b", 1}, {"a", -1}, {"c", 10}, {"d", -0.5}}
	SortFactors(fs)
	assert.Equal(t, []Factor{{"c", 10}, {"a", -1}, {"b", 1}, {"d", -0.5}}, fs)
}
