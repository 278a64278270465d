package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidAttributes は物件属性が制約を満たさない場合のエラーです。
var ErrInvalidAttributes = errors.New("invalid property attributes")

// Validate は予測APIと同じ制約で属性を検証します。
func (a PropertyAttributes) Validate() error {
	var problems []string
	if a.Rooms < 1 {
		problems = append(problems, "rooms must be >= 1")
	}
	if a.Bathrooms < 1 {
		problems = append(problems, "bathrooms must be >= 1")
	}
	if !isFlag(a.Furnished) {
		problems = append(problems, "furnished must be 0 or 1")
	}
	if !(a.Area > 0) || math.IsInf(a.Area, 0) {
		problems = append(problems, "area must be > 0")
	}
	if a.BuildingAge < 0 {
		problems = append(problems, "building_age must be >= 0")
	}
	if !isFlag(a.Mortgaged) {
		problems = append(problems, "mortgaged must be 0 or 1")
	}
	if a.PaymentMethod < 0 {
		problems = append(problems, "payment_method must be >= 0")
	}
	if !isFlag(a.Parking) {
		problems = append(problems, "parking must be 0 or 1")
	}
	if strings.TrimSpace(a.City) == "" {
		problems = append(problems, "city is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidAttributes, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateListedPrice は提示価格が正の有限値であることを検証します。
func ValidateListedPrice(p float64) error {
	if !(p > 0) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: listed_price must be > 0", ErrInvalidAttributes)
	}
	return nil
}

func isFlag(v int) bool { return v == 0 || v == 1 }
