// Package entity defines the domain models for the prediction feature.
package entity

import "sort"

// PropertyAttributes is the set of apartment attributes collected by the form.
type PropertyAttributes struct {
	Rooms         int     // Number of rooms (>= 1)
	Bathrooms     int     // Number of bathrooms (>= 1)
	Furnished     int     // 0 or 1
	Area          float64 // Built area in square meters (> 0)
	Floor         int     // Floor number (0 = ground)
	BuildingAge   int     // Building age in years (>= 0)
	Mortgaged     int     // 0 or 1
	PaymentMethod int     // 0 = cash, 1 = mortgage, 2 = installments
	Parking       int     // 0 or 1
	City          string  // City name in Arabic
}

// Factor is one grouped feature contribution, as a signed share in percent.
type Factor struct {
	Name  string
	Share float64
}

// Prediction is the estimated price together with its main contributing factors.
type Prediction struct {
	PredictedPrice float64
	Factors        []Factor
}

// SortFactors orders factors by absolute share, largest first.
func SortFactors(fs []Factor) {
	sort.SliceStable(fs, func(i, j int) bool {
		ai, aj := abs(fs[i].Share), abs(fs[j].Share)
		if ai != aj {
			return ai > aj
		}
		return fs[i].Name < fs[j].Name
	})
}

// Metadata describes the model served by the prediction API.
type Metadata struct {
	FeatureColumnsCount int
	FeatureColumns      []string
	CityCategories      []string
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
