// Package dto holds the wire formats of the prediction API.
package dto

import (
	"encoding/json"

	"aqariy_web/internal/feature/prediction/domain/entity"
)

// PredictRequest is the body of POST /predict. Keys are the API's Arabic field names.
type PredictRequest struct {
	Rooms         int     `json:"عدد_الغرف"`
	Bathrooms     int     `json:"عدد_الحمامات"`
	Furnished     int     `json:"مفروشة"`
	Area          float64 `json:"مساحة_البناء"`
	Floor         int     `json:"الطابق"`
	BuildingAge   int     `json:"عمر_البناء"`
	Mortgaged     int     `json:"العقار_مرهون"`
	PaymentMethod int     `json:"طريقة_الدفع"`
	Parking       int     `json:"موقف_سيارات"`
	City          string  `json:"المدينة"`
}

// JudgeRequest is the body of POST /judge_price.
type JudgeRequest struct {
	PredictRequest
	ListedPrice float64 `json:"listed_price"`
}

// FromAttributes converts domain attributes to the request body.
func FromAttributes(a entity.PropertyAttributes) PredictRequest {
	return PredictRequest{
		Rooms:         a.Rooms,
		Bathrooms:     a.Bathrooms,
		Furnished:     a.Furnished,
		Area:          a.Area,
		Floor:         a.Floor,
		BuildingAge:   a.BuildingAge,
		Mortgaged:     a.Mortgaged,
		PaymentMethod: a.PaymentMethod,
		Parking:       a.Parking,
		City:          a.City,
	}
}

// PredictResponse is the body returned by POST /predict.
type PredictResponse struct {
	PredictedPrice float64            `json:"predicted_price"`
	Factors        map[string]float64 `json:"factors"`
}

// ToEntity converts the response to a Prediction with factors ordered by weight.
func (r PredictResponse) ToEntity() entity.Prediction {
	fs := make([]entity.Factor, 0, len(r.Factors))
	for name, share := range r.Factors {
		fs = append(fs, entity.Factor{Name: name, Share: share})
	}
	entity.SortFactors(fs)
	return entity.Prediction{PredictedPrice: r.PredictedPrice, Factors: fs}
}

// MetadataResponse is the body returned by GET /metadata.
type MetadataResponse struct {
	FeatureColumnsCount int      `json:"feature_columns_count"`
	FeatureColumns      []string `json:"feature_columns"`
	CityCategories      []string `json:"city_categories"`
}

// ToEntity converts the response to domain Metadata.
func (r MetadataResponse) ToEntity() entity.Metadata {
	return entity.Metadata{
		FeatureColumnsCount: r.FeatureColumnsCount,
		FeatureColumns:      r.FeatureColumns,
		CityCategories:      r.CityCategories,
	}
}

// ErrorResponse is the error body. detail is a string for handler errors
// and a list of objects for request validation errors.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Message returns detail as text.
func (e ErrorResponse) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}
