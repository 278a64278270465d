// Package dto はpredictionフィーチャーのHTTP DTOを定義します。
package dto

import (
	"aqariy_web/internal/feature/prediction/domain/entity"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

// FactorResponse は価格への寄与度（%）です。
type FactorResponse struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// PredictionResponse は推定価格のレスポンスDTOです。
type PredictionResponse struct {
	PredictedPrice float64          `json:"predicted_price"`
	PredictedText  string           `json:"predicted_price_text"` // 表示用（言語ごとの桁区切り）
	Lang           string           `json:"lang"`
	Factors        []FactorResponse `json:"factors"`
}

// MetadataResponse はモデルのメタデータのレスポンスDTOです。
type MetadataResponse struct {
	FeatureColumnsCount int      `json:"feature_columns_count"`
	FeatureColumns      []string `json:"feature_columns"`
	CityCategories      []string `json:"city_categories"`
}

func NewPredictionResponse(p entity.Prediction, lang i18n.Lang) PredictionResponse {
	out := PredictionResponse{
		PredictedPrice: p.PredictedPrice,
		PredictedText:  pricechart.PredictedLabel(p.PredictedPrice, pricechart.NewFormatter(lang)),
		Lang:           lang.String(),
		Factors:        make([]FactorResponse, 0, len(p.Factors)),
	}
	for _, f := range p.Factors {
		out.Factors = append(out.Factors, FactorResponse{Name: f.Name, Share: f.Share})
	}
	return out
}

func NewMetadataResponse(md entity.Metadata) MetadataResponse {
	out := MetadataResponse{
		FeatureColumnsCount: md.FeatureColumnsCount,
		FeatureColumns:      md.FeatureColumns,
		CityCategories:      md.CityCategories,
	}
	if out.FeatureColumns == nil {
		out.FeatureColumns = []string{}
	}
	if out.CityCategories == nil {
		out.CityCategories = []string{}
	}
	return out
}
