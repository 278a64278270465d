// Package dto はjudgmentフィーチャーのHTTP DTOを定義します。
package dto

import (
	"time"

	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/pricechart"
)

// HistogramResponse は価格分布です。
type HistogramResponse struct {
	Counts []int     `json:"counts"`
	Edges  []float64 `json:"edges"`
}

// JudgmentResponse は判定結果のレスポンスDTOです。
type JudgmentResponse struct {
	JudgmentKey    string             `json:"judgment_key"`
	Outcome        string             `json:"outcome"`
	Message        string             `json:"message"`
	Color          string             `json:"color,omitempty"`
	Lang           string             `json:"lang"`
	Dir            string             `json:"dir"` // "rtl" or "ltr"
	ListedPrice    *float64           `json:"listed_price,omitempty"`
	PredictedPrice *float64           `json:"predicted_price,omitempty"`
	PredictedText  string             `json:"predicted_price_text,omitempty"`
	MarketMean     *float64           `json:"market_mean,omitempty"`
	MarketMedian   *float64           `json:"market_median,omitempty"`
	PriceQ1        *float64           `json:"price_q1,omitempty"`
	PriceQ3        *float64           `json:"price_q3,omitempty"`
	PriceRange     []float64          `json:"price_range,omitempty"`
	Hist           *HistogramResponse `json:"hist,omitempty"`
}

func NewJudgmentResponse(j entity.Judgment) JudgmentResponse {
	r := j.Result
	out := JudgmentResponse{
		JudgmentKey:    r.Key,
		Outcome:        string(j.Outcome),
		Message:        j.Message,
		Color:          j.ColorHex,
		Lang:           j.Lang.String(),
		Dir:            "ltr",
		ListedPrice:    r.ListedPrice,
		PredictedPrice: r.PredictedPrice,
		MarketMean:     r.MarketMean,
		MarketMedian:   r.MarketMedian,
		PriceQ1:        r.PriceQ1,
		PriceQ3:        r.PriceQ3,
	}
	if j.Lang.RTL() {
		out.Dir = "rtl"
	}
	if r.PredictedPrice != nil {
		out.PredictedText = pricechart.PredictedLabel(*r.PredictedPrice, pricechart.NewFormatter(j.Lang))
	}
	if r.PriceRange != nil {
		out.PriceRange = []float64{r.PriceRange.Min, r.PriceRange.Max}
	}
	if r.Hist != nil {
		out.Hist = &HistogramResponse{Counts: r.Hist.Counts, Edges: r.Hist.Edges}
	}
	return out
}

// RecordResponse は判定履歴1件のレスポンスDTOです。
type RecordResponse struct {
	ID             string   `json:"id"`
	JudgmentKey    string   `json:"judgment_key"`
	City           string   `json:"city"`
	ListedPrice    float64  `json:"listed_price"`
	PredictedPrice *float64 `json:"predicted_price,omitempty"`
	RangeMin       *float64 `json:"range_min,omitempty"`
	RangeMax       *float64 `json:"range_max,omitempty"`
	CreatedAt      string   `json:"created_at"` // RFC3339 (UTC)
}

func NewRecordResponses(recs []entity.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecordResponse{
			ID:             r.ID,
			JudgmentKey:    r.Key,
			City:           r.City,
			ListedPrice:    r.ListedPrice,
			PredictedPrice: r.PredictedPrice,
			RangeMin:       r.RangeMin,
			RangeMax:       r.RangeMax,
			CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
