package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"aqariy_web/internal/shared/i18n"
)

// PriceRange は市場価格レンジ [Min, Max] です。
type PriceRange struct {
	Min float64
	Max float64
}

// Histogram は市場価格の度数分布です。Edges は Counts より1つ多いのが正常です。
type Histogram struct {
	Counts []int
	Edges  []float64
}

// JudgmentResult は /judge_price の応答です。欠けたフィールドや壊れたフィールドは nil になります。
type JudgmentResult struct {
	Key            string
	PriceRange     *PriceRange
	Hist           *Histogram
	ListedPrice    *float64
	PredictedPrice *float64
	MarketMean     *float64
	MarketMedian   *float64
	PriceQ1        *float64
	PriceQ3        *float64
}

type histogramJSON struct {
	Counts []int     `json:"counts"`
	Edges  []float64 `json:"edges"`
}

type judgmentResultJSON struct {
	Key            string         `json:"judgment_key"`
	PriceRange     []float64      `json:"price_range,omitempty"`
	Hist           *histogramJSON `json:"hist,omitempty"`
	ListedPrice    *float64       `json:"listed_price,omitempty"`
	PredictedPrice *float64       `json:"predicted_price,omitempty"`
	MarketMean     *float64       `json:"market_mean,omitempty"`
	MarketMedian   *float64       `json:"market_median,omitempty"`
	PriceQ1        *float64       `json:"price_q1,omitempty"`
	PriceQ3        *float64       `json:"price_q3,omitempty"`
}

// MarshalJSON は予測APIと同じ形式のJSONを書き出します。
func (r JudgmentResult) MarshalJSON() ([]byte, error) {
	out := judgmentResultJSON{
		Key:            r.Key,
		ListedPrice:    r.ListedPrice,
		PredictedPrice: r.PredictedPrice,
		MarketMean:     r.MarketMean,
		MarketMedian:   r.MarketMedian,
		PriceQ1:        r.PriceQ1,
		PriceQ3:        r.PriceQ3,
	}
	if r.PriceRange != nil {
		out.PriceRange = []float64{r.PriceRange.Min, r.PriceRange.Max}
	}
	if r.Hist != nil {
		out.Hist = &histogramJSON{Counts: r.Hist.Counts, Edges: r.Hist.Edges}
	}
	return json.Marshal(out)
}

// UnmarshalJSON は寛容にデコードします。オブジェクト以外の入力のみエラーとし、
// 壊れたフィールドはそのフィールドだけを捨てます。
func (r *JudgmentResult) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var key string
	if err := json.Unmarshal(raw["judgment_key"], &key); err != nil {
		key = ""
	}

	*r = JudgmentResult{
		Key:            key,
		PriceRange:     decodeRange(raw["price_range"]),
		Hist:           decodeHistogram(raw["hist"]),
		ListedPrice:    decodeNumber(raw["listed_price"]),
		PredictedPrice: decodeNumber(raw["predicted_price"]),
		MarketMean:     decodeNumber(raw["market_mean"]),
		MarketMedian:   decodeNumber(raw["market_median"]),
		PriceQ1:        decodeNumber(raw["price_q1"]),
		PriceQ3:        decodeNumber(raw["price_q3"]),
	}
	return nil
}

func isNull(m json.RawMessage) bool {
	t := bytes.TrimSpace(m)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func decodeNumber(m json.RawMessage) *float64 {
	if isNull(m) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(m, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func decodeRange(m json.RawMessage) *PriceRange {
	if isNull(m) {
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(m, &pair); err != nil || len(pair) != 2 {
		return nil
	}
	lo, hi := decodeNumber(pair[0]), decodeNumber(pair[1])
	if lo == nil || hi == nil {
		return nil
	}
	return &PriceRange{Min: *lo, Max: *hi}
}

func decodeHistogram(m json.RawMessage) *Histogram {
	if isNull(m) {
		return nil
	}
	var h struct {
		Counts []float64 `json:"counts"`
		Edges  []float64 `json:"edges"`
	}
	if err := json.Unmarshal(m, &h); err != nil {
		return nil
	}
	if len(h.Counts) == 0 && len(h.Edges) == 0 {
		return nil
	}
	counts := make([]int, len(h.Counts))
	for i, c := range h.Counts {
		if c > 0 {
			counts[i] = int(math.Round(c))
		}
	}
	return &Histogram{Counts: counts, Edges: h.Edges}
}

// Judgment は表示用に解決した判定結果です。
type Judgment struct {
	Result   JudgmentResult
	Outcome  Outcome
	ColorHex string // "" のときはチャート既定色
	Message  string
	Lang     i18n.Lang
}

// Resolve は判定結果に判定区分・表示色・文言を付与します。
func Resolve(r JudgmentResult, lang i18n.Lang) Judgment {
	o := ParseOutcome(r.Key)
	color, _ := o.ColorHex()
	return Judgment{
		Result:   r,
		Outcome:  o,
		ColorHex: color,
		Message:  o.Message(lang),
		Lang:     lang,
	}
}

// Record は判定履歴に保存された1件です。
type Record struct {
	ID             string
	Key            string
	City           string
	ListedPrice    float64
	PredictedPrice *float64
	RangeMin       *float64
	RangeMax       *float64
	CreatedAt      time.Time
}

// NewRecord は解決済みの判定から履歴レコードを組み立てます。
func NewRecord(j Judgment, city string, listed float64) Record {
	rec := Record{
		Key:            string(j.Outcome),
		City:           city,
		ListedPrice:    listed,
		PredictedPrice: j.Result.PredictedPrice,
	}
	if j.Result.ListedPrice != nil {
		rec.ListedPrice = *j.Result.ListedPrice
	}
	if pr := j.Result.PriceRange; pr != nil {
		lo, hi := pr.Min, pr.Max
		rec.RangeMin, rec.RangeMax = &lo, &hi
	}
	return rec
}
