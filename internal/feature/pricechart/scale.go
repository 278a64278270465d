package pricechart

import "math"

// Scale は価格を [Left, Right] のピクセル帯にマッピングします。
// 目盛りとヒストグラムのビン境界の両方で同じ Scale を使うことで位置が一致します。
type Scale struct {
	Min   float64
	Max   float64
	Left  float64
	Right float64
}

// NewScale は正規化済みのレンジからScaleを生成します。
func NewScale(r PriceRange, left, right float64) Scale {
	r = r.Normalize()
	return Scale{Min: r.Min, Max: r.Max, Left: left, Right: right}
}

// X は値をクランプしてから線形補間したピクセルX座標を返します。
// レンジ外の値は帯の端に描画されます。
func (s Scale) X(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Min
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	span := math.Max(s.Max-s.Min, epsilon)
	return s.Left + (v-s.Min)/span*(s.Right-s.Left)
}
