// Package pricechart は市場価格レンジ、価格分布ヒストグラム、掲載価格マーカーを
// 1枚のチャートとして描画するレンダリングエンジンです。
//
// 描画はすべて同期的に1回の Render 呼び出し内で完結し、呼び出し間で状態を持ちません。
// 座標はCSSピクセル単位で計算され、デバイスピクセル比の変換は Surface 側で行います。
package pricechart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// epsilon はゼロ除算を避けるためのレンジ幅の下限です。
const epsilon = 1e-9

// PriceRange は市場価格の最小値と最大値です。
type PriceRange struct {
	Min float64
	Max float64
}

// DefaultRange は価格レンジが欠落・不正な場合に使われます。
var DefaultRange = PriceRange{Min: 0, Max: 1}

// Normalize は描画可能なレンジを返します。
// 非有限値は DefaultRange に置き換え、Max < Min の場合は Max を Min+ε に丸めます。
func (r PriceRange) Normalize() PriceRange {
	if !finite(r.Min) || !finite(r.Max) {
		return DefaultRange
	}
	if r.Max < r.Min {
		r.Max = r.Min + epsilon
	}
	return r
}

// Histogram はビンごとの度数分布です。len(Edges) == len(Counts)+1 が正常な形です。
type Histogram struct {
	Counts []int
	Edges  []float64
}

// bins は境界外参照を起こさずに描画できるビン数を返します。
func (h *Histogram) bins() int {
	if h == nil || len(h.Edges) == 0 {
		return 0
	}
	return min(len(h.Counts), len(h.Edges)-1)
}

// Data は1回の描画に必要な入力です。
type Data struct {
	Range PriceRange
	// Hist がnilまたは空の場合はバーを描画しません。
	Hist *Histogram
	// Listed がnilまたは非有限値の場合はマーカーを描画しません。
	Listed *float64
	// MarkerColor は判定結果の解決段階で決まった色です。ゼロ値は未解決を表します。
	MarkerColor drawing.Color
	// Ticks は目盛りの区間数です。0の場合は DefaultTicks を使います。
	Ticks int
}

// Container は描画先コンテナのジオメトリです。
type Container struct {
	Width      float64
	PixelRatio float64
}

// State はチャートの観測可能な状態です。
type State int

const (
	Hidden State = iota
	Rendered
)

func (s State) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "hidden"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
