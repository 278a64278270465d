package pricechart

import "math"

const (
	// ChartHeight はチャートの固定の論理高さ（CSSピクセル）です。
	ChartHeight = 280.0
	// DefaultTicks は目盛りの区間数の既定値です（目盛りは DefaultTicks+1 本）。
	DefaultTicks = 6

	padX         = 40.0
	titleY       = 26.0
	histTop      = 44.0
	histHeight   = 100.0
	trackHeight  = 16.0
	trackNoHistY = 110.0
	axisGap      = 10.0
	tickLen      = 6.0
	tickLabelGap = 14.0
	markerRise   = 44.0
	markerRadius = 7.0

	titleSize  = 14.0
	labelSize  = 11.0
	markerSize = 12.0
)

// layout は1回の描画で使う派生ジオメトリです。
type layout struct {
	width, height float64
	left, right   float64

	hasHist    bool
	histTop    float64
	histHeight float64

	trackY, trackH float64
	axisY          float64
}

// newLayout はコンテナ幅からジオメトリを計算します。
// ヒストグラムがない場合、その縦方向の領域はトラックに譲ります。
func newLayout(width float64, hasHist bool) layout {
	l := layout{
		width:      width,
		height:     ChartHeight,
		left:       padX,
		right:      math.Max(padX, width-padX),
		hasHist:    hasHist,
		histTop:    histTop,
		histHeight: histHeight,
		trackY:     trackNoHistY,
		trackH:     trackHeight,
	}
	if hasHist {
		l.trackY = histTop + histHeight + 8
	}
	l.axisY = l.trackY + l.trackH + axisGap
	return l
}

func (l layout) trackCenterY() float64 {
	return l.trackY + l.trackH/2
}
