package pricechart

import "math"

// Bar はヒストグラムの1本のバーです。
type Bar struct {
	X, Y, W, H float64
}

// HistogramBars はヒストグラムをバンド [top, top+height] 内のバーに変換します。
// バーは下端揃えで上に伸び、高さは度数に比例します。
// ビンが2未満の場合はnilを返します。
func HistogramBars(h *Histogram, sc Scale, top, height float64) []Bar {
	n := h.bins()
	if n < 2 {
		return nil
	}
	maxCount := 1
	for _, c := range h.Counts[:n] {
		maxCount = max(maxCount, c)
	}

	bottom := top + height
	bars := make([]Bar, 0, n)
	for i := 0; i < n; i++ {
		x0 := sc.X(h.Edges[i])
		x1 := sc.X(h.Edges[i+1])
		bh := float64(max(h.Counts[i], 0)) / float64(maxCount) * height
		bars = append(bars, Bar{
			X: x0,
			Y: bottom - bh,
			W: math.Max(1, x1-x0-1),
			H: bh,
		})
	}
	return bars
}

func drawHistogram(s Surface, bars []Bar) {
	for _, b := range bars {
		if b.H <= 0 {
			continue
		}
		s.FillRect(b.X, b.Y, b.W, b.H, histogramFill)
	}
}
