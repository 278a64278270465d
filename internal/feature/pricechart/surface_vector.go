package pricechart

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// VectorSurface はgo-chartのSVGレンダラーに描画するSurfaceです。
// chart.Renderer は整数座標を取るため、デバイスピクセル比を掛けてから丸めます。
type VectorSurface struct {
	fonts   FontSet
	r       chart.Renderer
	ratio   float64
	visible bool
	err     error
}

var _ Encoder = (*VectorSurface)(nil)

// NewVectorSurface はVectorSurfaceを生成します。
func NewVectorSurface(fonts FontSet) *VectorSurface {
	return &VectorSurface{fonts: fonts, ratio: 1}
}

func (v *VectorSurface) Resize(width, height, ratio float64) {
	pw := max(1, int(math.Round(width*ratio)))
	ph := max(1, int(math.Round(height*ratio)))
	r, err := chart.SVG(pw, ph)
	if err != nil {
		v.r, v.err = nil, fmt.Errorf("create svg renderer: %w", err)
		return
	}
	// フォントサイズをピクセル単位のまま扱う
	r.SetDPI(72)
	v.r, v.err = r, nil
	v.ratio = ratio
}

func (v *VectorSurface) SetVisible(visible bool) { v.visible = visible }

func (v *VectorSurface) Visible() bool { return v.visible && v.r != nil }

func (v *VectorSurface) px(f float64) int { return int(math.Round(f * v.ratio)) }

func (v *VectorSurface) rect(x, y, w, h float64) {
	x0, y0 := v.px(x), v.px(y)
	x1, y1 := v.px(x+w), v.px(y+h)
	v.r.MoveTo(x0, y0)
	v.r.LineTo(x1, y0)
	v.r.LineTo(x1, y1)
	v.r.LineTo(x0, y1)
	v.r.Close()
}

func (v *VectorSurface) FillRect(x, y, w, h float64, c drawing.Color) {
	if v.r == nil {
		return
	}
	v.r.ResetStyle()
	v.r.SetFillColor(c)
	v.rect(x, y, w, h)
	v.r.Fill()
}

func (v *VectorSurface) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	if v.r == nil {
		return
	}
	v.r.ResetStyle()
	v.r.SetStrokeColor(c)
	v.r.SetStrokeWidth(lineWidth * v.ratio)
	v.rect(x, y, w, h)
	v.r.Stroke()
}

func (v *VectorSurface) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	if v.r == nil {
		return
	}
	v.r.ResetStyle()
	v.r.SetStrokeColor(c)
	v.r.SetStrokeWidth(lineWidth * v.ratio)
	v.r.MoveTo(v.px(x1), v.px(y1))
	v.r.LineTo(v.px(x2), v.px(y2))
	v.r.Stroke()
}

func (v *VectorSurface) Circle(cx, cy, radius float64, fill, stroke drawing.Color, strokeWidth float64) {
	if v.r == nil {
		return
	}
	v.r.ResetStyle()
	v.r.SetFillColor(fill)
	v.r.SetStrokeColor(stroke)
	v.r.SetStrokeWidth(strokeWidth * v.ratio)
	v.r.Circle(radius*v.ratio, v.px(cx), v.px(cy))
}

func (v *VectorSurface) Text(s string, x, y float64, style TextStyle) {
	if v.r == nil || s == "" {
		return
	}
	f, _ := v.fonts.pick(style.Bold)
	if f == nil {
		return
	}
	v.r.ResetStyle()
	v.r.SetFont(f)
	v.r.SetFontSize(style.Size * v.ratio)
	v.r.SetFontColor(style.Color)

	px := v.px(x)
	switch style.Align {
	case AlignCenter:
		px -= v.r.MeasureText(s).Width() / 2
	case AlignRight:
		px -= v.r.MeasureText(s).Width()
	}
	v.r.Text(s, px, v.px(y))
}

// Encode は描画結果をSVGとして書き出します。
func (v *VectorSurface) Encode(w io.Writer) error {
	if v.err != nil {
		return v.err
	}
	if !v.Visible() {
		return ErrHidden
	}
	return v.r.Save(w)
}

func (v *VectorSurface) ContentType() string { return "image/svg+xml" }
