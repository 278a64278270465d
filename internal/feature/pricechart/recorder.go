package pricechart

import "github.com/wcharczuk/go-chart/v2/drawing"

// OpKind は記録された描画命令の種類です。
type OpKind string

const (
	OpFillRect   OpKind = "fill_rect"
	OpStrokeRect OpKind = "stroke_rect"
	OpLine       OpKind = "line"
	OpCircle     OpKind = "circle"
	OpText       OpKind = "text"
)

// Op は1つの描画命令です。Coords の意味は種類ごとに異なります。
//
//	fill_rect/stroke_rect: x, y, w, h
//	line:                  x1, y1, x2, y2
//	circle:                cx, cy, r
//	text:                  x, y
type Op struct {
	Kind      OpKind
	Coords    []float64
	Color     drawing.Color
	Stroke    drawing.Color
	LineWidth float64
	Text      string
	Style     TextStyle
}

// Recorder は描画命令をそのまま記録するSurfaceです。テストやデバッグ出力に使います。
type Recorder struct {
	Width   float64
	Height  float64
	Ratio   float64
	Visible bool
	Ops     []Op
}

var _ Surface = (*Recorder)(nil)

func (r *Recorder) Resize(width, height, ratio float64) {
	r.Width, r.Height, r.Ratio = width, height, ratio
	r.Ops = nil
}

func (r *Recorder) SetVisible(visible bool) { r.Visible = visible }

func (r *Recorder) FillRect(x, y, w, h float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Coords: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Coords: []float64{x, y, w, h}, Stroke: c, LineWidth: lineWidth})
}

func (r *Recorder) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Coords: []float64{x1, y1, x2, y2}, Stroke: c, LineWidth: lineWidth})
}

func (r *Recorder) Circle(cx, cy, radius float64, fill, stroke drawing.Color, strokeWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Coords: []float64{cx, cy, radius}, Color: fill, Stroke: stroke, LineWidth: strokeWidth})
}

func (r *Recorder) Text(s string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Coords: []float64{x, y}, Text: s, Style: style, Color: style.Color})
}

// Find は指定した種類の命令だけを記録順に返します。
func (r *Recorder) Find(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
