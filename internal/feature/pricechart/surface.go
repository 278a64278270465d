package pricechart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Align はテキストの水平方向の揃え位置です。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle はテキスト描画のスタイルです。Y座標はベースラインを指します。
type TextStyle struct {
	Size  float64
	Bold  bool
	Color drawing.Color
	Align Align
}

// Surface は即時モードの2D描画先です。座標はすべてCSSピクセル単位です。
//
// Resize は論理サイズとデバイスピクセル比を設定し、それまでの内容を破棄します。
// 実装は物理サイズを width*ratio × height*ratio として確保します。
type Surface interface {
	Resize(width, height, ratio float64)
	SetVisible(visible bool)
	FillRect(x, y, w, h float64, c drawing.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color)
	Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color)
	Circle(cx, cy, r float64, fill, stroke drawing.Color, strokeWidth float64)
	Text(s string, x, y float64, style TextStyle)
}

// Encoder はエンコード可能なSurfaceです。
type Encoder interface {
	Surface
	Visible() bool
	Encode(w io.Writer) error
	ContentType() string
}

// Format は出力画像の形式です。
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// NewEncoder は形式に応じたEncoderを生成します。未知の形式はエラーです。
func NewEncoder(format Format, fonts FontSet) (Encoder, error) {
	switch format {
	case FormatPNG, "":
		return NewRasterSurface(fonts), nil
	case FormatSVG:
		return NewVectorSurface(fonts), nil
	default:
		return nil, fmt.Errorf("unsupported chart format %q", format)
	}
}
