package pricechart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
)

var (
	// ErrHidden は非表示状態のSurfaceをエンコードしようとした場合に返されます。
	ErrHidden = errors.New("pricechart: surface is hidden")
	// ErrMissingGlyphs はフォントにない文字を描画した場合に Encode が返します。
	// アラビア語のPNGにはアラビア文字を含むTTF（CHART_FONT_FILE）が必要です。
	ErrMissingGlyphs = errors.New("pricechart: font has no glyphs for text")
)

type faceKey struct {
	font *truetype.Font
	size float64
}

// RasterSurface はfogleman/ggを使ってPNGに描画するSurfaceです。
// 受け取ったCSSピクセル座標をデバイスピクセル比で拡大してから描画するため、
// 高密度ディスプレイ向けでも文字や線がぼやけません。
type RasterSurface struct {
	fonts   FontSet
	dc      *gg.Context
	ratio   float64
	visible bool
	faces   map[faceKey]font.Face
	missing []rune
}

var _ Encoder = (*RasterSurface)(nil)

// NewRasterSurface はRasterSurfaceを生成します。Resize が呼ばれるまでは非表示です。
func NewRasterSurface(fonts FontSet) *RasterSurface {
	return &RasterSurface{fonts: fonts, ratio: 1}
}

func (r *RasterSurface) Resize(width, height, ratio float64) {
	pw := max(1, int(math.Round(width*ratio)))
	ph := max(1, int(math.Round(height*ratio)))
	r.dc = gg.NewContext(pw, ph)
	r.missing = nil
	if r.ratio != ratio {
		r.faces = nil
	}
	r.ratio = ratio
}

func (r *RasterSurface) SetVisible(visible bool) { r.visible = visible }

// Visible は描画済みで表示可能な状態かどうかを返します。
func (r *RasterSurface) Visible() bool { return r.visible && r.dc != nil }

func (r *RasterSurface) FillRect(x, y, w, h float64, c drawing.Color) {
	if r.dc == nil {
		return
	}
	k := r.ratio
	r.dc.DrawRectangle(x*k, y*k, w*k, h*k)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *RasterSurface) StrokeRect(x, y, w, h, lineWidth float64, c drawing.Color) {
	if r.dc == nil {
		return
	}
	k := r.ratio
	r.dc.DrawRectangle(x*k, y*k, w*k, h*k)
	r.dc.SetLineWidth(lineWidth * k)
	r.dc.SetColor(c)
	r.dc.Stroke()
}

func (r *RasterSurface) Line(x1, y1, x2, y2, lineWidth float64, c drawing.Color) {
	if r.dc == nil {
		return
	}
	k := r.ratio
	r.dc.DrawLine(x1*k, y1*k, x2*k, y2*k)
	r.dc.SetLineWidth(lineWidth * k)
	r.dc.SetColor(c)
	r.dc.Stroke()
}

func (r *RasterSurface) Circle(cx, cy, radius float64, fill, stroke drawing.Color, strokeWidth float64) {
	if r.dc == nil {
		return
	}
	k := r.ratio
	r.dc.DrawCircle(cx*k, cy*k, radius*k)
	r.dc.SetColor(fill)
	r.dc.FillPreserve()
	r.dc.SetLineWidth(strokeWidth * k)
	r.dc.SetColor(stroke)
	r.dc.Stroke()
}

func (r *RasterSurface) Text(s string, x, y float64, style TextStyle) {
	if r.dc == nil || s == "" {
		return
	}
	// ggはルーンを論理順に左から右へ並べるだけなので、連結と並べ替えを済ませておく
	s = VisualText(s)
	f, fauxBold := r.fonts.pick(style.Bold)
	if f != nil {
		r.dc.SetFontFace(r.face(f, style.Size))
	}
	r.checkGlyphs(f, s)
	k := r.ratio
	ax := 0.0
	switch style.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	r.dc.SetColor(style.Color)
	r.dc.DrawStringAnchored(s, x*k, y*k, ax, 0)
	if fauxBold {
		r.dc.DrawStringAnchored(s, x*k+0.5*k, y*k, ax, 0)
	}
}

func (r *RasterSurface) face(f *truetype.Font, size float64) font.Face {
	key := faceKey{font: f, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	if r.faces == nil {
		r.faces = map[faceKey]font.Face{}
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size * r.ratio,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = face
	return face
}

// checkGlyphs はフォントにない文字を記録します。fがnilの場合はggの既定フォント（ASCIIのみ）です。
func (r *RasterSurface) checkGlyphs(f *truetype.Font, s string) {
	for _, c := range s {
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			continue
		}
		ok := c <= unicode.MaxASCII
		if f != nil {
			ok = f.Index(c) != 0
		}
		if !ok && !slices.Contains(r.missing, c) {
			r.missing = append(r.missing, c)
		}
	}
}

// Encode は描画結果をPNGとして書き出します。
func (r *RasterSurface) Encode(w io.Writer) error {
	if !r.Visible() {
		return ErrHidden
	}
	if len(r.missing) > 0 {
		return fmt.Errorf("%w: %q", ErrMissingGlyphs, string(r.missing))
	}
	return r.dc.EncodePNG(w)
}

func (r *RasterSurface) ContentType() string { return "image/png" }
