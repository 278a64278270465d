package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

const (
	// DefaultChartWidth はwidth未指定時のコンテナ幅（CSSピクセル）です。
	DefaultChartWidth = 640
	// MaxChartWidth はコンテナ幅の上限です。
	MaxChartWidth = 2000
	// MaxPixelRatio はデバイスピクセル比の上限です。
	MaxPixelRatio = 4
	// DefaultThemeName はテーマ未指定時に使うプリセット名です。
	DefaultThemeName = "light"
)

// ChartOptions はチャート描画のオプションです。
type ChartOptions struct {
	Width  float64 // 0以下はコンテナ幅なし（非表示）
	DPR    float64
	Lang   i18n.Lang
	Theme  string
	Format pricechart.Format
	// Color は判定の解決段階で決まったマーカー色（#rrggbb）。空なら既定色。
	Color string
}

// Chart はエンコード済みのチャート画像です。State が Hidden の場合 Body は空です。
type Chart struct {
	State       pricechart.State
	ContentType string
	Body        []byte
}

// DefaultThemes は組み込みのテーマプリセットです。
func DefaultThemes() map[string]pricechart.Theme {
	return map[string]pricechart.Theme{
		"light": pricechart.LightTheme,
		"dark":  pricechart.DarkTheme,
	}
}

// RenderChart は判定結果をチャート画像にエンコードします。
func (u *judgmentUsecase) RenderChart(r entity.JudgmentResult, opts ChartOptions) (Chart, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Theme))
	if name == "" {
		name = DefaultThemeName
	}
	th, ok := u.themes[name]
	if !ok {
		return Chart{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidChartOptions, opts.Theme)
	}

	var marker drawing.Color
	if opts.Color != "" {
		c, err := pricechart.ParseHexColor(opts.Color)
		if err != nil {
			return Chart{}, fmt.Errorf("%w: %w", ErrInvalidChartOptions, err)
		}
		marker = c
	}

	enc, err := pricechart.NewEncoder(opts.Format, u.fonts)
	if err != nil {
		return Chart{}, fmt.Errorf("%w: %w", ErrInvalidChartOptions, err)
	}

	c := &pricechart.Container{
		Width:      clamp(opts.Width, MaxChartWidth),
		PixelRatio: clamp(opts.DPR, MaxPixelRatio),
	}
	state := pricechart.Render(enc, c, ToChartData(r, marker), th, opts.Lang)
	if state == pricechart.Hidden {
		return Chart{State: state}, nil
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf); err != nil {
		if errors.Is(err, pricechart.ErrMissingGlyphs) {
			return Chart{}, fmt.Errorf("%w (set CHART_FONT_FILE or use format=svg): %w", ErrChartFontUnavailable, err)
		}
		return Chart{}, fmt.Errorf("encode chart: %w", err)
	}
	return Chart{State: state, ContentType: enc.ContentType(), Body: buf.Bytes()}, nil
}

// ToChartData は判定結果をチャート入力に変換します。価格レンジがない場合は既定レンジです。
func ToChartData(r entity.JudgmentResult, marker drawing.Color) pricechart.Data {
	d := pricechart.Data{
		Range:       pricechart.DefaultRange,
		Listed:      r.ListedPrice,
		MarkerColor: marker,
	}
	if r.PriceRange != nil {
		d.Range = pricechart.PriceRange{Min: r.PriceRange.Min, Max: r.PriceRange.Max}
	}
	if r.Hist != nil && len(r.Hist.Counts) > 0 {
		d.Hist = &pricechart.Histogram{Counts: r.Hist.Counts, Edges: r.Hist.Edges}
	}
	return d
}

func clamp(v, hi float64) float64 {
	if math.IsInf(v, 1) {
		return hi
	}
	return math.Min(v, hi)
}
