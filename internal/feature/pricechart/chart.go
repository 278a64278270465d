package pricechart

import (
	"aqariy_web/internal/shared/i18n"
)

// renderContext は1回の Render 呼び出しの間だけ存在し、スケールとレイアウトを保持します。
type renderContext struct {
	ratio  float64
	lang   i18n.Lang
	layout layout
	scale  Scale
	format Formatter
	bars   []Bar
	ticks  []Tick
}

func newRenderContext(c Container, d Data, lang i18n.Lang) renderContext {
	ratio := c.PixelRatio
	if !finite(ratio) || ratio <= 0 {
		ratio = 1
	}
	// 左右の端はヒストグラムの有無に依存しないので、先にスケールを決められる
	probe := newLayout(c.Width, false)
	sc := NewScale(d.Range, probe.left, probe.right)
	bars := HistogramBars(d.Hist, sc, histTop, histHeight)
	f := NewFormatter(lang)

	return renderContext{
		ratio:  ratio,
		lang:   lang,
		layout: newLayout(c.Width, len(bars) > 0),
		scale:  sc,
		format: f,
		bars:   bars,
		ticks:  Ticks(sc, d.Ticks, f),
	}
}

// Render はチャート全体を Surface に描画します。
//
// コンテナがnilまたは幅が0以下の場合は何も描画せずSurfaceを非表示にして Hidden を返します。
// それ以外は毎回 Surface をリサイズ（=クリア）してから、
// 背景 → タイトル → トラック → ヒストグラム → 軸・目盛り → マーカー の順に描画します。
// 同じ入力に対しては常に同じ描画命令列を発行します。
func Render(s Surface, c *Container, d Data, th Theme, lang i18n.Lang) State {
	if s == nil {
		return Hidden
	}
	if c == nil || !finite(c.Width) || c.Width <= 0 {
		s.SetVisible(false)
		return Hidden
	}

	rc := newRenderContext(*c, d, lang)
	l := rc.layout

	s.Resize(l.width, l.height, rc.ratio)
	s.SetVisible(true)
	s.FillRect(0, 0, l.width, l.height, th.Background)

	drawTitle(s, l, th, rc.lang)
	drawTrack(s, l, th)
	drawHistogram(s, rc.bars)
	drawAxis(s, l, rc.ticks, th)
	if d.Listed != nil && finite(*d.Listed) {
		drawMarker(s, l, rc.scale, *d.Listed, d.MarkerColor, rc.format)
	}
	return Rendered
}
