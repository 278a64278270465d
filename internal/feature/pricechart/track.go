package pricechart

import "aqariy_web/internal/shared/i18n"

// Tick は目盛り1本分の値・位置・ラベルです。
type Tick struct {
	Value float64
	X     float64
	Label string
}

// Ticks は [Min, Max] を n 等分した n+1 本の目盛りを返します。n<=0 の場合は DefaultTicks を使います。
func Ticks(sc Scale, n int, f Formatter) []Tick {
	if n <= 0 {
		n = DefaultTicks
	}
	ticks := make([]Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := sc.Min + float64(i)/float64(n)*(sc.Max-sc.Min)
		ticks = append(ticks, Tick{Value: v, X: sc.X(v), Label: f.Short(v)})
	}
	return ticks
}

func drawTitle(s Surface, l layout, th Theme, lang i18n.Lang) {
	st := TextStyle{Size: titleSize, Bold: true, Color: th.SecondaryText, Align: AlignLeft}
	x := l.left
	if lang.RTL() {
		st.Align = AlignRight
		x = l.right
	}
	s.Text(i18n.T(lang, i18n.ChartTitle), x, titleY, st)
}

func drawTrack(s Surface, l layout, th Theme) {
	w := l.right - l.left
	s.FillRect(l.left, l.trackY, w, l.trackH, trackFill())
	s.StrokeRect(l.left, l.trackY, w, l.trackH, 1, th.Border)
}

func drawAxis(s Surface, l layout, ticks []Tick, th Theme) {
	s.Line(l.left, l.axisY, l.right, l.axisY, 1, th.Border)
	st := TextStyle{Size: labelSize, Color: th.SecondaryText, Align: AlignCenter}
	for _, t := range ticks {
		s.Line(t.X, l.axisY, t.X, l.axisY+tickLen, 1, th.Border)
		s.Text(t.Label, t.X, l.axisY+tickLen+tickLabelGap, st)
	}
}
