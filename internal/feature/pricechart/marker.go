package pricechart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"aqariy_web/internal/shared/i18n"
)

// MarkerLabel はマーカー上部に表示するラベル文字列を返します。
func MarkerLabel(listed float64, f Formatter) string {
	return i18n.T(f.lang, i18n.ListedPrefix) + " " + f.Short(listed)
}

// PredictedLabel は推定価格を桁区切りの完全表記で返します。例: "Predicted: 152,000"
func PredictedLabel(predicted float64, f Formatter) string {
	return i18n.T(f.lang, i18n.PredictedPrefix) + " " + f.Long(predicted)
}

func drawMarker(s Surface, l layout, sc Scale, listed float64, c drawing.Color, f Formatter) {
	if isZeroColor(c) {
		c = DefaultMarkerColor
	}
	x := sc.X(listed)
	top := l.trackY - markerRise

	s.Line(x, top, x, l.trackY+l.trackH+6, 2, c)
	s.Circle(x, l.trackCenterY(), markerRadius, c, markerOutline, 2)
	s.Text(MarkerLabel(listed, f), x, top-6, TextStyle{
		Size:  markerSize,
		Bold:  true,
		Color: c,
		Align: AlignCenter,
	})
}
