package pricechart

import (
	"math"
	"strconv"

	"golang.org/x/text/message"

	"aqariy_web/internal/shared/i18n"
)

// Formatter は価格ラベルを言語に応じて整形します。
type Formatter struct {
	lang    i18n.Lang
	printer *message.Printer
}

// NewFormatter は指定言語のFormatterを生成します。
func NewFormatter(lang i18n.Lang) Formatter {
	return Formatter{lang: lang, printer: message.NewPrinter(lang.Tag())}
}

// Short は価格をK/M接尾辞付きの短い表記にします。
//
//	999       -> "999"
//	1500      -> "2K"
//	2_500_000 -> "2.5M"
func (f Formatter) Short(price float64) string {
	r := round(price)
	abs := math.Abs(r)
	switch {
	case abs >= 1_000_000:
		return strconv.FormatFloat(round(r/100_000)/10, 'f', 1, 64) + i18n.T(f.lang, i18n.SuffixMillions)
	case abs >= 1000:
		return strconv.FormatFloat(round(r/1000), 'f', 0, 64) + i18n.T(f.lang, i18n.SuffixThousands)
	default:
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
}

// Long は価格を整数に丸め、言語ごとの桁区切りで整形します。
func (f Formatter) Long(price float64) string {
	return f.printer.Sprintf("%d", int64(round(price)))
}

// round は0.5を0から遠い方向に丸めます。非有限値と-0は0として扱います。
func round(v float64) float64 {
	if !finite(v) {
		return 0
	}
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}
