package pricechart

import (
	"slices"

	"golang.org/x/text/unicode/bidi"
)

// arabicForms はアラビア文字の表示形です（単独・語末・語頭・語中）。
// 語頭形が0の文字は右側（前の文字）にしか連結しません。
var arabicForms = map[rune][4]rune{
	0x0621: {0xFE80, 0, 0, 0},                // HAMZA
	0x0622: {0xFE81, 0xFE82, 0, 0},           // ALEF WITH MADDA ABOVE
	0x0623: {0xFE83, 0xFE84, 0, 0},           // ALEF WITH HAMZA ABOVE
	0x0624: {0xFE85, 0xFE86, 0, 0},           // WAW WITH HAMZA ABOVE
	0x0625: {0xFE87, 0xFE88, 0, 0},           // ALEF WITH HAMZA BELOW
	0x0626: {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C}, // YEH WITH HAMZA ABOVE
	0x0627: {0xFE8D, 0xFE8E, 0, 0},           // ALEF
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92}, // BEH
	0x0629: {0xFE93, 0xFE94, 0, 0},           // TEH MARBUTA
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98}, // TEH
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C}, // THEH
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0}, // JEEM
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4}, // HAH
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8}, // KHAH
	0x062F: {0xFEA9, 0xFEAA, 0, 0},           // DAL
	0x0630: {0xFEAB, 0xFEAC, 0, 0},           // THAL
	0x0631: {0xFEAD, 0xFEAE, 0, 0},           // REH
	0x0632: {0xFEAF, 0xFEB0, 0, 0},           // ZAIN
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4}, // SEEN
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8}, // SHEEN
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC}, // SAD
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0}, // DAD
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4}, // TAH
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8}, // ZAH
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC}, // AIN
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0}, // GHAIN
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4}, // FEH
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8}, // QAF
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC}, // KAF
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0}, // LAM
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4}, // MEEM
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8}, // NOON
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC}, // HEH
	0x0648: {0xFEED, 0xFEEE, 0, 0},           // WAW
	0x0649: {0xFEEF, 0xFEF0, 0, 0},           // ALEF MAKSURA
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4}, // YEH
}

// lamAlef はラーム＋アリフの合字です（単独・語末）。
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const (
	lam     = 0x0644
	tatweel = 0x0640
)

// VisualText は文字列をグリフ単位で左から右へ描画できる形に変換します。
// 右から左の文字を含まない文字列はそのまま返します。
//
// アラビア文字は論理順のまま表示形（Presentation Forms-B）に置き換えてから、
// 双方向アルゴリズムの簡易版で表示順に並べ替えます。埋め込み制御文字と括弧の鏡像化は扱いません。
func VisualText(s string) string {
	rs := []rune(s)
	if !slices.ContainsFunc(rs, isRTL) {
		return s
	}
	return string(visualOrder(shapeArabic(rs)))
}

func classOf(r rune) bidi.Class {
	p, _ := bidi.LookupRune(r)
	return p.Class()
}

func isRTL(r rune) bool {
	c := classOf(r)
	return c == bidi.R || c == bidi.AL
}

func joinsForward(r rune) bool {
	if r == tatweel {
		return true
	}
	f, ok := arabicForms[r]
	return ok && f[2] != 0
}

func joinsBackward(r rune) bool {
	if r == tatweel {
		return true
	}
	f, ok := arabicForms[r]
	return ok && f[1] != 0
}

// neighbor は i から step 方向にある、結合記号以外の最初の文字の位置を返します。なければ -1。
func neighbor(rs []rune, i, step int) int {
	for j := i + step; j >= 0 && j < len(rs); j += step {
		if classOf(rs[j]) != bidi.NSM {
			return j
		}
	}
	return -1
}

// shapeArabic は前後の文字との連結に応じてアラビア文字を表示形に置き換えます。順序は論理順のままです。
func shapeArabic(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		forms, ok := arabicForms[r]
		if !ok {
			out = append(out, r)
			continue
		}
		prev, next := neighbor(rs, i, -1), neighbor(rs, i, 1)
		joinPrev := prev >= 0 && joinsForward(rs[prev]) && joinsBackward(r)

		if r == lam && next >= 0 {
			if lig, ok := lamAlef[rs[next]]; ok {
				if joinPrev {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				out = append(out, rs[i+1:next]...)
				i = next
				continue
			}
		}

		joinNext := next >= 0 && joinsForward(r) && joinsBackward(rs[next])
		switch {
		case joinPrev && joinNext:
			out = append(out, forms[3])
		case joinPrev:
			out = append(out, forms[1])
		case joinNext:
			out = append(out, forms[2])
		default:
			out = append(out, forms[0])
		}
	}
	return out
}

// visualOrder は1段落分の文字列を表示順に並べ替えます。
// 段落の方向は最初の強い文字で決まり、数字は右から左の文脈でも左から右に並びます。
func visualOrder(rs []rune) []rune {
	n := len(rs)
	cls := make([]bidi.Class, n)
	base := -1
	for i, r := range rs {
		c := classOf(r)
		switch c {
		case bidi.NSM:
			if i > 0 {
				c = cls[i-1]
			} else {
				c = bidi.ON
			}
		case bidi.AL:
			c = bidi.R
		case bidi.AN:
			c = bidi.EN
		}
		if base < 0 {
			switch c {
			case bidi.L:
				base = 0
			case bidi.R:
				base = 1
			}
		}
		cls[i] = c
	}
	if base < 0 {
		base = 0
	}
	sos := bidi.L
	if base == 1 {
		sos = bidi.R
	}

	// 数字に挟まれた区切り記号と、数字に隣接する通貨・単位記号は数字として扱う
	for i := 1; i < n-1; i++ {
		if (cls[i] == bidi.CS || cls[i] == bidi.ES) && cls[i-1] == bidi.EN && cls[i+1] == bidi.EN {
			cls[i] = bidi.EN
		}
	}
	for i := 1; i < n; i++ {
		if cls[i] == bidi.ET && cls[i-1] == bidi.EN {
			cls[i] = bidi.EN
		}
	}
	for i := n - 2; i >= 0; i-- {
		if cls[i] == bidi.ET && cls[i+1] == bidi.EN {
			cls[i] = bidi.EN
		}
	}

	// 直前の強い文字が左から右なら数字も左から右の文字として扱う
	last := sos
	for i, c := range cls {
		switch c {
		case bidi.L, bidi.R:
			last = c
		case bidi.EN:
			if last == bidi.L {
				cls[i] = bidi.L
			}
		}
	}

	// 中立文字は前後の方向が一致すればその方向、そうでなければ段落の方向
	strong := func(c bidi.Class) bool { return c == bidi.L || c == bidi.R || c == bidi.EN }
	dir := func(c bidi.Class) bidi.Class {
		if c == bidi.EN {
			return bidi.R
		}
		return c
	}
	for i := 0; i < n; {
		if strong(cls[i]) {
			i++
			continue
		}
		j := i
		for j < n && !strong(cls[j]) {
			j++
		}
		before, after := sos, sos
		if i > 0 {
			before = dir(cls[i-1])
		}
		if j < n {
			after = dir(cls[j])
		}
		d := sos
		if before == after {
			d = before
		}
		for k := i; k < j; k++ {
			cls[k] = d
		}
		i = j
	}

	levels := make([]int, n)
	top := base
	for i, c := range cls {
		lv := base
		switch {
		case base == 0 && c == bidi.R:
			lv = 1
		case base == 0 && c == bidi.EN:
			lv = 2
		case base == 1 && (c == bidi.L || c == bidi.EN):
			lv = 2
		}
		levels[i] = lv
		top = max(top, lv)
	}

	out := slices.Clone(rs)
	for lv := top; lv >= 1; lv-- {
		for i := 0; i < n; {
			if levels[i] < lv {
				i++
				continue
			}
			j := i
			for j < n && levels[j] >= lv {
				j++
			}
			slices.Reverse(out[i:j])
			slices.Reverse(levels[i:j])
			i = j
		}
	}
	return out
}
