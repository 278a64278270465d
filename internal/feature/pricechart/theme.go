package pricechart

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme はホスト側のスタイルから読み取る配色です。1回の描画の間は不変として扱います。
type Theme struct {
	Border        drawing.Color
	Background    drawing.Color
	SecondaryText drawing.Color
}

var (
	// LightTheme は明るい背景用の既定テーマです。
	LightTheme = Theme{
		Border:        drawing.ColorFromHex("dee2e6"),
		Background:    drawing.ColorFromHex("ffffff"),
		SecondaryText: drawing.ColorFromHex("6c757d"),
	}
	// DarkTheme は暗い背景用の既定テーマです。
	DarkTheme = Theme{
		Border:        drawing.ColorFromHex("495057"),
		Background:    drawing.ColorFromHex("212529"),
		SecondaryText: drawing.ColorFromHex("adb5bd"),
	}
)

var (
	// DefaultMarkerColor は判定色が解決できなかった場合のマーカー色です。
	DefaultMarkerColor = drawing.ColorFromHex("6c757d")

	markerOutline = drawing.ColorFromHex("ffffff")
	histogramFill = drawing.Color{R: 13, G: 110, B: 253, A: 90}
	trackFillRGB  = drawing.ColorFromHex("0d6efd")
)

// trackFill はトラックの塗り色です。枠線と同じく半透明にして背景色になじませます。
func trackFill() drawing.Color {
	c := trackFillRGB
	c.A = 38
	return c
}

// ParseHexColor は "#rrggbb" / "rgb" 形式の色を解析します。
func ParseHexColor(s string) (drawing.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 3 && len(h) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", s)
	}
	probe := h
	if len(probe) == 3 {
		probe = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if _, err := hex.DecodeString(probe); err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return drawing.ColorFromHex(probe), nil
}

// ThemeFromHex は16進表記の3色からThemeを生成します。空文字の項目は fallback の値を使います。
func ThemeFromHex(border, background, secondaryText string, fallback Theme) (Theme, error) {
	th := fallback
	for _, f := range []struct {
		in  string
		out *drawing.Color
	}{
		{border, &th.Border},
		{background, &th.Background},
		{secondaryText, &th.SecondaryText},
	} {
		if f.in == "" {
			continue
		}
		c, err := ParseHexColor(f.in)
		if err != nil {
			return fallback, err
		}
		*f.out = c
	}
	return th, nil
}

func isZeroColor(c drawing.Color) bool {
	return c == drawing.Color{}
}
