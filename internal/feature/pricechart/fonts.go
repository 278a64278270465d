package pricechart

import (
	"fmt"
	"os"
	"unicode"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
)

// FontSet はテキスト描画に使うフォントの組です。
// 同梱フォントにはアラビア文字のグリフがないため、アラビア語表示には外部TTFを指定してください。
type FontSet struct {
	Regular *truetype.Font
	Bold    *truetype.Font
}

// DefaultFonts はgo-chart同梱のフォントを返します。
func DefaultFonts() (FontSet, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return FontSet{}, fmt.Errorf("load default font: %w", err)
	}
	return FontSet{Regular: f, Bold: f}, nil
}

// LoadFonts はTTFファイルからFontSetを読み込みます。
// regularPath が空の場合は同梱フォント、boldPath が空の場合は Regular を使います。
func LoadFonts(regularPath, boldPath string) (FontSet, error) {
	fs, err := DefaultFonts()
	if err != nil {
		return FontSet{}, err
	}
	if regularPath != "" {
		f, err := parseFontFile(regularPath)
		if err != nil {
			return FontSet{}, err
		}
		fs.Regular, fs.Bold = f, f
	}
	if boldPath != "" {
		f, err := parseFontFile(boldPath)
		if err != nil {
			return FontSet{}, err
		}
		fs.Bold = f
	}
	return fs, nil
}

func parseFontFile(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", path, err)
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return f, nil
}

// pick はスタイルに合うフォントと、疑似ボールドが必要かどうかを返します。
func (fs FontSet) pick(bold bool) (*truetype.Font, bool) {
	if !bold {
		return fs.Regular, false
	}
	if fs.Bold == nil || fs.Bold == fs.Regular {
		return fs.Regular, true
	}
	return fs.Bold, false
}

// Covers は Regular と Bold の両方が s のすべての文字（表示形に変換後）を持つかどうかを返します。
func (fs FontSet) Covers(s string) bool {
	for _, f := range []*truetype.Font{fs.Regular, fs.Bold} {
		if f == nil {
			return false
		}
		for _, c := range VisualText(s) {
			if unicode.IsSpace(c) {
				continue
			}
			if f.Index(c) == 0 {
				return false
			}
		}
	}
	return true
}
