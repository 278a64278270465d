package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input []string
		want  Lang
	}{
		{[]string{"en"}, EN},
		{[]string{"ar"}, AR},
		{[]string{"ar-SA"}, AR},
		{[]string{"ar-EG,ar;q=0.9,en;q=0.8"}, AR},
		{[]string{"fr"}, EN},
		{[]string{""}, EN},
		{nil, EN},
	}

	for _, tt := range tests {
		tt := tt
		name := "empty"
		if len(tt.input) > 0 {
			name = tt.input[0]
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Parse(tt.input...))
		})
	}
}

func TestLang_TagAndDirection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, language.Arabic, AR.Tag())
	assert.Equal(t, language.English, EN.Tag())
	assert.True(t, AR.RTL())
	assert.False(t, EN.RTL())
}

func TestT(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Listed:", T(EN, ListedPrefix))
	assert.Equal(t, "المعروض:", T(AR, ListedPrefix))
	// 未対応の言語は英語にフォールバック
	assert.Equal(t, "K", T(Lang("de"), SuffixThousands))
	assert.Equal(t, "", T(AR, Key(999)))
}
