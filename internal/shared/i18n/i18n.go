// Package i18n はUIで使用する言語タグと文言テーブルを提供します。
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang はアクティブな表示言語です。
type Lang string

const (
	// EN は英語です。
	EN Lang = "en"
	// AR はアラビア語です。
	AR Lang = "ar"
)

// Default は未指定・未対応の言語に対するフォールバックです。
const Default = EN

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

// Parse は "ar", "ar-SA" やAccept-Languageヘッダー形式の文字列をLangに変換します。
// 対応していない場合は Default を返します。
func Parse(s ...string) Lang {
	if len(s) == 0 {
		return Default
	}
	_, idx := language.MatchStrings(matcher, s...)
	if idx == 1 {
		return AR
	}
	return EN
}

// Tag はx/text/languageのタグを返します。
func (l Lang) Tag() language.Tag {
	if l == AR {
		return language.Arabic
	}
	return language.English
}

// RTL は右から左に書く言語かどうかを返します。
func (l Lang) RTL() bool {
	return l == AR
}

// Key は文言テーブルのキーです。
type Key int

const (
	ChartTitle Key = iota
	ListedPrefix
	SuffixThousands
	SuffixMillions
	PredictedPrefix
)

var texts = map[Key]map[Lang]string{
	ChartTitle:      {EN: "Market price range", AR: "نطاق أسعار السوق"},
	ListedPrefix:    {EN: "Listed:", AR: "المعروض:"},
	SuffixThousands: {EN: "K", AR: " الف"},
	SuffixMillions:  {EN: "M", AR: " مل"},
	PredictedPrefix: {EN: "Predicted:", AR: "المتوقع:"},
}

// T はキーと言語に対応する文言を返します。該当言語がなければ英語を返します。
func T(l Lang, k Key) string {
	m, ok := texts[k]
	if !ok {
		return ""
	}
	if s, ok := m[l]; ok {
		return s
	}
	return m[Default]
}

// String はLangを文字列として返します。
func (l Lang) String() string {
	return strings.ToLower(string(l))
}
