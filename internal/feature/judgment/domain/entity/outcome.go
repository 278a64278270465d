// Package entity はjudgmentフィーチャーのドメインモデルを定義します。
package entity

import "aqariy_web/internal/shared/i18n"

// Outcome は掲載価格を市場レンジと比べた判定区分です。
type Outcome string

const (
	Overpriced              Outcome = "OVERPRICED"
	FairPrice               Outcome = "FAIR_PRICE"
	PredictedPrice          Outcome = "PREDICTED_PRICE"
	FairLow                 Outcome = "FAIR_LOW"
	GoodDeal                Outcome = "GOOD_DEAL"
	SuspiciouslyUnderpriced Outcome = "SUSPICIOUSLY_UNDERPRICED"
	Unknown                 Outcome = "UNKNOWN"
)

// Outcomes は既知の判定区分を表示順に並べたものです。
var Outcomes = []Outcome{
	Overpriced,
	FairPrice,
	PredictedPrice,
	FairLow,
	GoodDeal,
	SuspiciouslyUnderpriced,
	Unknown,
}

type outcomeInfo struct {
	color    string
	messages map[i18n.Lang]string
}

// outcomeTable は判定区分ごとの表示色と文言です。
// Unknown はエントリを持たず、チャート既定色と空の文言になります。
var outcomeTable = map[Outcome]outcomeInfo{
	Overpriced: {
		color: "#dc3545",
		messages: map[i18n.Lang]string{
			i18n.EN: "The listed price is above the market range.",
			i18n.AR: "السعر المعروض أعلى من نطاق السوق.",
		},
	},
	FairPrice: {
		color: "#198754",
		messages: map[i18n.Lang]string{
			i18n.EN: "The listed price is fair and within the market range.",
			i18n.AR: "السعر المعروض عادل وضمن نطاق السوق.",
		},
	},
	PredictedPrice: {
		color: "#0d6efd",
		messages: map[i18n.Lang]string{
			i18n.EN: "The listed price is close to the predicted price.",
			i18n.AR: "السعر المعروض قريب من السعر المتوقع.",
		},
	},
	FairLow: {
		color: "#fd7e14",
		messages: map[i18n.Lang]string{
			i18n.EN: "The listed price is on the low side but still reasonable.",
			i18n.AR: "السعر المعروض منخفض نسبياً لكنه معقول.",
		},
	},
	GoodDeal: {
		color: "#2e7d32",
		messages: map[i18n.Lang]string{
			i18n.EN: "Good deal: the listed price is below the market average.",
			i18n.AR: "صفقة جيدة: السعر المعروض أقل من متوسط السوق.",
		},
	},
	SuspiciouslyUnderpriced: {
		color: "#6f42c1",
		messages: map[i18n.Lang]string{
			i18n.EN: "The listed price is suspiciously low. Verify the listing before proceeding.",
			i18n.AR: "السعر المعروض منخفض بشكل مريب. تحقق من الإعلان قبل المتابعة.",
		},
	},
}

// ParseOutcome は判定キー（大文字小文字を区別）をOutcomeに変換します。
// 列挙外のキーはUnknownになります。
func ParseOutcome(key string) Outcome {
	o := Outcome(key)
	if _, ok := outcomeTable[o]; ok {
		return o
	}
	return Unknown
}

// ColorHex は判定区分の表示色を返します。Unknownの場合 ok は false です。
func (o Outcome) ColorHex() (string, bool) {
	info, ok := outcomeTable[o]
	if !ok {
		return "", false
	}
	return info.color, true
}

// Message は判定区分の文言を指定言語で返します。Unknownの場合は空文字です。
func (o Outcome) Message(lang i18n.Lang) string {
	info, ok := outcomeTable[o]
	if !ok {
		return ""
	}
	if m, ok := info.messages[lang]; ok {
		return m
	}
	return info.messages[i18n.Default]
}
