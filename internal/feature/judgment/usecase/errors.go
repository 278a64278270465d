package usecase

import "errors"

var (
	// ErrPredictorUnavailable は予測APIの呼び出しに失敗した場合のエラーです。
	ErrPredictorUnavailable = errors.New("predictor unavailable")
	// ErrInvalidChartOptions はチャートの描画オプションが不正な場合のエラーです。
	ErrInvalidChartOptions = errors.New("invalid chart options")
	// ErrHistoryUnavailable は履歴ストアが設定されていない場合のエラーです。
	ErrHistoryUnavailable = errors.New("judgment history is not configured")
	// ErrChartFontUnavailable は設定されたフォントで表示言語の文字を描画できない場合のエラーです。
	ErrChartFontUnavailable = errors.New("chart font does not support this language")
)
