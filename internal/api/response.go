// Package api はフィーチャー間で共有するHTTPレスポンスの型を定義します。
package api

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は本文のない操作の結果メッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse は発行したトークンです。
type TokenResponse struct {
	Token string `json:"token"`
}
