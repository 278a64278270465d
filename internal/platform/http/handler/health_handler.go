// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check は依存サービスの疎通確認です。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler は指定された依存チェックでHealthHandlerを生成します。
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// GETでは依存チェックを実行し、1つでも失敗すれば503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	status, code := "ok", http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := chk.Ping(ctx)
		cancel()
		if err != nil {
			results[chk.Name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		results[chk.Name] = "ok"
	}

	body := gin.H{"status": status}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(code, body)
}
