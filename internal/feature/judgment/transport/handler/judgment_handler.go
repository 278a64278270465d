// Package handler はjudgmentフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aqariy_web/internal/api"
	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/judgment/transport/http/dto"
	"aqariy_web/internal/feature/judgment/usecase"
	predentity "aqariy_web/internal/feature/prediction/domain/entity"
	preddto "aqariy_web/internal/feature/prediction/transport/http/dto"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// JudgmentUsecase は価格判定のユースケースインターフェースを定義します。
type JudgmentUsecase interface {
	Judge(ctx context.Context, attrs predentity.PropertyAttributes, listed float64, lang i18n.Lang) (entity.Judgment, error)
	RenderChart(r entity.JudgmentResult, opts usecase.ChartOptions) (usecase.Chart, error)
	JudgeAndRender(ctx context.Context, attrs predentity.PropertyAttributes, listed float64, opts usecase.ChartOptions) (entity.Judgment, usecase.Chart, error)
	Recent(ctx context.Context, limit int) ([]entity.Record, error)
	Export(ctx context.Context, w io.Writer) error
}

// JudgmentHandler は価格判定とチャートのHTTPリクエストを処理します。
type JudgmentHandler struct {
	uc JudgmentUsecase
}

// NewJudgmentHandler は指定されたusecaseでJudgmentHandlerの新しいインスタンスを生成します。
func NewJudgmentHandler(uc JudgmentUsecase) *JudgmentHandler {
	return &JudgmentHandler{uc: uc}
}

// Judge は物件属性と提示価格を受け取り、判定結果をJSONで返します。
//
// エンドポイント例:
// POST /api/judge?lang=ar
func (h *JudgmentHandler) Judge(c *gin.Context) {
	var req preddto.JudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	j, err := h.uc.Judge(c.Request.Context(), req.ToEntity(), req.ListedPrice, langOf(c))
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewJudgmentResponse(j))
}

// Chart はクライアントが保持する判定結果をチャート画像にして返します。
// color が未指定の場合は judgment_key から解決した色を使います。
//
// エンドポイント例:
// POST /api/chart?lang=en&width=640&dpr=2&theme=dark&format=svg
func (h *JudgmentHandler) Chart(c *gin.Context) {
	opts, err := chartOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	var res entity.JudgmentResult
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if opts.Color == "" {
		opts.Color = entity.Resolve(res, opts.Lang).ColorHex
	}
	if res.PriceRange == nil {
		slog.Debug("chart rendered with default price range", "judgment_key", res.Key)
	}

	chart, err := h.uc.RenderChart(res, opts)
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	writeChart(c, chart)
}

// JudgeChart は判定とチャート描画を1回のリクエストで行い、画像を返します。
// 判定キーと色はレスポンスヘッダーに載せます。
//
// エンドポイント例:
// POST /api/judge/chart?lang=ar&width=480
func (h *JudgmentHandler) JudgeChart(c *gin.Context) {
	opts, err := chartOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	var req preddto.JudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	j, chart, err := h.uc.JudgeAndRender(c.Request.Context(), req.ToEntity(), req.ListedPrice, opts)
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("X-Judgment-Key", string(j.Outcome))
	if j.ColorHex != "" {
		c.Header("X-Judgment-Color", j.ColorHex)
	}
	writeChart(c, chart)
}

// Recent は新しい順に判定履歴を返します（管理者用）。
//
// エンドポイント例:
// GET /admin/judgments?limit=50
func (h *JudgmentHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	recs, err := h.uc.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordResponses(recs))
}

// Export は判定履歴をExcelファイルとして返します（管理者用）。
//
// エンドポイント例:
// GET /admin/judgments/export.xlsx
func (h *JudgmentHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.uc.Export(c.Request.Context(), &buf); err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="judgments.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// StatusFor はユースケースのエラーをHTTPステータスに変換します。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, predentity.ErrInvalidAttributes), errors.Is(err, usecase.ErrInvalidChartOptions):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrPredictorUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, usecase.ErrHistoryUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrChartFontUnavailable):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func langOf(c *gin.Context) i18n.Lang {
	return i18n.Parse(c.Query("lang"), c.GetHeader("Accept-Language"))
}

func chartOptions(c *gin.Context) (usecase.ChartOptions, error) {
	opts := usecase.ChartOptions{
		Lang:   langOf(c),
		Theme:  c.Query("theme"),
		Format: pricechart.Format(strings.ToLower(c.Query("format"))),
		Color:  c.Query("color"),
	}

	var err error
	if opts.Width, err = floatQuery(c, "width", usecase.DefaultChartWidth); err != nil {
		return opts, err
	}
	if opts.DPR, err = floatQuery(c, "dpr", 1); err != nil {
		return opts, err
	}
	return opts, nil
}

func floatQuery(c *gin.Context, name string, def float64) (float64, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func writeChart(c *gin.Context, chart usecase.Chart) {
	if chart.State == pricechart.Hidden {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, chart.ContentType, chart.Body)
}
