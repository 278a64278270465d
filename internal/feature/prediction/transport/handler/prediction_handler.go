// Package handler はpredictionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aqariy_web/internal/api"
	"aqariy_web/internal/feature/prediction/domain/entity"
	"aqariy_web/internal/feature/prediction/transport/http/dto"
	"aqariy_web/internal/feature/prediction/usecase"
	"aqariy_web/internal/shared/i18n"
)

// PredictionUsecase は価格予測のユースケースインターフェースを定義します。
type PredictionUsecase interface {
	Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error)
	Metadata(ctx context.Context) (entity.Metadata, error)
}

// PredictionHandler は価格予測のHTTPリクエストを処理します。
type PredictionHandler struct {
	uc PredictionUsecase
}

// NewPredictionHandler は指定されたusecaseでPredictionHandlerの新しいインスタンスを生成します。
func NewPredictionHandler(uc PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

// Predict は物件属性を受け取り、推定価格と主要因を返します。
// 表示用の価格文字列は lang クエリまたは Accept-Language の言語で整形します。
//
// エンドポイント例:
// POST /api/predict?lang=ar
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.uc.Predict(c.Request.Context(), req.ToEntity())
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	lang := i18n.Parse(c.Query("lang"), c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.NewPredictionResponse(p, lang))
}

// Metadata はモデルのメタデータ（都市一覧など）を返します。
//
// エンドポイント例:
// GET /api/metadata
func (h *PredictionHandler) Metadata(c *gin.Context) {
	md, err := h.uc.Metadata(c.Request.Context())
	if err != nil {
		c.JSON(StatusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewMetadataResponse(md))
}

// StatusFor はユースケースのエラーをHTTPステータスに変換します。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidAttributes):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrPredictorUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
