package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	judgmententity "aqariy_web/internal/feature/judgment/domain/entity"
	judgmentusecase "aqariy_web/internal/feature/judgment/usecase"
	"aqariy_web/internal/feature/prediction/domain/entity"
	predictionusecase "aqariy_web/internal/feature/prediction/usecase"
	"aqariy_web/internal/platform/externalapi/predictor/dto"
	"aqariy_web/internal/shared/ratelimiter"
)

const maxErrorBody = 64 << 10

// APIError is returned when the prediction API answers with status >= 400.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("predictor http %d", e.StatusCode)
	}
	return fmt.Sprintf("predictor http %d: %s", e.StatusCode, e.Detail)
}

// Unwrap lets callers treat a 400/422 answer as rejected input (entity.ErrInvalidAttributes).
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return entity.ErrInvalidAttributes
	}
	return nil
}

// Client は予測APIを呼び出すクライアントです。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// Clientが各featureの要求するインターフェースを実装していることをコンパイル時に検証します。
var (
	_ judgmentusecase.Predictor   = (*Client)(nil)
	_ predictionusecase.Predictor = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。limiterはnilでもよい。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Predict は物件属性から推定価格と主要因を取得します。
func (c *Client) Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error) {
	var body dto.PredictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", dto.FromAttributes(attrs), &body); err != nil {
		return entity.Prediction{}, err
	}
	return body.ToEntity(), nil
}

// JudgePrice は提示価格を市場レンジと比較した判定結果を取得します。
func (c *Client) JudgePrice(ctx context.Context, attrs entity.PropertyAttributes, listed float64) (judgmententity.JudgmentResult, error) {
	req := dto.JudgeRequest{PredictRequest: dto.FromAttributes(attrs), ListedPrice: listed}

	var body judgmententity.JudgmentResult
	if err := c.do(ctx, http.MethodPost, "/judge_price", req, &body); err != nil {
		return judgmententity.JudgmentResult{}, err
	}
	return body, nil
}

// Metadata はモデルの特徴量と都市一覧を取得します。
func (c *Client) Metadata(ctx context.Context) (entity.Metadata, error) {
	var body dto.MetadataResponse
	if err := c.do(ctx, http.MethodGet, "/metadata", nil, &body); err != nil {
		return entity.Metadata{}, err
	}
	return body.ToEntity(), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var payload io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(res.Body, maxErrorBody)).Decode(&e)
		return &APIError{StatusCode: res.StatusCode, Detail: e.Message()}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
