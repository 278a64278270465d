// Package usecase は価格予測のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"aqariy_web/internal/feature/prediction/domain/entity"
)

// ErrPredictorUnavailable は予測APIの呼び出しに失敗した場合のエラーです。
var ErrPredictorUnavailable = errors.New("predictor unavailable")

// Predictor は予測APIへのアクセスを抽象化します。
type Predictor interface {
	Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error)
	Metadata(ctx context.Context) (entity.Metadata, error)
}

type predictionUsecase struct {
	predictor Predictor
}

// NewPredictionUsecase はpredictionUsecaseの新しいインスタンスを生成します。
func NewPredictionUsecase(p Predictor) *predictionUsecase {
	return &predictionUsecase{predictor: p}
}

// Predict は属性を検証してから推定価格を取得します。
func (u *predictionUsecase) Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error) {
	if err := attrs.Validate(); err != nil {
		return entity.Prediction{}, err
	}
	p, err := u.predictor.Predict(ctx, attrs)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidAttributes) {
			return entity.Prediction{}, err
		}
		return entity.Prediction{}, fmt.Errorf("%w: %w", ErrPredictorUnavailable, err)
	}
	return p, nil
}

// Cities は選択可能な都市の一覧を返します。
func (u *predictionUsecase) Cities(ctx context.Context) ([]string, error) {
	md, err := u.predictor.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPredictorUnavailable, err)
	}
	if md.CityCategories == nil {
		return []string{}, nil
	}
	return md.CityCategories, nil
}

// Metadata はモデルのメタデータをそのまま返します。
func (u *predictionUsecase) Metadata(ctx context.Context) (entity.Metadata, error) {
	md, err := u.predictor.Metadata(ctx)
	if err != nil {
		return entity.Metadata{}, fmt.Errorf("%w: %w", ErrPredictorUnavailable, err)
	}
	return md, nil
}
