// Package usecase は価格判定とチャート描画のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"aqariy_web/internal/feature/judgment/domain/entity"
	predentity "aqariy_web/internal/feature/prediction/domain/entity"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

const (
	// DefaultRecentLimit は履歴一覧のデフォルト件数です。
	DefaultRecentLimit = 50
	// MaxRecentLimit は履歴一覧の最大件数です。
	MaxRecentLimit = 500
	// MaxExportRows はエクスポートする最大件数です。
	MaxExportRows = 10000
)

// Predictor は判定APIへのアクセスを抽象化します。
type Predictor interface {
	JudgePrice(ctx context.Context, attrs predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error)
}

// HistoryRepository は判定履歴の永続化を抽象化します。
type HistoryRepository interface {
	Save(ctx context.Context, rec entity.Record) error
	Recent(ctx context.Context, limit int) ([]entity.Record, error)
	PurgeBefore(ctx context.Context, t time.Time) (int64, error)
}

// RecordWriter は履歴をファイル形式に書き出します。
type RecordWriter interface {
	Write(w io.Writer, recs []entity.Record) error
}

// Options は judgmentUsecase の依存をまとめたものです。nilのフィールドは機能無効を意味します。
type Options struct {
	History HistoryRepository
	Export  RecordWriter
	Fonts   pricechart.FontSet
	Themes  map[string]pricechart.Theme
	Now     func() time.Time
}

type judgmentUsecase struct {
	predictor Predictor
	history   HistoryRepository
	export    RecordWriter
	fonts     pricechart.FontSet
	themes    map[string]pricechart.Theme
	now       func() time.Time
}

// NewJudgmentUsecase はjudgmentUsecaseの新しいインスタンスを生成します。
func NewJudgmentUsecase(p Predictor, opts Options) *judgmentUsecase {
	themes := opts.Themes
	if len(themes) == 0 {
		themes = DefaultThemes()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &judgmentUsecase{
		predictor: p,
		history:   opts.History,
		export:    opts.Export,
		fonts:     opts.Fonts,
		themes:    themes,
		now:       now,
	}
}

// Judge は提示価格を判定し、色とメッセージを解決して返します。履歴の保存はベストエフォートです。
func (u *judgmentUsecase) Judge(ctx context.Context, attrs predentity.PropertyAttributes, listed float64, lang i18n.Lang) (entity.Judgment, error) {
	if err := attrs.Validate(); err != nil {
		return entity.Judgment{}, err
	}
	if err := predentity.ValidateListedPrice(listed); err != nil {
		return entity.Judgment{}, err
	}

	res, err := u.predictor.JudgePrice(ctx, attrs, listed)
	if err != nil {
		// 予測APIが入力を拒否した場合は詳細をそのまま返す
		if errors.Is(err, predentity.ErrInvalidAttributes) {
			return entity.Judgment{}, err
		}
		return entity.Judgment{}, fmt.Errorf("%w: %w", ErrPredictorUnavailable, err)
	}

	j := entity.Resolve(res, lang)
	if j.Outcome == entity.Unknown {
		slog.Warn("unknown judgment key", "key", res.Key)
	}

	if u.history != nil {
		rec := entity.NewRecord(j, attrs.City, listed)
		rec.CreatedAt = u.now()
		if err := u.history.Save(ctx, rec); err != nil {
			slog.Warn("failed to save judgment history", "error", err)
		}
	}
	return j, nil
}

// JudgeAndRender は判定と描画を1回で行います。マーカー色は解決済みの判定色です。
func (u *judgmentUsecase) JudgeAndRender(ctx context.Context, attrs predentity.PropertyAttributes, listed float64, opts ChartOptions) (entity.Judgment, Chart, error) {
	j, err := u.Judge(ctx, attrs, listed, opts.Lang)
	if err != nil {
		return entity.Judgment{}, Chart{}, err
	}
	opts.Color = j.ColorHex
	c, err := u.RenderChart(j.Result, opts)
	if err != nil {
		return j, Chart{}, err
	}
	return j, c, nil
}

// Recent は新しい順に判定履歴を返します。
func (u *judgmentUsecase) Recent(ctx context.Context, limit int) ([]entity.Record, error) {
	if u.history == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return u.history.Recent(ctx, limit)
}

// Export は判定履歴を w に書き出します。
func (u *judgmentUsecase) Export(ctx context.Context, w io.Writer) error {
	if u.history == nil || u.export == nil {
		return ErrHistoryUnavailable
	}
	recs, err := u.history.Recent(ctx, MaxExportRows)
	if err != nil {
		return err
	}
	return u.export.Write(w, recs)
}

// Purge は retention より古い履歴を削除し、削除件数を返します。
func (u *judgmentUsecase) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if u.history == nil {
		return 0, ErrHistoryUnavailable
	}
	return u.history.PurgeBefore(ctx, u.now().Add(-retention))
}
