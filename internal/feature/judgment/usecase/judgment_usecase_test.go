package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/judgment/usecase"
	predentity "aqariy_web/internal/feature/prediction/domain/entity"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

var (
	errUpstream = errors.New("upstream down")
	errDB       = errors.New("database error")
	fixedNow    = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type mockPredictor struct {
	JudgePriceFunc func(ctx context.Context, attrs predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error)
	Calls          int
}

func (m *mockPredictor) JudgePrice(ctx context.Context, attrs predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
	m.Calls++
	if m.JudgePriceFunc != nil {
		return m.JudgePriceFunc(ctx, attrs, listed)
	}
	return entity.JudgmentResult{}, errors.New("JudgePriceFunc is not implemented")
}

type mockHistory struct {
	SaveFunc        func(ctx context.Context, rec entity.Record) error
	RecentFunc      func(ctx context.Context, limit int) ([]entity.Record, error)
	PurgeBeforeFunc func(ctx context.Context, t time.Time) (int64, error)
	Saved           []entity.Record
}

func (m *mockHistory) Save(ctx context.Context, rec entity.Record) error {
	m.Saved = append(m.Saved, rec)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rec)
	}
	return nil
}

func (m *mockHistory) Recent(ctx context.Context, limit int) ([]entity.Record, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return nil, errors.New("RecentFunc is not implemented")
}

func (m *mockHistory) PurgeBefore(ctx context.Context, t time.Time) (int64, error) {
	if m.PurgeBeforeFunc != nil {
		return m.PurgeBeforeFunc(ctx, t)
	}
	return 0, errors.New("PurgeBeforeFunc is not implemented")
}

type mockWriter struct {
	WriteFunc func(w io.Writer, recs []entity.Record) error
}

func (m *mockWriter) Write(w io.Writer, recs []entity.Record) error {
	return m.WriteFunc(w, recs)
}

func ptr(v float64) *float64 { return &v }

func goodDeal() entity.JudgmentResult {
	return entity.JudgmentResult{
		Key:        "GOOD_DEAL",
		PriceRange: &entity.PriceRange{Min: 100000, Max: 200000},
		Hist: &entity.Histogram{
			Counts: []int{1, 3, 5, 3, 1},
			Edges:  []float64{100000, 120000, 140000, 160000, 180000, 200000},
		},
		ListedPrice:    ptr(120000),
		PredictedPrice: ptr(150000),
	}
}

func attrs() predentity.PropertyAttributes {
	return predentity.PropertyAttributes{Rooms: 3, Bathrooms: 2, Area: 140, City: "رام الله"}
}

func fonts(t *testing.T) pricechart.FontSet {
	t.Helper()
	fs, err := pricechart.DefaultFonts()
	require.NoError(t, err)
	return fs
}

func TestJudgmentUsecase_Judge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		attrs       predentity.PropertyAttributes
		listed      float64
		judge       func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error)
		saveErr     error
		wantErr     error
		wantNotErr  error
		wantOutcome entity.Outcome
		wantColor   string
		wantSaved   int
	}{
		{
			name:   "success: resolved outcome is recorded",
			attrs:  attrs(),
			listed: 120000,
			judge: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
				return goodDeal(), nil
			},
			wantOutcome: entity.GoodDeal,
			wantColor:   "#2e7d32",
			wantSaved:   1,
		},
		{
			name:   "success: unknown key resolves to neutral",
			attrs:  attrs(),
			listed: 120000,
			judge: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
				return entity.JudgmentResult{Key: "MYSTERY"}, nil
			},
			wantOutcome: entity.Unknown,
			wantSaved:   1,
		},
		{
			name:   "success: history failure does not fail the judgment",
			attrs:  attrs(),
			listed: 120000,
			judge: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
				return goodDeal(), nil
			},
			saveErr:     errDB,
			wantOutcome: entity.GoodDeal,
			wantColor:   "#2e7d32",
			wantSaved:   1,
		},
		{
			name:    "error: invalid attributes",
			attrs:   predentity.PropertyAttributes{},
			listed:  120000,
			wantErr: predentity.ErrInvalidAttributes,
		},
		{
			name:    "error: non-positive listed price",
			attrs:   attrs(),
			listed:  0,
			wantErr: predentity.ErrInvalidAttributes,
		},
		{
			name:   "error: predictor failure",
			attrs:  attrs(),
			listed: 120000,
			judge: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
				return entity.JudgmentResult{}, errUpstream
			},
			wantErr: usecase.ErrPredictorUnavailable,
		},
		{
			name:   "error: predictor rejects the input",
			attrs:  attrs(),
			listed: 120000,
			judge: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
				return entity.JudgmentResult{}, fmt.Errorf("%w: city_category unknown", predentity.ErrInvalidAttributes)
			},
			wantErr:    predentity.ErrInvalidAttributes,
			wantNotErr: usecase.ErrPredictorUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &mockPredictor{JudgePriceFunc: tc.judge}
			h := &mockHistory{SaveFunc: func(ctx context.Context, rec entity.Record) error { return tc.saveErr }}
			uc := usecase.NewJudgmentUsecase(p, usecase.Options{History: h, Now: func() time.Time { return fixedNow }})

			j, err := uc.Judge(context.Background(), tc.attrs, tc.listed, i18n.EN)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				if tc.wantNotErr != nil {
					assert.NotErrorIs(t, err, tc.wantNotErr)
				}
				assert.Empty(t, h.Saved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOutcome, j.Outcome)
			assert.Equal(t, tc.wantColor, j.ColorHex)
			require.Len(t, h.Saved, tc.wantSaved)
			assert.Equal(t, "رام الله", h.Saved[0].City)
			assert.Equal(t, fixedNow, h.Saved[0].CreatedAt)
		})
	}
}

func TestJudgmentUsecase_Judge_WithoutHistory(t *testing.T) {
	t.Parallel()

	p := &mockPredictor{JudgePriceFunc: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
		return goodDeal(), nil
	}}
	uc := usecase.NewJudgmentUsecase(p, usecase.Options{})

	j, err := uc.Judge(context.Background(), attrs(), 120000, i18n.AR)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodDeal.Message(i18n.AR), j.Message)
}

func TestJudgmentUsecase_RenderChart(t *testing.T) {
	t.Parallel()

	uc := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{Fonts: fonts(t)})

	t.Run("png", func(t *testing.T) {
		c, err := uc.RenderChart(goodDeal(), usecase.ChartOptions{Width: 320, DPR: 2, Lang: i18n.EN, Color: "#2e7d32"})
		require.NoError(t, err)
		assert.Equal(t, pricechart.Rendered, c.State)
		assert.Equal(t, "image/png", c.ContentType)
		assert.True(t, bytes.HasPrefix(c.Body, []byte("\x89PNG")))
	})

	t.Run("svg dark", func(t *testing.T) {
		c, err := uc.RenderChart(goodDeal(), usecase.ChartOptions{Width: 320, Lang: i18n.EN, Theme: "Dark", Format: pricechart.FormatSVG})
		require.NoError(t, err)
		assert.Equal(t, "image/svg+xml", c.ContentType)
		assert.Contains(t, string(c.Body), "<svg")
	})

	t.Run("zero width is hidden", func(t *testing.T) {
		c, err := uc.RenderChart(goodDeal(), usecase.ChartOptions{Width: 0})
		require.NoError(t, err)
		assert.Equal(t, pricechart.Hidden, c.State)
		assert.Empty(t, c.Body)
	})

	t.Run("empty result still renders", func(t *testing.T) {
		c, err := uc.RenderChart(entity.JudgmentResult{}, usecase.ChartOptions{Width: 200})
		require.NoError(t, err)
		assert.Equal(t, pricechart.Rendered, c.State)
	})

	t.Run("arabic png without arabic font", func(t *testing.T) {
		_, err := uc.RenderChart(goodDeal(), usecase.ChartOptions{Width: 320, Lang: i18n.AR})
		assert.ErrorIs(t, err, usecase.ErrChartFontUnavailable)
		assert.ErrorIs(t, err, pricechart.ErrMissingGlyphs)
	})

	t.Run("arabic svg is shaped by the viewer", func(t *testing.T) {
		c, err := uc.RenderChart(goodDeal(), usecase.ChartOptions{Width: 320, Lang: i18n.AR, Format: pricechart.FormatSVG})
		require.NoError(t, err)
		assert.Contains(t, string(c.Body), "<svg")
	})

	invalid := []struct {
		name string
		opts usecase.ChartOptions
	}{
		{"unknown theme", usecase.ChartOptions{Width: 200, Theme: "neon"}},
		{"bad color", usecase.ChartOptions{Width: 200, Color: "#zzzzzz"}},
		{"bad format", usecase.ChartOptions{Width: 200, Format: "gif"}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RenderChart(goodDeal(), tc.opts)
			assert.ErrorIs(t, err, usecase.ErrInvalidChartOptions)
		})
	}
}

func TestJudgmentUsecase_JudgeAndRender(t *testing.T) {
	t.Parallel()

	p := &mockPredictor{JudgePriceFunc: func(ctx context.Context, a predentity.PropertyAttributes, listed float64) (entity.JudgmentResult, error) {
		return goodDeal(), nil
	}}
	uc := usecase.NewJudgmentUsecase(p, usecase.Options{Fonts: fonts(t)})

	j, c, err := uc.JudgeAndRender(context.Background(), attrs(), 120000, usecase.ChartOptions{Width: 400, Format: pricechart.FormatSVG, Lang: i18n.EN})
	require.NoError(t, err)
	assert.Equal(t, entity.GoodDeal, j.Outcome)
	assert.Equal(t, pricechart.Rendered, c.State)
	assert.Contains(t, string(c.Body), "Listed: 120K")
	assert.Equal(t, 1, p.Calls)
}

func TestToChartData(t *testing.T) {
	t.Parallel()

	d := usecase.ToChartData(entity.JudgmentResult{}, pricechart.DefaultMarkerColor)
	assert.Equal(t, pricechart.DefaultRange, d.Range)
	assert.Nil(t, d.Hist)
	assert.Nil(t, d.Listed)

	empty := entity.JudgmentResult{Hist: &entity.Histogram{Edges: []float64{1, 2}}}
	assert.Nil(t, usecase.ToChartData(empty, pricechart.DefaultMarkerColor).Hist)

	full := usecase.ToChartData(goodDeal(), pricechart.DefaultMarkerColor)
	assert.Equal(t, pricechart.PriceRange{Min: 100000, Max: 200000}, full.Range)
	require.NotNil(t, full.Hist)
	assert.Len(t, full.Hist.Counts, 5)
	require.NotNil(t, full.Listed)
	assert.Equal(t, 120000.0, *full.Listed)
}

func TestJudgmentUsecase_Recent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default when zero", 0, usecase.DefaultRecentLimit},
		{"capped", 10000, usecase.MaxRecentLimit},
		{"as given", 7, 7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			h := &mockHistory{RecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
				got = limit
				return []entity.Record{{ID: "1"}}, nil
			}}
			uc := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{History: h})
			recs, err := uc.Recent(context.Background(), tc.limit)
			require.NoError(t, err)
			assert.Len(t, recs, 1)
			assert.Equal(t, tc.wantLimit, got)
		})
	}

	_, err := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{}).Recent(context.Background(), 1)
	assert.ErrorIs(t, err, usecase.ErrHistoryUnavailable)
}

func TestJudgmentUsecase_Export(t *testing.T) {
	t.Parallel()

	recs := []entity.Record{{ID: "a"}, {ID: "b"}}
	h := &mockHistory{RecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
		assert.Equal(t, usecase.MaxExportRows, limit)
		return recs, nil
	}}
	w := &mockWriter{WriteFunc: func(w io.Writer, got []entity.Record) error {
		assert.Equal(t, recs, got)
		_, err := w.Write([]byte("xlsx"))
		return err
	}}

	uc := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{History: h, Export: w})
	var buf bytes.Buffer
	require.NoError(t, uc.Export(context.Background(), &buf))
	assert.Equal(t, "xlsx", buf.String())

	failing := &mockHistory{RecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
		return nil, errDB
	}}
	err := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{History: failing, Export: w}).Export(context.Background(), &buf)
	assert.ErrorIs(t, err, errDB)

	err = usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{History: h}).Export(context.Background(), &buf)
	assert.ErrorIs(t, err, usecase.ErrHistoryUnavailable)
}

func TestJudgmentUsecase_Purge(t *testing.T) {
	t.Parallel()

	var cutoff time.Time
	h := &mockHistory{PurgeBeforeFunc: func(ctx context.Context, t time.Time) (int64, error) {
		cutoff = t
		return 3, nil
	}}
	uc := usecase.NewJudgmentUsecase(&mockPredictor{}, usecase.Options{History: h, Now: func() time.Time { return fixedNow }})

	n, err := uc.Purge(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, fixedNow.Add(-24*time.Hour), cutoff)
}
