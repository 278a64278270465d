package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	judgmententity "aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/prediction/domain/entity"
)

// mockPredictor はテスト用のPredictorモック実装です。
type mockPredictor struct {
	judgeFn    func(ctx context.Context, attrs entity.PropertyAttributes, listed float64) (judgmententity.JudgmentResult, error)
	predictFn  func(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error)
	metadataFn func(ctx context.Context) (entity.Metadata, error)
	calls      int
}

func (m *mockPredictor) JudgePrice(ctx context.Context, attrs entity.PropertyAttributes, listed float64) (judgmententity.JudgmentResult, error) {
	m.calls++
	if m.judgeFn != nil {
		return m.judgeFn(ctx, attrs, listed)
	}
	return judgmententity.JudgmentResult{}, nil
}

func (m *mockPredictor) Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error) {
	m.calls++
	if m.predictFn != nil {
		return m.predictFn(ctx, attrs)
	}
	return entity.Prediction{}, nil
}

func (m *mockPredictor) Metadata(ctx context.Context) (entity.Metadata, error) {
	m.calls++
	if m.metadataFn != nil {
		return m.metadataFn(ctx)
	}
	return entity.Metadata{}, nil
}

var attrs = entity.PropertyAttributes{Rooms: 3, Bathrooms: 2, Area: 120, City: "نابلس"}

func listed(v float64) *float64 { return &v }

func sampleResult() judgmententity.JudgmentResult {
	return judgmententity.JudgmentResult{
		Key:         "FAIR_PRICE",
		PriceRange:  &judgmententity.PriceRange{Min: 100000, Max: 200000},
		ListedPrice: listed(150000),
	}
}

// TestNewCachingPredictor_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingPredictor_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 10 * time.Minute, "predictor"},
		{"negative ttl uses default", -time.Minute, "", 10 * time.Minute, "predictor"},
		{"custom values preserved", time.Minute, "custom", time.Minute, "custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCachingPredictor(nil, tt.ttl, &mockPredictor{}, tt.namespace)
			assert.Equal(t, tt.expectedTTL, c.ttl)
			assert.Equal(t, tt.expectedNamespace, c.namespace)
		})
	}
}

// TestCachingPredictor_CacheKey はキーが入力に対して決定的で、入力が違えば異なることを検証します。
func TestCachingPredictor_CacheKey(t *testing.T) {
	t.Parallel()

	c := NewCachingPredictor(nil, 0, &mockPredictor{}, "")
	k1 := c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: 1})
	k2 := c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: 1})
	k3 := c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: 2})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Regexp(t, `^predictor:judge:[0-9a-f]{64}$`, k1)
}

// TestCachingPredictor_NilRedis はRedisがnilの場合に内部Predictorを直接呼び出すことを検証します。
func TestCachingPredictor_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockPredictor{judgeFn: func(ctx context.Context, a entity.PropertyAttributes, l float64) (judgmententity.JudgmentResult, error) {
		return sampleResult(), nil
	}}
	c := NewCachingPredictor(nil, time.Minute, inner, "")

	for i := 0; i < 2; i++ {
		res, err := c.JudgePrice(context.Background(), attrs, 150000)
		require.NoError(t, err)
		assert.Equal(t, "FAIR_PRICE", res.Key)
	}
	assert.Equal(t, 2, inner.calls)
}

// TestCachingPredictor_JudgePrice_CacheHit はキャッシュヒット時に内部Predictorを呼ばないことを検証します。
func TestCachingPredictor_JudgePrice_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPredictor{}
	c := NewCachingPredictor(rdb, time.Minute, inner, "")
	key := c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: 150000})

	cachedJSON, err := json.Marshal(sampleResult())
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(cachedJSON))

	res, err := c.JudgePrice(context.Background(), attrs, 150000)
	require.NoError(t, err)
	assert.Equal(t, 0, inner.calls)
	assert.Equal(t, "FAIR_PRICE", res.Key)
	require.NotNil(t, res.PriceRange)
	assert.Equal(t, 200000.0, res.PriceRange.Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingPredictor_JudgePrice_CacheMiss はキャッシュミス時にAPIから取得し、キャッシュに保存することを検証します。
func TestCachingPredictor_JudgePrice_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPredictor{judgeFn: func(ctx context.Context, a entity.PropertyAttributes, l float64) (judgmententity.JudgmentResult, error) {
		return sampleResult(), nil
	}}
	c := NewCachingPredictor(rdb, time.Minute, inner, "")
	key := c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: 150000})

	expectedJSON, err := json.Marshal(sampleResult())
	require.NoError(t, err)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, expectedJSON, time.Minute).SetVal("OK")

	res, err := c.JudgePrice(context.Background(), attrs, 150000)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "FAIR_PRICE", res.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingPredictor_Predict_CorruptedCache は破損したキャッシュを削除してAPIにフォールバックすることを検証します。
func TestCachingPredictor_Predict_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	want := entity.Prediction{PredictedPrice: 99000, Factors: []entity.Factor{{Name: "المدينة", Share: 12.5}}}
	inner := &mockPredictor{predictFn: func(ctx context.Context, a entity.PropertyAttributes) (entity.Prediction, error) {
		return want, nil
	}}
	c := NewCachingPredictor(rdb, time.Minute, inner, "")
	key := c.cacheKey("predict", attrs)

	expectedJSON, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal("invalid json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, expectedJSON, time.Minute).SetVal("OK")

	got, err := c.Predict(context.Background(), attrs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingPredictor_Metadata_InnerError は内部エラーが伝播し、キャッシュに保存されないことを検証します。
func TestCachingPredictor_Metadata_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("predictor down")
	inner := &mockPredictor{metadataFn: func(ctx context.Context) (entity.Metadata, error) {
		return entity.Metadata{}, expectedErr
	}}
	c := NewCachingPredictor(rdb, time.Minute, inner, "aq")

	mock.ExpectGet("aq:metadata").RedisNil()

	_, err := c.Metadata(context.Background())
	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingPredictor_Metadata_CacheHit はメタデータのキャッシュヒットを検証します。
func TestCachingPredictor_Metadata_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	md := entity.Metadata{FeatureColumnsCount: 1, FeatureColumns: []string{"x"}, CityCategories: []string{"نابلس"}}
	b, err := json.Marshal(md)
	require.NoError(t, err)
	mock.ExpectGet("predictor:metadata").SetVal(string(b))

	inner := &mockPredictor{}
	got, err := NewCachingPredictor(rdb, 0, inner, "").Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, md, got)
	assert.Equal(t, 0, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
