package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、固定ウィンドウ方式で操作の頻度を制限します。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限（0以下は無制限）
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Waitはレートリミットの上限に達しているかを確認し、必要であれば次のウィンドウまで待機します。
// 待機中にctxがキャンセルされた場合はctx.Err()を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 || rl.interval <= 0 {
		return ctx.Err()
	}
	for {
		sleep, ok := rl.reserve()
		if ok {
			return nil
		}
		slog.Warn("rate limit reached", "limit", rl.limit, "sleep", sleep)

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve は枠が空いていれば1つ消費してtrueを返し、空いていなければ次のリセットまでの時間を返します。
func (rl *RateLimiter) reserve() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count < rl.limit {
		rl.count++
		return 0, true
	}
	return rl.interval - now.Sub(rl.lastReset), false
}
