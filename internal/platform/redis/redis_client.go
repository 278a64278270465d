// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config はRedis接続設定です。
type Config struct {
	Host     string
	Port     string
	Password string
}

// LoadConfig は環境変数からRedis接続設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	return cfg
}

// Enabled はRedisが設定されているかどうかを返します。
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// NewRedisClient は接続確認済みのクライアントを返します。
func NewRedisClient(cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
