// Package db はgormによるデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	judgmentadapters "aqariy_web/internal/feature/judgment/adapters"
)

const (
	// DefaultSQLitePath はDATABASE_URL未設定時に使うSQLiteファイルです。
	DefaultSQLitePath = "aqariy.db"
	connectTimeout    = 60 * time.Second
	retryInterval     = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	URL           string // postgres DSN（postgres:// または key=value 形式）
	SQLitePath    string // URLが空の場合に使うSQLiteファイル
	RunMigrations bool
}

// Opener はDSNからgorm.DBを開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		URL:           os.Getenv("DATABASE_URL"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = DefaultSQLitePath
	}
	return cfg
}

// IsPostgres はpostgresに接続する設定かどうかを返します。
func (c Config) IsPostgres() bool {
	return strings.TrimSpace(c.URL) != ""
}

// BuildDSN は接続に使うDSNを返します。
func BuildDSN(cfg Config) string {
	if cfg.IsPostgres() {
		return strings.TrimSpace(cfg.URL)
	}
	path := cfg.SQLitePath
	if path == "" {
		path = DefaultSQLitePath
	}
	// SQLiteは同時書き込みでロックされやすいため待機時間を設定する
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
}

// OpenerFor は設定に応じたドライバのOpenerを返します。
func OpenerFor(cfg Config) Opener {
	if cfg.IsPostgres() {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// ConnectWithRetry は接続に成功するかtimeoutを過ぎるまで接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従って接続し、必要ならマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, OpenerFor(cfg))
	if err != nil {
		return nil, err
	}

	// SQLiteはファイル作成直後にテーブルが必要なので常にマイグレーションする
	if cfg.RunMigrations || !cfg.IsPostgres() {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&judgmentadapters.JudgmentModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
