// Package config はサーバーとCLIの設定を環境変数・.env・YAMLから読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"aqariy_web/internal/feature/judgment/usecase"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/platform/db"
	"aqariy_web/internal/platform/externalapi/predictor"
	"aqariy_web/internal/platform/redis"
	"aqariy_web/internal/platform/scheduler"
)

const (
	defaultPort             = "8080"
	defaultCacheTTL         = 10 * time.Minute
	defaultHistoryRetention = 720 * time.Hour
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Port    string
	GinMode string

	Predictor predictor.Config
	Redis     redis.Config
	CacheTTL  time.Duration
	DB        db.Config

	JWTSecret string

	ThemeFile    string
	FontFile     string
	BoldFontFile string
	StaticDir    string

	HistoryRetention time.Duration
	PurgeCron        string
}

// LoadDotEnv は .env があれば読み込みます。既に設定済みの環境変数は上書きしません。
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// Load は環境変数から設定を読み込み、未設定の項目に既定値を入れます。
func Load() Config {
	cfg := Config{
		Port:             os.Getenv("PORT"),
		GinMode:          os.Getenv("GIN_MODE"),
		Predictor:        predictor.LoadConfig(),
		Redis:            redis.LoadConfig(),
		CacheTTL:         durationEnv("CACHE_TTL", defaultCacheTTL),
		DB:               db.LoadConfigFromEnv(),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		ThemeFile:        os.Getenv("CHART_THEME_FILE"),
		FontFile:         os.Getenv("CHART_FONT_FILE"),
		BoldFontFile:     os.Getenv("CHART_BOLD_FONT_FILE"),
		StaticDir:        os.Getenv("STATIC_DIR"),
		HistoryRetention: durationEnv("HISTORY_RETENTION", defaultHistoryRetention),
		PurgeCron:        os.Getenv("HISTORY_PURGE_CRON"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.PurgeCron == "" {
		cfg.PurgeCron = scheduler.DefaultPurgeSpec
	}
	return cfg
}

// Addr は gin の Run に渡すリッスンアドレスです。
func (c Config) Addr() string {
	return ":" + c.Port
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration; using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// themeFile はテーマプリセットYAMLの構造です。
//
//	themes:
//	  dark:
//	    border: "#495057"
//	    background: "#212529"
//	    secondary_text: "#adb5bd"
type themeFile struct {
	Themes map[string]struct {
		Border        string `yaml:"border"`
		Background    string `yaml:"background"`
		SecondaryText string `yaml:"secondary_text"`
	} `yaml:"themes"`
}

// LoadThemes は組み込みテーマにYAMLファイルのプリセットを重ねて返します。
// path が空、またはファイルが存在しない場合は組み込みテーマのみを返します。
// 既存の名前を持つプリセットは未指定の色を組み込みテーマから引き継ぎます。
func LoadThemes(path string) (map[string]pricechart.Theme, error) {
	themes := usecase.DefaultThemes()
	if path == "" {
		return themes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("theme file not found; using built-in themes", "path", path)
			return themes, nil
		}
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse theme file: %w", err)
	}

	for name, t := range f.Themes {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		base, ok := themes[key]
		if !ok {
			base = pricechart.LightTheme
		}
		th, err := pricechart.ThemeFromHex(t.Border, t.Background, t.SecondaryText, base)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		themes[key] = th
	}
	return themes, nil
}
