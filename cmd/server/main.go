package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"aqariy_web/internal/app/config"
	"aqariy_web/internal/app/di"
	"aqariy_web/internal/app/router"
	judgmenthandler "aqariy_web/internal/feature/judgment/transport/handler"
	judgmentusecase "aqariy_web/internal/feature/judgment/usecase"
	predictionhandler "aqariy_web/internal/feature/prediction/transport/handler"
	predictionusecase "aqariy_web/internal/feature/prediction/usecase"
	"aqariy_web/internal/feature/pricechart"
	infradb "aqariy_web/internal/platform/db"
	"aqariy_web/internal/platform/http/handler"
	infraredis "aqariy_web/internal/platform/redis"
	"aqariy_web/internal/platform/scheduler"
	"aqariy_web/internal/shared/i18n"
)

func main() {
	// .envを読み込む
	config.LoadDotEnv()
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var checks []handler.Check

	// db（履歴保存用。接続できなければ履歴なしで起動）
	var db *gorm.DB
	if tmp, err := infradb.OpenDB(cfg.DB); err != nil {
		log.Println("[WARN] Database unavailable. Running without judgment history:", err)
	} else {
		db = tmp
		if sqlDB, err := db.DB(); err == nil {
			checks = append(checks, handler.Check{Name: "database", Ping: sqlDB.PingContext})
			defer func() {
				if err := sqlDB.Close(); err != nil {
					log.Println("[ERROR] Failed to close database:", err)
				}
			}()
		}
	}

	// Redis
	var rdb *redisv9.Client
	if !cfg.Redis.Enabled() {
		log.Println("[INFO] REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// チャート描画用のフォントとテーマ
	fonts, err := pricechart.LoadFonts(cfg.FontFile, cfg.BoldFontFile)
	if err != nil {
		log.Fatal(err)
	}
	if !fonts.Covers(i18n.T(i18n.AR, i18n.ChartTitle)) {
		log.Println("[WARN] Chart font has no Arabic glyphs. PNG charts with lang=ar will fail; set CHART_FONT_FILE.")
	}
	themes, err := config.LoadThemes(cfg.ThemeFile)
	if err != nil {
		log.Fatal(err)
	}

	// 予測APIクライアント（Redisキャッシュでラップ）
	predictor := di.NewPredictor(cfg.Predictor, rdb, cfg.CacheTTL)
	history, exporter := di.NewHistory(db)

	// Usecase
	predictionUC := predictionusecase.NewPredictionUsecase(predictor)
	judgmentUC := judgmentusecase.NewJudgmentUsecase(predictor, judgmentusecase.Options{
		History: history,
		Export:  exporter,
		Fonts:   fonts,
		Themes:  themes,
	})

	// Handler
	healthH := handler.NewHealthHandler(checks...)
	predictionH := predictionhandler.NewPredictionHandler(predictionUC)
	judgmentH := judgmenthandler.NewJudgmentHandler(judgmentUC)

	// 古い履歴の定期削除
	if history != nil {
		sched := scheduler.NewScheduler(ctx, judgmentUC, cfg.HistoryRetention)
		if err := sched.Register(cfg.PurgeCron); err != nil {
			log.Fatal(err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// ルータ生成
	r := router.NewRouter(healthH, predictionH, judgmentH, cfg.StaticDir)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Admin endpoints will reject all requests.")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("[INFO] Listening on", cfg.Addr(), "predictor:", cfg.Predictor.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] Server shutdown:", err)
	}
}
