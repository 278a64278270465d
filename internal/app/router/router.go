package router

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	judgmenthandler "aqariy_web/internal/feature/judgment/transport/handler"
	predictionhandler "aqariy_web/internal/feature/prediction/transport/handler"
	"aqariy_web/internal/platform/http/handler"
	jwtmw "aqariy_web/internal/platform/jwt"
)

// NewRouter はAPIルートを登録したgin.Engineを返します。
// staticDir に index.html があればフロントエンドとして配信します。
func NewRouter(health *handler.HealthHandler, prediction *predictionhandler.PredictionHandler,
	judgment *judgmenthandler.JudgmentHandler, staticDir string) *gin.Engine {
	r := gin.Default()

	// ブラウザのフォームから直接呼ばれるため全オリジンを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/api")
	{
		api.POST("/predict", prediction.Predict)
		api.GET("/metadata", prediction.Metadata)
		api.POST("/judge", judgment.Judge)
		api.POST("/judge/chart", judgment.JudgeChart)
		// 判定結果JSONを受け取って描画するだけ
		api.POST("/chart", judgment.Chart)
	}

	// 管理者用（JWT必須）
	admin := r.Group("/admin")
	admin.Use(jwtmw.AdminRequired())
	{
		admin.GET("/judgments", judgment.Recent)
		admin.GET("/judgments/export.xlsx", judgment.Export)
	}

	if staticDir != "" {
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			r.StaticFile("/", index)
			r.Static("/static", staticDir)
		}
	}

	return r
}
