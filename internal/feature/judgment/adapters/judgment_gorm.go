package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/judgment/usecase"
)

type judgmentGorm struct {
	db *gorm.DB
}

var _ usecase.HistoryRepository = (*judgmentGorm)(nil)

func NewJudgmentRepository(db *gorm.DB) *judgmentGorm {
	return &judgmentGorm{db: db}
}

type JudgmentModel struct {
	ID             string  `gorm:"primaryKey;size:36"`
	Key            string  `gorm:"size:32;not null;index"`
	City           string  `gorm:"size:64;not null;default:''"`
	ListedPrice    float64 `gorm:"not null"`
	PredictedPrice *float64
	RangeMin       *float64
	RangeMax       *float64
	CreatedAt      time.Time `gorm:"not null;index"`
}

func (JudgmentModel) TableName() string {
	return "judgments"
}

func toModel(e entity.Record) JudgmentModel {
	return JudgmentModel{
		ID:             e.ID,
		Key:            e.Key,
		City:           e.City,
		ListedPrice:    e.ListedPrice,
		PredictedPrice: e.PredictedPrice,
		RangeMin:       e.RangeMin,
		RangeMax:       e.RangeMax,
		CreatedAt:      e.CreatedAt,
	}
}

func toEntity(m JudgmentModel) entity.Record {
	return entity.Record{
		ID:             m.ID,
		Key:            m.Key,
		City:           m.City,
		ListedPrice:    m.ListedPrice,
		PredictedPrice: m.PredictedPrice,
		RangeMin:       m.RangeMin,
		RangeMax:       m.RangeMax,
		CreatedAt:      m.CreatedAt,
	}
}

// Save は履歴を1件保存します。IDが空の場合はUUIDを採番します。
func (r *judgmentGorm) Save(ctx context.Context, rec entity.Record) error {
	m := toModel(rec)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *judgmentGorm) Recent(ctx context.Context, limit int) ([]entity.Record, error) {
	var rows []JudgmentModel
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// PurgeBefore は t より前に作成された履歴を削除し、削除件数を返します。
func (r *judgmentGorm) PurgeBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", t).Delete(&JudgmentModel{})
	return res.RowsAffected, res.Error
}
