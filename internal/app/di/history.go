package di

import (
	"gorm.io/gorm"

	"aqariy_web/internal/feature/judgment/adapters"
	"aqariy_web/internal/feature/judgment/usecase"
)

// NewHistory creates the judgment history store and its XLSX exporter.
// If db is nil, history is disabled and both return values are nil.
func NewHistory(db *gorm.DB) (usecase.HistoryRepository, usecase.RecordWriter) {
	if db == nil {
		return nil, nil
	}
	return adapters.NewJudgmentRepository(db), adapters.XLSXWriter{}
}
