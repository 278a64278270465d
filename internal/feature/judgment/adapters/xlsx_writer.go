package adapters

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/judgment/usecase"
)

const historySheet = "Judgments"

var historyHeader = []any{"ID", "Created at (UTC)", "Judgment", "City", "Listed price", "Predicted price", "Range min", "Range max"}

// XLSXWriter は判定履歴をExcelブックとして書き出します。
type XLSXWriter struct{}

var _ usecase.RecordWriter = XLSXWriter{}

func (XLSXWriter) Write(w io.Writer, recs []entity.Record) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return err
	}

	for i, rec := range recs {
		row := []any{
			rec.ID,
			rec.CreatedAt.UTC().Format(time.DateTime),
			rec.Key,
			rec.City,
			rec.ListedPrice,
			optional(rec.PredictedPrice),
			optional(rec.RangeMin),
			optional(rec.RangeMax),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
