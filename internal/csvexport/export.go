package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
)

// Заголовок выгрузки, как в оригинальном отчёте дружины
var header = []string{"住所(ID)", "点検日", "異常有無"}

const dateLayout = "2006/01/02"

// WriteChecklist выгружает осмотренные объекты в CSV: адрес (или id, если
// адрес не определён), дата осмотра и результат. Строки сортируются по
// адресу, чтобы выгрузка была воспроизводимой.
func WriteChecklist(w io.Writer, assets []*models.Asset) error {
	rows := make([]*models.Asset, 0, len(assets))
	for _, asset := range assets {
		if asset.Checked {
			rows = append(rows, asset)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return label(rows[i]) < label(rows[j])
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, asset := range rows {
		issue := asset.Issue
		if issue == "" {
			issue = models.AnomalyNone
		}
		record := []string{
			label(asset),
			asset.ObservedAt.Format(dateLayout),
			string(issue),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func label(asset *models.Asset) string {
	if asset.Address != "" {
		return asset.Address
	}
	return asset.ID
}
