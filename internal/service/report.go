package service

import (
	"context"
	"fmt"
	"io"

	"github.com/shenikar/hydrant_inspection_system/internal/csvexport"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/sirupsen/logrus"
)

// TeamStats - сводка хода осмотра по команде
type TeamStats struct {
	Team             models.TeamKey `json:"team"`
	TotalAssets      int            `json:"total_assets"`
	Checked          int            `json:"checked"`
	Abnormal         int            `json:"abnormal"`
	TotalEverChecked int            `json:"total_ever_checked"`
}

// ReportService определяет контракт отчётов: выгрузка чек-листов и сводки
type ReportService interface {
	ExportChecklistCSV(ctx context.Context, userID string, team models.TeamKey, w io.Writer) error
	TeamStats(ctx context.Context, team models.TeamKey) (*TeamStats, error)
}

type reportService struct {
	assets     AssetRepository
	checklists ChecklistRepository
	users      UserRepository
	logger     *logrus.Logger
}

// NewReportService создает новый сервис отчётов
func NewReportService(assets AssetRepository, checklists ChecklistRepository, users UserRepository, logger *logrus.Logger) ReportService {
	return &reportService{
		assets:     assets,
		checklists: checklists,
		users:      users,
		logger:     logger,
	}
}

// ExportChecklistCSV выгружает чек-лист команды в CSV. Область видимости
// зависит от роли запрашивающего: руководство дружины выгружает любую
// команду, руководство разряда - свой разряд, остальные - только свою команду.
func (s *reportService) ExportChecklistCSV(ctx context.Context, userID string, team models.TeamKey, w io.Writer) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ExportChecklistCSV",
		"user_id": userID,
		"team":    team.String(),
	})
	log.Info("Exporting team checklist")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load requesting user")
		return fmt.Errorf("service: could not load user: %w", err)
	}
	if !user.CanExport(team) {
		log.WithField("role", user.Role).Warn("Export denied by role scope")
		return fmt.Errorf("service: role %q: %w", user.Role, models.ErrExportForbidden)
	}

	merged, _, err := s.mergedAssets(ctx, team)
	if err != nil {
		return err
	}
	if err := csvexport.WriteChecklist(w, merged); err != nil {
		log.WithError(err).Error("Failed to write checklist csv")
		return fmt.Errorf("service: could not write csv: %w", err)
	}

	log.Info("Checklist exported successfully")
	return nil
}

// TeamStats возвращает сводку хода осмотра по команде
func (s *reportService) TeamStats(ctx context.Context, team models.TeamKey) (*TeamStats, error) {
	merged, record, err := s.mergedAssets(ctx, team)
	if err != nil {
		return nil, err
	}

	stats := &TeamStats{
		Team:             team,
		TotalAssets:      len(merged),
		TotalEverChecked: record.EverTouched(),
	}
	for _, asset := range merged {
		if !asset.Checked {
			continue
		}
		stats.Checked++
		if asset.HasAnomaly() {
			stats.Abnormal++
		}
	}
	return stats, nil
}

// mergedAssets загружает каталог и чек-лист команды и объединяет их так же,
// как это делает сессия осмотра
func (s *reportService) mergedAssets(ctx context.Context, team models.TeamKey) ([]*models.Asset, models.ChecklistRecord, error) {
	assets, err := s.assets.ListAssets(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load asset catalog")
		return nil, nil, fmt.Errorf("service: could not load asset catalog: %w", models.ErrPersistenceUnavailable)
	}
	record, err := s.checklists.GetChecklist(ctx, team)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load team checklist")
		return nil, nil, fmt.Errorf("service: could not load checklist: %w", models.ErrPersistenceUnavailable)
	}
	return NewCatalog(team, assets, record).Assets(), record, nil
}
