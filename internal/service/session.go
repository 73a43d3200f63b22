package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/hydrant_inspection_system/internal/config"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Geocoder определяет контракт обратного геокодирования
type Geocoder interface {
	ResolveAddress(ctx context.Context, lat, lon float64) (string, error)
}

// InspectionService определяет контракт ядра осмотра: сессии, режимы,
// видимость и мутации каталога
type InspectionService interface {
	OpenSession(ctx context.Context, team models.TeamKey) (*SessionSnapshot, error)
	CloseSession(id string) error
	SessionAssets(id string) (*SessionSnapshot, error)
	SetMode(id string, mode models.InteractionMode) error
	UpdateViewport(id string, viewport models.Viewport) error
	VisibleAssets(id string) ([]*models.Asset, error)
	HandleMapEvent(id string, event MapEvent) (*Prompt, error)
	ConfirmMutation(ctx context.Context, id, mutationID string, input ConfirmInput) (*MutationResult, error)
	CancelMutation(id, mutationID string) (*CancelResult, error)
	ResetChecklist(ctx context.Context, id string) (int, error)
	ChecklistView(id, keyword string) (*ChecklistView, error)
}

// SessionSnapshot - срез состояния сессии для ответа API
type SessionSnapshot struct {
	ID               string
	Team             models.TeamKey
	Mode             models.InteractionMode
	Assets           []*models.Asset
	TotalEverChecked int
}

// ChecklistView - список осмотренного для панели сессии
type ChecklistView struct {
	Checked          []*models.Asset
	Abnormal         []*models.Asset
	Normal           []*models.Asset
	TotalEverChecked int
}

// Session - одна сессия осмотра: команда, каталог, режим и ожидающая мутация.
// Всё состояние сериализуется мьютексом - аналог однопоточного цикла
// взаимодействия в браузере.
type Session struct {
	mu sync.Mutex

	id      string
	team    models.TeamKey
	mode    models.InteractionMode
	catalog *Catalog

	viewport    models.Viewport
	hasViewport bool
	debouncer   *VisibilityDebouncer

	// Общий флаг "диалог открыт / идёт запись": не больше одной мутации
	// в полёте на сессию
	pending    *PendingMutation
	processing bool
}

type inspectionService struct {
	assets     AssetRepository
	checklists ChecklistRepository
	geocoder   Geocoder
	publisher  webhook.AnomalyPublisher
	logger     *logrus.Logger
	cfg        *config.Config

	mu       sync.RWMutex
	sessions map[string]*Session

	now func() time.Time
}

func NewInspectionService(
	assets AssetRepository,
	checklists ChecklistRepository,
	geocoder Geocoder,
	publisher webhook.AnomalyPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) InspectionService {
	return &inspectionService{
		assets:     assets,
		checklists: checklists,
		geocoder:   geocoder,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
		sessions:   make(map[string]*Session),
		now:        time.Now,
	}
}

// OpenSession загружает каталог и чек-лист команды, объединяет их и
// открывает сессию осмотра. Режим по умолчанию - осмотр.
func (s *inspectionService) OpenSession(ctx context.Context, team models.TeamKey) (*SessionSnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "inspection",
		"method":  "OpenSession",
		"team":    team.String(),
	})
	log.Info("Opening inspection session")

	if team.IsZero() {
		return nil, fmt.Errorf("service: team key is empty")
	}

	assets, err := s.assets.ListAssets(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load asset catalog")
		return nil, fmt.Errorf("service: could not load asset catalog: %w", models.ErrPersistenceUnavailable)
	}

	record, err := s.checklists.GetChecklist(ctx, team)
	if err != nil {
		log.WithError(err).Error("Failed to load team checklist")
		return nil, fmt.Errorf("service: could not load checklist: %w", models.ErrPersistenceUnavailable)
	}

	session := &Session{
		id:        uuid.NewString(),
		team:      team,
		mode:      models.ModeInspect,
		catalog:   NewCatalog(team, assets, record),
		debouncer: NewVisibilityDebouncer(s.cfg.VisibilityDebounce, nil),
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	log.WithField("session_id", session.id).
		WithField("assets", len(assets)).
		Info("Inspection session opened")

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// CloseSession закрывает сессию и останавливает её дебаунсер
func (s *inspectionService) CloseSession(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("service: %w", models.ErrSessionNotFound)
	}
	session.debouncer.Stop()
	s.logger.WithField("session_id", id).Info("Inspection session closed")
	return nil
}

func (s *inspectionService) session(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("service: %w", models.ErrSessionNotFound)
	}
	return session, nil
}

// SessionAssets возвращает объединённый список объектов сессии
func (s *inspectionService) SessionAssets(id string) (*SessionSnapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// SetMode переключает режим взаимодействия. Переключение не трогает
// ожидающую мутацию и никакого под-состояния не восстанавливает.
func (s *inspectionService) SetMode(id string, mode models.InteractionMode) error {
	if !mode.Valid() {
		return fmt.Errorf("service: unknown interaction mode %q", mode)
	}
	session, err := s.session(id)
	if err != nil {
		return err
	}
	session.mu.Lock()
	session.mode = mode
	session.mu.Unlock()

	s.logger.WithField("session_id", id).WithField("mode", mode).Info("Interaction mode switched")
	return nil
}

// UpdateViewport принимает изменение видимой области; пересчёт видимого
// набора откладывается дебаунсером до затишья
func (s *inspectionService) UpdateViewport(id string, viewport models.Viewport) error {
	session, err := s.session(id)
	if err != nil {
		return err
	}
	session.mu.Lock()
	session.viewport = viewport
	session.hasViewport = true
	// Дебаунсеру отдаём копии: его таймер читает объекты вне session.mu
	session.debouncer.ViewportChanged(viewport, session.snapshotAssetsLocked(session.catalog.Assets()))
	session.mu.Unlock()
	return nil
}

// VisibleAssets возвращает последний вычисленный видимый набор. Если
// видимая область ещё не сообщалась, возвращается весь каталог.
func (s *inspectionService) VisibleAssets(id string) ([]*models.Asset, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if !session.hasViewport {
		out := session.snapshotAssetsLocked(session.catalog.Assets())
		session.mu.Unlock()
		return out, nil
	}
	session.mu.Unlock()

	if session.debouncer.Visible() == nil {
		// Первый запрос до истечения окна покоя - считаем сразу
		session.debouncer.Flush()
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotAssetsLocked(session.debouncer.Visible()), nil
}

// ChecklistView возвращает список осмотренного с фильтром по адресу и
// разбиением на "с аномалиями" / "без аномалий"
func (s *inspectionService) ChecklistView(id, keyword string) (*ChecklistView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	view := &ChecklistView{
		Checked:          make([]*models.Asset, 0),
		Abnormal:         make([]*models.Asset, 0),
		Normal:           make([]*models.Asset, 0),
		TotalEverChecked: session.catalog.EverTouched(),
	}
	for _, asset := range session.catalog.CheckedAssets() {
		if keyword != "" && !strings.Contains(asset.Address, keyword) {
			continue
		}
		copied := *asset
		view.Checked = append(view.Checked, &copied)
		if copied.HasAnomaly() {
			view.Abnormal = append(view.Abnormal, &copied)
		} else {
			view.Normal = append(view.Normal, &copied)
		}
	}
	return view, nil
}

// snapshotLocked копирует состояние сессии; вызывается под session.mu
func (s *Session) snapshotLocked() *SessionSnapshot {
	return &SessionSnapshot{
		ID:               s.id,
		Team:             s.team,
		Mode:             s.mode,
		Assets:           s.snapshotAssetsLocked(s.catalog.Assets()),
		TotalEverChecked: s.catalog.EverTouched(),
	}
}

// snapshotAssetsLocked копирует объекты по значению, чтобы ответ API не
// гонялся с последующими мутациями каталога
func (s *Session) snapshotAssetsLocked(assets []*models.Asset) []*models.Asset {
	out := make([]*models.Asset, 0, len(assets))
	for _, asset := range assets {
		copied := *asset
		out = append(out, &copied)
	}
	return out
}

// refreshVisibleLocked запрашивает пересчёт видимого набора после мутации
// каталога; вызывается под session.mu
func (s *Session) refreshVisibleLocked() {
	if s.hasViewport {
		s.debouncer.ViewportChanged(s.viewport, s.snapshotAssetsLocked(s.catalog.Assets()))
	}
}
