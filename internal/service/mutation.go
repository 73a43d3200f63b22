package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// MutationKind - вид ожидающей мутации
type MutationKind string

const (
	MutationInspect MutationKind = "inspect"
	MutationMove    MutationKind = "move"
	MutationDelete  MutationKind = "delete"
	MutationAdd     MutationKind = "add"
)

// Пункт диалога осмотра "вернуть в не осмотрено"
const choiceUncheck = "未点検に戻す"

// inspectChoices - пункты диалога осмотра, точно как в оригинальном UI
var inspectChoices = []string{
	choiceUncheck,
	string(models.AnomalyNone),
	string(models.AnomalySubmerged),
	string(models.AnomalyDebris),
	string(models.AnomalyOther),
}

// PendingMutation - зафиксированное намерение, ожидающее OK/Отмена.
// Ручка, которую UI привязывает к кнопкам диалога.
type PendingMutation struct {
	ID      string
	Kind    MutationKind
	AssetID string

	// Осмотр
	WasChecked bool

	// Перенос и добавление: целевая точка
	NewLatitude  float64
	NewLongitude float64

	// Перенос: исходная точка для визуального отката при отмене
	OrigLatitude  float64
	OrigLongitude float64

	// Добавление: геокодер не справился, ждём ручной ввод адреса
	AwaitingAddress bool
}

// Prompt - описание диалога подтверждения для UI
type Prompt struct {
	MutationID string
	Action     ActionKind
	Message    string
	Options    []string
}

// ConfirmInput - выбор пользователя в диалоге подтверждения
type ConfirmInput struct {
	Choice  string           // осмотр: выбранный пункт диалога
	Kind    models.AssetKind // добавление: тип объекта
	Address string           // добавление: ручной адрес при сбое геокодера
}

// MutationResult - исход подтверждения
type MutationResult struct {
	// Добавление не завершено: геокодер не дал адреса, нужен ручной ввод
	AddressRequired bool
	Asset           *models.Asset
}

// CancelResult - исход отмены; для переноса содержит точку, куда маркер
// должен визуально вернуться
type CancelResult struct {
	AssetID        string
	Reverted       bool
	RevertLatitude float64
	RevertLongitude float64
}

// HandleMapEvent интерпретирует событие карты в свете активного режима.
// Если по таблице переходов событию положен диалог, фиксируется намерение;
// вторая попытка при открытом диалоге отклоняется, а не ставится в очередь.
func (s *inspectionService) HandleMapEvent(id string, event MapEvent) (*Prompt, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	action := DispatchEvent(session.mode, event)
	if action == ActionNone {
		return &Prompt{Action: ActionNone}, nil
	}

	if session.pending != nil || session.processing {
		return nil, fmt.Errorf("service: %w", models.ErrConcurrentMutationRejected)
	}

	prompt := &Prompt{Action: action}
	pending := &PendingMutation{ID: uuid.NewString()}

	switch ev := event.(type) {
	case MarkerClicked:
		asset, ok := session.catalog.Get(ev.AssetID)
		if !ok {
			return nil, fmt.Errorf("service: %w", models.ErrAssetNotFound)
		}
		pending.AssetID = asset.ID
		if action == ActionPromptDelete {
			pending.Kind = MutationDelete
			prompt.Message = fmt.Sprintf("この %s を削除しますか？", asset.Kind.Label())
		} else {
			pending.Kind = MutationInspect
			pending.WasChecked = asset.Checked
			if asset.Checked {
				prompt.Message = "未点検に戻しますか？"
			} else {
				prompt.Message = "点検結果を選択してください"
			}
			prompt.Options = append([]string(nil), inspectChoices...)
		}
	case MarkerDragEnded:
		asset, ok := session.catalog.Get(ev.AssetID)
		if !ok {
			return nil, fmt.Errorf("service: %w", models.ErrAssetNotFound)
		}
		pending.Kind = MutationMove
		pending.AssetID = asset.ID
		pending.NewLatitude = ev.NewLatitude
		pending.NewLongitude = ev.NewLongitude
		pending.OrigLatitude = asset.Latitude
		pending.OrigLongitude = asset.Longitude
		prompt.Message = "ここに移動しますか？"
	case MapClicked:
		pending.Kind = MutationAdd
		pending.NewLatitude = ev.Latitude
		pending.NewLongitude = ev.Longitude
		prompt.Message = "ここに消火栓または防火水槽を追加しますか？"
		prompt.Options = []string{models.AssetKindHydrant.Label(), models.AssetKindWaterTank.Label()}
	}

	session.pending = pending
	prompt.MutationID = pending.ID
	return prompt, nil
}

// ConfirmMutation применяет локальную мутацию оптимистично и выполняет
// запись в хранилище. При сбое записи локальное состояние откатывается и
// возвращается ErrMutationFailed.
func (s *inspectionService) ConfirmMutation(ctx context.Context, id, mutationID string, input ConfirmInput) (*MutationResult, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	pending := session.pending
	if pending == nil || pending.ID != mutationID {
		return nil, fmt.Errorf("service: %w", models.ErrMutationNotFound)
	}

	session.processing = true
	defer func() { session.processing = false }()

	log := s.logger.WithFields(logrus.Fields{
		"service":     "inspection",
		"method":      "ConfirmMutation",
		"session_id":  id,
		"mutation_id": mutationID,
		"kind":        pending.Kind,
	})

	var result *MutationResult
	switch pending.Kind {
	case MutationInspect:
		result, err = s.confirmInspect(ctx, session, pending, input, log)
	case MutationMove:
		result, err = s.confirmMove(ctx, session, pending, log)
	case MutationDelete:
		result, err = s.confirmDelete(ctx, session, pending, log)
	case MutationAdd:
		result, err = s.confirmAdd(ctx, session, pending, input, log)
	default:
		err = fmt.Errorf("service: unknown mutation kind %q", pending.Kind)
	}
	if err != nil {
		session.pending = nil
		return nil, err
	}
	if result.AddressRequired {
		// Намерение остаётся в силе: ждём повторного подтверждения с адресом
		return result, nil
	}

	session.pending = nil
	session.refreshVisibleLocked()
	return result, nil
}

func (s *inspectionService) confirmInspect(ctx context.Context, session *Session, pending *PendingMutation, input ConfirmInput, log *logrus.Entry) (*MutationResult, error) {
	asset, ok := session.catalog.Get(pending.AssetID)
	if !ok {
		return nil, fmt.Errorf("service: %w", models.ErrAssetNotFound)
	}
	prev := *asset
	prevTouched := session.catalog.wasTouched(asset.ID)

	if input.Choice == choiceUncheck {
		if err := session.catalog.ApplyUncheck(asset.ID); err != nil {
			return nil, err
		}
		// Явный false, а не удаление поля: сброшенные объекты остаются
		// различимыми для счётчика "всего когда-либо осмотрено"
		err := s.checklists.SetEntry(ctx, session.team, asset.ID, models.ChecklistEntry{Checked: false})
		if err != nil {
			*asset = prev
			log.WithError(err).Error("Failed to persist uncheck, local state rolled back")
			return nil, fmt.Errorf("service: could not persist uncheck: %w", models.ErrMutationFailed)
		}
		log.Info("Asset reset to unchecked")
		copied := *asset
		return &MutationResult{Asset: &copied}, nil
	}

	anomaly := models.AnomalyKind(input.Choice)
	if !anomaly.Valid() {
		return nil, fmt.Errorf("service: unknown inspection choice %q", input.Choice)
	}

	observedAt := s.now()
	if err := session.catalog.ApplyCheck(asset.ID, anomaly, observedAt); err != nil {
		return nil, err
	}

	entry := models.ChecklistEntry{Checked: true, Issue: anomaly, LastUpdated: observedAt}
	if err := s.checklists.SetEntry(ctx, session.team, asset.ID, entry); err != nil {
		*asset = prev
		if !prevTouched {
			session.catalog.forgetTouched(asset.ID)
		}
		log.WithError(err).Error("Failed to persist check, local state rolled back")
		return nil, fmt.Errorf("service: could not persist check: %w", models.ErrMutationFailed)
	}

	log.WithField("issue", anomaly).Info("Asset checked")

	if asset.HasAnomaly() && s.publisher != nil {
		event := webhook.AnomalyEvent{
			Team:       session.team.String(),
			AssetID:    asset.ID,
			Kind:       asset.Kind,
			Address:    asset.Address,
			Issue:      anomaly,
			ReportedAt: observedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			// Доставка события не относится к мутации, ошибку только логируем
			log.WithError(err).Error("Failed to publish anomaly event")
		}
	}

	copied := *asset
	return &MutationResult{Asset: &copied}, nil
}

func (s *inspectionService) confirmMove(ctx context.Context, session *Session, pending *PendingMutation, log *logrus.Entry) (*MutationResult, error) {
	asset, ok := session.catalog.Get(pending.AssetID)
	if !ok {
		return nil, fmt.Errorf("service: %w", models.ErrAssetNotFound)
	}

	if err := session.catalog.ApplyMove(asset.ID, pending.NewLatitude, pending.NewLongitude); err != nil {
		return nil, err
	}
	if err := s.assets.UpdateAssetPosition(ctx, asset.ID, pending.NewLatitude, pending.NewLongitude); err != nil {
		_ = session.catalog.ApplyMove(asset.ID, pending.OrigLatitude, pending.OrigLongitude)
		log.WithError(err).Error("Failed to persist move, local state rolled back")
		return nil, fmt.Errorf("service: could not persist move: %w", models.ErrMutationFailed)
	}

	log.WithField("asset_id", asset.ID).Info("Asset moved")
	copied := *asset
	return &MutationResult{Asset: &copied}, nil
}

func (s *inspectionService) confirmDelete(ctx context.Context, session *Session, pending *PendingMutation, log *logrus.Entry) (*MutationResult, error) {
	removed, err := session.catalog.ApplyDelete(pending.AssetID)
	if err != nil {
		return nil, err
	}
	if err := s.assets.DeleteAsset(ctx, pending.AssetID); err != nil {
		session.catalog.Restore(removed)
		log.WithError(err).Error("Failed to persist delete, local state rolled back")
		return nil, fmt.Errorf("service: could not persist delete: %w", models.ErrMutationFailed)
	}

	log.WithField("asset_id", pending.AssetID).Info("Asset deleted")
	copied := *removed
	return &MutationResult{Asset: &copied}, nil
}

func (s *inspectionService) confirmAdd(ctx context.Context, session *Session, pending *PendingMutation, input ConfirmInput, log *logrus.Entry) (*MutationResult, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("service: unknown asset kind %q", input.Kind)
	}

	address := input.Address
	if address == "" {
		resolved, err := s.geocoder.ResolveAddress(ctx, pending.NewLatitude, pending.NewLongitude)
		if err != nil {
			// Добавление никогда не завершается молча без адреса:
			// переходим к ручному вводу
			pending.AwaitingAddress = true
			log.WithError(err).Warn("Address resolution failed, falling back to manual entry")
			return &MutationResult{AddressRequired: true}, nil
		}
		address = resolved
	}

	placeholder := session.catalog.ApplyAdd(input.Kind, pending.NewLatitude, pending.NewLongitude, address)
	realID, err := s.assets.CreateAsset(ctx, &models.Asset{
		Kind:      input.Kind,
		Latitude:  pending.NewLatitude,
		Longitude: pending.NewLongitude,
		Address:   address,
	})
	if err != nil {
		_, _ = session.catalog.ApplyDelete(placeholder.ID)
		log.WithError(err).Error("Failed to persist add, local state rolled back")
		return nil, fmt.Errorf("service: could not persist add: %w", models.ErrMutationFailed)
	}
	if err := session.catalog.ReconcileID(placeholder.ID, realID); err != nil {
		return nil, err
	}

	log.WithField("asset_id", realID).WithField("address", address).Info("Asset added")
	copied := *placeholder
	return &MutationResult{Asset: &copied}, nil
}

// CancelMutation сбрасывает намерение. Запись в хранилище к этому моменту
// не выдавалась, поэтому откатывать нечего; для переноса возвращается
// исходная точка, куда маркер должен визуально вернуться.
func (s *inspectionService) CancelMutation(id, mutationID string) (*CancelResult, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	pending := session.pending
	if pending == nil || pending.ID != mutationID {
		return nil, fmt.Errorf("service: %w", models.ErrMutationNotFound)
	}
	session.pending = nil

	result := &CancelResult{AssetID: pending.AssetID}
	if pending.Kind == MutationMove {
		result.Reverted = true
		result.RevertLatitude = pending.OrigLatitude
		result.RevertLongitude = pending.OrigLongitude
	}

	s.logger.WithField("session_id", id).
		WithField("mutation_id", mutationID).
		WithField("kind", pending.Kind).
		Info("Pending mutation cancelled")
	return result, nil
}

// ResetChecklist возвращает всё осмотренное командой в "не осмотрено".
// Разрешён только в режиме осмотра и только когда есть что сбрасывать.
func (s *inspectionService) ResetChecklist(ctx context.Context, id string) (int, error) {
	session, err := s.session(id)
	if err != nil {
		return 0, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	log := s.logger.WithFields(logrus.Fields{
		"service":    "inspection",
		"method":     "ResetChecklist",
		"session_id": id,
	})

	if session.mode != models.ModeInspect {
		log.Warn("Reset attempted outside inspect mode")
		return 0, fmt.Errorf("service: reset is only allowed in inspect mode: %w", models.ErrInvalidModeOperation)
	}
	if session.pending != nil || session.processing {
		return 0, fmt.Errorf("service: %w", models.ErrConcurrentMutationRejected)
	}

	checked := session.catalog.CheckedAssets()
	if len(checked) == 0 {
		log.Warn("Reset attempted with empty checklist")
		return 0, fmt.Errorf("service: nothing to reset: %w", models.ErrInvalidModeOperation)
	}

	// Одна запись со слиянием полей, как setDoc(..., merge: true)
	entries := models.ChecklistRecord{}
	for _, asset := range checked {
		entries[asset.ID] = models.ChecklistEntry{Checked: false}
	}
	if err := s.checklists.SetEntries(ctx, session.team, entries); err != nil {
		log.WithError(err).Error("Failed to persist checklist reset")
		return 0, fmt.Errorf("service: could not persist reset: %w", models.ErrMutationFailed)
	}

	for _, asset := range checked {
		_ = session.catalog.ApplyUncheck(asset.ID)
	}
	session.refreshVisibleLocked()

	log.WithField("reset_count", len(checked)).Info("Checklist reset to unchecked")
	return len(checked), nil
}
