package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/hydrant_inspection_system/internal/config"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service/mocks"
	"github.com/shenikar/hydrant_inspection_system/internal/webhook"
	webhook_mocks "github.com/shenikar/hydrant_inspection_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)

// newTestInspectionService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestInspectionService(t *testing.T) (*inspectionService, *mocks.MockAssetRepository, *mocks.MockChecklistRepository, *mocks.MockGeocoder, *webhook_mocks.MockAnomalyPublisher) {
	ctrl := gomock.NewController(t)
	assetMock := mocks.NewMockAssetRepository(ctrl)
	checklistMock := mocks.NewMockChecklistRepository(ctrl)
	geocoderMock := mocks.NewMockGeocoder(ctrl)
	publisherMock := webhook_mocks.NewMockAnomalyPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		VisibilityDebounce: 10 * time.Millisecond,
	}

	svc := NewInspectionService(assetMock, checklistMock, geocoderMock, publisherMock, logger, cfg)
	s := svc.(*inspectionService)
	s.now = func() time.Time { return fixedNow }
	return s, assetMock, checklistMock, geocoderMock, publisherMock
}

// openTestSession открывает сессию с заданным каталогом и чек-листом
func openTestSession(t *testing.T, s *inspectionService, assetMock *mocks.MockAssetRepository, checklistMock *mocks.MockChecklistRepository, assets []*models.Asset, record models.ChecklistRecord) *SessionSnapshot {
	ctx := context.Background()
	assetMock.EXPECT().ListAssets(ctx).Return(assets, nil).Times(1)
	checklistMock.EXPECT().GetChecklist(ctx, testTeam).Return(record, nil).Times(1)

	snapshot, err := s.OpenSession(ctx, testTeam)
	require.NoError(t, err)
	return snapshot
}

func TestOpenSession_Success(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	assets := []*models.Asset{
		{ID: "a", Kind: models.AssetKindHydrant},
		{ID: "b", Kind: models.AssetKindWaterTank},
	}
	record := models.ChecklistRecord{
		"a": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow},
	}

	snapshot := openTestSession(t, s, assetMock, checklistMock, assets, record)

	assert.Equal(t, models.ModeInspect, snapshot.Mode)
	assert.Equal(t, 1, snapshot.TotalEverChecked)
	require.Len(t, snapshot.Assets, 2)
	assert.True(t, snapshot.Assets[0].Checked)
	assert.False(t, snapshot.Assets[1].Checked)
}

func TestOpenSession_PersistenceUnavailable(t *testing.T) {
	s, assetMock, _, _, _ := newTestInspectionService(t)
	ctx := context.Background()

	assetMock.EXPECT().ListAssets(ctx).Return(nil, fmt.Errorf("connection refused")).Times(1)

	_, err := s.OpenSession(ctx, testTeam)
	assert.ErrorIs(t, err, models.ErrPersistenceUnavailable)
}

func TestSetMode_KeepsPendingMutation(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, []*models.Asset{{ID: "a"}}, models.ChecklistRecord{})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)
	require.Equal(t, ActionPromptInspect, prompt.Action)

	// Переключение режима не сбрасывает ожидающую мутацию
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeMove))
	_, err = s.CancelMutation(snapshot.ID, prompt.MutationID)
	assert.NoError(t, err)
}

func TestHandleMapEvent_InspectPrompt(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a", Kind: models.AssetKindHydrant}}, models.ChecklistRecord{})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)
	assert.Equal(t, ActionPromptInspect, prompt.Action)
	assert.NotEmpty(t, prompt.MutationID)
	assert.Equal(t, "点検結果を選択してください", prompt.Message)
	assert.Equal(t, []string{"未点検に戻す", "異常なし", "水没", "砂利・泥", "その他"}, prompt.Options)
}

func TestHandleMapEvent_RejectsSecondPrompt(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}, {ID: "b"}}, models.ChecklistRecord{})

	_, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)

	// Повторный клик при открытом диалоге отклоняется, а не ставится в очередь
	_, err = s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "b"})
	assert.ErrorIs(t, err, models.ErrConcurrentMutationRejected)
}

func TestHandleMapEvent_IgnoredByMode(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}}, models.ChecklistRecord{})

	// Клик по пустой карте в режиме осмотра - не действие
	prompt, err := s.HandleMapEvent(snapshot.ID, MapClicked{Latitude: 35.0, Longitude: 139.0})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, prompt.Action)
	assert.Empty(t, prompt.MutationID)
}

func TestConfirmMutation_CheckWithAnomalyPublishesEvent(t *testing.T) {
	s, assetMock, checklistMock, _, publisherMock := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a", Kind: models.AssetKindHydrant, Address: "佐野1-2-3"}}, models.ChecklistRecord{})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)

	expectedEntry := models.ChecklistEntry{Checked: true, Issue: models.AnomalySubmerged, LastUpdated: fixedNow}
	checklistMock.EXPECT().
		SetEntry(gomock.Any(), testTeam, "a", expectedEntry).
		Return(nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(gomock.Any(), webhook.AnomalyEvent{
			Team:       testTeam.String(),
			AssetID:    "a",
			Kind:       models.AssetKindHydrant,
			Address:    "佐野1-2-3",
			Issue:      models.AnomalySubmerged,
			ReportedAt: fixedNow,
		}).
		Return(nil).
		Times(1)

	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Choice: "水没"})
	require.NoError(t, err)
	require.NotNil(t, result.Asset)
	assert.True(t, result.Asset.Checked)
	assert.Equal(t, models.AnomalySubmerged, result.Asset.Issue)

	// Мутация завершена: следующий диалог снова разрешён
	_, err = s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	assert.NoError(t, err)
}

func TestConfirmMutation_CheckNoAnomalySkipsEvent(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}}, models.ChecklistRecord{})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)

	checklistMock.EXPECT().
		SetEntry(gomock.Any(), testTeam, "a", gomock.Any()).
		Return(nil).
		Times(1)
	// Publish не ожидается: аномалии нет

	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Choice: "異常なし"})
	require.NoError(t, err)
	assert.Equal(t, models.AnomalyNone, result.Asset.Issue)
	assert.Equal(t, 1, mustSnapshot(t, s, snapshot.ID).TotalEverChecked)
}

func TestConfirmMutation_CheckRollbackOnPersistenceFailure(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}}, models.ChecklistRecord{})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)

	checklistMock.EXPECT().
		SetEntry(gomock.Any(), testTeam, "a", gomock.Any()).
		Return(fmt.Errorf("write timeout")).
		Times(1)

	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Choice: "異常なし"})
	require.ErrorIs(t, err, models.ErrMutationFailed)

	// Локальное состояние откатилось: объект не осмотрен, счётчик прежний
	after := mustSnapshot(t, s, snapshot.ID)
	assert.False(t, after.Assets[0].Checked)
	assert.Equal(t, 0, after.TotalEverChecked)
}

func TestConfirmMutation_CheckRollbackKeepsResetAssetInCounter(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	// Объект с явным false уже входит в аудиторский счётчик
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}}, models.ChecklistRecord{"a": {Checked: false}})
	require.Equal(t, 1, snapshot.TotalEverChecked)

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)

	checklistMock.EXPECT().
		SetEntry(gomock.Any(), testTeam, "a", gomock.Any()).
		Return(fmt.Errorf("write timeout")).
		Times(1)

	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Choice: "異常なし"})
	require.ErrorIs(t, err, models.ErrMutationFailed)

	// Откат не выбрасывает из счётчика поле, которое было в документе
	assert.Equal(t, 1, mustSnapshot(t, s, snapshot.ID).TotalEverChecked)
}

func TestConfirmMutation_UncheckWritesExplicitFalse(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}},
		models.ChecklistRecord{"a": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow}})

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)
	assert.Equal(t, "未点検に戻しますか？", prompt.Message)

	// Сброс - явный false, а не удаление поля
	checklistMock.EXPECT().
		SetEntry(gomock.Any(), testTeam, "a", models.ChecklistEntry{Checked: false}).
		Return(nil).
		Times(1)

	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Choice: "未点検に戻す"})
	require.NoError(t, err)
	assert.False(t, result.Asset.Checked)

	// Счётчик "всего когда-либо осмотрено" не уменьшается
	assert.Equal(t, 1, mustSnapshot(t, s, snapshot.ID).TotalEverChecked)
}

func TestConfirmMutation_MoveAndRollback(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0}}, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeMove))

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerDragEnded{AssetID: "a", NewLatitude: 35.1, NewLongitude: 139.1})
	require.NoError(t, err)
	assert.Equal(t, "ここに移動しますか？", prompt.Message)

	assetMock.EXPECT().
		UpdateAssetPosition(gomock.Any(), "a", 35.1, 139.1).
		Return(fmt.Errorf("write timeout")).
		Times(1)

	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{})
	require.ErrorIs(t, err, models.ErrMutationFailed)

	// Координаты вернулись к исходным
	after := mustSnapshot(t, s, snapshot.ID)
	assert.Equal(t, 35.0, after.Assets[0].Latitude)
	assert.Equal(t, 139.0, after.Assets[0].Longitude)

	// Вторая попытка: запись удалась
	prompt, err = s.HandleMapEvent(snapshot.ID, MarkerDragEnded{AssetID: "a", NewLatitude: 35.1, NewLongitude: 139.1})
	require.NoError(t, err)
	assetMock.EXPECT().
		UpdateAssetPosition(gomock.Any(), "a", 35.1, 139.1).
		Return(nil).
		Times(1)
	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{})
	require.NoError(t, err)
	assert.Equal(t, 35.1, result.Asset.Latitude)
}

func TestCancelMutation_MoveReturnsRevertPoint(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0}}, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeMove))

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerDragEnded{AssetID: "a", NewLatitude: 35.1, NewLongitude: 139.1})
	require.NoError(t, err)

	result, err := s.CancelMutation(snapshot.ID, prompt.MutationID)
	require.NoError(t, err)
	assert.True(t, result.Reverted)
	assert.Equal(t, 35.0, result.RevertLatitude)
	assert.Equal(t, 139.0, result.RevertLongitude)

	// Хранилище не трогали, каталог не изменился
	after := mustSnapshot(t, s, snapshot.ID)
	assert.Equal(t, 35.0, after.Assets[0].Latitude)

	// Отменённую мутацию нельзя подтвердить
	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{})
	assert.ErrorIs(t, err, models.ErrMutationNotFound)
}

func TestConfirmMutation_DeleteAndRollback(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a", Kind: models.AssetKindWaterTank}}, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeAddDelete))

	prompt, err := s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)
	assert.Equal(t, ActionPromptDelete, prompt.Action)
	assert.Equal(t, "この 防火水槽 を削除しますか？", prompt.Message)

	assetMock.EXPECT().
		DeleteAsset(gomock.Any(), "a").
		Return(fmt.Errorf("write timeout")).
		Times(1)

	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{})
	require.ErrorIs(t, err, models.ErrMutationFailed)

	// Объект вернулся после отката
	assert.Len(t, mustSnapshot(t, s, snapshot.ID).Assets, 1)

	prompt, err = s.HandleMapEvent(snapshot.ID, MarkerClicked{AssetID: "a"})
	require.NoError(t, err)
	assetMock.EXPECT().DeleteAsset(gomock.Any(), "a").Return(nil).Times(1)
	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{})
	require.NoError(t, err)
	assert.Empty(t, mustSnapshot(t, s, snapshot.ID).Assets)
}

func TestConfirmMutation_AddWithResolvedAddress(t *testing.T) {
	s, assetMock, checklistMock, geocoderMock, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, nil, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeAddDelete))

	prompt, err := s.HandleMapEvent(snapshot.ID, MapClicked{Latitude: 35.0, Longitude: 139.0})
	require.NoError(t, err)
	assert.Equal(t, "ここに消火栓または防火水槽を追加しますか？", prompt.Message)
	assert.Equal(t, []string{"消火栓", "防火水槽"}, prompt.Options)

	geocoderMock.EXPECT().
		ResolveAddress(gomock.Any(), 35.0, 139.0).
		Return("佐野1-2-3", nil).
		Times(1)
	assetMock.EXPECT().
		CreateAsset(gomock.Any(), gomock.Any()).
		Return("new-id", nil).
		Times(1)

	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Kind: models.AssetKindHydrant})
	require.NoError(t, err)
	assert.False(t, result.AddressRequired)
	assert.Equal(t, "new-id", result.Asset.ID)
	assert.Equal(t, "佐野1-2-3", result.Asset.Address)

	after := mustSnapshot(t, s, snapshot.ID)
	require.Len(t, after.Assets, 1)
	assert.Equal(t, "new-id", after.Assets[0].ID)
}

func TestConfirmMutation_AddFallsBackToManualAddress(t *testing.T) {
	s, assetMock, checklistMock, geocoderMock, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, nil, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeAddDelete))

	prompt, err := s.HandleMapEvent(snapshot.ID, MapClicked{Latitude: 35.0, Longitude: 139.0})
	require.NoError(t, err)

	geocoderMock.EXPECT().
		ResolveAddress(gomock.Any(), 35.0, 139.0).
		Return("", models.ErrAddressResolutionFailed).
		Times(1)

	// Геокодер не справился: добавление не завершается молча без адреса
	result, err := s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Kind: models.AssetKindHydrant})
	require.NoError(t, err)
	assert.True(t, result.AddressRequired)
	assert.Empty(t, mustSnapshot(t, s, snapshot.ID).Assets)

	// Повторное подтверждение с ручным адресом
	assetMock.EXPECT().
		CreateAsset(gomock.Any(), gomock.Any()).
		Return("new-id", nil).
		Times(1)
	result, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Kind: models.AssetKindHydrant, Address: "手入力の住所"})
	require.NoError(t, err)
	assert.False(t, result.AddressRequired)
	assert.Equal(t, "手入力の住所", result.Asset.Address)
}

func TestConfirmMutation_AddRollbackOnPersistenceFailure(t *testing.T) {
	s, assetMock, checklistMock, geocoderMock, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, nil, models.ChecklistRecord{})
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeAddDelete))

	prompt, err := s.HandleMapEvent(snapshot.ID, MapClicked{Latitude: 35.0, Longitude: 139.0})
	require.NoError(t, err)

	geocoderMock.EXPECT().ResolveAddress(gomock.Any(), 35.0, 139.0).Return("佐野1-2-3", nil).Times(1)
	assetMock.EXPECT().
		CreateAsset(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("write timeout")).
		Times(1)

	_, err = s.ConfirmMutation(context.Background(), snapshot.ID, prompt.MutationID, ConfirmInput{Kind: models.AssetKindWaterTank})
	require.ErrorIs(t, err, models.ErrMutationFailed)

	// Заглушка убрана из каталога
	assert.Empty(t, mustSnapshot(t, s, snapshot.ID).Assets)
}

func TestResetChecklist(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	record := models.ChecklistRecord{
		"a": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow},
		"b": {Checked: true, Issue: models.AnomalyOther, LastUpdated: fixedNow},
	}
	snapshot := openTestSession(t, s, assetMock, checklistMock,
		[]*models.Asset{{ID: "a"}, {ID: "b"}, {ID: "c"}}, record)

	// Вне режима осмотра сброс запрещён
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeMove))
	_, err := s.ResetChecklist(context.Background(), snapshot.ID)
	require.ErrorIs(t, err, models.ErrInvalidModeOperation)
	require.NoError(t, s.SetMode(snapshot.ID, models.ModeInspect))

	// Одна пакетная запись с явными false для всех осмотренных
	checklistMock.EXPECT().
		SetEntries(gomock.Any(), testTeam, models.ChecklistRecord{
			"a": {Checked: false},
			"b": {Checked: false},
		}).
		Return(nil).
		Times(1)

	count, err := s.ResetChecklist(context.Background(), snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	after := mustSnapshot(t, s, snapshot.ID)
	for _, asset := range after.Assets {
		assert.False(t, asset.Checked)
	}
	assert.Equal(t, 2, after.TotalEverChecked)

	// Повторный сброс: сбрасывать больше нечего
	_, err = s.ResetChecklist(context.Background(), snapshot.ID)
	assert.ErrorIs(t, err, models.ErrInvalidModeOperation)
}

func TestVisibleAssets_FiltersByViewport(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, []*models.Asset{
		{ID: "near", Latitude: 35.72883, Longitude: 139.31623},
		{ID: "far", Latitude: 35.80000, Longitude: 139.31623},
	}, models.ChecklistRecord{})

	// Без заявленной видимой области возвращается весь каталог
	visible, err := s.VisibleAssets(snapshot.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	require.NoError(t, s.UpdateViewport(snapshot.ID, models.Viewport{Latitude: 35.72883, Longitude: 139.31623, Zoom: 19}))
	require.Eventually(t, func() bool {
		visible, err = s.VisibleAssets(snapshot.ID)
		return err == nil && len(visible) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "near", visible[0].ID)
}

func TestChecklistView_SplitsAndFilters(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	record := models.ChecklistRecord{
		"a": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow},
		"b": {Checked: true, Issue: models.AnomalySubmerged, LastUpdated: fixedNow},
	}
	snapshot := openTestSession(t, s, assetMock, checklistMock, []*models.Asset{
		{ID: "a", Address: "佐野1-2-3"},
		{ID: "b", Address: "引田4-5"},
		{ID: "c", Address: "佐野9-9"},
	}, record)

	view, err := s.ChecklistView(snapshot.ID, "")
	require.NoError(t, err)
	assert.Len(t, view.Checked, 2)
	assert.Len(t, view.Abnormal, 1)
	assert.Len(t, view.Normal, 1)
	assert.Equal(t, 2, view.TotalEverChecked)

	// Фильтр по подстроке адреса
	view, err = s.ChecklistView(snapshot.ID, "佐野")
	require.NoError(t, err)
	require.Len(t, view.Checked, 1)
	assert.Equal(t, "a", view.Checked[0].ID)
}

func TestCloseSession(t *testing.T) {
	s, assetMock, checklistMock, _, _ := newTestInspectionService(t)
	snapshot := openTestSession(t, s, assetMock, checklistMock, nil, models.ChecklistRecord{})

	require.NoError(t, s.CloseSession(snapshot.ID))
	assert.ErrorIs(t, s.CloseSession(snapshot.ID), models.ErrSessionNotFound)
	_, err := s.SessionAssets(snapshot.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func mustSnapshot(t *testing.T, s *inspectionService, id string) *SessionSnapshot {
	t.Helper()
	snapshot, err := s.SessionAssets(id)
	require.NoError(t, err)
	return snapshot
}
