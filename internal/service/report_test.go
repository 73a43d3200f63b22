package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReportService(t *testing.T) (ReportService, *mocks.MockAssetRepository, *mocks.MockChecklistRepository, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	assetMock := mocks.NewMockAssetRepository(ctrl)
	checklistMock := mocks.NewMockChecklistRepository(ctrl)
	userMock := mocks.NewMockUserRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewReportService(assetMock, checklistMock, userMock, logger), assetMock, checklistMock, userMock
}

func TestExportChecklistCSV_Success(t *testing.T) {
	s, assetMock, checklistMock, userMock := newTestReportService(t)
	ctx := context.Background()

	userMock.EXPECT().
		GetByID(ctx, "u1").
		Return(&models.User{ID: "u1", Division: "2分団", Section: "3部", Role: models.RoleMember}, nil).
		Times(1)
	assetMock.EXPECT().
		ListAssets(ctx).
		Return([]*models.Asset{
			{ID: "a", Address: "佐野1-2-3"},
			{ID: "b", Address: "引田4-5"},
		}, nil).
		Times(1)
	checklistMock.EXPECT().
		GetChecklist(ctx, testTeam).
		Return(models.ChecklistRecord{
			"a": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow},
		}, nil).
		Times(1)

	var buf bytes.Buffer
	require.NoError(t, s.ExportChecklistCSV(ctx, "u1", testTeam, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // заголовок + один осмотренный
	assert.Contains(t, lines[1], "佐野1-2-3")
	assert.Contains(t, lines[1], "異常なし")
}

func TestExportChecklistCSV_ForbiddenByRole(t *testing.T) {
	s, _, _, userMock := newTestReportService(t)
	ctx := context.Background()

	// Рядовой из другой команды не вправе выгружать чужой чек-лист
	userMock.EXPECT().
		GetByID(ctx, "u1").
		Return(&models.User{ID: "u1", Division: "1分団", Section: "1部", Role: models.RoleMember}, nil).
		Times(1)

	var buf bytes.Buffer
	err := s.ExportChecklistCSV(ctx, "u1", testTeam, &buf)
	assert.ErrorIs(t, err, models.ErrExportForbidden)
	assert.Zero(t, buf.Len())
}

func TestExportChecklistCSV_BrigadeChiefExportsAnyTeam(t *testing.T) {
	s, assetMock, checklistMock, userMock := newTestReportService(t)
	ctx := context.Background()

	userMock.EXPECT().
		GetByID(ctx, "chief").
		Return(&models.User{ID: "chief", Division: "1分団", Section: "1部", Role: models.RoleBrigadeChief}, nil).
		Times(1)
	assetMock.EXPECT().ListAssets(ctx).Return(nil, nil).Times(1)
	checklistMock.EXPECT().GetChecklist(ctx, testTeam).Return(models.ChecklistRecord{}, nil).Times(1)

	var buf bytes.Buffer
	assert.NoError(t, s.ExportChecklistCSV(ctx, "chief", testTeam, &buf))
}

func TestTeamStats(t *testing.T) {
	s, assetMock, checklistMock, _ := newTestReportService(t)
	ctx := context.Background()

	assetMock.EXPECT().
		ListAssets(ctx).
		Return([]*models.Asset{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil).
		Times(1)
	checklistMock.EXPECT().
		GetChecklist(ctx, testTeam).
		Return(models.ChecklistRecord{
			"a": {Checked: true, Issue: models.AnomalySubmerged, LastUpdated: fixedNow},
			"b": {Checked: true, Issue: models.AnomalyNone, LastUpdated: fixedNow},
			"c": {Checked: false}, // сброшенный учитывается только в аудиторском счётчике
		}, nil).
		Times(1)

	stats, err := s.TeamStats(ctx, testTeam)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAssets)
	assert.Equal(t, 2, stats.Checked)
	assert.Equal(t, 1, stats.Abnormal)
	assert.Equal(t, 3, stats.TotalEverChecked)
}
