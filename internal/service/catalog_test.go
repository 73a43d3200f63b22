package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTeam = models.TeamKey{Division: "2分団", Section: "3部"}

func TestNewCatalog_MergesChecklist(t *testing.T) {
	observed := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	assets := []*models.Asset{
		{ID: "a", Kind: models.AssetKindHydrant},
		{ID: "b", Kind: models.AssetKindWaterTank},
		{ID: "c", Kind: models.AssetKindHydrant},
		{ID: "d", Kind: models.AssetKindHydrant},
	}
	record := models.ChecklistRecord{
		"a": {Checked: true, Issue: models.AnomalySubmerged, LastUpdated: observed},
		"b": {Checked: true}, // устаревшая запись без issue
		"c": {Checked: false}, // трогали, но сбросили
	}

	catalog := NewCatalog(testTeam, assets, record)

	a, ok := catalog.Get("a")
	require.True(t, ok)
	assert.True(t, a.Checked)
	assert.Equal(t, models.AnomalySubmerged, a.Issue)
	assert.Equal(t, observed, a.ObservedAt)

	b, _ := catalog.Get("b")
	assert.True(t, b.Checked)
	assert.Equal(t, models.AnomalyNone, b.Issue)

	// Явный false и отсутствие поля дают одинаковый вид на карте
	c, _ := catalog.Get("c")
	assert.False(t, c.Checked)
	d, _ := catalog.Get("d")
	assert.False(t, d.Checked)

	// Но сброшенный объект всё ещё входит в аудиторский счётчик
	assert.Equal(t, 3, catalog.EverTouched())
	assert.Len(t, catalog.CheckedAssets(), 2)
}

func TestCatalog_ApplyCheckAndUncheck(t *testing.T) {
	catalog := NewCatalog(testTeam, []*models.Asset{{ID: "a"}}, models.ChecklistRecord{})
	observed := time.Now()

	require.NoError(t, catalog.ApplyCheck("a", models.AnomalyDebris, observed))
	a, _ := catalog.Get("a")
	assert.True(t, a.Checked)
	assert.Equal(t, models.AnomalyDebris, a.Issue)
	assert.Equal(t, 1, catalog.EverTouched())

	// Повторный осмотр не наращивает счётчик
	require.NoError(t, catalog.ApplyCheck("a", models.AnomalyNone, observed))
	assert.Equal(t, 1, catalog.EverTouched())

	// Сброс очищает статус, но не счётчик
	require.NoError(t, catalog.ApplyUncheck("a"))
	assert.False(t, a.Checked)
	assert.Equal(t, 1, catalog.EverTouched())
}

func TestCatalog_CheckOfResetAssetKeepsCounter(t *testing.T) {
	// Объект с явным false уже входит в счётчик - его повторный осмотр
	// не должен считаться вторым полем документа
	record := models.ChecklistRecord{"a": {Checked: false}}
	catalog := NewCatalog(testTeam, []*models.Asset{{ID: "a"}}, record)
	require.Equal(t, 1, catalog.EverTouched())

	require.NoError(t, catalog.ApplyCheck("a", models.AnomalyNone, time.Now()))
	assert.Equal(t, 1, catalog.EverTouched())
}

func TestCatalog_CheckUncheckCheckKeepsCounter(t *testing.T) {
	catalog := NewCatalog(testTeam, []*models.Asset{{ID: "a"}}, models.ChecklistRecord{})
	observed := time.Now()

	require.NoError(t, catalog.ApplyCheck("a", models.AnomalyNone, observed))
	require.NoError(t, catalog.ApplyUncheck("a"))
	require.NoError(t, catalog.ApplyCheck("a", models.AnomalyOther, observed))

	// В документе по-прежнему одно поле "a"
	assert.Equal(t, 1, catalog.EverTouched())
}

func TestCatalog_ApplyDeleteAndRestore(t *testing.T) {
	catalog := NewCatalog(testTeam, []*models.Asset{{ID: "a"}, {ID: "b"}}, models.ChecklistRecord{})

	removed, err := catalog.ApplyDelete("a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)
	_, ok := catalog.Get("a")
	assert.False(t, ok)
	assert.Len(t, catalog.Assets(), 1)

	// Откат возвращает объект в каталог
	catalog.Restore(removed)
	_, ok = catalog.Get("a")
	assert.True(t, ok)
	assert.Len(t, catalog.Assets(), 2)

	_, err = catalog.ApplyDelete("missing")
	assert.ErrorIs(t, err, models.ErrAssetNotFound)
}

func TestCatalog_ApplyAddAndReconcile(t *testing.T) {
	catalog := NewCatalog(testTeam, nil, models.ChecklistRecord{})

	placeholder := catalog.ApplyAdd(models.AssetKindWaterTank, 35.0, 139.0, "佐野1-2-3")
	require.True(t, strings.HasPrefix(placeholder.ID, placeholderPrefix))
	assert.Equal(t, models.AssetKindWaterTank, placeholder.Kind)

	require.NoError(t, catalog.ReconcileID(placeholder.ID, "real-id"))
	asset, ok := catalog.Get("real-id")
	require.True(t, ok)
	assert.Equal(t, "佐野1-2-3", asset.Address)
	assert.Equal(t, "real-id", placeholder.ID)
}

func TestCatalog_AssetsIsolatedFromSource(t *testing.T) {
	src := []*models.Asset{{ID: "a", Latitude: 1}}
	catalog := NewCatalog(testTeam, src, models.ChecklistRecord{})

	// Каталог копирует объекты при построении: мутация источника не видна
	src[0].Latitude = 99
	a, _ := catalog.Get("a")
	assert.Equal(t, 1.0, a.Latitude)
}
