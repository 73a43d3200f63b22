package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusForZoom(t *testing.T) {
	// Границы ступеней таблицы зумов
	assert.Equal(t, 300.0, RadiusForZoom(20))
	assert.Equal(t, 300.0, RadiusForZoom(19))
	assert.Equal(t, 600.0, RadiusForZoom(18))
	assert.Equal(t, 600.0, RadiusForZoom(17))
	assert.Equal(t, 1000.0, RadiusForZoom(16))
	assert.Equal(t, 1000.0, RadiusForZoom(15))
	assert.Equal(t, 2000.0, RadiusForZoom(14))
	assert.Equal(t, 2000.0, RadiusForZoom(13))
	assert.Equal(t, 3000.0, RadiusForZoom(12))
	assert.Equal(t, 3000.0, RadiusForZoom(5))
}

func TestHaversine(t *testing.T) {
	// Один градус широты - около 111.2 км
	d := Haversine(35.0, 139.0, 36.0, 139.0)
	assert.InDelta(t, 111200, d, 300)

	// Та же точка - нулевое расстояние
	assert.Equal(t, 0.0, Haversine(35.0, 139.0, 35.0, 139.0))
}

func TestComputeVisible(t *testing.T) {
	center := models.Viewport{Latitude: 35.72883, Longitude: 139.31623, Zoom: 19} // радиус 300 м
	assets := []*models.Asset{
		{ID: "near", Latitude: 35.72883, Longitude: 139.31623},
		{ID: "edge", Latitude: 35.73100, Longitude: 139.31623},  // ~241 м к северу
		{ID: "far", Latitude: 35.73900, Longitude: 139.31623},   // ~1.1 км
		{ID: "other", Latitude: 35.80000, Longitude: 139.31623}, // далеко за рамкой
	}

	visible := ComputeVisible(center, assets)
	require.Len(t, visible, 2)
	assert.Equal(t, "near", visible[0].ID)
	assert.Equal(t, "edge", visible[1].ID)

	// Тот же центр на мелком зуме захватывает больше
	center.Zoom = 13 // радиус 2000 м
	visible = ComputeVisible(center, assets)
	assert.Len(t, visible, 3)
}

func TestVisibilityDebouncer_CoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	d := NewVisibilityDebouncer(30*time.Millisecond, func([]*models.Asset) {
		fired.Add(1)
	})
	defer d.Stop()

	assets := []*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0}}

	// Пачка панорамирований: окно покоя перезапускается каждым событием
	for i := 0; i < 5; i++ {
		d.ViewportChanged(models.Viewport{Latitude: 35.0, Longitude: 139.0 + float64(i)*0.0001, Zoom: 19}, assets)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 10*time.Millisecond)

	// Ещё немного подождём: второго срабатывания быть не должно
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestVisibilityDebouncer_SkipsEqualSets(t *testing.T) {
	var fired atomic.Int32
	d := NewVisibilityDebouncer(10*time.Millisecond, func([]*models.Asset) {
		fired.Add(1)
	})
	defer d.Stop()

	assets := []*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0}}
	viewport := models.Viewport{Latitude: 35.0, Longitude: 139.0, Zoom: 19}

	d.ViewportChanged(viewport, assets)
	d.Flush()
	require.Equal(t, int32(1), fired.Load())

	// Микросдвиг внутри того же радиуса даёт поэлементно равный набор -
	// потребителя не дёргаем
	viewport.Longitude += 0.00001
	d.ViewportChanged(viewport, assets)
	d.Flush()
	assert.Equal(t, int32(1), fired.Load())
	assert.Len(t, d.Visible(), 1)
}

func TestVisibilityDebouncer_FiresOnStatusChange(t *testing.T) {
	var fired atomic.Int32
	d := NewVisibilityDebouncer(10*time.Millisecond, func([]*models.Asset) {
		fired.Add(1)
	})
	defer d.Stop()

	viewport := models.Viewport{Latitude: 35.0, Longitude: 139.0, Zoom: 19}
	d.ViewportChanged(viewport, []*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0}})
	d.Flush()
	require.Equal(t, int32(1), fired.Load())

	// Смена статуса осмотра при тех же координатах - значимое изменение
	d.ViewportChanged(viewport, []*models.Asset{{ID: "a", Latitude: 35.0, Longitude: 139.0, Checked: true, Issue: models.AnomalyNone}})
	d.Flush()
	assert.Equal(t, int32(2), fired.Load())
}
