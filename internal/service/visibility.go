package service

import (
	"math"
	"sync"
	"time"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
)

const earthRadiusMeters = 6371000.0

// RadiusForZoom возвращает радиус видимости в метрах для уровня зума.
// Таблица ступенчатая: чем мельче зум, тем больше радиус.
func RadiusForZoom(zoom int) float64 {
	switch {
	case zoom >= 19:
		return 300
	case zoom >= 17:
		return 600
	case zoom >= 15:
		return 1000
	case zoom >= 13:
		return 2000
	default:
		return 3000
	}
}

// Haversine возвращает расстояние по большому кругу между двумя точками в метрах
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ComputeVisible возвращает объекты, расстояние от которых до центра видимой
// области не превышает RadiusForZoom. Чистая функция от своих аргументов.
func ComputeVisible(viewport models.Viewport, assets []*models.Asset) []*models.Asset {
	radius := RadiusForZoom(viewport.Zoom)
	// Грубая отсечка по рамке, прежде чем считать гаверсинус
	degLimit := radius/earthRadiusMeters*180/math.Pi + 0.001

	visible := make([]*models.Asset, 0)
	for _, asset := range assets {
		if math.Abs(asset.Latitude-viewport.Latitude) > degLimit {
			continue
		}
		if Haversine(viewport.Latitude, viewport.Longitude, asset.Latitude, asset.Longitude) <= radius {
			visible = append(visible, asset)
		}
	}
	return visible
}

// VisibilityDebouncer откладывает пересчёт видимого набора, пока видимая
// область не устоится: во время панорамирования события приходят пачками.
// Если новый набор поэлементно совпадает со старым, пересчёт считается
// холостым и потребителю не сообщается.
type VisibilityDebouncer struct {
	mu       sync.Mutex
	window   time.Duration
	timer    *time.Timer
	viewport models.Viewport
	assets   []*models.Asset
	last     []*models.Asset
	hasLast  bool
	onChange func([]*models.Asset)
}

// NewVisibilityDebouncer создает дебаунсер с окном покоя window.
// onChange может быть nil, тогда результат доступен только через Visible().
func NewVisibilityDebouncer(window time.Duration, onChange func([]*models.Asset)) *VisibilityDebouncer {
	return &VisibilityDebouncer{
		window:   window,
		onChange: onChange,
	}
}

// ViewportChanged принимает очередное изменение видимой области и
// перезапускает окно покоя
func (d *VisibilityDebouncer) ViewportChanged(viewport models.Viewport, assets []*models.Asset) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport = viewport
	d.assets = assets

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush немедленно пересчитывает набор, не дожидаясь окна покоя
func (d *VisibilityDebouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Visible возвращает последний вычисленный набор
func (d *VisibilityDebouncer) Visible() []*models.Asset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Stop останавливает отложенный пересчёт
func (d *VisibilityDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *VisibilityDebouncer) fire() {
	d.mu.Lock()
	computed := ComputeVisible(d.viewport, d.assets)
	if d.hasLast && sameAssetSet(d.last, computed) {
		// Набор не изменился, держим прежний результат и не дёргаем потребителя
		d.mu.Unlock()
		return
	}
	d.last = computed
	d.hasLast = true
	callback := d.onChange
	d.mu.Unlock()

	if callback != nil {
		callback(computed)
	}
}

// sameAssetSet сравнивает наборы поэлементно: id, координаты и статус осмотра
func sameAssetSet(a, b []*models.Asset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Latitude != b[i].Latitude ||
			a[i].Longitude != b[i].Longitude ||
			a[i].Checked != b[i].Checked ||
			a[i].Issue != b[i].Issue {
			return false
		}
	}
	return true
}
