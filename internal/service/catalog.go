package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
)

// AssetRepository определяет контракт для работы с каталогом гидрантов
type AssetRepository interface {
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	CreateAsset(ctx context.Context, asset *models.Asset) (string, error)
	UpdateAssetPosition(ctx context.Context, id string, lat, lon float64) error
	DeleteAsset(ctx context.Context, id string) error
}

// ChecklistRepository определяет контракт для работы с документами чек-листов
type ChecklistRepository interface {
	GetChecklist(ctx context.Context, team models.TeamKey) (models.ChecklistRecord, error)
	SetEntry(ctx context.Context, team models.TeamKey, assetID string, entry models.ChecklistEntry) error
	SetEntries(ctx context.Context, team models.TeamKey, entries models.ChecklistRecord) error
}

// placeholderPrefix помечает локальные id добавленных, но ещё не записанных
// объектов. После ответа хранилища id заменяется на настоящий - вызывающие
// не должны кешировать id через эту границу.
const placeholderPrefix = "pending-"

// Catalog - каталог гидрантов сессии, объединённый с чек-листом команды.
// Владеет списком единолично; мутации приходят только из цикла сессии.
type Catalog struct {
	team   models.TeamKey
	assets []*models.Asset
	byID   map[string]*models.Asset

	// Поля, когда-либо существовавшие в документе чек-листа, включая
	// явно сброшенные в false. Повторный осмотр того же объекта
	// счётчик не увеличивает.
	touched map[string]struct{}
}

// NewCatalog объединяет каталог с чек-листом команды: отсутствующее поле -
// "не осмотрен", устаревшее true - "осмотрен без аномалий", объект -
// пополевое соответствие.
func NewCatalog(team models.TeamKey, assets []*models.Asset, record models.ChecklistRecord) *Catalog {
	c := &Catalog{
		team:    team,
		assets:  make([]*models.Asset, 0, len(assets)),
		byID:    make(map[string]*models.Asset, len(assets)),
		touched: make(map[string]struct{}, len(record)),
	}
	for id := range record {
		c.touched[id] = struct{}{}
	}
	for _, src := range assets {
		asset := *src
		if entry, ok := record[asset.ID]; ok && entry.Checked {
			asset.Checked = true
			asset.Issue = entry.Issue
			if asset.Issue == "" {
				asset.Issue = models.AnomalyNone
			}
			asset.ObservedAt = entry.LastUpdated
		}
		c.insert(&asset)
	}
	return c
}

func (c *Catalog) insert(asset *models.Asset) {
	c.assets = append(c.assets, asset)
	c.byID[asset.ID] = asset
}

// Team возвращает команду, в контексте которой собран каталог
func (c *Catalog) Team() models.TeamKey {
	return c.team
}

// Assets возвращает срез-копию списка (сами объекты общие)
func (c *Catalog) Assets() []*models.Asset {
	out := make([]*models.Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Get возвращает объект по id
func (c *Catalog) Get(id string) (*models.Asset, bool) {
	asset, ok := c.byID[id]
	return asset, ok
}

// CheckedAssets возвращает осмотренные объекты
func (c *Catalog) CheckedAssets() []*models.Asset {
	out := make([]*models.Asset, 0)
	for _, asset := range c.assets {
		if asset.Checked {
			out = append(out, asset)
		}
	}
	return out
}

// EverTouched возвращает аудиторский счётчик "всего когда-либо осмотрено" -
// число полей в документе чек-листа команды
func (c *Catalog) EverTouched() int {
	return len(c.touched)
}

// wasTouched сообщает, есть ли у объекта поле в документе чек-листа
func (c *Catalog) wasTouched(id string) bool {
	_, ok := c.touched[id]
	return ok
}

// forgetTouched убирает объект из аудиторского множества (откат ApplyCheck)
func (c *Catalog) forgetTouched(id string) {
	delete(c.touched, id)
}

// ApplyCheck отмечает объект осмотренным с результатом anomaly
func (c *Catalog) ApplyCheck(id string, anomaly models.AnomalyKind, at time.Time) error {
	asset, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("apply check: %w", models.ErrAssetNotFound)
	}
	c.touched[id] = struct{}{}
	asset.Checked = true
	asset.Issue = anomaly
	asset.ObservedAt = at
	return nil
}

// ApplyUncheck явно сбрасывает объект в "не осмотрен"
func (c *Catalog) ApplyUncheck(id string) error {
	asset, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("apply uncheck: %w", models.ErrAssetNotFound)
	}
	asset.Checked = false
	asset.Issue = ""
	asset.ObservedAt = time.Time{}
	return nil
}

// ApplyMove переписывает координаты объекта
func (c *Catalog) ApplyMove(id string, lat, lon float64) error {
	asset, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("apply move: %w", models.ErrAssetNotFound)
	}
	asset.Latitude = lat
	asset.Longitude = lon
	return nil
}

// ApplyDelete убирает объект из каталога и возвращает его для возможного отката
func (c *Catalog) ApplyDelete(id string) (*models.Asset, error) {
	asset, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("apply delete: %w", models.ErrAssetNotFound)
	}
	delete(c.byID, id)
	for i, a := range c.assets {
		if a.ID == id {
			c.assets = append(c.assets[:i], c.assets[i+1:]...)
			break
		}
	}
	return asset, nil
}

// Restore возвращает ранее удалённый объект в каталог (откат ApplyDelete)
func (c *Catalog) Restore(asset *models.Asset) {
	if asset == nil {
		return
	}
	if _, exists := c.byID[asset.ID]; exists {
		return
	}
	c.insert(asset)
}

// ApplyAdd синтезирует новый объект с локальным id-заглушкой.
// Настоящий id подставляется через ReconcileID после ответа хранилища.
func (c *Catalog) ApplyAdd(kind models.AssetKind, lat, lon float64, address string) *models.Asset {
	asset := &models.Asset{
		ID:        placeholderPrefix + uuid.NewString(),
		Kind:      kind,
		Latitude:  lat,
		Longitude: lon,
		Address:   address,
	}
	c.insert(asset)
	return asset
}

// ReconcileID заменяет id-заглушку на настоящий id, присвоенный хранилищем
func (c *Catalog) ReconcileID(placeholderID, realID string) error {
	asset, ok := c.byID[placeholderID]
	if !ok {
		return fmt.Errorf("reconcile id: %w", models.ErrAssetNotFound)
	}
	delete(c.byID, placeholderID)
	asset.ID = realID
	c.byID[realID] = asset
	return nil
}
