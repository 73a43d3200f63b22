package models

import (
	"time"
)

// AssetKind - тип гидранта: пожарный гидрант или пожарный резервуар
type AssetKind string

const (
	AssetKindHydrant   AssetKind = "hydrant"
	AssetKindWaterTank AssetKind = "water_tank"
)

// Valid проверяет, что тип гидранта известен
func (k AssetKind) Valid() bool {
	return k == AssetKindHydrant || k == AssetKindWaterTank
}

// Label возвращает японское название типа для диалогов и CSV
func (k AssetKind) Label() string {
	if k == AssetKindWaterTank {
		return "防火水槽"
	}
	return "消火栓"
}

// AnomalyKind - результат осмотра. Значения совпадают с тем, что хранится
// в чек-листе (японские метки из оригинального приложения).
type AnomalyKind string

const (
	AnomalyNone      AnomalyKind = "異常なし"
	AnomalySubmerged AnomalyKind = "水没"
	AnomalyDebris    AnomalyKind = "砂利・泥"
	AnomalyOther     AnomalyKind = "その他"
)

// Valid проверяет, что вид аномалии известен
func (a AnomalyKind) Valid() bool {
	switch a {
	case AnomalyNone, AnomalySubmerged, AnomalyDebris, AnomalyOther:
		return true
	}
	return false
}

// Asset - гидрант или резервуар из общего каталога, объединённый со статусом
// осмотра команды. Checked/Issue/ObservedAt осмысленны только в контексте
// одной команды: тот же объект может быть осмотрен командой А и нет - командой Б.
type Asset struct {
	ID         string      `json:"id"`
	Kind       AssetKind   `json:"kind"`
	Latitude   float64     `json:"latitude"`
	Longitude  float64     `json:"longitude"`
	Address    string      `json:"address"`
	Checked    bool        `json:"checked"`
	Issue      AnomalyKind `json:"issue,omitempty"`
	ObservedAt time.Time   `json:"observed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at,omitempty"`
}

// HasAnomaly сообщает, осмотрен ли объект с зафиксированной аномалией
func (a *Asset) HasAnomaly() bool {
	return a.Checked && a.Issue != "" && a.Issue != AnomalyNone
}

// Viewport - видимая область карты: центр и уровень зума
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// InteractionMode - активный режим работы с картой. Переключается только
// явным действием пользователя, автоматических переходов нет.
type InteractionMode string

const (
	ModeInspect   InteractionMode = "inspect"
	ModeMove      InteractionMode = "move"
	ModeAddDelete InteractionMode = "add_delete"
)

// Valid проверяет, что режим известен
func (m InteractionMode) Valid() bool {
	return m == ModeInspect || m == ModeMove || m == ModeAddDelete
}

// Label возвращает японское название режима (точно как в UI оригинала)
func (m InteractionMode) Label() string {
	switch m {
	case ModeMove:
		return "移動"
	case ModeAddDelete:
		return "追加削除"
	default:
		return "点検"
	}
}
