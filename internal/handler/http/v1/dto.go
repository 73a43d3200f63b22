package v1

import "time"

// OpenSessionRequest DTO для открытия сессии осмотра
// @Description DTO для открытия сессии осмотра
type OpenSessionRequest struct {
	Division string `json:"division" validate:"required,min=1,max=64"`
	Section  string `json:"section" validate:"required,min=1,max=64"`
}

// AssetResponse DTO для ответа с информацией об объекте каталога
// @Description DTO для ответа с информацией об объекте каталога
type AssetResponse struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	KindLabel  string     `json:"kind_label"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Address    string     `json:"address,omitempty"`
	Checked    bool       `json:"checked"`
	Issue      string     `json:"issue,omitempty"`
	ObservedAt *time.Time `json:"observed_at,omitempty"`
	Icon       string     `json:"icon"`
}

// SessionResponse DTO для ответа с состоянием сессии
// @Description DTO для ответа с состоянием сессии
type SessionResponse struct {
	ID               string           `json:"id"`
	Team             string           `json:"team"`
	Mode             string           `json:"mode"`
	TotalEverChecked int              `json:"total_ever_checked"`
	Assets           []*AssetResponse `json:"assets"`
}

// SetModeRequest DTO для переключения режима взаимодействия
// @Description DTO для переключения режима взаимодействия
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=inspect move add_delete"`
}

// ViewportRequest DTO для изменения видимой области карты
// @Description DTO для изменения видимой области карты
type ViewportRequest struct {
	// Нулевые координаты (экватор, нулевой меридиан) валидны,
	// поэтому required не используется - только диапазон
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Zoom      int     `json:"zoom" validate:"required,gte=1,lte=22"`
}

// MapEventRequest DTO для события карты
// @Description DTO для события карты
type MapEventRequest struct {
	Type      string  `json:"type" validate:"required,oneof=marker_click marker_drag_end map_click"`
	AssetID   string  `json:"asset_id,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// PromptResponse DTO для ответа с диалогом подтверждения
// @Description DTO для ответа с диалогом подтверждения
type PromptResponse struct {
	MutationID string   `json:"mutation_id,omitempty"`
	Action     string   `json:"action"`
	Message    string   `json:"message,omitempty"`
	Options    []string `json:"options,omitempty"`
}

// ConfirmMutationRequest DTO для подтверждения мутации
// @Description DTO для подтверждения мутации
type ConfirmMutationRequest struct {
	Choice  string `json:"choice,omitempty"`
	Kind    string `json:"kind,omitempty" validate:"omitempty,oneof=hydrant water_tank"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// MutationResponse DTO для ответа на подтверждение мутации
// @Description DTO для ответа на подтверждение мутации
type MutationResponse struct {
	AddressRequired bool           `json:"address_required"`
	Asset           *AssetResponse `json:"asset,omitempty"`
}

// CancelResponse DTO для ответа на отмену мутации
// @Description DTO для ответа на отмену мутации
type CancelResponse struct {
	AssetID         string  `json:"asset_id,omitempty"`
	Reverted        bool    `json:"reverted"`
	RevertLatitude  float64 `json:"revert_latitude,omitempty"`
	RevertLongitude float64 `json:"revert_longitude,omitempty"`
}

// ResetResponse DTO для ответа на сброс чек-листа
// @Description DTO для ответа на сброс чек-листа
type ResetResponse struct {
	ResetCount int `json:"reset_count"`
}

// ChecklistResponse DTO для панели осмотренных объектов
// @Description DTO для панели осмотренных объектов
type ChecklistResponse struct {
	Checked          []*AssetResponse `json:"checked"`
	Abnormal         []*AssetResponse `json:"abnormal"`
	Normal           []*AssetResponse `json:"normal"`
	TotalEverChecked int              `json:"total_ever_checked"`
}

// TeamStatsResponse DTO для сводки по команде
// @Description DTO для сводки по команде
type TeamStatsResponse struct {
	Team             string `json:"team"`
	TotalAssets      int    `json:"total_assets"`
	Checked          int    `json:"checked"`
	Abnormal         int    `json:"abnormal"`
	TotalEverChecked int    `json:"total_ever_checked"`
}

// CreateUserRequest DTO для создания учётной записи
// @Description DTO для создания учётной записи
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Division string `json:"division" validate:"required,min=1,max=64"`
	Section  string `json:"section" validate:"required,min=1,max=64"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserRequest DTO для обновления учётной записи
// @Description DTO для обновления учётной записи
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Division string `json:"division" validate:"required,min=1,max=64"`
	Section  string `json:"section" validate:"required,min=1,max=64"`
	Role     string `json:"role" validate:"required"`
}

// UserResponse DTO для ответа с учётной записью
// @Description DTO для ответа с учётной записью
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Division  string    `json:"division"`
	Section   string    `json:"section"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
