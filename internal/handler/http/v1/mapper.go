package v1

import (
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service"
)

// Варианты иконок маркеров: осмотренный объект показывается одной общей
// иконкой независимо от типа
const iconChecked = "checked"

func iconVariant(asset *models.Asset) string {
	if asset.Checked {
		return iconChecked
	}
	return string(asset.Kind)
}

// ModelToAssetResponse преобразует доменную модель объекта в DTO для ответа
func ModelToAssetResponse(asset *models.Asset) *AssetResponse {
	resp := &AssetResponse{
		ID:        asset.ID,
		Kind:      string(asset.Kind),
		KindLabel: asset.Kind.Label(),
		Latitude:  asset.Latitude,
		Longitude: asset.Longitude,
		Address:   asset.Address,
		Checked:   asset.Checked,
		Issue:     string(asset.Issue),
		Icon:      iconVariant(asset),
	}
	if !asset.ObservedAt.IsZero() {
		observedAt := asset.ObservedAt
		resp.ObservedAt = &observedAt
	}
	return resp
}

// ModelsToAssetResponses преобразует слайс моделей в слайс DTO
func ModelsToAssetResponses(assets []*models.Asset) []*AssetResponse {
	responses := make([]*AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = ModelToAssetResponse(asset)
	}
	return responses
}

// SnapshotToSessionResponse преобразует срез сессии в DTO для ответа
func SnapshotToSessionResponse(snapshot *service.SessionSnapshot) *SessionResponse {
	return &SessionResponse{
		ID:               snapshot.ID,
		Team:             snapshot.Team.String(),
		Mode:             string(snapshot.Mode),
		TotalEverChecked: snapshot.TotalEverChecked,
		Assets:           ModelsToAssetResponses(snapshot.Assets),
	}
}

// DTOToMapEvent преобразует DTO события карты в доменное событие
func DTOToMapEvent(dto MapEventRequest) service.MapEvent {
	switch dto.Type {
	case "marker_click":
		return service.MarkerClicked{AssetID: dto.AssetID}
	case "marker_drag_end":
		return service.MarkerDragEnded{
			AssetID:      dto.AssetID,
			NewLatitude:  dto.Latitude,
			NewLongitude: dto.Longitude,
		}
	case "map_click":
		return service.MapClicked{Latitude: dto.Latitude, Longitude: dto.Longitude}
	}
	return nil
}

// PromptToResponse преобразует диалог подтверждения в DTO для ответа
func PromptToResponse(prompt *service.Prompt) *PromptResponse {
	return &PromptResponse{
		MutationID: prompt.MutationID,
		Action:     string(prompt.Action),
		Message:    prompt.Message,
		Options:    prompt.Options,
	}
}

// ResultToMutationResponse преобразует исход подтверждения в DTO для ответа
func ResultToMutationResponse(result *service.MutationResult) *MutationResponse {
	resp := &MutationResponse{AddressRequired: result.AddressRequired}
	if result.Asset != nil {
		resp.Asset = ModelToAssetResponse(result.Asset)
	}
	return resp
}

// ResultToCancelResponse преобразует исход отмены в DTO для ответа
func ResultToCancelResponse(result *service.CancelResult) *CancelResponse {
	return &CancelResponse{
		AssetID:         result.AssetID,
		Reverted:        result.Reverted,
		RevertLatitude:  result.RevertLatitude,
		RevertLongitude: result.RevertLongitude,
	}
}

// ViewToChecklistResponse преобразует панель осмотренного в DTO для ответа
func ViewToChecklistResponse(view *service.ChecklistView) *ChecklistResponse {
	return &ChecklistResponse{
		Checked:          ModelsToAssetResponses(view.Checked),
		Abnormal:         ModelsToAssetResponses(view.Abnormal),
		Normal:           ModelsToAssetResponses(view.Normal),
		TotalEverChecked: view.TotalEverChecked,
	}
}

// StatsToResponse преобразует сводку по команде в DTO для ответа
func StatsToResponse(stats *service.TeamStats) *TeamStatsResponse {
	return &TeamStatsResponse{
		Team:             stats.Team.String(),
		TotalAssets:      stats.TotalAssets,
		Checked:          stats.Checked,
		Abnormal:         stats.Abnormal,
		TotalEverChecked: stats.TotalEverChecked,
	}
}

// DTOToUserModel преобразует DTO создания/обновления в доменную модель.
// Используем одну функцию, так как поля совпадают.
func DTOToUserModel(dto any) *models.User {
	switch v := dto.(type) {
	case CreateUserRequest:
		return &models.User{
			Name:     v.Name,
			Division: v.Division,
			Section:  v.Section,
			Role:     v.Role,
		}
	case UpdateUserRequest:
		return &models.User{
			Name:     v.Name,
			Division: v.Division,
			Section:  v.Section,
			Role:     v.Role,
		}
	}
	return nil
}

// ModelToUserResponse преобразует доменную модель в DTO для ответа
func ModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Division:  user.Division,
		Section:   user.Section,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
