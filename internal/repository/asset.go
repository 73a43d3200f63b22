package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service"
)

type AssetRepository struct {
	db *pgxpool.Pool
}

func NewAssetRepository(db *pgxpool.Pool) service.AssetRepository {
	return &AssetRepository{db: db}
}

// ListAssets возвращает весь каталог гидрантов без статусов осмотра.
// Статус осмотра живёт в чек-листе команды, не в каталоге.
func (r *AssetRepository) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	query := `
		SELECT id, kind, lat, lon, address, created_at, updated_at
		FROM assets
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*models.Asset, 0)
	for rows.Next() {
		asset := &models.Asset{}
		err := rows.Scan(
			&asset.ID,
			&asset.Kind,
			&asset.Latitude,
			&asset.Longitude,
			&asset.Address,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error asset list iteration: %w", err)
	}
	return assets, nil
}

// CreateAsset создает документ гидранта и возвращает присвоенный базой id
func (r *AssetRepository) CreateAsset(ctx context.Context, asset *models.Asset) (string, error) {
	query := `
		INSERT INTO assets (kind, lat, lon, address)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at;
	`
	var id string
	err := r.db.QueryRow(ctx, query,
		asset.Kind,
		asset.Latitude,
		asset.Longitude,
		asset.Address,
	).Scan(&id, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to create asset: %w", err)
	}
	return id, nil
}

// UpdateAssetPosition переписывает координаты гидранта (мутация "перенос")
func (r *AssetRepository) UpdateAssetPosition(ctx context.Context, id string, lat, lon float64) error {
	query := `
		UPDATE assets SET
			lat = $1,
			lon = $2,
			updated_at = NOW()
		WHERE id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, lat, lon, id)
	if err != nil {
		return fmt.Errorf("failed to update asset position: %w", err)
	}

	// Если RowsAffected() == 0, значит гидранта с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset with id %s not found for move", id)
	}
	return nil
}

// DeleteAsset удаляет документ гидранта из каталога
func (r *AssetRepository) DeleteAsset(ctx context.Context, id string) error {
	query := `DELETE FROM assets WHERE id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset with id %s not found for delete", id)
	}
	return nil
}

// GetAsset возвращает один гидрант по id
func (r *AssetRepository) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	asset := &models.Asset{}
	query := `
		SELECT id, kind, lat, lon, address, created_at, updated_at
		FROM assets
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Kind,
		&asset.Latitude,
		&asset.Longitude,
		&asset.Address,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("asset with id %s: %w", id, models.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("failed to get asset by id: %w", err)
	}
	return asset, nil
}
