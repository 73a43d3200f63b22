package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service"
)

type ChecklistRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewChecklistRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.ChecklistRepository {
	return &ChecklistRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// GetChecklist возвращает документ чек-листа команды. Отсутствие документа -
// не ошибка: команда просто ещё ничего не осматривала.
func (r *ChecklistRepository) GetChecklist(ctx context.Context, team models.TeamKey) (models.ChecklistRecord, error) {
	if cached, err := r.getChecklistFromCache(ctx, team); err == nil && cached != nil {
		return cached, nil
	}

	var raw []byte
	query := `SELECT entries FROM checklists WHERE team_key = $1;`
	err := r.db.QueryRow(ctx, query, team.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ChecklistRecord{}, nil
		}
		return nil, fmt.Errorf("failed to get checklist for team %s: %w", team, err)
	}

	record := models.ChecklistRecord{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist for team %s: %w", team, err)
	}

	if err := r.setChecklistCache(ctx, team, record); err != nil {
		// Кеш не критичен, чтение уже удалось
		return record, nil
	}
	return record, nil
}

// SetEntry записывает одно поле документа чек-листа через jsonb-слияние.
// Каждая мутация трогает только поле своего assetId, поэтому параллельные
// сессии команды не затирают чужие записи целиком.
func (r *ChecklistRepository) SetEntry(ctx context.Context, team models.TeamKey, assetID string, entry models.ChecklistEntry) error {
	return r.SetEntries(ctx, team, models.ChecklistRecord{assetID: entry})
}

// SetEntries сливает пачку полей в документ чек-листа одной записью
// (аналог setDoc с merge: true)
func (r *ChecklistRepository) SetEntries(ctx context.Context, team models.TeamKey, entries models.ChecklistRecord) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist entries: %w", err)
	}

	query := `
		INSERT INTO checklists (team_key, entries)
		VALUES ($1, $2)
		ON CONFLICT (team_key) DO UPDATE SET
			entries = checklists.entries || EXCLUDED.entries,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, team.String(), payload); err != nil {
		return fmt.Errorf("failed to merge checklist entries for team %s: %w", team, err)
	}

	if err := r.invalidateChecklistCache(ctx, team); err != nil {
		return fmt.Errorf("failed to invalidate checklist cache for team %s: %w", team, err)
	}
	return nil
}

// getChecklistFromCache пытается получить чек-лист из Redis
func (r *ChecklistRepository) getChecklistFromCache(ctx context.Context, team models.TeamKey) (models.ChecklistRecord, error) {
	key := checklistCacheKey(team)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checklist from cache: %w", err)
	}

	record := models.ChecklistRecord{}
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist from cache: %w", err)
	}
	return record, nil
}

// setChecklistCache сохраняет чек-лист команды в Redis
func (r *ChecklistRepository) setChecklistCache(ctx context.Context, team models.TeamKey, record models.ChecklistRecord) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, checklistCacheKey(team), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set checklist in cache: %w", err)
	}
	return nil
}

// invalidateChecklistCache удаляет чек-лист команды из Redis кэша
func (r *ChecklistRepository) invalidateChecklistCache(ctx context.Context, team models.TeamKey) error {
	if err := r.redisClient.Del(ctx, checklistCacheKey(team)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate checklist cache: %w", err)
	}
	return nil
}

func checklistCacheKey(team models.TeamKey) string {
	return fmt.Sprintf("checklist:%s", team)
}
