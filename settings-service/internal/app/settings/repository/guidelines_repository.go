package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistrobot/settings-service/internal/app/settings/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// guidelinesRowID фиксированный ID единственной строки настроек бренда.
// Дашборд обслуживает один ресторан, поэтому строка всегда одна
const guidelinesRowID = 1

type guidelinesRepository struct {
	db *pgxpool.Pool
}

// NewGuidelinesRepository создает новый репозиторий настроек бренда
func NewGuidelinesRepository(db *pgxpool.Pool) GuidelinesRepository {
	return &guidelinesRepository{db: db}
}

// Get получает настройки бренда из PostgreSQL.
// Если строка еще не создана, возвращает пустые настройки
func (r *guidelinesRepository) Get(ctx context.Context) (*entity.BrandGuidelines, error) {
	query := `
		SELECT contact_info, words_to_avoid, words_to_include, updated_at
		FROM brand_guidelines WHERE id = $1
	`

	var guidelines entity.BrandGuidelines
	err := r.db.QueryRow(ctx, query, guidelinesRowID).Scan(
		&guidelines.ContactInfo,
		&guidelines.WordsToAvoid,
		&guidelines.WordsToInclude,
		&guidelines.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.BrandGuidelines{
				WordsToAvoid:   []string{},
				WordsToInclude: []string{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get brand guidelines: %w", err)
	}

	return &guidelines, nil
}

// Upsert сохраняет настройки бренда, создавая строку при первом сохранении
func (r *guidelinesRepository) Upsert(ctx context.Context, guidelines *entity.BrandGuidelines) error {
	query := `
		INSERT INTO brand_guidelines (id, contact_info, words_to_avoid, words_to_include, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET contact_info = EXCLUDED.contact_info,
		    words_to_avoid = EXCLUDED.words_to_avoid,
		    words_to_include = EXCLUDED.words_to_include,
		    updated_at = EXCLUDED.updated_at
	`

	guidelines.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		guidelinesRowID,
		guidelines.ContactInfo,
		guidelines.WordsToAvoid,
		guidelines.WordsToInclude,
		guidelines.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert brand guidelines: %w", err)
	}

	return nil
}
