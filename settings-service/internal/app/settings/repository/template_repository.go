package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistrobot/settings-service/internal/app/settings/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type templateRepository struct {
	db *pgxpool.Pool // Пул соединений с PostgreSQL для работы с шаблонами
}

// NewTemplateRepository создает новый репозиторий шаблонов ответов
func NewTemplateRepository(db *pgxpool.Pool) TemplateRepository {
	return &templateRepository{db: db}
}

// Create создает новый шаблон в PostgreSQL.
// Уникальность имени обеспечивает UNIQUE constraint
func (r *templateRepository) Create(ctx context.Context, template *entity.ReplyTemplate) error {
	query := `
		INSERT INTO reply_templates (id, name, content, sentiment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt

	_, err := r.db.Exec(ctx, query,
		template.ID,
		template.Name,
		template.Content,
		template.Sentiment,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrTemplateAlreadyExists
		}
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetByID получает шаблон по ID из PostgreSQL
func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReplyTemplate, error) {
	query := `
		SELECT id, name, content, sentiment, created_at, updated_at
		FROM reply_templates WHERE id = $1
	`

	var template entity.ReplyTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&template.ID,
		&template.Name,
		&template.Content,
		&template.Sentiment,
		&template.CreatedAt,
		&template.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template by id: %w", err)
	}

	return &template, nil
}

// GetAll получает все шаблоны отсортированные по имени
func (r *templateRepository) GetAll(ctx context.Context) ([]entity.ReplyTemplate, error) {
	query := `
		SELECT id, name, content, sentiment, created_at, updated_at
		FROM reply_templates ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	var templates []entity.ReplyTemplate
	for rows.Next() {
		var template entity.ReplyTemplate
		if err := rows.Scan(
			&template.ID,
			&template.Name,
			&template.Content,
			&template.Sentiment,
			&template.CreatedAt,
			&template.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// Update обновляет шаблон в PostgreSQL
func (r *templateRepository) Update(ctx context.Context, template *entity.ReplyTemplate) error {
	query := `
		UPDATE reply_templates
		SET name = $1, content = $2, sentiment = $3, updated_at = $4
		WHERE id = $5
	`

	template.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		template.Name,
		template.Content,
		template.Sentiment,
		template.UpdatedAt,
		template.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrTemplateAlreadyExists
		}
		return fmt.Errorf("failed to update template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Delete удаляет шаблон из PostgreSQL
func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reply_templates WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// Count считает шаблоны для проверки лимита тарифного плана
func (r *templateRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reply_templates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}

	return count, nil
}
