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

type integrationRepository struct {
	db *pgxpool.Pool
}

// NewIntegrationRepository создает новый репозиторий интеграций с платформами
func NewIntegrationRepository(db *pgxpool.Pool) IntegrationRepository {
	return &integrationRepository{db: db}
}

// GetAll получает все интеграции отсортированные по платформе
func (r *integrationRepository) GetAll(ctx context.Context) ([]entity.Integration, error) {
	query := `
		SELECT id, platform, display_name, connected, connected_at, created_at
		FROM integrations ORDER BY platform ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get integrations: %w", err)
	}
	defer rows.Close()

	var integrations []entity.Integration
	for rows.Next() {
		var integration entity.Integration
		if err := rows.Scan(
			&integration.ID,
			&integration.Platform,
			&integration.DisplayName,
			&integration.Connected,
			&integration.ConnectedAt,
			&integration.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		integrations = append(integrations, integration)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating integrations: %w", err)
	}

	return integrations, nil
}

// GetByPlatform получает интеграцию по имени платформы
func (r *integrationRepository) GetByPlatform(ctx context.Context, platform string) (*entity.Integration, error) {
	query := `
		SELECT id, platform, display_name, connected, connected_at, created_at
		FROM integrations WHERE LOWER(platform) = LOWER($1)
	`

	var integration entity.Integration
	err := r.db.QueryRow(ctx, query, platform).Scan(
		&integration.ID,
		&integration.Platform,
		&integration.DisplayName,
		&integration.Connected,
		&integration.ConnectedAt,
		&integration.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("failed to get integration by platform: %w", err)
	}

	return &integration, nil
}

// Connect создает или переподключает интеграцию.
// Платформа уникальна, повторное подключение обновляет существующую строку
func (r *integrationRepository) Connect(ctx context.Context, integration *entity.Integration) error {
	query := `
		INSERT INTO integrations (id, platform, display_name, connected, connected_at, created_at)
		VALUES ($1, $2, $3, TRUE, $4, $5)
		ON CONFLICT (platform) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    connected = TRUE,
		    connected_at = EXCLUDED.connected_at
	`

	now := time.Now()
	integration.Connected = true
	integration.ConnectedAt = &now
	integration.CreatedAt = now

	_, err := r.db.Exec(ctx, query,
		integration.ID,
		integration.Platform,
		integration.DisplayName,
		integration.ConnectedAt,
		integration.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to connect integration: %w", err)
	}

	return nil
}

// Disconnect отключает интеграцию, сохраняя строку для истории
func (r *integrationRepository) Disconnect(ctx context.Context, platform string) error {
	query := `
		UPDATE integrations
		SET connected = FALSE, connected_at = NULL
		WHERE LOWER(platform) = LOWER($1)
	`

	result, err := r.db.Exec(ctx, query, platform)
	if err != nil {
		return fmt.Errorf("failed to disconnect integration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrIntegrationNotFound
	}

	return nil
}

// CountConnected считает активные интеграции для проверки лимита плана
func (r *integrationRepository) CountConnected(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM integrations WHERE connected = TRUE`
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count connected integrations: %w", err)
	}

	return count, nil
}
