package repository

import (
	"context"
	"errors"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dispatchJobRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewDispatchJobRepository создает новый репозиторий заданий на публикацию
func NewDispatchJobRepository(db *gorm.DB) DispatchJobRepository {
	return &dispatchJobRepository{db: db}
}

// Upsert создает задание или обновляет существующее по review_id.
// Повторное REPLY_SCHEDULED по тому же отзыву перезаписывает текст, время
// и возвращает задание в состояние pending
func (r *dispatchJobRepository) Upsert(ctx context.Context, job *entity.DispatchJob) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "review_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"platform":     job.Platform,
			"reply_text":   job.ReplyText,
			"scheduled_at": job.ScheduledAt,
			"status":       entity.JobStatusPending,
			"attempts":     0,
			"last_error":   "",
		}),
	}).Create(job)

	return result.Error
}

// GetDue возвращает pending задания, время которых наступило
func (r *dispatchJobRepository) GetDue(ctx context.Context, now time.Time) ([]entity.DispatchJob, error) {
	var jobs []entity.DispatchJob
	result := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.JobStatusPending, now).
		Order("scheduled_at ASC").
		Find(&jobs)

	if result.Error != nil {
		return nil, result.Error
	}

	return jobs, nil
}

// GetByReviewID получает задание по ID отзыва
func (r *dispatchJobRepository) GetByReviewID(ctx context.Context, reviewID string) (*entity.DispatchJob, error) {
	var job entity.DispatchJob
	result := r.db.WithContext(ctx).First(&job, "review_id = ?", reviewID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, result.Error
	}

	return &job, nil
}

// MarkSent помечает задание выполненным
func (r *dispatchJobRepository) MarkSent(ctx context.Context, reviewID string) error {
	result := r.db.WithContext(ctx).Model(&entity.DispatchJob{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{
			"status":     entity.JobStatusSent,
			"last_error": "",
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// CancelPending отменяет pending задание отзыва.
// Ручная публикация имеет приоритет над отложенной, уже
// выполненные или отмененные задания не трогаем
func (r *dispatchJobRepository) CancelPending(ctx context.Context, reviewID string) error {
	result := r.db.WithContext(ctx).Model(&entity.DispatchJob{}).
		Where("review_id = ? AND status = ?", reviewID, entity.JobStatusPending).
		Update("status", entity.JobStatusCancelled)

	return result.Error
}

// RecordFailure записывает неудачную попытку доставки.
// При final=true задание помечается failed и больше не исполняется
func (r *dispatchJobRepository) RecordFailure(ctx context.Context, reviewID string, attempts int, lastError string, final bool) error {
	status := entity.JobStatusPending
	if final {
		status = entity.JobStatusFailed
	}

	result := r.db.WithContext(ctx).Model(&entity.DispatchJob{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{
			"attempts":   attempts,
			"last_error": lastError,
			"status":     status,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}
