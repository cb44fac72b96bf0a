package repository

import (
	"context"

	"bistrobot/reviews-service/internal/app/reviews/entity"
)

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetAll(ctx context.Context) ([]entity.Review, error)
	GetByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
}
