package repository

import (
	"context"
	"errors"

	"bistrobot/settings-service/internal/app/settings/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateAlreadyExists = errors.New("template with this name already exists")
	ErrIntegrationNotFound   = errors.New("integration not found")
)

type GuidelinesRepository interface {
	Get(ctx context.Context) (*entity.BrandGuidelines, error)
	Upsert(ctx context.Context, guidelines *entity.BrandGuidelines) error
}

type TemplateRepository interface {
	Create(ctx context.Context, template *entity.ReplyTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReplyTemplate, error)
	GetAll(ctx context.Context) ([]entity.ReplyTemplate, error)
	Update(ctx context.Context, template *entity.ReplyTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type IntegrationRepository interface {
	GetAll(ctx context.Context) ([]entity.Integration, error)
	GetByPlatform(ctx context.Context, platform string) (*entity.Integration, error)
	Connect(ctx context.Context, integration *entity.Integration) error
	Disconnect(ctx context.Context, platform string) error
	CountConnected(ctx context.Context) (int, error)
}
