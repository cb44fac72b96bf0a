package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistrobot/reviews-service/internal/app/reviews/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrReviewNotFound = errors.New("review not found")
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов.
// Автоматически создает индексы по status и scheduled_at
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Индекс по status для выборок дашборда (pending replies и т.д.)
	statusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("status_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, statusIndex)
	if err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on status: %v\n", err)
	}

	// Индекс по scheduled_at для диспетчера отложенных ответов
	scheduledIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "scheduled_at", Value: 1},
		},
		Options: options.Index().SetName("scheduled_at_idx"),
	}

	_, err = collection.Indexes().CreateOne(ctx, scheduledIndex)
	if err != nil {
		fmt.Printf("Warning: failed to create index on scheduled_at: %v\n", err)
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create сохраняет новый отзыв в MongoDB
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID: %w", err)
	}

	filter := bson.M{"_id": objectID}

	var review entity.Review
	err = r.collection.FindOne(ctx, filter).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// GetAll получает все отзывы аккаунта, новые сверху
func (r *reviewRepository) GetAll(ctx context.Context) ([]entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// GetByStatus получает отзывы в заданном статусе.
// Использует индекс status_idx
func (r *reviewRepository) GetByStatus(ctx context.Context, status entity.ReviewStatus) ([]entity.Review, error) {
	filter := bson.M{"status": status}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// Update сохраняет результат перехода жизненного цикла ответа.
// Неизменяемые поля отзыва (platform, customer, rating, comment,
// sentiment) не трогаем
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()

	filter := bson.M{"_id": review.ID}
	update := bson.M{
		"$set": bson.M{
			"status":       review.Status,
			"reply":        review.Reply,
			"scheduled_at": review.ScheduledAt,
			"history":      review.History,
			"updated_at":   review.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}
