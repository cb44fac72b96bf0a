package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/reviews-service/internal/app/reviews/entity"
	"bistrobot/reviews-service/internal/app/reviews/repository"
	"bistrobot/reviews-service/internal/app/reviews/workflow"
)

const reviewDateLayout = "2006-01-02"

// AnalyticsService считает агрегированную статистику дашборда.
// Сводка кешируется в Redis и инвалидируется при ингестии отзывов
type AnalyticsService struct {
	reviewRepo repository.ReviewRepository
	cache      SummaryCache
	clock      workflow.Clock
}

func NewAnalyticsService(reviewRepo repository.ReviewRepository, cache SummaryCache, clock workflow.Clock) *AnalyticsService {
	return &AnalyticsService{
		reviewRepo: reviewRepo,
		cache:      cache,
		clock:      clock,
	}
}

// GetSummary возвращает сводку для дашборда: берет из кеша,
// при промахе пересчитывает по всем отзывам
func (s *AnalyticsService) GetSummary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	cached, err := s.cache.GetSummary(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read analytics cache")
	}
	if cached != nil {
		return cached, nil
	}

	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for analytics: %w", err)
	}

	summary := s.computeSummary(reviews)

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		logger.Warn().Err(err).Msg("failed to cache analytics summary")
	}

	return summary, nil
}

func (s *AnalyticsService) computeSummary(reviews []entity.Review) *entity.AnalyticsSummary {
	now := s.clock.Now()
	today := now.Format(reviewDateLayout)
	weekAgo := now.AddDate(0, 0, -7)

	summary := &entity.AnalyticsSummary{
		SentimentTrends: make([]entity.SentimentTrendPoint, 7),
	}

	// Бакеты последних 7 дней, старые слева
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		key := day.Format(reviewDateLayout)
		dayIndex[key] = i
		summary.SentimentTrends[i] = entity.SentimentTrendPoint{Name: day.Format("Mon")}
	}

	var ratingSum int
	for _, review := range reviews {
		summary.TotalReviews++
		ratingSum += review.Rating

		if review.Status == entity.StatusPendingReply {
			summary.PendingReplies++
		}
		if review.Date == today {
			summary.NewReviewsToday++
		}

		reviewDate, err := time.Parse(reviewDateLayout, review.Date)
		if err != nil {
			continue
		}

		if review.Sentiment == entity.SentimentNegative && reviewDate.After(weekAgo) {
			summary.NegativeReviewsThisWeek++
		}

		if i, ok := dayIndex[review.Date]; ok {
			switch review.Sentiment {
			case entity.SentimentPositive:
				summary.SentimentTrends[i].Positive++
			case entity.SentimentNegative:
				summary.SentimentTrends[i].Negative++
			case entity.SentimentNeutral:
				summary.SentimentTrends[i].Neutral++
			}
		}
	}

	if summary.TotalReviews > 0 {
		avg := float64(ratingSum) / float64(summary.TotalReviews)
		summary.AverageRating = math.Round(avg*10) / 10
	}

	return summary
}
