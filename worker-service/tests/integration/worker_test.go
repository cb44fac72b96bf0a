//go:build integration

package integration

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/worker-service/internal/app/worker/entity"
	"bistrobot/worker-service/internal/app/worker/repository"
	"bistrobot/worker-service/internal/app/worker/repository/mocks"
	"bistrobot/worker-service/internal/app/worker/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// WorkerIntegrationTestSuite требует запущенный PostgreSQL
type WorkerIntegrationTestSuite struct {
	suite.Suite
	db      *gorm.DB
	repo    repository.DispatchJobRepository
	reviews *mocks.MockReviewsClient
	mailer  *mocks.MockAlertMailer
	svc     *service.DispatchService
}

func TestWorkerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(WorkerIntegrationTestSuite))
}

func (s *WorkerIntegrationTestSuite) SetupSuite() {
	logger.InitWithWriter("worker-integration-test", "error", io.Discard)

	dsn := getEnv("TEST_POSTGRES_DSN", "host=localhost port=5435 user=postgres password=postgres dbname=worker_test_db sslmode=disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(&entity.DispatchJob{}))

	s.repo = repository.NewDispatchJobRepository(db)
}

func (s *WorkerIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE dispatch_jobs").Error)

	s.reviews = new(mocks.MockReviewsClient)
	s.mailer = new(mocks.MockAlertMailer)
	s.svc = service.NewDispatchService(s.repo, s.reviews, s.mailer, service.SystemClock{})
}

func (s *WorkerIntegrationTestSuite) scheduleReply(reviewID string, at time.Time) {
	err := s.svc.ProcessReviewEvent(context.Background(), &entity.ReviewEvent{
		EventType:   entity.EventTypeReplyScheduled,
		ReviewID:    reviewID,
		Platform:    "Yelp",
		Reply:       "Thanks for your feedback.",
		ScheduledAt: &at,
		Timestamp:   time.Now(),
	})
	s.Require().NoError(err)
}

func (s *WorkerIntegrationTestSuite) TestScheduledReplyDispatched() {
	ctx := context.Background()
	s.scheduleReply("rev-1", time.Now().Add(-time.Minute))

	s.reviews.On("CompleteScheduled", mock.Anything, "rev-1").Return(nil)

	s.Require().NoError(s.svc.DispatchDue(ctx))

	job, err := s.repo.GetByReviewID(ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(entity.JobStatusSent, job.Status)
	s.reviews.AssertExpectations(s.T())
}

func (s *WorkerIntegrationTestSuite) TestFutureJobNotDispatched() {
	ctx := context.Background()
	s.scheduleReply("rev-1", time.Now().Add(time.Hour))

	s.Require().NoError(s.svc.DispatchDue(ctx))

	job, err := s.repo.GetByReviewID(ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(entity.JobStatusPending, job.Status)
	s.reviews.AssertNotCalled(s.T(), "CompleteScheduled", mock.Anything, mock.Anything)
}

func (s *WorkerIntegrationTestSuite) TestRescheduleOverwritesJob() {
	ctx := context.Background()
	first := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	second := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)

	s.scheduleReply("rev-1", first)
	s.scheduleReply("rev-1", second)

	job, err := s.repo.GetByReviewID(ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(entity.JobStatusPending, job.Status)
	s.WithinDuration(second, job.ScheduledAt, time.Second)

	// Перепланирование не плодит дублей
	var count int64
	s.Require().NoError(s.db.Model(&entity.DispatchJob{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *WorkerIntegrationTestSuite) TestManualPublishCancelsJob() {
	ctx := context.Background()
	s.scheduleReply("rev-1", time.Now().Add(time.Hour))

	err := s.svc.ProcessReviewEvent(ctx, &entity.ReviewEvent{
		EventType: entity.EventTypeReplyPublished,
		ReviewID:  "rev-1",
	})
	s.Require().NoError(err)

	job, err := s.repo.GetByReviewID(ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(entity.JobStatusCancelled, job.Status)

	// Отмененное задание не исполняется даже после наступления времени
	s.Require().NoError(s.svc.DispatchDue(ctx))
	s.reviews.AssertNotCalled(s.T(), "CompleteScheduled", mock.Anything, mock.Anything)
}

func (s *WorkerIntegrationTestSuite) TestThreeFailuresMarkJobFailed() {
	ctx := context.Background()
	s.scheduleReply("rev-1", time.Now().Add(-time.Minute))

	s.reviews.On("CompleteScheduled", mock.Anything, "rev-1").Return(errors.New("connection refused"))

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.svc.DispatchDue(ctx))
	}

	job, err := s.repo.GetByReviewID(ctx, "rev-1")
	s.Require().NoError(err)
	s.Equal(entity.JobStatusFailed, job.Status)
	s.Equal(3, job.Attempts)
	s.Contains(job.LastError, "connection refused")

	// Проваленное задание больше не исполняется
	s.reviews.Calls = nil
	s.Require().NoError(s.svc.DispatchDue(ctx))
	s.reviews.AssertNotCalled(s.T(), "CompleteScheduled", mock.Anything, mock.Anything)
}

func (s *WorkerIntegrationTestSuite) TestNegativeIngestTriggersAlert() {
	s.mailer.On("SendNegativeReviewAlert", mock.Anything).Return(nil)

	err := s.svc.ProcessReviewEvent(context.Background(), &entity.ReviewEvent{
		EventType: entity.EventTypeReviewIngested,
		ReviewID:  "rev-1",
		Customer:  "Bob",
		Rating:    2,
		Sentiment: entity.SentimentNegative,
	})
	s.Require().NoError(err)
	s.mailer.AssertExpectations(s.T())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
