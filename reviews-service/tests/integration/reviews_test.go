//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bistrobot/reviews-service/internal/app/reviews/entity"
	"bistrobot/reviews-service/internal/app/reviews/handler"
	"bistrobot/reviews-service/internal/app/reviews/repository"
	"bistrobot/reviews-service/internal/app/reviews/repository/mocks"
	"bistrobot/reviews-service/internal/app/reviews/service"
	"bistrobot/reviews-service/internal/app/reviews/workflow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewsIntegrationTestSuite struct {
	suite.Suite
	client        *mongo.Client
	db            *mongo.Database
	router        *gin.Engine
	reviewService *service.ReviewService
	kafkaProducer *mocks.MockMessagePublisher
	guidelines    *mocks.MockGuidelinesProvider
	summaryCache  *mocks.MockSummaryCache
}

func TestReviewsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ReviewsIntegrationTestSuite))
}

func (s *ReviewsIntegrationTestSuite) SetupSuite() {
	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27018")
	dbName := getEnv("TEST_MONGODB_DATABASE", "reviews_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)

	s.db = s.client.Database(dbName)

	reviewRepo := repository.NewReviewRepository(s.db)
	s.kafkaProducer = &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	s.guidelines = new(mocks.MockGuidelinesProvider)
	s.summaryCache = new(mocks.MockSummaryCache)

	engine := workflow.NewEngine(workflow.SystemClock{})
	s.reviewService = service.NewReviewService(reviewRepo, s.kafkaProducer, s.guidelines, s.summaryCache, engine)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	reviewHandler := handler.NewReviewHandler(s.reviewService)

	reviews := s.router.Group("/reviews")
	reviews.GET("/fetch", reviewHandler.ListReviews)
	reviews.POST("", reviewHandler.IngestReview)
	reviews.GET("/:review_id", reviewHandler.GetReview)
	reviews.GET("/:review_id/history", reviewHandler.GetHistory)
	reviews.POST("/:review_id/generate-reply", reviewHandler.GenerateReply)
	reviews.POST("/:review_id/draft", reviewHandler.SaveDraft)
	reviews.POST("/:review_id/publish", reviewHandler.PublishReply)
	reviews.POST("/:review_id/schedule", reviewHandler.ScheduleReply)
	s.router.POST("/internal/reviews/:review_id/complete-scheduled", reviewHandler.CompleteScheduled)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

func (s *ReviewsIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("reviews").Drop(ctx)

	s.kafkaProducer.Messages = make([][]byte, 0)
	s.kafkaProducer.ExpectedCalls = nil
	s.kafkaProducer.Calls = nil
	s.guidelines.ExpectedCalls = nil
	s.guidelines.Calls = nil
	s.summaryCache.ExpectedCalls = nil
	s.summaryCache.Calls = nil

	s.kafkaProducer.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.summaryCache.On("InvalidateSummary", mock.Anything).Return(nil)
}

func (s *ReviewsIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.client.Disconnect(ctx)
	}
}

func (s *ReviewsIntegrationTestSuite) ingestReview(sentiment string, rating int) entity.Review {
	reqBody := entity.IngestReviewRequest{
		Platform:  "Google",
		Customer:  "Bob",
		Rating:    rating,
		Comment:   "The coffee was cold.",
		Sentiment: sentiment,
		Date:      time.Now().Format("2006-01-02"),
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusCreated, w.Code)

	var created entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func (s *ReviewsIntegrationTestSuite) TestIngestReview_Success() {
	created := s.ingestReview("Negative", 2)

	s.Equal(entity.StatusPendingReply, created.Status)
	s.Len(created.History, 1)
	s.Equal("Review ingested", created.History[0].Action)
	s.Len(s.kafkaProducer.Messages, 1)
}

func (s *ReviewsIntegrationTestSuite) TestGenerateReply_PersistsDraft() {
	s.guidelines.On("GetGuidelines", mock.Anything).Return(&entity.BrandGuidelines{
		ContactInfo:    "care@bistro.example",
		WordsToAvoid:   []string{"cold"},
		WordsToInclude: []string{"fresh"},
	}, nil)

	created := s.ingestReview("Negative", 2)

	req, _ := http.NewRequest(http.MethodPost, "/reviews/"+created.ID.Hex()+"/generate-reply", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var drafted entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &drafted))
	s.Equal(entity.StatusDrafted, drafted.Status)
	s.Require().NotNil(drafted.Reply)
	s.Contains(*drafted.Reply, "care@bistro.example")
	s.Len(drafted.History, 2)

	// Черновик должен быть сохранён в MongoDB
	req, _ = http.NewRequest(http.MethodGet, "/reviews/"+created.ID.Hex(), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var fetched entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(entity.StatusDrafted, fetched.Status)
}

func (s *ReviewsIntegrationTestSuite) TestGenerateReply_GuidelinesDown() {
	s.guidelines.On("GetGuidelines", mock.Anything).Return(nil, context.DeadlineExceeded)

	created := s.ingestReview("Negative", 2)

	req, _ := http.NewRequest(http.MethodPost, "/reviews/"+created.ID.Hex()+"/generate-reply", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadGateway, w.Code)

	// Отзыв не изменился
	req, _ = http.NewRequest(http.MethodGet, "/reviews/"+created.ID.Hex(), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var fetched entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(entity.StatusPendingReply, fetched.Status)
	s.Nil(fetched.Reply)
	s.Len(fetched.History, 1)
}

func (s *ReviewsIntegrationTestSuite) TestPublishReply_Success() {
	created := s.ingestReview("Positive", 5)

	reqBody := entity.ReplyRequest{Reply: "Thank you, Bob!"}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/reviews/"+created.ID.Hex()+"/publish", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var published entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &published))
	s.Equal(entity.StatusReplied, published.Status)
	s.Len(published.History, 2)
	// REVIEW_INGESTED + REPLY_PUBLISHED
	s.Len(s.kafkaProducer.Messages, 2)
}

func (s *ReviewsIntegrationTestSuite) TestScheduleAndComplete() {
	created := s.ingestReview("Neutral", 3)
	when := time.Now().Add(2 * time.Hour).UTC()

	reqBody := entity.ScheduleReplyRequest{Reply: "See you soon!", ScheduledAt: when.Format(time.RFC3339)}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/reviews/"+created.ID.Hex()+"/schedule", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var scheduled entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &scheduled))
	s.Equal(entity.StatusScheduled, scheduled.Status)
	s.Require().NotNil(scheduled.ScheduledAt)

	req, _ = http.NewRequest(http.MethodPost, "/internal/reviews/"+created.ID.Hex()+"/complete-scheduled", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var completed entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &completed))
	s.Equal(entity.StatusReplied, completed.Status)
	s.Nil(completed.ScheduledAt)
	s.Len(completed.History, 3)
}

func (s *ReviewsIntegrationTestSuite) TestScheduleReply_PastTime() {
	created := s.ingestReview("Positive", 4)

	reqBody := entity.ScheduleReplyRequest{
		Reply:       "Thanks!",
		ScheduledAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/reviews/"+created.ID.Hex()+"/schedule", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ReviewsIntegrationTestSuite) TestListReviews() {
	s.ingestReview("Positive", 5)
	s.ingestReview("Negative", 1)

	req, _ := http.NewRequest(http.MethodGet, "/reviews/fetch", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var response entity.ReviewListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(2, response.Total)
}

func (s *ReviewsIntegrationTestSuite) TestHealthCheck() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
