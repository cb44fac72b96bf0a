package entity

// IngestReviewRequest - запрос на ингестию отзыва с внешней платформы
type IngestReviewRequest struct {
	Platform  string `json:"platform" validate:"required"`
	Customer  string `json:"customer" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
	Sentiment string `json:"sentiment" validate:"required,oneof=Positive Negative Neutral"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ReplyRequest - текст ответа для сохранения черновика или публикации
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// ScheduleReplyRequest - запрос на отложенную публикацию ответа
type ScheduleReplyRequest struct {
	Reply       string `json:"reply" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required"` // RFC3339
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// SentimentTrendPoint - точка недельного графика тональности
type SentimentTrendPoint struct {
	Name     string `json:"name"` // День недели (Mon, Tue, ...)
	Positive int    `json:"Positive"`
	Negative int    `json:"Negative"`
	Neutral  int    `json:"Neutral"`
}

// AnalyticsSummary - агрегированная статистика для дашборда
type AnalyticsSummary struct {
	TotalReviews            int                   `json:"totalReviews"`
	AverageRating           float64               `json:"averageRating"`
	NewReviewsToday         int                   `json:"newReviewsToday"`
	PendingReplies          int                   `json:"pendingReplies"`
	NegativeReviewsThisWeek int                   `json:"negativeReviewsThisWeek"`
	SentimentTrends         []SentimentTrendPoint `json:"sentimentTrends"`
}
