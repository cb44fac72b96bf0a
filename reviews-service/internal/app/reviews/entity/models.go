package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentiment - тональность отзыва, классифицируется при ингестии
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// ReviewStatus - статус жизненного цикла ответа на отзыв
type ReviewStatus string

const (
	StatusPendingReply ReviewStatus = "Pending Reply"
	StatusDrafted      ReviewStatus = "Drafted"
	StatusReplied      ReviewStatus = "Replied"
	StatusScheduled    ReviewStatus = "Scheduled"
)

// HistoryEntry - одна запись аудита; после добавления не изменяется
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Action    string    `json:"action" bson:"action"`
}

type Review struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Platform    string             `json:"platform" bson:"platform"`   // Google, Yelp, TripAdvisor
	Customer    string             `json:"customer" bson:"customer"`   // Имя автора отзыва
	Rating      int                `json:"rating" bson:"rating"`       // Оценка от 1 до 5
	Comment     string             `json:"comment" bson:"comment"`     // Текст отзыва
	Sentiment   Sentiment          `json:"sentiment" bson:"sentiment"` // Классифицируется при ингестии
	Status      ReviewStatus       `json:"status" bson:"status"`
	Date        string             `json:"date" bson:"date"` // Дата отзыва на платформе (YYYY-MM-DD)
	Reply       *string            `json:"reply" bson:"reply"`
	ScheduledAt *time.Time         `json:"scheduled_at" bson:"scheduled_at"`
	History     []HistoryEntry     `json:"history" bson:"history"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Clone делает глубокую копию отзыва.
// Используется для persist-then-commit: переходы применяются к копии,
// исходный объект не меняется до успешного сохранения в БД.
func (r *Review) Clone() *Review {
	clone := *r

	if r.Reply != nil {
		reply := *r.Reply
		clone.Reply = &reply
	}
	if r.ScheduledAt != nil {
		at := *r.ScheduledAt
		clone.ScheduledAt = &at
	}

	clone.History = make([]HistoryEntry, len(r.History))
	copy(clone.History, r.History)

	return &clone
}

// BrandGuidelines - настройки бренда из Settings Service,
// применяются при генерации черновиков ответов
type BrandGuidelines struct {
	ContactInfo    string   `json:"contact_info"`
	WordsToAvoid   []string `json:"words_to_avoid"`
	WordsToInclude []string `json:"words_to_include"`
}

// Типы событий в топике review_events
const (
	EventReviewIngested = "REVIEW_INGESTED"
	EventReplyPublished = "REPLY_PUBLISHED"
	EventReplyScheduled = "REPLY_SCHEDULED"
)

type ReviewEvent struct {
	EventType   string     `json:"event_type"`
	ReviewID    string     `json:"review_id"`
	Platform    string     `json:"platform"`
	Customer    string     `json:"customer"`
	Rating      int        `json:"rating"`
	Sentiment   string     `json:"sentiment"`
	Reply       string     `json:"reply,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}
