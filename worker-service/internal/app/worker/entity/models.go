package entity

import (
	"time"

	"github.com/google/uuid"
)

// DispatchJob представляет задание на отложенную публикацию ответа.
// Создается при событии REPLY_SCHEDULED и исполняется cron-диспетчером
type DispatchJob struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewID    string    `json:"review_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	Platform    string    `json:"platform" gorm:"type:varchar(50);not null"`
	ReplyText   string    `json:"reply_text" gorm:"type:text;not null"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null;index"`
	Status      JobStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts    int       `json:"attempts" gorm:"not null;default:0"`
	LastError   string    `json:"last_error,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (DispatchJob) TableName() string {
	return "dispatch_jobs"
}

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusSent      JobStatus = "sent"
	JobStatusCancelled JobStatus = "cancelled"
	JobStatusFailed    JobStatus = "failed"
)

// MaxDispatchAttempts - после этого количества неудач задание помечается failed
const MaxDispatchAttempts = 3

// ReviewEvent - событие из топика review_events Reviews Service
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

const (
	EventTypeReviewIngested = "REVIEW_INGESTED"
	EventTypeReplyPublished = "REPLY_PUBLISHED"
	EventTypeReplyScheduled = "REPLY_SCHEDULED"
)

const SentimentNegative = "Negative"
