package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"bistrobot/reviews-service/internal/app/reviews/entity"
)

var (
	// Ошибки предусловий переходов; при любой из них отзыв не изменяется
	ErrEmptyContent    = errors.New("reply content is empty")
	ErrInvalidSchedule = errors.New("scheduled time must be in the future")
	ErrNotScheduled    = errors.New("review has no scheduled reply")
)

// Engine управляет жизненным циклом ответа на один отзыв:
// Pending Reply -> Drafted -> Replied / Scheduled.
// Любой переход допустим из любого статуса, каждый успешный переход
// добавляет ровно одну запись аудита. Движок не ходит в сеть и не
// сохраняет ничего сам - персистентность забота вызывающего слоя.
type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	return &Engine{clock: clock}
}

// Ingest переводит новый отзыв в начальное состояние Pending Reply
// с первой записью аудита
func (e *Engine) Ingest(review *entity.Review) {
	review.Status = entity.StatusPendingReply
	review.Reply = nil
	review.ScheduledAt = nil
	e.appendHistory(review, "Review ingested")
}

// GenerateDraft синтезирует черновик ответа из тональности отзыва и
// настроек бренда, переводит отзыв в статус Drafted.
// Возвращает текст черновика.
func (e *Engine) GenerateDraft(review *entity.Review, guidelines entity.BrandGuidelines) string {
	draft := composeDraft(review, guidelines)

	review.Reply = &draft
	review.Status = entity.StatusDrafted
	review.ScheduledAt = nil
	e.appendHistory(review, "AI drafted reply")

	return draft
}

// SaveDraft сохраняет текст, введённый пользователем, как черновик
func (e *Engine) SaveDraft(review *entity.Review, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}

	review.Reply = &text
	review.Status = entity.StatusDrafted
	review.ScheduledAt = nil
	e.appendHistory(review, "User saved draft")

	return nil
}

// Publish фиксирует ответ как опубликованный.
// Сама отправка на платформу делегируется внешним интеграциям.
func (e *Engine) Publish(review *entity.Review, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}

	review.Reply = &text
	review.Status = entity.StatusReplied
	review.ScheduledAt = nil
	e.appendHistory(review, "User published reply")

	return nil
}

// Schedule откладывает публикацию ответа на будущее время.
// Время должно быть строго больше текущего.
func (e *Engine) Schedule(review *entity.Review, text string, when time.Time) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}
	if !when.After(e.clock.Now()) {
		return ErrInvalidSchedule
	}

	review.Reply = &text
	review.Status = entity.StatusScheduled
	review.ScheduledAt = &when
	e.appendHistory(review, fmt.Sprintf("Reply scheduled for %s", when.Format(time.RFC3339)))

	return nil
}

// CompleteScheduled вызывается диспетчером, когда наступает время
// отложенной публикации: Scheduled -> Replied
func (e *Engine) CompleteScheduled(review *entity.Review) error {
	if review.Status != entity.StatusScheduled || review.Reply == nil {
		return ErrNotScheduled
	}

	review.Status = entity.StatusReplied
	review.ScheduledAt = nil
	e.appendHistory(review, "Scheduled reply published")

	return nil
}

// RenderHistory возвращает копию аудита, отсортированную по времени.
// Порядок вставки и так хронологический, но слой отображения
// не должен на это полагаться.
func (e *Engine) RenderHistory(review *entity.Review) []entity.HistoryEntry {
	history := make([]entity.HistoryEntry, len(review.History))
	copy(history, review.History)

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})

	return history
}

func (e *Engine) appendHistory(review *entity.Review, action string) {
	review.History = append(review.History, entity.HistoryEntry{
		Timestamp: e.clock.Now(),
		Action:    action,
	})
}
