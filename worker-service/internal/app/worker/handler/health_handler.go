package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bistrobot/worker-service/internal/app/worker/entity"

	"gorm.io/gorm"
)

// HealthCheckHandler отдает состояние компонентов worker-сервиса
type HealthCheckHandler struct {
	db *gorm.DB
}

func NewHealthCheckHandler(db *gorm.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.checkDatabase(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	if err := h.checkBacklog(ctx); err != nil {
		// Накопившиеся просроченные задания не валят сервис, но видны в проверке
		checks["dispatch_backlog"] = "warning: " + err.Error()
	} else {
		checks["dispatch_backlog"] = "healthy"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.checkDatabase(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "reason": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

func (h *HealthCheckHandler) checkDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// checkBacklog поднимает warning если просроченные pending задания
// не исполняются дольше 10 минут
func (h *HealthCheckHandler) checkBacklog(ctx context.Context) error {
	var count int64
	err := h.db.WithContext(ctx).Model(&entity.DispatchJob{}).
		Where("status = ? AND scheduled_at < ?", entity.JobStatusPending, time.Now().Add(-10*time.Minute)).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return &BacklogError{Count: count}
	}

	return nil
}

// BacklogError сигнализирует о необработанных просроченных заданиях
type BacklogError struct {
	Count int64
}

func (e *BacklogError) Error() string {
	return "overdue pending dispatch jobs: " + strconv.FormatInt(e.Count, 10)
}
