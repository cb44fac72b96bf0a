package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ReviewsClient клиент для взаимодействия с Reviews Service.
// Используется для завершения отложенных публикаций
type ReviewsClient struct {
	baseURL      string
	httpClient   *http.Client
	serviceToken string // Токен межсервисной аутентификации
}

// NewReviewsClient создает новый клиент для Reviews Service
func NewReviewsClient(baseURL string, serviceToken string) *ReviewsClient {
	return &ReviewsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		serviceToken: serviceToken,
	}
}

// CompleteScheduled переводит запланированный ответ в состояние Replied.
// Reviews Service выполняет переход и дописывает запись аудита
func (c *ReviewsClient) CompleteScheduled(ctx context.Context, reviewID string) error {
	url := fmt.Sprintf("%s/internal/reviews/%s/complete-scheduled", c.baseURL, reviewID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
