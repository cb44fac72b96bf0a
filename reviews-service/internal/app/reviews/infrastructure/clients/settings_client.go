package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bistrobot/reviews-service/internal/app/reviews/entity"
)

// SettingsClient клиент для взаимодействия с Settings Service.
// Используется для получения настроек бренда при генерации черновиков
type SettingsClient struct {
	baseURL      string
	httpClient   *http.Client
	serviceToken string // Токен межсервисной аутентификации
}

// NewSettingsClient создает новый клиент для Settings Service
func NewSettingsClient(baseURL string, serviceToken string) *SettingsClient {
	return &SettingsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		serviceToken: serviceToken,
	}
}

// GetGuidelines получает настройки бренда из Settings Service
func (c *SettingsClient) GetGuidelines(ctx context.Context) (*entity.BrandGuidelines, error) {
	url := fmt.Sprintf("%s/internal/settings/guidelines", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.serviceToken != "" {
		req.Header.Set("X-Service-Token", c.serviceToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var guidelines entity.BrandGuidelines
	if err := json.NewDecoder(resp.Body).Decode(&guidelines); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &guidelines, nil
}
