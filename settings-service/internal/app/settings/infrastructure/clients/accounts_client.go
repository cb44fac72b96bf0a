package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bistrobot/settings-service/internal/app/settings/entity"
)

// AccountsClient клиент для взаимодействия с Accounts Service.
// Используется для получения лимитов текущего тарифного плана
type AccountsClient struct {
	baseURL      string
	httpClient   *http.Client
	serviceToken string // Токен межсервисной аутентификации
}

// NewAccountsClient создает новый клиент для Accounts Service
func NewAccountsClient(baseURL string, serviceToken string) *AccountsClient {
	return &AccountsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		serviceToken: serviceToken,
	}
}

// GetPlanLimits получает лимиты текущего плана аккаунта.
// Проверяются перед созданием шаблона или подключением интеграции
func (c *AccountsClient) GetPlanLimits(ctx context.Context) (*entity.PlanLimits, error) {
	url := fmt.Sprintf("%s/internal/plan", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var limits entity.PlanLimits
	if err := json.NewDecoder(resp.Body).Decode(&limits); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &limits, nil
}
