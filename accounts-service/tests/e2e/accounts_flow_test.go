//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"bistrobot/accounts-service/internal/app/accounts/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const BaseURL = "http://localhost:8083"

var (
	AuthToken    = "test-jwt-token"
	ServiceToken = "test-service-token"
)

func getAuthHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer "+AuthToken)
	return headers
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload interface{}, out interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header = getAuthHeaders()

	resp, err := client.Do(req)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp
}

func TestProfileFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	var profile entity.Profile
	resp := doJSON(t, client, http.MethodGet, BaseURL+"/profile", nil, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, profile.RestaurantName)

	var updated entity.Profile
	resp = doJSON(t, client, http.MethodPatch, BaseURL+"/profile", entity.UpdateProfileRequest{
		RestaurantName: "Cafe Lumiere",
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cafe Lumiere", updated.RestaurantName)
	assert.Equal(t, profile.ID, updated.ID)
}

func TestAPIKeyFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	var created struct {
		entity.APIKey
		Secret string `json:"secret"`
	}
	resp := doJSON(t, client, http.MethodPost, BaseURL+"/api-keys", entity.CreateAPIKeyRequest{
		Name: "e2e-connector",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.Secret)

	defer func() {
		resp := doJSON(t, client, http.MethodDelete, BaseURL+"/api-keys/"+created.ID.String(), nil, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}()

	var verified entity.APIKey
	resp = doJSON(t, client, http.MethodPost, BaseURL+"/api-keys/verify", entity.VerifyAPIKeyRequest{
		Secret: created.Secret,
	}, &verified)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, verified.ID)
}

func TestInternalPlanRequiresServiceToken(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	// Без сервисного токена доступ запрещен
	req, err := http.NewRequest(http.MethodGet, BaseURL+"/internal/plan", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// С токеном возвращаются лимиты текущего тарифа
	req, err = http.NewRequest(http.MethodGet, BaseURL+"/internal/plan", nil)
	require.NoError(t, err)
	req.Header.Set("X-Service-Token", ServiceToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var limits entity.PlanLimits
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&limits))
	assert.NotEmpty(t, limits.Tier)
}
