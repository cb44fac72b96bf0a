package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"bistrobot/accounts-service/internal/app/accounts/entity"
	"bistrobot/accounts-service/internal/app/accounts/service"
	"bistrobot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("accounts-handler-test", "error", io.Discard)
	os.Exit(m.Run())
}

// MockAccountsService - мок сервиса для handler-тестов
type MockAccountsService struct {
	mock.Mock
}

func (m *MockAccountsService) GetProfile(ctx context.Context) (*entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockAccountsService) UpdateProfile(ctx context.Context, req *entity.UpdateProfileRequest) (*entity.Profile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockAccountsService) GetSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionResponse), args.Error(1)
}

func (m *MockAccountsService) UpgradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionResponse), args.Error(1)
}

func (m *MockAccountsService) DowngradeSubscription(ctx context.Context) (*entity.SubscriptionResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionResponse), args.Error(1)
}

func (m *MockAccountsService) GetPlan(tier string) (*entity.PlanLimits, error) {
	args := m.Called(tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlanLimits), args.Error(1)
}

func (m *MockAccountsService) GetCurrentPlanLimits(ctx context.Context) (*entity.PlanLimits, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlanLimits), args.Error(1)
}

func (m *MockAccountsService) CreateAPIKey(ctx context.Context, req *entity.CreateAPIKeyRequest) (*entity.CreatedAPIKeyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatedAPIKeyResponse), args.Error(1)
}

func (m *MockAccountsService) ListAPIKeys(ctx context.Context) ([]entity.APIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.APIKey), args.Error(1)
}

func (m *MockAccountsService) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountsService) VerifyAPIKey(ctx context.Context, secret string) (*entity.APIKey, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.APIKey), args.Error(1)
}

func setupTestRouter(mockService *MockAccountsService) *gin.Engine {
	h := NewAccountsHandler(mockService)
	router := gin.New()

	router.GET("/profile", h.GetProfile)
	router.PATCH("/profile", h.UpdateProfile)
	router.GET("/subscription", h.GetSubscription)
	router.POST("/subscription/upgrade", h.UpgradeSubscription)
	router.POST("/subscription/downgrade", h.DowngradeSubscription)
	router.GET("/plans/:tier", h.GetPlan)
	router.POST("/api-keys", h.CreateAPIKey)
	router.GET("/api-keys", h.ListAPIKeys)
	router.DELETE("/api-keys/:key_id", h.DeleteAPIKey)
	router.POST("/api-keys/verify", h.VerifyAPIKey)
	router.GET("/internal/plan", h.GetCurrentPlan)

	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProfile_Success(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	profile := &entity.Profile{
		ID:               uuid.New(),
		RestaurantName:   "Trattoria Roma",
		ContactEmail:     "owner@trattoria.example",
		SubscriptionTier: entity.TierPro,
	}
	mockService.On("GetProfile", mock.Anything).Return(profile, nil)

	w := performRequest(router, http.MethodGet, "/profile", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Trattoria Roma", response.RestaurantName)
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	w := performRequest(router, http.MethodPatch, "/profile", map[string]interface{}{
		"contact_email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestUpgradeSubscription_TopTierConflict(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	mockService.On("UpgradeSubscription", mock.Anything).Return(nil, service.ErrAlreadyTopTier)

	w := performRequest(router, http.MethodPost, "/subscription/upgrade", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDowngradeSubscription_Success(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	sub := &entity.SubscriptionResponse{
		Tier:   entity.TierFree,
		Limits: entity.PlanLimits{Tier: "free", MaxTemplates: 3, MaxIntegrations: 1},
	}
	mockService.On("DowngradeSubscription", mock.Anything).Return(sub, nil)

	w := performRequest(router, http.MethodPost, "/subscription/downgrade", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.SubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, entity.TierFree, response.Tier)
	assert.Equal(t, 3, response.Limits.MaxTemplates)
}

func TestGetPlan_UnknownTier(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	mockService.On("GetPlan", "platinum").Return(nil, service.ErrUnknownTier)

	w := performRequest(router, http.MethodGet, "/plans/platinum", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAPIKey_Success(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	created := &entity.CreatedAPIKeyResponse{
		APIKey: entity.APIKey{ID: uuid.New(), Name: "yelp-connector", Prefix: "bb_12345678"},
		Secret: "bb_12345678deadbeef",
	}
	mockService.On("CreateAPIKey", mock.Anything, mock.AnythingOfType("*entity.CreateAPIKeyRequest")).Return(created, nil)

	w := performRequest(router, http.MethodPost, "/api-keys", map[string]interface{}{
		"name": "yelp-connector",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bb_12345678deadbeef", response["secret"])
}

func TestCreateAPIKey_MissingName(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	w := performRequest(router, http.MethodPost, "/api-keys", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateAPIKey", mock.Anything, mock.Anything)
}

func TestDeleteAPIKey_InvalidID(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	w := performRequest(router, http.MethodDelete, "/api-keys/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "DeleteAPIKey", mock.Anything, mock.Anything)
}

func TestDeleteAPIKey_NotFound(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	id := uuid.New()
	mockService.On("DeleteAPIKey", mock.Anything, id).Return(service.ErrAPIKeyNotFound)

	w := performRequest(router, http.MethodDelete, "/api-keys/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyAPIKey_Invalid(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	mockService.On("VerifyAPIKey", mock.Anything, "bb_wrong").Return(nil, service.ErrInvalidAPIKey)

	w := performRequest(router, http.MethodPost, "/api-keys/verify", map[string]interface{}{
		"secret": "bb_wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAPIKeys_Success(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	keys := []entity.APIKey{
		{ID: uuid.New(), Name: "yelp-connector", Prefix: "bb_11111111"},
		{ID: uuid.New(), Name: "google-connector", Prefix: "bb_22222222"},
	}
	mockService.On("ListAPIKeys", mock.Anything).Return(keys, nil)

	w := performRequest(router, http.MethodGet, "/api-keys", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.APIKeyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Keys, 2)
}

func TestGetCurrentPlan_Success(t *testing.T) {
	mockService := new(MockAccountsService)
	router := setupTestRouter(mockService)

	limits := &entity.PlanLimits{Tier: "pro", MaxTemplates: 100, MaxIntegrations: 5}
	mockService.On("GetCurrentPlanLimits", mock.Anything).Return(limits, nil)

	w := performRequest(router, http.MethodGet, "/internal/plan", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.PlanLimits
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 100, response.MaxTemplates)
}
