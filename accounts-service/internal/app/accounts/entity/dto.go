package entity

type UpdateProfileRequest struct {
	RestaurantName   string `json:"restaurant_name" validate:"omitempty,min=2,max=200"`
	ContactEmail     string `json:"contact_email" validate:"omitempty,email"`
	AutoReplyEnabled *bool  `json:"auto_reply_enabled"`
}

type CreateAPIKeyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CreatedAPIKeyResponse возвращается один раз при создании ключа.
// Секрет больше нигде не показывается
type CreatedAPIKeyResponse struct {
	APIKey
	Secret string `json:"secret"`
}

type VerifyAPIKeyRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type SubscriptionResponse struct {
	Tier   SubscriptionTier `json:"tier"`
	Limits PlanLimits       `json:"limits"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type APIKeyListResponse struct {
	Keys  []APIKey `json:"keys"`
	Total int      `json:"total"`
}
