package entity

type UpdateGuidelinesRequest struct {
	ContactInfo    string   `json:"contactInfo" validate:"omitempty,max=200"`
	WordsToAvoid   []string `json:"wordsToAvoid" validate:"omitempty,dive,min=1,max=100"`
	WordsToInclude []string `json:"wordsToInclude" validate:"omitempty,dive,min=1,max=100"`
}

type CreateTemplateRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Content   string `json:"content" validate:"required,min=2,max=2000"`
	Sentiment string `json:"sentiment" validate:"required,oneof=Positive Negative Neutral All"`
}

type UpdateTemplateRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	Content   string `json:"content" validate:"omitempty,min=2,max=2000"`
	Sentiment string `json:"sentiment" validate:"omitempty,oneof=Positive Negative Neutral All"`
}

type ConnectIntegrationRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type TemplateListResponse struct {
	Templates []ReplyTemplate `json:"templates"`
	Total     int             `json:"total"`
}

type IntegrationListResponse struct {
	Integrations []Integration `json:"integrations"`
	Total        int           `json:"total"`
}
