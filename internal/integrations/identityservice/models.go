package identityservice

// User модель пользователя из IdentityService
type User struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"` // "customer" или "provider"
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Specialty   string `json:"specialty,omitempty"` // только для провайдеров
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
