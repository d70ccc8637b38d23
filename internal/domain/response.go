package domain

// Коды ошибок для клиента. Код стабилен, текст сообщения - нет.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_failed"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeRateLimited  = "rate_limited"
	ErrCodeInternal     = "internal_error"
)

// ErrorResponse - стандартная структура ответа об ошибке в формате JSON.
// Details заполняется только для ошибок валидации: по сообщению на каждое
// нарушенное поле.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
