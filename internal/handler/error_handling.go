package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
)

// fieldConstraintMessage переводит ошибку валидатора в человекочитаемую
// формулировку ограничения.
func fieldConstraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// handleBindingError отвечает 400 со списком нарушенных ограничений.
func handleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fieldConstraintMessage(fe))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
			Code:    domain.ErrCodeValidation,
			Message: "Invalid request data",
			Details: details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
		Code:    domain.ErrCodeBadRequest,
		Message: "Invalid request data: " + err.Error(),
	})
}

// handleServiceError транслирует доменные ошибки в ответы API.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp domain.ErrorResponse

	switch {
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = domain.ErrorResponse{Code: domain.ErrCodeUnauthorized, Message: "Invalid or expired token"}
	case errors.Is(err, domain.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		errResp = domain.ErrorResponse{Code: domain.ErrCodeRateLimited, Message: "Rate limit exceeded. Please try again later."}
	case errors.Is(err, domain.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResp = domain.ErrorResponse{Code: domain.ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrGenerationComplete):
		statusCode = http.StatusBadRequest
		errResp = domain.ErrorResponse{Code: domain.ErrCodeBadRequest, Message: "Generation session is already complete"}
	case errors.Is(err, domain.ErrInvalidDecisionLevel):
		statusCode = http.StatusBadRequest
		errResp = domain.ErrorResponse{Code: domain.ErrCodeBadRequest, Message: "Decision level is out of range"}
	case errors.Is(err, domain.ErrAIGenerationFailed), errors.Is(err, domain.ErrEmptyAIResponse):
		statusCode = http.StatusInternalServerError
		errResp = domain.ErrorResponse{Code: domain.ErrCodeInternal, Message: "Game generation failed, please try again"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = domain.ErrorResponse{Code: domain.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
