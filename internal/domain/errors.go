package domain

import "errors"

// Application-wide standard errors
var (
	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Request/limit errors
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrInvalidInput = errors.New("invalid input data")

	// AI generation errors
	ErrAIGenerationFailed = errors.New("AI text generation failed")
	ErrEmptyAIResponse    = errors.New("received empty response from AI")

	// Decision tree errors
	ErrInvalidDecisionLevel = errors.New("invalid decision level")
	ErrGenerationComplete   = errors.New("generation is already complete")

	// General server errors
	ErrInternalServer = errors.New("internal server error")
)
