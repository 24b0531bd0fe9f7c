package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"plaintext/internal/apperror"
	"plaintext/internal/logger"
)

// ErrorResponse - body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{Error: message}, statusCode)
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

// writeServiceError maps a domain error to its response. Anything it does
// not recognise is logged and answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		conflict   *apperror.ConflictError
		notFound   *apperror.NotFoundError
		validation *apperror.ValidationError
		rateLimit  *apperror.RateLimitError
	)

	switch {
	case errors.As(err, &conflict):
		WriteError(w, conflict.Message, http.StatusConflict)
	case errors.As(err, &notFound):
		WriteError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &validation):
		WriteError(w, validation.Message, http.StatusBadRequest)
	case errors.As(err, &rateLimit):
		seconds := int(math.Ceil(rateLimit.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		WriteError(w, rateLimit.Error(), http.StatusTooManyRequests)
	case errors.Is(err, apperror.ErrInvalidCredentials):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperror.ErrSelfFollow):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// validationError turns validator output into a single readable message.
func validationError(err error) *apperror.ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &apperror.ValidationError{Message: err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}

	return &apperror.ValidationError{Message: strings.Join(messages, "; ")}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
