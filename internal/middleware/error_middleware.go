package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// hand every service error here so status codes stay consistent across
// endpoints.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	// A CustomError carries a caller-facing message; prefer it over the
	// generic one.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		detail.Message = customErr.Message
	}

	c.JSON(statusFor(err), dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrRegistrationNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Registration not found")
	case errors.Is(err, apperrors.ErrCertificateNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Certificate not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrEventNotJoinable):
		return dto.NewErrorDetail(dto.ErrorCodeEventNotJoinable, "Event is not open for registration")
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Already registered for this event")
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return dto.NewErrorDetail(dto.ErrorCodeCapacityExceeded, "Event capacity exceeded")
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Conflict")
	case errors.Is(err, apperrors.ErrNotAttendee):
		return dto.NewErrorDetail(dto.ErrorCodeNotAttendee, "Only attendees can contribute to the gallery")
	case errors.Is(err, apperrors.ErrNotYetPast):
		return dto.NewErrorDetail(dto.ErrorCodeNotYetPast, "Event has not taken place yet")
	case errors.Is(err, apperrors.ErrNotRegistered):
		return dto.NewErrorDetail(dto.ErrorCodeNotRegistered, "Not registered for this event")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrInvalidInput):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrRegistrationNotFound),
		errors.Is(err, apperrors.ErrCertificateNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEventNotJoinable),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrCapacityExceeded),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotAttendee),
		errors.Is(err, apperrors.ErrNotYetPast),
		errors.Is(err, apperrors.ErrNotRegistered),
		errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
