package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return rec.Code, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"certificate not found", apperrors.ErrCertificateNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"not joinable", apperrors.ErrEventNotJoinable, http.StatusConflict, dto.ErrorCodeEventNotJoinable},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"capacity exceeded", apperrors.ErrCapacityExceeded, http.StatusConflict, dto.ErrorCodeCapacityExceeded},
		{"not attendee", apperrors.ErrNotAttendee, http.StatusForbidden, dto.ErrorCodeNotAttendee},
		{"not yet past", apperrors.ErrNotYetPast, http.StatusForbidden, dto.ErrorCodeNotYetPast},
		{"not registered", apperrors.ErrNotRegistered, http.StatusForbidden, dto.ErrorCodeNotRegistered},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handleError(t, tc.err)
			if status != tc.status {
				t.Errorf("status = %d, want %d", status, tc.status)
			}
			if body.Success {
				t.Error("success = true, want false")
			}
			if body.Error == nil {
				t.Fatal("missing error detail")
			}
			if body.Error.Code != tc.code {
				t.Errorf("code = %s, want %s", body.Error.Code, tc.code)
			}
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	status, body := handleError(t, fmt.Errorf("joining event: %w", apperrors.ErrCapacityExceeded))
	if status != http.StatusConflict {
		t.Errorf("status = %d, want %d", status, http.StatusConflict)
	}
	if body.Error.Code != dto.ErrorCodeCapacityExceeded {
		t.Errorf("code = %s, want %s", body.Error.Code, dto.ErrorCodeCapacityExceeded)
	}
}

func TestHandleAPIErrorCustomMessageOverride(t *testing.T) {
	err := apperrors.NewInvalidInputError("Invalid event date, expected YYYY-MM-DD")
	status, body := handleError(t, err)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}
	if body.Error.Message != "Invalid event date, expected YYYY-MM-DD" {
		t.Errorf("message = %q, want custom message", body.Error.Message)
	}
}
