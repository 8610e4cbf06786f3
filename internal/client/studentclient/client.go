// Package studentclient provides the enrollment service's view of the remote
// student service: a narrow lookup capability with found, not-found and
// unreachable outcomes.
package studentclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lfarias/academico/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// Student is the student record shape returned by the student service
type Student struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birthDate"`
	Active    bool   `json:"active"`
}

// Client is the student lookup capability consumed by the enrollment workflow
type Client interface {
	GetStudentByID(ctx context.Context, id int64) (*Student, error)
}

// HTTPClient implements Client over plain synchronous HTTP. No retries, no
// caching; a single failure surfaces immediately.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPClient creates a student service client for the given base URL
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetStudentByID fetches a student record from the student service.
// A remote 404 maps to ErrStudentNotFound; every other failure, transport or
// HTTP, maps to ErrStudentServiceUnavailable with the detail attached.
func (c *HTTPClient) GetStudentByID(ctx context.Context, id int64) (*Student, error) {
	url := fmt.Sprintf("%s/students/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentServiceUnavailable,
			"Error communicating with Student Service: %s", err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentId", id).Msg("Student service request failed")
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentServiceUnavailable,
			"Error communicating with Student Service: %s", err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var student Student
		if err := json.NewDecoder(resp.Body).Decode(&student); err != nil {
			return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentServiceUnavailable,
				"Error communicating with Student Service: %s", err.Error())
		}
		return &student, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound,
			"Student not found in Student Service")

	default:
		c.logger.Warn().Int("status", resp.StatusCode).Int64("studentId", id).Msg("Student service returned unexpected status")
		return nil, apperrors.NewCustomErrorf(apperrors.ErrStudentServiceUnavailable,
			"Error communicating with Student Service: unexpected status %d", resp.StatusCode)
	}
}
