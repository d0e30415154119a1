// Package registry is the HTTP client for the patient registration source.
package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medgen/internal/config"
	"medgen/internal/domain"
)

// Client fetches patient registration records over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a registration source client from config.
func NewClient(cfg *config.RegistryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchPatientRecord retrieves the registration record for a patient.
// Unlike individual assets, the record is not optional: any failure here is
// fatal to the report request.
func (c *Client) FetchPatientRecord(ctx context.Context, patientID string) (*domain.PatientRecord, error) {
	endpoint := c.baseURL + "/patient-registration/" + url.PathEscape(patientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", domain.ErrRecordFetch, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", domain.ErrRecordFetch, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRecordFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRecordFetch, err)
	}

	record, err := domain.NewPatientRecord(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding record: %v", domain.ErrRecordFetch, err)
	}
	return record, nil
}
