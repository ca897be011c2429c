package pipedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nettbureau/pipedrive-leads/internal/models"
)

const (
	EndpointOrganizations = "organizations"
	EndpointPersons       = "persons"
	EndpointDeals         = "deals"

	DefaultDomain = "nettbureaucase"
)

type PipedriveClient struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

type Option func(*PipedriveClient)

// WithBaseUrl replaces the https://{domain}.pipedrive.com/api/v1 base.
func WithBaseUrl(baseUrl string) Option {
	return func(c *PipedriveClient) {
		c.baseUrl = strings.TrimRight(baseUrl, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *PipedriveClient) {
		c.httpClient.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *PipedriveClient) {
		c.httpClient = httpClient
	}
}

func BaseUrlForDomain(domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	return "https://" + domain + ".pipedrive.com/api/v1"
}

func NewPipedriveClient(token, domain string, opts ...Option) *PipedriveClient {
	c := &PipedriveClient{
		baseUrl:    BaseUrlForDomain(domain),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends payload as JSON to the given endpoint. A status below 400 is
// returned as is; checking for the created id is up to the caller.
func (c *PipedriveClient) Post(ctx context.Context, endpoint string, payload any) (*models.CRMResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload (pipedrive): %w", endpoint, err)
	}

	reqUrl := c.baseUrl + "/" + endpoint + "?api_token=" + url.QueryEscape(c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: redactToken(err, c.token)}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response body: %w", err)}
	}

	var pipedriveResp models.CRMResponse
	decodeErr := json.Unmarshal(responseBody, &pipedriveResp)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    pipedriveResp.ErrorMessage(),
		}
	}

	// A body that is not JSON carries no id and no error, same as an empty one.
	if decodeErr != nil {
		return &models.CRMResponse{}, nil
	}

	return &pipedriveResp, nil
}

// net/http puts the full URL, query string included, in its errors.
func redactToken(err error, token string) error {
	needle := "api_token=" + url.QueryEscape(token)
	if token == "" || !strings.Contains(err.Error(), needle) {
		return err
	}
	return &redactedError{
		msg: strings.ReplaceAll(err.Error(), needle, "api_token=REDACTED"),
		err: err,
	}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
