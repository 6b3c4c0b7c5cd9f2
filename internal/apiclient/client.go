// Package apiclient is an HTTP client for the NTS configurator API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/tphummel/nts_configurator/internal/export"
	"github.com/tphummel/nts_configurator/internal/handlers"
	"github.com/tphummel/nts_configurator/internal/models"
)

// ErrNotFound is returned when the server responds 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response carrying the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Client is an HTTP client for the configurator REST API.
type Client struct {
	endpoint   string
	token      string
	lang       models.Lang
	httpClient *http.Client
}

// NewClient creates a Client targeting endpoint with Bearer token auth. An
// empty token sends no Authorization header.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// WithLang returns a copy of c that asks for text in lang.
func (c *Client) WithLang(lang models.Lang) *Client {
	cp := *c
	cp.lang = lang
	return &cp
}

// Recommendation is the response of GET /api/v1/recommendation.
type Recommendation struct {
	DevBand       models.DevBand     `json:"dev_band"`
	Accuracy      models.Accuracy    `json:"accuracy"`
	BandLabel     string             `json:"band_label"`
	AccuracyLabel string             `json:"accuracy_label"`
	AccuracyHelp  string             `json:"accuracy_help"`
	Model         handlers.ModelCard `json:"model"`
}

// Download is an exported configuration file.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}
	if c.lang != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("lang", string(c.lang))
	}
	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

// decode reads a JSON body into out, or turns a non-200 status into an error.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

// Models lists the catalog from entry level to top tier.
func (c *Client) Models(ctx context.Context) ([]handlers.ModelCard, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/models", nil, nil)
	if err != nil {
		return nil, err
	}
	var out []handlers.ModelCard
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

// Model fetches a single catalog model. It returns ErrNotFound for an
// unknown id.
func (c *Client) Model(ctx context.Context, id models.ModelID) (*handlers.ModelCard, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/models/"+url.PathEscape(string(id)), nil, nil)
	if err != nil {
		return nil, err
	}
	var out handlers.ModelCard
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("get model %q: %w", id, err)
	}
	return &out, nil
}

// Recommend asks which model fits band and accuracy.
func (c *Client) Recommend(ctx context.Context, band models.DevBand, accuracy models.Accuracy) (*Recommendation, error) {
	q := url.Values{"band": {string(band)}, "accuracy": {string(accuracy)}}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/recommendation", q, nil)
	if err != nil {
		return nil, err
	}
	var out Recommendation
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return &out, nil
}

// Configuration restores the configuration behind a permalink code. An empty
// code returns the default configuration.
func (c *Client) Configuration(ctx context.Context, code string) (*handlers.View, error) {
	var q url.Values
	if code != "" {
		q = url.Values{"c": {code}}
	}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/configuration", q, nil)
	if err != nil {
		return nil, err
	}
	var out handlers.View
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	return &out, nil
}

// Update applies req and returns the resulting configuration.
func (c *Client) Update(ctx context.Context, req handlers.ChangeRequest) (*handlers.View, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/configuration", nil, req)
	if err != nil {
		return nil, err
	}
	var out handlers.View
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("update configuration: %w", err)
	}
	return &out, nil
}

// Export downloads the configuration behind code in format.
func (c *Client) Export(ctx context.Context, code string, format export.Format) (*Download, error) {
	q := url.Values{"format": {string(format)}}
	if code != "" {
		q.Set("c", code)
	}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/export", q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export: %w", apiError(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("export: read body: %w", err)
	}
	d := &Download{ContentType: resp.Header.Get("Content-Type"), Body: body}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}
