// Package api is the HTTP adapter for the tender platform's REST interface.
// Every other component issues its requests through the Client here; the
// adapter performs no retries, no caching, and no timeout handling of its
// own, so failures propagate to the caller immediately.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tenderdesk/internal/models"
)

// Client issues requests against a fixed base origin with default headers.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New constructs a Client for the given base URL. A nil logger disables
// request logging.
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// do issues one JSON request. A non-empty token is sent as a bearer
// credential. When out is non-nil the response body is decoded into it.
// Non-2xx responses produce a *Error carrying the server's status and
// message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates a session-eligible account.
func (c *Client) Register(ctx context.Context, creds models.Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", creds, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CurrentCompany returns the caller's company. A 404 means the account has
// no company yet; callers distinguish it with IsNotFound.
func (c *Client) CurrentCompany(ctx context.Context, token string) (*models.Company, error) {
	var company models.Company
	if err := c.do(ctx, http.MethodGet, "/companies/me", token, nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// CreateCompany creates the caller's company profile.
func (c *Client) CreateCompany(ctx context.Context, token string, company models.Company) error {
	return c.do(ctx, http.MethodPost, "/companies", token, company, nil)
}

// UpdateCompany updates the caller's company profile.
func (c *Client) UpdateCompany(ctx context.Context, token string, company models.Company) error {
	return c.do(ctx, http.MethodPut, "/companies", token, company, nil)
}

// DeleteCompany deletes the company with the given id.
func (c *Client) DeleteCompany(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/companies/"+strconv.FormatInt(id, 10), token, nil, nil)
}

// SearchCompanies runs a keyword search across all companies.
func (c *Client) SearchCompanies(ctx context.Context, token, query string) ([]models.Company, error) {
	var companies []models.Company
	path := "/companies/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Tenders returns one page of the tender listing. A page of zero or less
// omits the page parameter and yields the server's default page.
func (c *Client) Tenders(ctx context.Context, token string, page int) ([]models.Tender, error) {
	path := "/tenders"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var tenders []models.Tender
	if err := c.do(ctx, http.MethodGet, path, token, nil, &tenders); err != nil {
		return nil, err
	}
	return tenders, nil
}

// Tender returns one tender by id.
func (c *Client) Tender(ctx context.Context, token string, id int64) (*models.Tender, error) {
	var tender models.Tender
	if err := c.do(ctx, http.MethodGet, "/tenders/"+strconv.FormatInt(id, 10), token, nil, &tender); err != nil {
		return nil, err
	}
	return &tender, nil
}

// CreateTender publishes a new tender.
func (c *Client) CreateTender(ctx context.Context, token string, tender models.Tender) error {
	return c.do(ctx, http.MethodPost, "/tenders", token, tender, nil)
}

// UpdateTender replaces the tender with the given id.
func (c *Client) UpdateTender(ctx context.Context, token string, id int64, tender models.Tender) error {
	return c.do(ctx, http.MethodPut, "/tenders/"+strconv.FormatInt(id, 10), token, tender, nil)
}

// DeleteTender removes the tender with the given id.
func (c *Client) DeleteTender(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/tenders/"+strconv.FormatInt(id, 10), token, nil, nil)
}

// AppliedTenders lists the tenders the caller's company has applied to.
// The platform returns the joined tender records, not the raw applications.
func (c *Client) AppliedTenders(ctx context.Context, token string) ([]models.Tender, error) {
	var tenders []models.Tender
	if err := c.do(ctx, http.MethodGet, "/applications", token, nil, &tenders); err != nil {
		return nil, err
	}
	return tenders, nil
}

// Application returns one application record by id.
func (c *Client) Application(ctx context.Context, token string, id int64) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+strconv.FormatInt(id, 10), token, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// SubmitApplication creates an application with a full proposal payload.
func (c *Client) SubmitApplication(ctx context.Context, token string, app models.Application) error {
	return c.do(ctx, http.MethodPost, "/applications", token, app, nil)
}

// QuickApply creates an application against one tender with an empty body.
func (c *Client) QuickApply(ctx context.Context, token string, tenderID int64) error {
	return c.do(ctx, http.MethodPost, "/applications/"+strconv.FormatInt(tenderID, 10), token, struct{}{}, nil)
}
