package paddle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/cataworks/cata-api/config"
	apperrors "github.com/cataworks/cata-api/internal/errors"
)

// PayLinkCreator abstracts pay-link creation for handler tests.
type PayLinkCreator interface {
	CreatePayLink(ctx context.Context, jobID string) (string, error)
}

// Client calls the Paddle classic vendor API.
type Client struct {
	cfg     config.PaddleConfig
	siteURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOptions groups dependencies for NewClient.
type ClientOptions struct {
	Config  config.PaddleConfig
	SiteURL string       // public base URL used for payment return redirects
	HTTP    *http.Client // Optional: defaults to a client bounded by Config.Timeout
	Logger  *slog.Logger // Optional
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Config.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     opts.Config,
		siteURL: strings.TrimSuffix(opts.SiteURL, "/"),
		http:    httpClient,
		logger:  logger.With("component", "paddle_client"),
	}
}

// CreatePayLink asks Paddle for a checkout URL that unlocks the clean
// document for a job. The job id rides along as passthrough so the webhook
// can attribute the payment.
func (c *Client) CreatePayLink(ctx context.Context, jobID string) (string, error) {
	if !c.cfg.CheckoutConfigured() {
		return "", apperrors.Unavailable("payment gateway not configured")
	}

	form := url.Values{
		"vendor_id":        {c.cfg.VendorID},
		"vendor_auth_code": {c.cfg.AuthCode},
		"title":            {c.cfg.ProductTitle},
		"prices":           {c.cfg.ProductPrice},
		"return_url":       {c.siteURL + "/status?job=" + url.QueryEscape(jobID)},
		"passthrough":      {jobID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build pay link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Gateway("failed to connect to payment gateway", err)
	}
	defer resp.Body.Close()

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apperrors.Gateway("payment gateway returned malformed response", err)
	}

	if ok, _ := jmespath.Search("success", body); ok != true {
		c.logger.ErrorContext(ctx, "paddle pay link rejected", "job_id", jobID, "status", resp.StatusCode)
		return "", apperrors.Gateway("payment gateway error", nil)
	}

	raw, err := jmespath.Search("response.url", body)
	if err != nil {
		return "", apperrors.Gateway("payment gateway returned malformed response", err)
	}
	checkoutURL, ok := raw.(string)
	if !ok || checkoutURL == "" {
		return "", apperrors.Gateway("payment gateway response missing checkout url", nil)
	}

	c.logger.InfoContext(ctx, "created checkout", "job_id", jobID)
	return checkoutURL, nil
}
