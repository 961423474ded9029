package forms

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
	formsapi "google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

// API is the part of the Google Forms v1 surface used by the tools.
// Each method is exactly one remote round-trip.
type API interface {
	Create(ctx context.Context, form *formsapi.Form) (*formsapi.Form, error)
	Get(ctx context.Context, formID string) (*formsapi.Form, error)
	ListResponses(ctx context.Context, formID string, page PageParams) (*formsapi.ListFormResponsesResponse, error)
	GetResponse(ctx context.Context, formID, responseID string) (*formsapi.FormResponse, error)
	BatchUpdate(ctx context.Context, formID string, req *formsapi.BatchUpdateFormRequest) (*formsapi.BatchUpdateFormResponse, error)
}

// PageParams selects a page of form responses. Zero values use the API defaults.
type PageParams struct {
	Size  int64
	Token string
}

// Settings configures Dial.
type Settings struct {
	Credentials Credentials
	// Endpoint overrides the API base URL (e.g. for a local emulator).
	Endpoint string
	// RatePerMinute caps outbound calls; 0 disables limiting.
	RatePerMinute int
	Burst         int
	// HTTPClient, when set, is used as-is and Credentials are ignored.
	HTTPClient *http.Client
}

// Client implements API on top of the generated Forms service.
type Client struct {
	svc     *formsapi.Service
	limiter *rate.Limiter
}

var _ API = (*Client)(nil)

// Dial builds an authenticated Forms service and wraps it in a Client.
func Dial(ctx context.Context, settings Settings) (*Client, error) {
	opts := []option.ClientOption{}
	if settings.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(settings.HTTPClient))
	} else {
		if err := settings.Credentials.Validate(); err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(settings.Credentials.TokenSource(ctx)))
	}
	if settings.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(settings.Endpoint))
	}
	svc, err := formsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating forms service: %w", err)
	}
	return NewClient(svc, settings.RatePerMinute, settings.Burst), nil
}

// NewClient wraps svc. ratePerMinute <= 0 disables the limiter.
func NewClient(svc *formsapi.Service, ratePerMinute, burst int) *Client {
	c := &Client{svc: svc}
	if ratePerMinute > 0 {
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), burst)
	}
	return c
}

func (c *Client) Create(ctx context.Context, form *formsapi.Form) (*formsapi.Form, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.svc.Forms.Create(form).Context(ctx).Do()
}

func (c *Client) Get(ctx context.Context, formID string) (*formsapi.Form, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.svc.Forms.Get(formID).Context(ctx).Do()
}

func (c *Client) ListResponses(ctx context.Context, formID string, page PageParams) (*formsapi.ListFormResponsesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	call := c.svc.Forms.Responses.List(formID).Context(ctx)
	if page.Size > 0 {
		call = call.PageSize(page.Size)
	}
	if page.Token != "" {
		call = call.PageToken(page.Token)
	}
	return call.Do()
}

func (c *Client) GetResponse(ctx context.Context, formID, responseID string) (*formsapi.FormResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.svc.Forms.Responses.Get(formID, responseID).Context(ctx).Do()
}

func (c *Client) BatchUpdate(ctx context.Context, formID string, req *formsapi.BatchUpdateFormRequest) (*formsapi.BatchUpdateFormResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.svc.Forms.BatchUpdate(formID, req).Context(ctx).Do()
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
