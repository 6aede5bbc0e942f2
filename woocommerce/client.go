// Package woocommerce is the typed REST client for the remote
// WordPress/WooCommerce store and its bespoke toyfront endpoints.
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/models"
)

// Client talks to the remote store. WooCommerce (/wc/v3) routes are
// authenticated with the consumer key/secret as query parameters; WordPress
// (/wp/v2, /custom/v1) routes use a Bearer token when one is supplied.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	client         *http.Client
}

// New creates a store client.
func New(baseURL, consumerKey, consumerSecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		client:         &http.Client{Timeout: timeout},
	}
}

// upstreamError is the error body WordPress and WooCommerce return.
type upstreamError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) (*models.Page, error) {
	u := c.baseURL + path
	if query == nil {
		query = url.Values{}
	}
	if c.signedPath(path) {
		query.Set("consumer_key", c.consumerKey)
		query.Set("consumer_secret", c.consumerSecret)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.ErrInternalServer.Wrap(err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrUpstream.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.mapError(resp)
	}

	page := readPage(resp.Header, query)
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return page, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, apperrors.New(http.StatusBadGateway, "Malformed store response", err)
	}
	return page, nil
}

// signedPath reports whether the route is authenticated with the WooCommerce
// consumer key/secret pair.
func (c *Client) signedPath(path string) bool {
	return len(path) >= 7 && path[:7] == "/wc/v3/"
}

// mapError converts an upstream failure into the gateway error taxonomy.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var ue upstreamError
	_ = json.Unmarshal(raw, &ue)
	msg := ue.Message
	if msg == "" {
		msg = fmt.Sprintf("store returned status %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.ErrInvalidCredentials.Wrap(fmt.Errorf("%s", msg))
	case resp.StatusCode == http.StatusForbidden && ue.Code == "email_not_verified":
		return apperrors.ErrEmailNotVerified
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.ErrForbidden.Wrap(fmt.Errorf("%s", msg))
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound.Wrap(fmt.Errorf("%s", msg))
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.ErrValidation.Wrap(fmt.Errorf("%s", msg))
	default:
		return apperrors.ErrUpstream.Wrap(fmt.Errorf("status=%d body=%s", resp.StatusCode, string(raw)))
	}
}

// readPage extracts pagination state from the X-WP-Total / X-WP-TotalPages
// response headers.
func readPage(h http.Header, query url.Values) *models.Page {
	total := h.Get("X-WP-Total")
	if total == "" {
		return nil
	}
	page := &models.Page{Page: 1, PerPage: 10}
	page.Total, _ = strconv.Atoi(total)
	page.TotalPages, _ = strconv.Atoi(h.Get("X-WP-TotalPages"))
	if p := query.Get("page"); p != "" {
		page.Page, _ = strconv.Atoi(p)
	}
	if pp := query.Get("per_page"); pp != "" {
		page.PerPage, _ = strconv.Atoi(pp)
	}
	return page
}

// ListOptions are the standard WooCommerce list parameters.
type ListOptions struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	OrderBy string
	Order   string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.OrderBy != "" {
		q.Set("orderby", o.OrderBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	return q
}
