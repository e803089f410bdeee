package platform

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

var ErrMissingCredentials = errors.New("api key and secret are required")

const defaultTimeout = 10 * time.Second

// Response is the decoded JSON body returned by the marketing platform.
type Response map[string]any

// HasError reports whether the platform answered with an error object.
func (r Response) HasError() bool {
	_, ok := r["error"]

	return ok
}

// ErrorMessage returns the platform's errormsg field, if any.
func (r Response) ErrorMessage() string {
	msg, _ := r["errormsg"].(string)

	return msg
}

type Client struct {
	apiKey  string
	secret  string
	baseURL string
	http    *http.Client
}

type option func(*Client)

//goland:noinspection GoExportedFuncWithUnexportedType
func WithHTTPClient(c *http.Client) option {
	return func(cl *Client) {
		cl.http = c
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewClient(apiKey, secret, baseURL string, opts ...option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(secret) == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		apiKey:  apiKey,
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetSettings fetches the account settings. A platform-level error is
// reported through Response.HasError, not as a Go error.
func (c *Client) GetSettings(ctx context.Context) (Response, error) {
	params := map[string]string{
		"api_key": c.apiKey,
		"format":  "json",
	}
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("sig", Signature(c.secret, params))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/settings?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build settings request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call settings endpoint: %w", err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode settings response (status %d): %w", resp.StatusCode, err)
	}

	return out, nil
}

// Signature is md5(secret + param values sorted lexically), hex encoded.
func Signature(secret string, params map[string]string) string {
	values := make([]string, 0, len(params))
	for _, v := range params {
		values = append(values, v)
	}
	sort.Strings(values)

	sum := md5.Sum([]byte(secret + strings.Join(values, "")))

	return hex.EncodeToString(sum[:])
}
