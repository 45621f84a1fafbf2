// Package jobsource resolves job descriptions from inline text, local files or
// vacancies published through an hh.ru compatible API.
package jobsource

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/secrets"
)

const (
	DefaultAPIURL    = "https://api.hh.ru"
	DefaultUserAgent = "spigell/resume-scorer (spigelly@gmail.com)"
	DefaultTimeout   = 10 * time.Second

	// Max value for search per page.
	perPage = "100"

	contentType     = "application/json"
	contentEncoding = "gzip"
)

var ErrNotFound = errors.New("vacancy not found")

type Config struct {
	APIURL    string        `mapstructure:"api-url" validate:"omitempty,url"`
	UserAgent string        `mapstructure:"user-agent"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New builds a client. The token is optional since public vacancies do not need one.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var token string
	if cfg.Token != "" || cfg.TokenFile != "" {
		var err error
		token, err = secrets.Load(secrets.Source{
			Name:  "job source token",
			Value: cfg.Token,
			File:  cfg.TokenFile,
		})
		if err != nil {
			return nil, err
		}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		token:  token,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: DefaultUserAgent,
		APIURL:    DefaultAPIURL,
	}
	if cfg.APIURL != "" {
		c.APIURL = strings.TrimRight(cfg.APIURL, "/")
	}
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}

	return c, nil
}

type itemResponse struct {
	Items   []Item
	Found   int
	Pages   int
	Page    int
	PerPage int `json:"per_page"`
}

type Item interface{}

// GetItems walks the pages of a list endpoint until limit items are collected.
// A limit of zero or less collects every page.
func (c *Client) GetItems(ctx context.Context, endpoint string, q url.Values, limit int) ([]Item, error) {
	var items []Item

	if q == nil {
		q = url.Values{}
	}

	for page := 0; ; page++ {
		q.Set("page", strconv.Itoa(page))

		var response itemResponse
		if err := c.getJSON(ctx, endpoint, q, &response); err != nil {
			return nil, err
		}

		if page == 0 {
			c.logger.Debug("got response from job source", zap.Int("pages", response.Pages), zap.Int("found", response.Found))
		}

		items = append(items, response.Items...)

		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if response.Page >= response.Pages-1 {
			return items, nil
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	default:
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
}
