// Package httpapi embeds phrases through any OpenAI compatible /embeddings endpoint.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "text-embedding-3-small"
	userAgent      = "spigell/hr-matcher"
	// Inputs per request. Most compatible providers cap a request well above this.
	maxBatch = 64
)

type Client struct {
	token      string
	logger     *zap.Logger
	model      string
	dimensions int
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// New creates a client for baseURL. An empty baseURL or model falls back to the OpenAI defaults.
func New(logger *zap.Logger, baseURL, token, model string, dimensions int) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{
		token:      strings.TrimSpace(token),
		logger:     logger,
		model:      model,
		dimensions: max(dimensions, 0),
		BaseURL:    baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: userAgent,
	}
}

func (c *Client) Model() string {
	return c.model
}
