// Package translate holds the MyMemory HTTP client, the free translation
// backend used by the best-effort translator.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"parley/internal/shared/config"
	"parley/internal/shared/logger"
)

const (
	defaultBaseURL        = "https://api.mymemory.translated.net/get"
	defaultTimeout        = 5 * time.Second
	defaultMaxQueryLength = 200
	userAgent             = "parley-support-desk"
)

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// MyMemoryClient calls the MyMemory GET endpoint. Queries are truncated to
// the free tier's length limit before sending.
type MyMemoryClient struct {
	baseURL        string
	maxQueryLength int
	httpClient     *http.Client
	logger         logger.Interface
}

func NewMyMemoryClient(cfg *config.TranslateConfig, logger logger.Interface) *MyMemoryClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxLen := cfg.MaxQueryLength
	if maxLen <= 0 {
		maxLen = defaultMaxQueryLength
	}
	return &MyMemoryClient{
		baseURL:        baseURL,
		maxQueryLength: maxLen,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

func (c *MyMemoryClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	runes := []rune(text)
	if len(runes) > c.maxQueryLength {
		runes = runes[:c.maxQueryLength]
	}

	params := url.Values{}
	params.Set("q", string(runes))
	params.Set("langpair", fmt.Sprintf("%s|%s", source, target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation request returned status %d", resp.StatusCode)
	}

	var body myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}

	return body.ResponseData.TranslatedText, nil
}
