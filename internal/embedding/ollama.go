package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

type OllamaConfig func(client *OllamaClient)

type OllamaClient struct {
	base      url.URL
	http      *http.Client
	keepAlive string
}

const (
	DefaultOllamaURL = "http://localhost:11434"
	defaultTimeout   = 60 * time.Second
)

func NewOllamaClient(baseUrl string, opts ...OllamaConfig) (*OllamaClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &OllamaClient{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) OllamaConfig {
	return func(client *OllamaClient) {
		client.http = httpClient
	}
}

// WithKeepAlive keeps the model loaded between calls, e.g. "10m". The value is
// passed through to Ollama unparsed.
func WithKeepAlive(d string) OllamaConfig {
	return func(client *OllamaClient) {
		client.keepAlive = d
	}
}

type OllamaRequest struct {
	// Model is the model name.
	Model string `json:"model"`

	// Prompt is the textual prompt to embed.
	Prompt string `json:"prompt"`

	// KeepAlive controls how long the model will stay loaded in memory following
	// this request.
	KeepAlive string `json:"keep_alive,omitempty"`

	// Options lists model-specific options.
	Options map[string]any `json:"options"`
}

func (oc *OllamaClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, apperr.NewValidation("missing text to embed")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	oReq := OllamaRequest{
		Model:     req.Model,
		Prompt:    req.Prompt,
		KeepAlive: oc.keepAlive,
		Options:   req.Options,
	}

	var resp Response
	if err := oc.do(ctx, http.MethodPost, "/api/embeddings", oReq, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding for model %q", req.Model)
	}

	return &resp, nil
}

func (oc *OllamaClient) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	if len(req.Inputs) == 0 {
		return nil, apperr.NewValidation("missing inputs to embed")
	}
	if req.Model == "" {
		return nil, apperr.NewValidation("missing model name")
	}

	oReq := OllamaBatchRequest{
		Model:     req.Model,
		Input:     req.Inputs,
		KeepAlive: oc.keepAlive,
		Options:   req.Options,
	}

	var resp BatchResponse
	if err := oc.do(ctx, http.MethodPost, "/api/embed", oReq, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(req.Inputs) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(req.Inputs))
	}

	return &resp, nil
}

// OllamaBatchRequest is the /api/embed payload, which takes "input" rather
// than the single "prompt" of /api/embeddings.
type OllamaBatchRequest struct {
	Model     string         `json:"model"`
	Input     []string       `json:"input"`
	KeepAlive string         `json:"keep_alive,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

func (oc *OllamaClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := oc.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := oc.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama %s: unexpected status code: %d, body: %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
