package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIProvider calls any OpenAI-compatible embeddings endpoint.
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	model      string
	dimensions int
	maxRetries int
	client     *http.Client
}

func NewOpenAIProvider(baseURL, apiKey, model string, dimensions int, timeout time.Duration, maxRetries int) Provider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "text-embedding-3-large"
	}
	if dimensions <= 0 {
		dimensions = 1536
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: timeout},
	}
}

type openAIEmbeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	reqBody := openAIEmbeddingRequest{
		Model:      p.model,
		Input:      text,
		Dimensions: p.dimensions,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	var values []float32
	err = withRetry(ctx, p.maxRetries, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embeddings", bytes.NewReader(jsonBody))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return markRetryable(err)
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return markRetryable(err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return markRetryable(fmt.Errorf("embedding API status %d: %s", resp.StatusCode, string(bodyBytes)))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("embedding API status %d: %s", resp.StatusCode, string(bodyBytes))
		}

		var apiResp openAIEmbeddingResponse
		if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
			return err
		}
		if len(apiResp.Data) == 0 {
			return fmt.Errorf("embedding API returned no data")
		}
		values = apiResp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, err
	}

	values = normalize(values)
	return &EmbeddingResponse{
		Values:    values,
		Dimension: len(values),
	}, nil
}
