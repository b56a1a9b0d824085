package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/dmitrijs2005/docscan/internal/logging"
	"github.com/dmitrijs2005/docscan/internal/models"
)

// OpenAIClassifier talks to an OpenAI-compatible chat/completions endpoint
// and sends the image inline as a data URL.
type OpenAIClassifier struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	log      logging.Logger
}

func NewOpenAIClassifier(endpoint, apiKey, model string, timeout time.Duration, log logging.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string            `json:"role"`
	Content []chatContentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Classify sends one image for analysis. Transport and HTTP-status failures
// come back as errors; a successful call with unexpected content degrades to
// an unstructured result instead.
func (c *OpenAIClassifier) Classify(ctx context.Context, image []byte, mimeType, langHint string) (*models.AnalysisResult, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContentPart{
				{Type: "text", Text: buildPrompt(langHint)},
				{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}},
			},
		}},
		MaxTokens:   1500,
		Temperature: 0.1,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", common.ErrExternalService, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn(ctx, "classification request failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrExternalService, resp.StatusCode, snippet(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", common.ErrExternalService, err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrExternalService, chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contains no choices", common.ErrExternalService)
	}

	result := decodeAnalysis(chat.Choices[0].Message.Content)
	result.ProcessingMs = time.Since(started).Milliseconds()
	return result, nil
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
