package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"instrument-rental-backend/internal/logger"
)

// scoreThreshold is the minimum zero-shot confidence for a label to count.
const scoreThreshold = 0.5

// HFClassifier performs zero-shot classification against the Hugging Face
// inference API.
type HFClassifier struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewHFClassifier(apiURL, apiKey string, timeout time.Duration) *HFClassifier {
	return &HFClassifier{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type hfResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (c *HFClassifier) Classify(ctx context.Context, text string, labels []string) ([]string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs:     text,
		Parameters: hfParameters{CandidateLabels: labels, MultiLabel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.ExternalServiceCall("huggingface", "zero_shot_classify")
	resp, err := c.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("huggingface", "zero_shot_classify", err)
		return nil, fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("classifier returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("huggingface", "zero_shot_classify", err)
		return nil, err
	}

	var out hfResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.ExternalServiceResult("huggingface", "zero_shot_classify", err)
		return nil, fmt.Errorf("decoding classify response: %w", err)
	}
	logger.ExternalServiceResult("huggingface", "zero_shot_classify", nil)

	var matched []string
	for i, label := range out.Labels {
		if i < len(out.Scores) && out.Scores[i] >= scoreThreshold {
			matched = append(matched, label)
		}
	}
	return matched, nil
}
