package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/pkg/config"
)

// ScriptRepository delivers flat key/value payloads to the Apps-Script-style
// write endpoint. The endpoint's response policy is outside our control, so
// delivery is optimistic: a payload that was dispatched but whose response
// cannot be verified still counts as success. Callers must treat success as
// "dispatched", never as "confirmed applied".
type ScriptRepository struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewScriptRepository constructs the write gateway.
func NewScriptRepository(cfg config.ScriptConfig, logger *zap.Logger) *ScriptRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptRepository{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		logger:     logger,
	}
}

type scriptResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Deliver posts the payload, first as JSON expecting a verifiable response,
// then url-encoded fire-and-forget when the primary attempt fails. Only both
// transports failing surfaces an error.
func (r *ScriptRepository) Deliver(ctx context.Context, payload map[string]string) error {
	if r.url == "" {
		return fmt.Errorf("script endpoint not configured")
	}

	primaryErr := r.deliverJSON(ctx, payload)
	if primaryErr == nil {
		return nil
	}

	r.logger.Warn("primary delivery failed, falling back to form transport", zap.Error(primaryErr))

	if fallbackErr := r.deliverForm(ctx, payload); fallbackErr != nil {
		return fmt.Errorf("deliver payload: %w (primary: %v)", fallbackErr, primaryErr)
	}

	return nil
}

func (r *ScriptRepository) deliverJSON(ctx context.Context, payload map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post payload: %w", err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		// Response was delivered but cannot be introspected; the call was
		// dispatched, which is the most this endpoint lets us verify.
		r.logger.Info("delivery response opaque, assuming dispatched")
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var result scriptResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("decode delivery response: %w", err)
		}
		if !result.Success {
			if result.Message != "" {
				return fmt.Errorf("endpoint rejected payload: %s", result.Message)
			}
			return fmt.Errorf("endpoint rejected payload")
		}
		return nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

// deliverForm is the unverifiable second transport: the response body is
// deliberately not read and dispatch without a transport error is success.
func (r *ScriptRepository) deliverForm(ctx context.Context, payload map[string]string) error {
	form := url.Values{}
	for key, value := range payload {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build fallback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post fallback payload: %w", err)
	}
	_ = resp.Body.Close()

	return nil
}
