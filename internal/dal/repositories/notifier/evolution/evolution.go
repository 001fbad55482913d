package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// EvolutionNotifier sends outbound WhatsApp messages through an Evolution
// API instance.
type EvolutionNotifier struct {
	baseURL  string
	apiKey   string
	instance string
	client   *http.Client
}

// NewEvolutionNotifier creates a notifier from viper config
// (evolution.base_url, evolution.api_key, evolution.instance).
func NewEvolutionNotifier() *EvolutionNotifier {
	return &EvolutionNotifier{
		baseURL:  viper.GetString("evolution.base_url"),
		apiKey:   viper.GetString("evolution.api_key"),
		instance: viper.GetString("evolution.instance"),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendTextRequest struct {
	Number  string `json:"number"`
	Options struct {
		Delay       int    `json:"delay"`
		Presence    string `json:"presence"`
		LinkPreview bool   `json:"linkPreview"`
	} `json:"options"`
	TextMessage struct {
		Text string `json:"text"`
	} `json:"textMessage"`
}

// Notify posts a sendText request. WhatsApp has no button primitive here, so
// a CTA is rendered as a trailing link.
func (n *EvolutionNotifier) Notify(ctx context.Context, recipient string, text string, cta *message.CTA) error {
	if cta != nil {
		text = fmt.Sprintf("%s\n\n%s", text, cta.Link)
	}

	payload := sendTextRequest{Number: recipient}
	payload.Options.Delay = 1200
	payload.Options.Presence = "composing"
	payload.Options.LinkPreview = true
	payload.TextMessage.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendText request: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", n.baseURL, n.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sendText request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call evolution api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("evolution api returned status %d", resp.StatusCode)
	}

	return nil
}
