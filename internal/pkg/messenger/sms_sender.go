package messenger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SmsSender posts messages to an HTTP SMS gateway. The subject argument is
// ignored, SMS has no subject line.
type SmsSender struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

func NewSmsSender(gatewayURL, apiKey string) *SmsSender {
	return &SmsSender{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type smsGatewayRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (s *SmsSender) Send(to, _ string, body string) error {
	payload, err := json.Marshal(smsGatewayRequest{To: to, Message: body})
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway rejected message to %s: status %d", to, resp.StatusCode)
	}
	return nil
}
