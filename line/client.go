package line

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.line.me/v2/bot"

// Client talks to the LINE Messaging API. Reply messages ride on the reply
// token of an inbound event; push messages target a user directly.
type Client struct {
	accessToken string
	apiBase     string
	httpClient  *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		apiBase:     defaultAPIBase,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetAPIBase overrides the API endpoint, used by tests.
func (c *Client) SetAPIBase(base string) {
	c.apiBase = base
}

// TextMessage is the only message shape this bot sends.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func newTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// ReplyText answers an inbound event within its reply-token window.
func (c *Client) ReplyText(replyToken, text string) error {
	if replyToken == "" {
		return fmt.Errorf("line: empty reply token")
	}

	payload := map[string]interface{}{
		"replyToken": replyToken,
		"messages":   []TextMessage{newTextMessage(text)},
	}
	return c.post(c.apiBase+"/message/reply", payload)
}

// PushText delivers a message to a user without an originating request.
func (c *Client) PushText(to, text string) error {
	if to == "" {
		return fmt.Errorf("line: empty push target")
	}

	payload := map[string]interface{}{
		"to":       to,
		"messages": []TextMessage{newTextMessage(text)},
	}
	return c.post(c.apiBase+"/message/push", payload)
}

func (c *Client) post(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("line: marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("line: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("line: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line: HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
