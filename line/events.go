package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// WebhookBody is the top-level webhook payload from the LINE Platform.
type WebhookBody struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Event is a single webhook event.
type Event struct {
	Type       string   `json:"type"` // "message", "follow", "unfollow", ...
	Timestamp  int64    `json:"timestamp"`
	ReplyToken string   `json:"replyToken,omitempty"`
	Source     Source   `json:"source"`
	Message    *Message `json:"message,omitempty"`
}

// Source identifies where an event came from.
type Source struct {
	Type   string `json:"type"` // "user", "group", "room"
	UserID string `json:"userId,omitempty"`
}

// Message is an incoming message.
type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "text", "image", "sticker", ...
	Text string `json:"text,omitempty"`
}

// VerifySignature checks the X-Line-Signature header: base64 of the
// HMAC-SHA256 of the raw body keyed with the channel secret.
func VerifySignature(channelSecret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
