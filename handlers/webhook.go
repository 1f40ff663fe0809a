package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"linebell/commands"
	"linebell/line"
	"linebell/metrics"
	"linebell/middleware"
)

// Replier answers an inbound message using its reply token.
// Implemented by line.Client.
type Replier interface {
	ReplyText(replyToken, text string) error
}

// ChatCompleter produces the reply for non-command text.
// Implemented by ai.OpenAIClient.
type ChatCompleter interface {
	GetResponse(input string) (string, error)
}

// WebhookHandler is the inbound edge: it verifies LINE webhook deliveries and
// routes each text message to the command executor or the chat backend.
type WebhookHandler struct {
	channelSecret string
	prefix        string
	executor      *commands.Executor
	chat          ChatCompleter
	replier       Replier
	limiter       *middleware.SenderLimiter
	metrics       *metrics.Collector
}

func NewWebhookHandler(channelSecret, prefix string, executor *commands.Executor, chat ChatCompleter, replier Replier, limiter *middleware.SenderLimiter, m *metrics.Collector) *WebhookHandler {
	return &WebhookHandler{
		channelSecret: channelSecret,
		prefix:        prefix,
		executor:      executor,
		chat:          chat,
		replier:       replier,
		limiter:       limiter,
		metrics:       m,
	}
}

// HandleCallback receives webhook deliveries from the LINE Platform.
func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	r.Body.Close()

	if !line.VerifySignature(h.channelSecret, body, r.Header.Get("X-Line-Signature")) {
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	}

	var hook line.WebhookBody
	if err := json.Unmarshal(body, &hook); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	for _, event := range hook.Events {
		h.handleEvent(event)
	}

	w.Write([]byte("OK"))
}

func (h *WebhookHandler) handleEvent(event line.Event) {
	if event.Type != "message" || event.Message == nil {
		return
	}
	if event.Message.Type != "text" || event.Message.Text == "" {
		return
	}

	userID := event.Source.UserID
	if userID == "" {
		return
	}

	if !h.limiter.Allow(userID) {
		log.Printf("Rate limit exceeded for %s, dropping message", userID)
		return
	}

	reply := h.RouteText(userID, event.Message.Text)
	if err := h.replier.ReplyText(event.ReplyToken, reply); err != nil {
		log.Printf("Failed to reply to %s: %v", userID, err)
	}
}

// RouteText classifies inbound text and produces the reply. Command text goes
// through parse+execute; everything else goes to the chat backend. A reply is
// always produced, collaborator failures included.
func (h *WebhookHandler) RouteText(userID, text string) string {
	if strings.HasPrefix(text, h.prefix) {
		cmd := commands.Parse(text)
		h.metrics.RecordCommand(subcommandLabel(cmd))

		reply, err := h.executor.Execute(userID, cmd)
		if err != nil {
			log.Printf("Command failed for %s: %v", userID, err)
			return "指令處理失敗，請稍後再試"
		}
		return reply
	}

	reply, err := h.chat.GetResponse(text)
	h.metrics.RecordChatCompletion(err == nil)
	if err != nil {
		log.Printf("Chat completion failed for %s: %v", userID, err)
		return "發生錯誤: " + err.Error()
	}
	return reply
}

func subcommandLabel(cmd commands.Command) string {
	switch cmd.(type) {
	case commands.Add:
		return "add"
	case commands.AddPeriodic:
		return "add-periodic"
	case commands.Delete:
		return "delete"
	case commands.List:
		return "list"
	default:
		return "unrecognized"
	}
}
