package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	drepo "MacroGold/internal/domain/repository"
	xhttp "MacroGold/pkg/http"
	"MacroGold/pkg/logger"
)

// Telegram rejects messages longer than this many characters.
const maxMessageLen = 4096

// Client implements a Notifier backed by the Telegram Bot API. When the
// token or chat id is absent the digest is emitted through the logger
// instead; a missing destination is a valid configuration, not an error.
type Client struct {
	token   string
	chatID  string
	apiBase string
	client  *xhttp.Client
	log     *logger.Logger
}

// New creates a new Telegram Notifier.
func New(token, chatID, apiBase string, timeout time.Duration, log *logger.Logger) drepo.Notifier {
	return &Client{
		token:   token,
		chatID:  chatID,
		apiBase: strings.TrimRight(apiBase, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
	}
}

// Configured reports whether an outbound destination is set.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify delivers the digest, splitting on section boundaries when it
// exceeds the Telegram message limit.
func (c *Client) Notify(ctx context.Context, text string) error {
	if !c.Configured() {
		// local-only output; the run still succeeds
		c.log.Info("telegram not configured, digest follows")
		fmt.Println(text)
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	for _, chunk := range splitMessage(text, maxMessageLen) {
		var res sendMessageResponse
		err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    url,
			Body:   sendMessageRequest{ChatID: c.chatID, Text: chunk},
		}, &res)
		if err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
		if !res.OK {
			return fmt.Errorf("telegram send: %s", res.Description)
		}
	}
	c.log.Info("digest delivered", logger.String("chat_id", c.chatID))
	return nil
}

// splitMessage cuts text into chunks of at most limit characters, preferring
// blank-line section boundaries so sections stay intact.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	for _, section := range strings.Split(text, "\n\n") {
		// a single oversize section gets hard-cut
		for len(section) > limit {
			chunks = append(chunks, flush(&cur), section[:limit])
			section = section[limit:]
		}
		if cur.Len() > 0 && cur.Len()+2+len(section) > limit {
			chunks = append(chunks, flush(&cur))
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(section)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}

	out := chunks[:0]
	for _, ch := range chunks {
		if ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

func flush(b *strings.Builder) string {
	s := b.String()
	b.Reset()
	return s
}
