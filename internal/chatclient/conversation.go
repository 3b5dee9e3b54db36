package chatclient

import (
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"cuisine-chat/internal/domain/model"
)

// User-visible copy for failed exchanges.
const (
	rateLimitErrorText = "Rate limit exceeded. Please wait a moment before sending another message."
	genericErrorText   = "An error occurred. Please try again."
	networkErrorText   = "Network error. Please check your connection and try again."
)

// Conversation owns the ordered message list, the awaiting-reply flag
// and the last error for one browser/terminal session. Messages are
// appended optimistically on submit and never retracted; everything is
// lost when the session ends.
//
// Exactly one exchange is in flight at a time: Submit refuses while a
// previous one has not settled, so the caller only has to disable its
// input control.
type Conversation struct {
	messages []model.Message
	awaiting bool
	lastErr  string
	newID    func() string
	now      func() time.Time
}

func NewConversation() *Conversation {
	return &Conversation{
		newID: newMessageID,
		now:   time.Now,
	}
}

// Submit clears the last error and appends the user message before any
// network activity starts. It reports false (no state change) when the
// trimmed content is empty or an exchange is already in flight.
func (c *Conversation) Submit(content string) (model.Message, bool) {
	if strings.TrimSpace(content) == "" || c.awaiting {
		return model.Message{}, false
	}
	c.lastErr = ""
	msg := model.Message{
		ID:        c.newID(),
		Content:   content,
		Sender:    model.SenderUser,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, msg)
	c.awaiting = true
	return msg, true
}

// Resolve settles the in-flight exchange with the bot reply.
func (c *Conversation) Resolve(reply string) model.Message {
	msg := model.Message{
		ID:        c.newID(),
		Content:   reply,
		Sender:    model.SenderBot,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, msg)
	c.awaiting = false
	return msg
}

// Fail settles the in-flight exchange with an error. The optimistic
// user message stays visible.
func (c *Conversation) Fail(err error) {
	c.awaiting = false
	c.lastErr = errorText(err)
}

func errorText(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return networkErrorText
	}
	switch {
	case apiErr.StatusCode == 429:
		return rateLimitErrorText
	case apiErr.StatusCode == 400:
		return apiErr.Message
	case apiErr.Message != "":
		return apiErr.Message
	default:
		return genericErrorText
	}
}

// Messages returns the ordered conversation so far.
func (c *Conversation) Messages() []model.Message {
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// AwaitingReply reports whether an exchange is in flight.
func (c *Conversation) AwaitingReply() bool { return c.awaiting }

// LastError returns the current error banner text, empty when none.
func (c *Conversation) LastError() string { return c.lastErr }

var idCounter atomic.Int64

// newMessageID prefers a random UUID; when entropy is unavailable it
// falls back to a timestamp+counter string, unique enough within one
// session.
func newMessageID() string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return newFallbackID()
}

func newFallbackID() string {
	return "msg-" + strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatInt(idCounter.Add(1), 10)
}
