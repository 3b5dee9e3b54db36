package chatclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuisine-chat/internal/domain/model"
)

func TestSubmitAppendsOptimistically(t *testing.T) {
	c := NewConversation()

	msg, ok := c.Submit("What is feijoada?")
	require.True(t, ok)

	assert.Equal(t, model.SenderUser, msg.Sender)
	assert.Equal(t, "What is feijoada?", msg.Content)
	assert.NotEmpty(t, msg.ID)

	// The user bubble is visible before the network call settles.
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, msg, msgs[0])
	assert.True(t, c.AwaitingReply())
	assert.Empty(t, c.LastError())
}

func TestSubmitNoOpOnBlankInput(t *testing.T) {
	c := NewConversation()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, ok := c.Submit(input)
		assert.False(t, ok, "input %q", input)
	}
	assert.Empty(t, c.Messages())
	assert.False(t, c.AwaitingReply())
}

func TestSubmitNoOpWhileAwaiting(t *testing.T) {
	c := NewConversation()

	_, ok := c.Submit("first")
	require.True(t, ok)

	_, ok = c.Submit("second")
	assert.False(t, ok)
	assert.Len(t, c.Messages(), 1)
}

func TestRoundTrip(t *testing.T) {
	c := NewConversation()

	user, ok := c.Submit("X")
	require.True(t, ok)
	bot := c.Resolve("reply to X")

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, user, msgs[0])
	assert.Equal(t, bot, msgs[1])
	assert.Equal(t, model.SenderBot, msgs[1].Sender)
	assert.False(t, c.AwaitingReply())
	assert.Empty(t, c.LastError())
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestFailKeepsOptimisticMessage(t *testing.T) {
	c := NewConversation()

	_, ok := c.Submit("hello")
	require.True(t, ok)

	c.Fail(&APIError{StatusCode: 503, Message: "AI service temporarily unavailable. Please try again."})

	require.Len(t, c.Messages(), 1)
	assert.Equal(t, model.SenderUser, c.Messages()[0].Sender)
	assert.False(t, c.AwaitingReply())
	assert.Equal(t, "AI service temporarily unavailable. Please try again.", c.LastError())
}

func TestErrorCopyByKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rate limited uses fixed guidance",
			err:  &APIError{StatusCode: 429, Message: "Too many requests. Please try again later."},
			want: "Rate limit exceeded. Please wait a moment before sending another message.",
		},
		{
			name: "validation surfaces server message verbatim",
			err:  &APIError{StatusCode: 400, Message: "Message cannot be empty"},
			want: "Message cannot be empty",
		},
		{
			name: "other statuses surface server message",
			err:  &APIError{StatusCode: 500, Message: "something broke"},
			want: "something broke",
		},
		{
			name: "other statuses fall back when message empty",
			err:  &APIError{StatusCode: 500},
			want: "An error occurred. Please try again.",
		},
		{
			name: "non-API errors are network failures",
			err:  errors.New("dial tcp: connection refused"),
			want: "Network error. Please check your connection and try again.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConversation()
			_, ok := c.Submit("hi")
			require.True(t, ok)
			c.Fail(tc.err)
			assert.Equal(t, tc.want, c.LastError())
		})
	}
}

func TestNextSubmitClearsErrorBanner(t *testing.T) {
	c := NewConversation()

	_, _ = c.Submit("first")
	c.Fail(&APIError{StatusCode: 429})
	require.NotEmpty(t, c.LastError())

	_, ok := c.Submit("second")
	require.True(t, ok)
	assert.Empty(t, c.LastError())

	c.Resolve("reply")
	assert.Empty(t, c.LastError())
}

func TestMessageIDsPracticallyUnique(t *testing.T) {
	c := NewConversation()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		msg, ok := c.Submit("m")
		require.True(t, ok)
		require.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
		c.Resolve("r")
	}
}

func TestFallbackIDGenerator(t *testing.T) {
	c := NewConversation()
	c.newID = func() string { return newFallbackID() }

	a, _ := c.Submit("one")
	b := c.Resolve("two")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
