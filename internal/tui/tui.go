// Package tui provides the terminal chat view: an input line, the
// conversation transcript, a typing indicator while a reply is in
// flight, and an error banner that clears on the next attempt.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cuisine-chat/internal/chatclient"
	"cuisine-chat/internal/domain/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	botStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	typingStyle = lipgloss.NewStyle().Faint(true)
)

// replyMsg settles the in-flight exchange with the bot reply.
type replyMsg struct{ reply string }

// replyErrMsg settles it with a failure.
type replyErrMsg struct{ err error }

// Model is the Bubble Tea model for the chat client.
type Model struct {
	conv   *chatclient.Conversation
	client *chatclient.Client

	input    textinput.Model
	spin     spinner.Model
	width    int
	quitting bool
}

func New(client *chatclient.Client) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask me about Brazilian food..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		conv:   chatclient.NewConversation(),
		client: client,
		input:  ti,
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			// Submit is a no-op while awaiting or on blank input, so
			// the enter key needs no guarding of its own.
			if userMsg, ok := m.conv.Submit(m.input.Value()); ok {
				m.input.Reset()
				return m, tea.Batch(m.spin.Tick, m.sendCmd(userMsg.Content))
			}
			return m, nil
		}

	case replyMsg:
		m.conv.Resolve(msg.reply)
		return m, nil

	case replyErrMsg:
		m.conv.Fail(msg.err)
		return m, nil

	case spinner.TickMsg:
		if m.conv.AwaitingReply() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendCmd runs the exchange off the update loop and reports back with
// a settled message. No timeout: a hung call leaves the typing
// indicator up, matching the server's no-cancellation contract.
func (m Model) sendCmd(content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), content)
		if err != nil {
			return replyErrMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Brazilian Cuisine Assistant"))
	b.WriteString("\n")
	b.WriteString(typingStyle.Render("Ask me about Brazilian food! (esc to quit)"))
	b.WriteString("\n\n")

	for _, msg := range m.conv.Messages() {
		switch msg.Sender {
		case model.SenderUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(botStyle.Render("Assistant: "))
		}
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}

	if m.conv.AwaitingReply() {
		b.WriteString(m.spin.View())
		b.WriteString(typingStyle.Render(" Assistant is typing..."))
		b.WriteString("\n\n")
	}

	if errText := m.conv.LastError(); errText != "" {
		b.WriteString(errorStyle.Render(errText))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}
