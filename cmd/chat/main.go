// File: cmd/chat/main.go
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"cuisine-chat/internal/chatclient"
	"cuisine-chat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	client := chatclient.NewClient(os.Getenv("CHAT_API_URL"))
	p := tea.NewProgram(tui.New(client))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat client error: %v\n", err)
		os.Exit(1)
	}
}
