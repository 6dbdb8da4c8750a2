package profile

import "strings"

// maxGoals caps how many goals one user may keep; the newest win
const maxGoals = 200

// maxChatMessages caps stored chat history per user
const maxChatMessages = 200

// Goal is one lifestyle goal on a user's profile
type Goal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Completed bool   `json:"completed"`
}

// ChatMessage is one stored assistant-conversation turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	SentAt  string `json:"sentAt,omitempty"`
}

// SanitizeGoals cleans client-submitted goals: titles are trimmed, blank
// entries dropped, frequencies coerced to Daily or Weekly, and only the
// last maxGoals entries survive.
func SanitizeGoals(raw []Goal) []Goal {
	out := make([]Goal, 0, len(raw))
	for _, goal := range raw {
		title := strings.TrimSpace(goal.Title)
		if title == "" {
			continue
		}

		frequency := "Daily"
		if strings.EqualFold(strings.TrimSpace(goal.Frequency), "weekly") {
			frequency = "Weekly"
		}

		out = append(out, Goal{
			ID:        strings.TrimSpace(goal.ID),
			Title:     title,
			Frequency: frequency,
			Completed: goal.Completed,
		})
	}

	if len(out) > maxGoals {
		out = out[len(out)-maxGoals:]
	}
	return out
}

// SanitizeChatHistory drops messages with blank content and keeps the last
// maxChatMessages entries. Unknown roles degrade to "user".
func SanitizeChatHistory(raw []ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(raw))
	for _, message := range raw {
		content := strings.TrimSpace(message.Content)
		if content == "" {
			continue
		}

		role := strings.ToLower(strings.TrimSpace(message.Role))
		if role != "user" && role != "assistant" {
			role = "user"
		}

		out = append(out, ChatMessage{
			Role:    role,
			Content: content,
			SentAt:  message.SentAt,
		})
	}

	if len(out) > maxChatMessages {
		out = out[len(out)-maxChatMessages:]
	}
	return out
}
