package chat

import "chatdeck/internal/models"

// SelectVisibleMessages returns the messages to display. With either mode
// flag set every message is shown; otherwise only user and assistant
// messages are kept. Order is preserved and the input is never modified.
func SelectVisibleMessages(messages []models.Message, developerMode, viewerMode bool) []models.Message {
	if viewerMode || developerMode {
		out := make([]models.Message, len(messages))
		copy(out, messages)
		return out
	}

	out := make([]models.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role.Conversational() {
			out = append(out, msg)
		}
	}
	return out
}
