package chat

import "chatdeck/internal/models"

// Session is the per-launch state: from Start until the next navigation.
type Session struct {
	SelectedAgent        *models.Agent
	ActiveConversationID int64
	DeveloperMode        bool
	ViewerMode           bool
	ViewerConversationID int64
	Pending              bool
}

// Mode derives the display mode. Viewer wins over the developer flag.
func (s Session) Mode() Mode {
	switch {
	case s.ViewerMode:
		return ModeViewer
	case s.DeveloperMode:
		return ModeDeveloper
	default:
		return ModeNormal
	}
}

func (s Session) HasAgent() bool {
	return s.SelectedAgent != nil
}

// HasConversation reports whether the next send continues an existing
// conversation.
func (s Session) HasConversation() bool {
	return s.ActiveConversationID != 0
}

// Header is the title block above the transcript.
type Header struct {
	Title    string
	Subtitle string
}
