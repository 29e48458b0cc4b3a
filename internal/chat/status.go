package chat

import "time"

// Tone is the visual treatment of the status line.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneError
	ToneSuccess
)

func (t Tone) String() string {
	switch t {
	case ToneError:
		return "error"
	case ToneSuccess:
		return "success"
	default:
		return "neutral"
	}
}

const (
	ErrorDisplayTime   = 5 * time.Second
	SuccessDisplayTime = 3 * time.Second
)

const (
	StatusReady    = "Ready to chat"
	StatusNoAgent  = "Select an agent to start chatting"
	StatusThinking = "AI is thinking..."
)

const (
	msgSelectAgent         = "Please select an agent first"
	msgSendFailed          = "Failed to send message. Please try again."
	msgLoadAgents          = "Failed to load agents"
	msgLoadConversations   = "Failed to load conversations"
	msgLoadConversation    = "Failed to load conversation"
	msgIncorrectSecret     = "Incorrect password"
	msgDeveloperOn         = "Developer mode enabled"
	msgDeveloperOff        = "Developer mode disabled"
	msgSelectedFmt         = "Selected %s"
	msgTokensUsedFmt       = "Tokens used: %s"
	msgTokensNotApplicable = "N/A"
)

// Status is a snapshot of the status line.
type Status struct {
	Text string
	Tone Tone
}

// Expiry identifies the auto-clear owed to one notification.
type Expiry struct {
	Gen   uint64
	After time.Duration
}

// Notifier is the single-slot status line. A notification sets text and tone
// and owes one auto-clear; a later notification supersedes the earlier one's
// auto-clear. Plain text updates do not.
type Notifier struct {
	cur Status
	gen uint64
}

func (n *Notifier) Current() Status {
	return n.cur
}

// SetText replaces the line with neutral text.
func (n *Notifier) SetText(text string) {
	n.cur = Status{Text: text, Tone: ToneNeutral}
}

// Error shows an error notification.
func (n *Notifier) Error(text string) Expiry {
	return n.notify(ToneError, text, ErrorDisplayTime)
}

// Success shows a success notification.
func (n *Notifier) Success(text string) Expiry {
	return n.notify(ToneSuccess, text, SuccessDisplayTime)
}

func (n *Notifier) notify(tone Tone, text string, after time.Duration) Expiry {
	n.gen++
	n.cur = Status{Text: text, Tone: tone}
	return Expiry{Gen: n.gen, After: after}
}

// Expire applies the auto-clear for gen. The tone always returns to neutral;
// the text is replaced by idle only when restore is set. Stale generations
// are ignored. It reports whether anything changed.
func (n *Notifier) Expire(gen uint64, restore bool, idle string) bool {
	if gen != n.gen {
		return false
	}
	n.cur.Tone = ToneNeutral
	if restore {
		n.cur.Text = idle
	}
	return true
}
