package chat

import (
	"crypto/subtle"
	"net/url"
	"regexp"
	"strconv"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeDeveloper
	ModeViewer
)

func (m Mode) String() string {
	switch m {
	case ModeDeveloper:
		return "developer"
	case ModeViewer:
		return "viewer"
	default:
		return "normal"
	}
}

// Visibility lists which regions and controls a mode shows.
type Visibility struct {
	AgentList        bool
	ConversationList bool
	Composer         bool
	DeveloperToggle  bool
	ClearChat        bool
	BackToChat       bool
}

// VisibilityFor maps a mode to its regions. Viewer hides every interactive
// region regardless of the developer flag.
func VisibilityFor(mode Mode) Visibility {
	switch mode {
	case ModeViewer:
		return Visibility{BackToChat: true}
	case ModeDeveloper:
		return Visibility{
			AgentList:        true,
			ConversationList: true,
			Composer:         true,
			DeveloperToggle:  true,
			ClearChat:        true,
		}
	default:
		return Visibility{
			AgentList:       true,
			Composer:        true,
			DeveloperToggle: true,
			ClearChat:       true,
		}
	}
}

var conversationPathRE = regexp.MustCompile(`^/conversations/(\d+)$`)

// ParseLocation reports whether location (a path or absolute URL) names a
// single conversation, and which one.
func ParseLocation(location string) (int64, bool) {
	path := location
	if u, err := url.Parse(location); err == nil {
		path = u.Path
	}
	m := conversationPathRE.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ConversationLocation is the location that opens id in viewer mode.
func ConversationLocation(id int64) string {
	return "/conversations/" + strconv.FormatInt(id, 10)
}

// Gate decides whether a supplied secret unlocks developer mode.
type Gate interface {
	Allow(secret string) bool
}

// SecretGate compares against one shared secret. It is a display gate, not
// an access control.
type SecretGate struct {
	Secret string
}

func (g SecretGate) Allow(secret string) bool {
	if g.Secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(g.Secret)) == 1
}

// GateFunc adapts a function to Gate.
type GateFunc func(secret string) bool

func (f GateFunc) Allow(secret string) bool {
	return f(secret)
}
