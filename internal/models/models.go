package models

import (
	"strconv"
	"strings"
	"time"

	"chatdeck/internal/logger"
)

// Role identifies who authored a message. Values outside the known set are
// kept verbatim so an unfamiliar backend role still renders.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
	RoleFunction  Role = "function"
)

// Conversational reports whether r is shown outside developer and viewer modes.
func (r Role) Conversational() bool {
	return r == RoleUser || r == RoleAssistant
}

const DefaultAgentColor = "#3b82f6"

type Agent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
}

// Label returns the name shown for the agent.
func (a Agent) Label() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Blurb returns the description, or a generic one.
func (a Agent) Blurb() string {
	if a.Description != "" {
		return a.Description
	}
	return "AI assistant"
}

// Accent returns the agent color, or the default accent.
func (a Agent) Accent() string {
	if a.Color != "" {
		return a.Color
	}
	return DefaultAgentColor
}

type ConversationSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// DisplayTitle falls back to a numbered title when the backend has none.
func (c ConversationSummary) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "Conversation " + strconv.FormatInt(c.ID, 10)
}

type ConversationDetail struct {
	ID        int64     `json:"id"`
	AgentName string    `json:"agent_name,omitempty"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages       []Message `json:"messages"`
	AgentID        int64     `json:"agent_id"`
	ConversationID int64     `json:"conversation_id,omitempty"`
}

type Usage struct {
	TotalTokens int64 `json:"total_tokens"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID int64  `json:"conversation_id,omitempty"`
	Usage          *Usage `json:"usage,omitempty"`
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO layouts some
// backends emit. Zone-less values are read as UTC. Anything else decodes to
// the zero time so one bad date does not sink the whole list.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	logger.WithComponent("models").Warn("unrecognized timestamp", "value", raw)
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339Nano))), nil
}
