package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		location string
		id       int64
		ok       bool
	}{
		{"/conversations/42", 42, true},
		{"https://chat.example.com/conversations/7", 7, true},
		{"/conversations/42?tab=1", 42, true},
		{"/", 0, false},
		{"", 0, false},
		{"/conversations", 0, false},
		{"/conversations/", 0, false},
		{"/conversations/abc", 0, false},
		{"/conversations/0", 0, false},
		{"/conversations/-3", 0, false},
		{"/conversations/42/extra", 0, false},
		{"/other/conversations/42", 0, false},
		{"/conversations/99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			id, ok := ParseLocation(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestConversationLocationRoundTrip(t *testing.T) {
	id, ok := ParseLocation(ConversationLocation(123))
	assert.True(t, ok)
	assert.Equal(t, int64(123), id)
}

func TestVisibilityFor(t *testing.T) {
	viewer := VisibilityFor(ModeViewer)
	assert.Equal(t, Visibility{BackToChat: true}, viewer)

	dev := VisibilityFor(ModeDeveloper)
	assert.True(t, dev.ConversationList)
	assert.True(t, dev.Composer)
	assert.False(t, dev.BackToChat)

	normal := VisibilityFor(ModeNormal)
	assert.False(t, normal.ConversationList)
	assert.True(t, normal.AgentList)
	assert.True(t, normal.Composer)
	assert.True(t, normal.DeveloperToggle)
	assert.False(t, normal.BackToChat)
}

func TestSessionModeViewerWins(t *testing.T) {
	s := Session{ViewerMode: true, DeveloperMode: true}
	assert.Equal(t, ModeViewer, s.Mode())
	assert.Equal(t, "viewer", s.Mode().String())

	s.ViewerMode = false
	assert.Equal(t, ModeDeveloper, s.Mode())
}

func TestSecretGate(t *testing.T) {
	g := SecretGate{Secret: "mellon"}
	assert.True(t, g.Allow("mellon"))
	assert.False(t, g.Allow("Mellon"))
	assert.False(t, g.Allow(""))

	assert.False(t, SecretGate{}.Allow(""), "empty secret never unlocks")

	calls := 0
	f := GateFunc(func(string) bool { calls++; return true })
	assert.True(t, f.Allow("anything"))
	assert.Equal(t, 1, calls)
}
