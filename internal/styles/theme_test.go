package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(LightTheme.Name) })

	got := Apply("dark")
	assert.Equal(t, DarkTheme.Name, got.Name)
	assert.Equal(t, DarkTheme.Name, CurrentTheme.Name)
	assert.Equal(t, DarkTheme.TextMuted, HintColor)

	assert.Equal(t, LightTheme.Name, Apply("sepia").Name, "unknown names fall back to light")
}

func TestRoleColor(t *testing.T) {
	Apply(LightTheme.Name)
	assert.Equal(t, RoleColors["user"], RoleColor("user"))
	assert.Equal(t, LightTheme.TextMuted, RoleColor("narrator"))
}

func TestSetContentWidth(t *testing.T) {
	t.Cleanup(func() { SetContentWidth(54) })

	SetContentWidth(30)
	assert.Equal(t, 30, ContentWidth)
	assert.Equal(t, 30, ModalItemStyle.GetWidth())
}
