// Package chat holds the client's state and handlers, independent of any UI
// toolkit. A Controller owns one session; UI code calls its handlers in
// response to user actions, runs the Jobs they queue, and repaints from the
// accessors.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"chatdeck/internal/api"
	"chatdeck/internal/models"
)

// Prefs persists the two client flags across launches.
type Prefs interface {
	Theme() (string, error)
	SetTheme(theme string) error
	DeveloperMode() (bool, error)
	SetDeveloperMode(enabled bool) error
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Controller struct {
	backend api.Backend
	prefs   Prefs
	gate    Gate
	logger  *slog.Logger

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	epoch  uint64

	location      string
	session       Session
	transcript    []models.Message
	header        Header
	status        Notifier
	agents        []models.Agent
	conversations []models.ConversationSummary
	agentsLoading bool
	convsLoading  bool
	theme         string
	chatGen       uint64

	jobs []Job
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithGate replaces the developer-mode check.
func WithGate(g Gate) Option {
	return func(c *Controller) { c.gate = g }
}

// WithContext sets the parent of every session context.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.parent = ctx }
}

// New returns an idle controller. Call Start to begin a session.
func New(backend api.Backend, prefs Prefs, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		prefs:   prefs,
		gate:    SecretGate{},
		logger:  slog.New(slog.DiscardHandler),
		parent:  context.Background(),
		theme:   ThemeLight,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(c.parent)
	return c
}

// Start initializes a session for location. A location naming a single
// conversation enters viewer mode for it; anything else starts normally.
func (c *Controller) Start(location string) {
	c.location = location
	if id, ok := ParseLocation(location); ok {
		c.session.ViewerMode = true
		c.session.ViewerConversationID = id
	}

	dev, err := c.prefs.DeveloperMode()
	if err != nil {
		c.logger.Warn("reading developer flag", "error", err)
	}
	c.session.DeveloperMode = dev

	theme, err := c.prefs.Theme()
	if err != nil {
		c.logger.Warn("reading theme", "error", err)
	}
	if theme == ThemeDark {
		c.theme = ThemeDark
	} else {
		c.theme = ThemeLight
	}

	c.status.SetText(c.idleText())
	c.logger.Info("session started", "location", location, "mode", c.session.Mode().String())

	if c.session.ViewerMode {
		c.loadViewerConversation()
		return
	}
	c.startNormal()
}

// Navigate discards the current session and starts a new one at location.
// In-flight work from the old session is cancelled and its completions are
// ignored.
func (c *Controller) Navigate(location string) {
	c.cancel()
	c.epoch++
	c.ctx, c.cancel = context.WithCancel(c.parent)

	c.session = Session{}
	c.transcript = nil
	c.header = Header{}
	c.status = Notifier{}
	c.agents = nil
	c.conversations = nil
	c.agentsLoading = false
	c.convsLoading = false
	c.jobs = nil

	c.Start(location)
}

// BackToChat leaves viewer mode by navigating to the root location.
func (c *Controller) BackToChat() error {
	if !c.Visibility().BackToChat {
		return ErrUnavailable
	}
	c.Navigate("/")
	return nil
}

// ViewConversation opens a listed conversation in viewer mode.
func (c *Controller) ViewConversation(id int64) error {
	if !c.Visibility().ConversationList {
		return ErrUnavailable
	}
	c.Navigate(ConversationLocation(id))
	return nil
}

// Close cancels in-flight work.
func (c *Controller) Close() {
	c.cancel()
}

func (c *Controller) startNormal() {
	c.loadAgents()
	c.loadConversations()
}

// RefreshAgents reloads the agent list.
func (c *Controller) RefreshAgents() error {
	if !c.Visibility().AgentList {
		return ErrUnavailable
	}
	c.loadAgents()
	return nil
}

// RefreshConversations reloads the conversation list.
func (c *Controller) RefreshConversations() error {
	if c.session.ViewerMode {
		return ErrReadOnly
	}
	c.loadConversations()
	return nil
}

func (c *Controller) loadAgents() {
	c.agentsLoading = true
	c.spawn("load-agents", 0, func(ctx context.Context) func() {
		agents, err := c.backend.ListAgents(ctx)
		return func() {
			c.agentsLoading = false
			if err != nil {
				c.logger.Error("failed to load agents", "error", err)
				c.notifyError(msgLoadAgents)
				return
			}
			c.agents = agents
		}
	})
}

func (c *Controller) loadConversations() {
	c.convsLoading = true
	c.spawn("load-conversations", 0, func(ctx context.Context) func() {
		convs, err := c.backend.ListConversations(ctx)
		return func() {
			c.convsLoading = false
			if err != nil {
				c.logger.Error("failed to load conversations", "error", err)
				c.notifyError(msgLoadConversations)
				return
			}
			c.conversations = convs
		}
	})
}

// OpenConversation fetches id, displays it and makes it the active
// conversation.
func (c *Controller) OpenConversation(id int64) {
	c.spawn("load-conversation", 0, func(ctx context.Context) func() {
		detail, err := c.backend.GetConversation(ctx, id)
		return func() {
			if err != nil {
				c.logger.Error("failed to load conversation", "id", id, "error", err)
				c.notifyError(msgLoadConversation)
				return
			}
			c.displayConversation(detail)
			c.session.ActiveConversationID = id
		}
	})
}

func (c *Controller) loadViewerConversation() {
	id := c.session.ViewerConversationID
	c.spawn("load-viewer-conversation", 0, func(ctx context.Context) func() {
		detail, err := c.backend.GetConversation(ctx, id)
		return func() {
			if err != nil {
				c.logger.Error("failed to load conversation for viewer", "id", id, "error", err)
				c.notifyError(msgLoadConversation)
				c.session.ViewerMode = false
				c.session.ViewerConversationID = 0
				c.startNormal()
				return
			}
			c.displayConversation(detail)
			c.session.ActiveConversationID = id
		}
	})
}

// displayConversation replaces the transcript with the visible part of detail.
func (c *Controller) displayConversation(detail *models.ConversationDetail) {
	c.transcript = SelectVisibleMessages(detail.Messages, c.session.DeveloperMode, c.session.ViewerMode)
	if detail.AgentName != "" {
		c.header = Header{
			Title:    detail.AgentName,
			Subtitle: "Conversation #" + strconv.FormatInt(detail.ID, 10),
		}
	}
}

// SelectAgent makes agent current and starts a fresh chat with it.
func (c *Controller) SelectAgent(agent models.Agent) error {
	if !c.Visibility().AgentList {
		return ErrUnavailable
	}
	a := agent
	c.session.SelectedAgent = &a
	c.header = Header{Title: a.Label(), Subtitle: a.Blurb()}
	c.clearChat()
	c.notifySuccess(fmt.Sprintf(msgSelectedFmt, a.Label()))
	return nil
}

// ClearChat empties the transcript; the next send starts a new conversation.
func (c *Controller) ClearChat() error {
	if !c.Visibility().ClearChat {
		return ErrUnavailable
	}
	c.clearChat()
	return nil
}

func (c *Controller) clearChat() {
	c.chatGen++
	c.transcript = nil
	c.session.ActiveConversationID = 0
	c.status.SetText(c.idleText())
}

// ToggleTheme flips between light and dark and persists the choice.
func (c *Controller) ToggleTheme() string {
	if c.theme == ThemeDark {
		c.theme = ThemeLight
	} else {
		c.theme = ThemeDark
	}
	if err := c.prefs.SetTheme(c.theme); err != nil {
		c.logger.Warn("saving theme", "error", err)
	}
	return c.theme
}

func (c *Controller) idleText() string {
	if c.session.HasAgent() {
		return StatusReady
	}
	return StatusNoAgent
}

func (c *Controller) notifyError(text string) {
	c.schedule(c.status.Error(text))
}

func (c *Controller) notifySuccess(text string) {
	c.schedule(c.status.Success(text))
}

func (c *Controller) schedule(exp Expiry) {
	c.spawn("status-expiry", exp.After, func(context.Context) func() {
		return func() {
			restore := !c.session.Pending && c.session.HasAgent()
			c.status.Expire(exp.Gen, restore, c.idleText())
		}
	})
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	s := c.session
	if s.SelectedAgent != nil {
		a := *s.SelectedAgent
		s.SelectedAgent = &a
	}
	return s
}

func (c *Controller) Mode() Mode {
	return c.session.Mode()
}

func (c *Controller) Visibility() Visibility {
	return VisibilityFor(c.session.Mode())
}

// Transcript returns the displayed messages in order.
func (c *Controller) Transcript() []models.Message {
	out := make([]models.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Controller) Header() Header {
	return c.header
}

func (c *Controller) Status() Status {
	return c.status.Current()
}

func (c *Controller) Agents() []models.Agent {
	return c.agents
}

func (c *Controller) Conversations() []models.ConversationSummary {
	return c.conversations
}

func (c *Controller) AgentsLoading() bool {
	return c.agentsLoading
}

func (c *Controller) ConversationsLoading() bool {
	return c.convsLoading
}

func (c *Controller) Theme() string {
	return c.theme
}

func (c *Controller) Location() string {
	return c.location
}

// ComposerEnabled reports whether the user can type and send.
func (c *Controller) ComposerEnabled() bool {
	return c.Visibility().Composer && c.session.HasAgent() && !c.session.Pending
}
