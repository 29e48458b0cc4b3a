package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chatdeck/internal/models"
)

// Send posts text to the selected agent. The user message is shown at once
// and stays shown whatever the outcome. Without an agent the user is told;
// blank text is ignored without a word.
func (c *Controller) Send(text string) error {
	if c.session.ViewerMode {
		return ErrReadOnly
	}
	if !c.session.HasAgent() {
		c.notifyError(msgSelectAgent)
		return ErrNoAgentSelected
	}

	message := strings.TrimSpace(text)
	if message == "" {
		c.logger.Warn("attempted to send empty message")
		return ErrEmptyMessage
	}
	if c.session.Pending {
		return ErrSendInFlight
	}

	c.transcript = append(c.transcript, models.Message{Role: models.RoleUser, Content: message})
	c.setPending(true)

	req := models.ChatRequest{
		Messages:       []models.Message{{Role: models.RoleUser, Content: message}},
		AgentID:        c.session.SelectedAgent.ID,
		ConversationID: c.session.ActiveConversationID,
	}
	c.logger.Debug("sending message", "agent_id", req.AgentID, "conversation_id", req.ConversationID)

	gen := c.chatGen
	c.spawn("send-message", 0, func(ctx context.Context) func() {
		resp, err := c.backend.SendChat(ctx, req)
		return func() {
			c.finishSend(resp, err, gen)
		}
	})
	return nil
}

// finishSend applies a send outcome. The reply is always shown, but its
// conversation id is adopted only if the chat it was sent from is still the
// current one.
func (c *Controller) finishSend(resp *models.ChatResponse, err error, gen uint64) {
	c.setPending(false)
	if err != nil {
		c.logger.Error("failed to send message", "error", err)
		c.notifyError(msgSendFailed)
		return
	}

	if gen == c.chatGen && !c.session.HasConversation() && resp.ConversationID != 0 {
		c.session.ActiveConversationID = resp.ConversationID
	}
	c.transcript = append(c.transcript, models.Message{Role: models.RoleAssistant, Content: resp.Response})
	c.status.SetText(usageText(resp.Usage))

	c.loadConversations()
}

func (c *Controller) setPending(pending bool) {
	c.session.Pending = pending
	if pending {
		c.status.SetText(StatusThinking)
		return
	}
	if c.session.HasAgent() {
		c.status.SetText(StatusReady)
	}
}

func usageText(u *models.Usage) string {
	if u == nil {
		return fmt.Sprintf(msgTokensUsedFmt, msgTokensNotApplicable)
	}
	return fmt.Sprintf(msgTokensUsedFmt, strconv.FormatInt(u.TotalTokens, 10))
}
