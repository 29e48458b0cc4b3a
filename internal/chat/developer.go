package chat

// NeedsSecret reports whether the next toggle asks for the developer secret.
func (c *Controller) NeedsSecret() bool {
	return !c.session.DeveloperMode
}

// ToggleDeveloper flips developer mode. Leaving it needs no secret; entering
// it requires the gate to accept secret. A rejected secret changes nothing.
// On every accepted transition the active conversation, if any, is fetched
// again so the new filter applies to fresh content.
func (c *Controller) ToggleDeveloper(secret string) error {
	if c.session.ViewerMode {
		return ErrReadOnly
	}

	if c.session.DeveloperMode {
		c.setDeveloperMode(false)
		c.notifySuccess(msgDeveloperOff)
		return nil
	}

	if !c.gate.Allow(secret) {
		c.logger.Info("developer mode rejected")
		c.notifyError(msgIncorrectSecret)
		return ErrIncorrectSecret
	}
	c.setDeveloperMode(true)
	c.notifySuccess(msgDeveloperOn)
	return nil
}

func (c *Controller) setDeveloperMode(enabled bool) {
	c.session.DeveloperMode = enabled
	if err := c.prefs.SetDeveloperMode(enabled); err != nil {
		c.logger.Warn("saving developer flag", "error", err)
	}
	c.logger.Info("developer mode changed", "enabled", enabled)

	if c.session.HasConversation() {
		c.OpenConversation(c.session.ActiveConversationID)
	}
}
