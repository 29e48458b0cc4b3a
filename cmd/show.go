package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"chatdeck/internal/api"
	"chatdeck/internal/chat"
	"chatdeck/internal/db"
	"chatdeck/internal/logger"
	"chatdeck/internal/models"
)

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation",
	Long: `Print the messages of one conversation.

Only user and assistant messages are shown unless developer mode is enabled
in the preferences database or --all is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showAll, "all", false, "Show messages of every role")
	rootCmd.AddCommand(showCmd)
}

func parseConversationID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid conversation id %q", s)
	}
	return id, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseConversationID(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	developer := showAll
	if !developer {
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("error opening preferences: %w", err)
		}
		developer, err = store.DeveloperMode()
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("error reading preferences: %w", err)
		}
	}

	detail, err := newClient(cfg).GetConversation(cmd.Context(), id)
	if err != nil {
		var ne *api.NetworkError
		if errors.As(err, &ne) && ne.NotFound() {
			return fmt.Errorf("conversation %d not found: %w", id, err)
		}
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	printConversation(cmd.OutOrStdout(), detail, developer)
	return nil
}

func printConversation(w io.Writer, detail *models.ConversationDetail, developer bool) {
	title := "Conversation #" + strconv.FormatInt(detail.ID, 10)
	if detail.AgentName != "" {
		title = detail.AgentName + " • " + title
	}
	fmt.Fprintln(w, title)

	for _, msg := range chat.SelectVisibleMessages(detail.Messages, developer, false) {
		fmt.Fprintf(w, "\n[%s]\n%s\n", msg.Role, msg.Content)
	}
}
