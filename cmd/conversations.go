package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"chatdeck/internal/logger"
	"chatdeck/internal/models"
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"convs"},
	Short:   "List stored conversations",
	Args:    cobra.NoArgs,
	RunE:    runConversations,
}

func init() {
	rootCmd.AddCommand(conversationsCmd)
}

func runConversations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	convs, err := newClient(cfg).ListConversations(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load conversations: %w", err)
	}
	printConversations(cmd.OutOrStdout(), convs)
	return nil
}

func printConversations(w io.Writer, convs []models.ConversationSummary) {
	if len(convs) == 0 {
		fmt.Fprintln(w, "No conversations yet")
		return
	}
	rows := make([][]string, 0, len(convs))
	for _, c := range convs {
		created := ""
		if !c.CreatedAt.IsZero() {
			created = c.CreatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.DisplayTitle(),
			strconv.Itoa(c.MessageCount),
			created,
		})
	}
	fmt.Fprintln(w, newTable("ID", "TITLE", "MESSAGES", "CREATED").Rows(rows...).Render())
}
