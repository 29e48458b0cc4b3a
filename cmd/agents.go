package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"chatdeck/internal/logger"
	"chatdeck/internal/models"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the active agents",
	Args:  cobra.NoArgs,
	RunE:  runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	agents, err := newClient(cfg).ListAgents(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load agents: %w", err)
	}
	printAgents(cmd.OutOrStdout(), agents)
	return nil
}

func printAgents(w io.Writer, agents []models.Agent) {
	if len(agents) == 0 {
		fmt.Fprintln(w, "No active agents found")
		return
	}
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Label(), a.Blurb()})
	}
	fmt.Fprintln(w, newTable("ID", "AGENT", "DESCRIPTION").Rows(rows...).Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
