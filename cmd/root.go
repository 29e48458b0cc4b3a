package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatdeck/internal/api"
	"chatdeck/internal/chat"
	"chatdeck/internal/config"
	"chatdeck/internal/db"
	"chatdeck/internal/logger"
	"chatdeck/internal/ui"
)

var (
	cfgFile   string
	apiURL    string
	dbPath    string
	logFile   string
	debugMode bool
	version   = "dev"
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "chatdeck [location]",
	Short: "Terminal client for a conversational-agent backend",
	Long: `Chatdeck lets you pick an agent, chat with it, and browse past conversations.

Pass a location such as /conversations/42 (or a full URL ending in it) to open
that conversation read-only.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default "+config.DefaultPath()+")")
	flags.StringVar(&apiURL, "api-url", "", "Backend base URL")
	flags.StringVar(&dbPath, "db", "", "Preferences database path")
	flags.StringVar(&logFile, "log-file", "", "Log file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

// loadConfig resolves configuration and starts the file logger. Flags given
// on the command line win over the file and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetDebug(cfg.Debug)
	if err := logger.Init(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	logger.Get().Debug("configuration loaded", "path", cfg.Path(), "api_url", cfg.APIURL, "db", cfg.DBPath)
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.APIURL,
		api.WithLogger(logger.WithComponent("api")),
		api.WithTimeout(cfg.RequestTimeout.Duration),
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("error opening preferences: %w", err)
	}
	defer store.Close()

	location := "/"
	if len(args) == 1 {
		location = args[0]
	}

	ctrl := chat.New(newClient(cfg), store,
		chat.WithLogger(logger.WithComponent("chat")),
		chat.WithGate(chat.SecretGate{Secret: cfg.DeveloperSecret}),
		chat.WithContext(cmd.Context()),
	)
	defer ctrl.Close()

	m := ui.InitialModel(ctrl, location, ui.WithLogger(logger.WithComponent("ui")))
	p := ui.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
