package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravlabs/ravos/internal/app"
	"github.com/ravlabs/ravos/internal/llm"
	"github.com/ravlabs/ravos/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ravos",
	Short: "SPI exam trainer",
	Long:  "RAV-OS — AI-assisted trainer for the ultrasound physics (SPI) certification exam.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBridge(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RAVOS_DB env var)")

	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then RAVOS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger is quiet by default; RAVOS_DEBUG=1 turns on development
// logging to stderr.
func newLogger() *zap.Logger {
	if os.Getenv("RAVOS_DEBUG") == "" {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openApp opens the store and wires the application. The provider comes
// from RAVOS_* configuration, falling back to standard vendor env vars;
// with neither, AI features degrade to fallbacks.
func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	logger := newLogger()

	st, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var provider llm.Provider
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if ok {
			cfg = discovered
		}
	}
	if cfg.Validate() == nil {
		provider, err = llm.NewProvider(cmd.Context(), cfg, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
			provider = nil
		}
	} else {
		fmt.Fprintln(os.Stderr, "No LLM API key found; AI features will be unavailable.")
	}

	a, err := app.New(app.Options{
		Store:    st,
		Provider: provider,
		SyncURL:  os.Getenv("RAVOS_SYNC_URL"),
		Logger:   logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

// runBridge is the default command: the launch ritual plus a status
// summary.
func runBridge(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sess := a.Progress.Session()
	if sess.Profile == nil {
		fmt.Println("No operator profile found. Run `ravos calibrate` to begin.")
		return nil
	}

	insight, streak, err := a.DailyBriefing(cmd.Context())
	if err != nil {
		return err
	}

	stats := a.Progress.Stats()
	fmt.Printf("Operator: %s  [%s]\n", sess.Profile.Name, sess.Profile.VibrationalSignature)
	fmt.Printf("Level %d  ·  %d XP  ·  rank %s  ·  streak %d day(s)\n",
		stats.Level, stats.XP, stats.Rank, streak)
	fmt.Println()
	fmt.Println(insight)
	return nil
}
