// Package cli implements the questctl command line
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"questforge/internal/app"
	"questforge/internal/config"
	"questforge/internal/logging"
)

const Version = "1.0.0"

// OpenFunc builds the application for one command
type OpenFunc func(ctx context.Context, opts app.Options) (*app.App, error)

type rootOptions struct {
	userID string
	memory bool
}

type cli struct {
	open OpenFunc
	opts rootOptions
}

// DefaultOpen loads configuration from the environment. The CLI logs
// warnings and errors only unless DEBUG is set.
func DefaultOpen(ctx context.Context, opts app.Options) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := "warn"
	if cfg.Debug {
		level = cfg.LogLevel
	}
	logger, err := logging.New(level, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, logger, opts)
}

// NewRootCmd builds the command tree
func NewRootCmd(open OpenFunc) *cobra.Command {
	c := &cli{open: open}

	defaultUser := os.Getenv("QUESTFORGE_USER")
	if defaultUser == "" {
		defaultUser = "player"
	}

	root := &cobra.Command{
		Use:           "questctl",
		Short:         "QuestForge: level up by completing real-life quests",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	root.PersistentFlags().StringVarP(&c.opts.userID, "user", "u", defaultUser, "player id (default from $QUESTFORGE_USER)")
	root.PersistentFlags().BoolVar(&c.opts.memory, "memory", false, "keep data in memory for this run only")

	root.AddCommand(
		c.newStatusCmd(),
		c.newQuestsCmd(),
		c.newCompleteCmd(),
		c.newDailyCmd(),
		c.newChallengeCmd(),
		c.newGenerateCmd(),
		c.newCustomCmd(),
		c.newHistoryCmd(),
		c.newProfileCmd(),
		c.newResetCmd(),
		c.newBackupCmd(),
		c.newMigrateCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute runs questctl and exits non-zero on error
func Execute() {
	root := NewRootCmd(DefaultOpen)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render(IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func (c *cli) withApp(cmd *cobra.Command, opts app.Options, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Memory = opts.Memory || c.opts.memory
	a, err := c.open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func (c *cli) run(fn func(ctx context.Context, a *app.App, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
			return fn(ctx, a, cmd.OutOrStdout())
		})
	}
}

var errNeedsDatabase = errors.New("this command needs a database; drop --memory")
