package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"questforge/internal/app"
	"questforge/internal/config"
)

func (c *cli) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import every player's data as JSON",
	}

	export := &cobra.Command{
		Use:   "export [file]",
		Short: "Write a backup to file, or stdout when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				if len(args) == 0 {
					return a.Backup.Export(ctx, cmd.OutOrStdout())
				}
				if err := a.Backup.ExportToFile(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), Good.Render("Backup written to "+args[0]))
				return nil
			})
		},
	}

	var force bool
	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup, replacing the players it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("import replaces existing players; rerun with --force")
			}
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				if err := a.Backup.ImportFromFile(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Backup imported from "+args[0]))
				return nil
			})
		},
	}
	imp.Flags().BoolVarP(&force, "force", "f", false, "replace existing players")

	cmd.AddCommand(export, imp)
	return cmd
}

func (c *cli) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	dbCmd := func(use, short string, fn func(a *app.App, out io.Writer) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd, app.Options{SkipMigrations: true}, func(_ context.Context, a *app.App) error {
					if a.DB == nil {
						return errNeedsDatabase
					}
					return fn(a, cmd.OutOrStdout())
				})
			},
		}
	}

	cmd.AddCommand(
		dbCmd("up", "Apply all pending migrations", func(a *app.App, out io.Writer) error {
			if err := a.DB.RunMigrations(); err != nil {
				return err
			}
			return printVersion(a, out)
		}),
		dbCmd("down", "Roll back the last migration", func(a *app.App, out io.Writer) error {
			if err := a.DB.RollbackMigration(); err != nil {
				return err
			}
			return printVersion(a, out)
		}),
		dbCmd("version", "Show the current schema version", printVersion),
	)
	return cmd
}

func printVersion(a *app.App, out io.Writer) error {
	version, dirty, err := a.DB.MigrationVersion()
	if err != nil {
		return err
	}
	line := LabelValue("Schema version", version)
	if dirty {
		line += " " + Bad.Render("(dirty)")
	}
	fmt.Fprintln(out, line)
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Game tuning file helpers",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write the default game tuning as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := config.DefaultGameConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Wrote "+path))
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("Set GAME_CONFIG="+path+" to use it."))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the effective game tuning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := os.Getenv("GAME_CONFIG")
			if len(args) == 1 {
				path = args[0]
			}
			g, err := config.LoadGameConfig(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, LabelValue("Daily quests", g.DailyQuestsCount))
			fmt.Fprintln(out, LabelValue("History limit", g.HistoryLimit))
			fmt.Fprintln(out, LabelValue("Max save retries", g.MaxSaveRetries))
			return nil
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
