package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"questforge/internal/app"
	"questforge/internal/engine"
	"questforge/internal/generator"
	"questforge/internal/models"
	"questforge/internal/service"
)

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, title, chapter and streak",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			s, err := a.Progress.Summary(ctx, c.opts.userID)
			if err != nil {
				return err
			}
			renderSummary(out, c.opts.userID, s)
			return nil
		}),
	}
}

func renderSummary(out io.Writer, userID string, s engine.Summary) {
	lines := []string{
		Heading(IconSparkle, fmt.Sprintf("%s · Level %d %s", userID, s.Level, s.Title)),
		fmt.Sprintf("%s %d/%d XP", ProgressBar(s.LevelProgress, 20), s.XP, s.RequiredXP),
		LabelValue("Chapter", fmt.Sprintf("%d %s (%s)", s.Chapter.ID, s.Chapter.Name, s.Chapter.Theme)),
		LabelValue("Total XP", s.TotalXPEarned),
		LabelValue("Streak", fmt.Sprintf("%s %d days (best %d)", IconFire, s.DailyStreak, s.BestStreak)),
		LabelValue("Completed", s.CompletedCount),
		LabelValue("Custom quests", s.CustomCount),
	}
	if s.TopCategory != "" {
		lines = append(lines, LabelValue("Top category", fmt.Sprintf("%s %s", generator.Icon(s.TopCategory), s.TopCategory)))
		for _, cat := range categoriesWithCompletions(s.CategoryStats) {
			lines = append(lines, Muted.Render(fmt.Sprintf("  %s %-10s %d", generator.Icon(cat), cat, s.CategoryStats[cat])))
		}
	}
	fmt.Fprintln(out, Panel.Render(strings.Join(lines, "\n")))
}

func (c *cli) newQuestsCmd() *cobra.Command {
	var (
		category      string
		difficulty    string
		tag           string
		hideCompleted bool
	)
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List catalog and custom quests",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			f := engine.QuestFilter{
				Category:      models.Category(strings.ToLower(category)),
				Difficulty:    models.Difficulty(strings.ToLower(difficulty)),
				Tag:           strings.ToLower(tag),
				HideCompleted: hideCompleted,
			}
			quests, err := a.Progress.Quests(ctx, c.opts.userID, f)
			if err != nil {
				return err
			}
			p, err := a.Progress.Progression(ctx, c.opts.userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, Heading(IconScroll, fmt.Sprintf("Quests (%d)", len(quests))))
			if len(quests) == 0 {
				fmt.Fprintln(out, Muted.Render("No quests match."))
				return nil
			}
			for _, q := range quests {
				fmt.Fprintln(out, QuestLine(q, p.HasCompleted(q.ID)))
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "only this difficulty")
	cmd.Flags().StringVar(&tag, "tag", "", "only quests with this tag")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "hide completed quests")
	return cmd
}

func (c *cli) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <quest-id>",
		Short: "Complete a quest and earn its XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				res, err := a.Progress.CompleteQuest(ctx, c.opts.userID, args[0])
				if err != nil {
					return err
				}
				renderCompletion(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func renderCompletion(out io.Writer, res *engine.CompletionResult) {
	fmt.Fprintln(out, Good.Render(fmt.Sprintf("%s %s", IconDone, res.Quest.Title)))
	gain := fmt.Sprintf("+%d XP", res.XPGained)
	if res.ChallengeMode {
		gain += fmt.Sprintf(" (challenge x%d)", engine.ChallengeMultiplier)
	}
	fmt.Fprintln(out, Gold.Render(gain))
	if res.StreakBonus > 0 {
		fmt.Fprintln(out, LabelValue("Streak bonus", fmt.Sprintf("%s +%d XP on day %d", IconFire, res.StreakBonus, res.Streak)))
	}
	if res.LeveledUp {
		fmt.Fprintf(out, "%s %s level %d → %d\n", IconTrophy, BadgeLevelUp, res.OldLevel, res.NewLevel)
	}
	if res.ChapterAdvanced {
		fmt.Fprintln(out, LabelValue("New chapter", fmt.Sprintf("%s %d %s", IconBook, res.Chapter.ID, res.Chapter.Name)))
	}
}

func (c *cli) newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show today's daily quests",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			quests, err := a.Progress.DailyQuests(ctx, c.opts.userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, Heading(IconSparkle, "Daily quests"))
			if len(quests) == 0 {
				fmt.Fprintln(out, Muted.Render("Every quest is done. Add a custom one!"))
				return nil
			}
			for _, q := range quests {
				fmt.Fprintln(out, QuestLine(q, false))
			}
			return nil
		}),
	}
}

func (c *cli) newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Show today's challenge",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			view, err := a.Progress.Challenge(ctx, c.opts.userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, Heading(IconBolt, "Challenge for "+view.Date))
			if view.Quest == nil {
				fmt.Fprintln(out, Muted.Render("No challenge available today."))
				return nil
			}
			fmt.Fprintln(out, QuestLine(*view.Quest, view.Completed))
			status := Pending.Render("pending")
			if view.Completed {
				status = Good.Render("completed")
			}
			fmt.Fprintln(out, LabelValue("Reward", Gold.Render(fmt.Sprintf("%d XP", view.XP))))
			fmt.Fprintln(out, LabelValue("Status", status))
			return nil
		}),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Complete today's challenge for triple XP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				res, err := a.Progress.CompleteChallenge(ctx, c.opts.userID)
				if err != nil {
					return err
				}
				renderCompletion(cmd.OutOrStdout(), res)
				return nil
			})
		},
	})
	return cmd
}

func (c *cli) newGenerateCmd() *cobra.Command {
	var req service.GenerateRequest
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random quests",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			quests, err := a.Progress.Generate(ctx, c.opts.userID, req)
			if err != nil {
				return err
			}
			title := "Generated quests"
			if req.Save {
				title = "Saved quests"
			}
			fmt.Fprintln(out, Heading(IconSparkle, title))
			for _, q := range quests {
				fmt.Fprintln(out, QuestLine(q, false))
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "category to draw from")
	cmd.Flags().IntVarP(&req.Count, "count", "n", 1, "number of quests")
	cmd.Flags().StringVar(&req.Tags, "tags", "", "comma-separated tags to add")
	cmd.Flags().BoolVar(&req.Save, "save", false, "keep the quests as custom quests")
	return cmd
}

func (c *cli) newCustomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage custom quests",
	}

	var in engine.CustomQuestInput
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				q, err := a.Progress.AddCustomQuest(ctx, c.opts.userID, in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Added custom quest"))
				fmt.Fprintln(cmd.OutOrStdout(), QuestLine(q, false))
				return nil
			})
		},
	}
	add.Flags().StringVarP(&in.Description, "description", "d", "", "what the quest involves")
	add.Flags().StringVar(&in.Difficulty, "difficulty", string(models.DifficultyNormal), "easy, normal or hard")
	add.Flags().StringVar(&in.Impact, "impact", string(models.ImpactMedium), "low, medium or high")
	add.Flags().StringVar(&in.Category, "category", string(models.CategoryDiscipline), "quest category")
	add.Flags().StringVar(&in.Tags, "tags", "", "comma-separated tags")

	del := &cobra.Command{
		Use:   "delete <quest-id>",
		Short: "Delete a custom quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
				if err := a.Progress.DeleteCustomQuest(ctx, c.opts.userID, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), Good.Render("Deleted "+args[0]))
				return nil
			})
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}

func (c *cli) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent completions",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			entries, err := a.Progress.History(ctx, c.opts.userID, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, Heading(IconScroll, "History"))
			if len(entries) == 0 {
				fmt.Fprintln(out, Muted.Render("Nothing completed yet."))
				return nil
			}
			for _, e := range entries {
				mark := ""
				if e.Challenge {
					mark = " " + IconBolt
				}
				fmt.Fprintf(out, "%s %s %s%s %s\n",
					Muted.Render(e.CompletedAt.Format("2006-01-02 15:04")),
					generator.Icon(e.Category), e.QuestTitle, mark,
					Gold.Render(fmt.Sprintf("+%d XP", e.XPGained)))
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries")
	return cmd
}

func (c *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the player profile",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			p, err := a.Profiles.Profile(ctx, c.opts.userID)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(out, Muted.Render("No profile yet. Use `questctl profile set`."))
				return nil
			}
			renderProfile(out, p)
			return nil
		}),
	}

	var name, email string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set display name and notification email",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			p, err := a.Profiles.UpdateProfile(ctx, c.opts.userID, name, email)
			if err != nil {
				return err
			}
			renderProfile(out, p)
			return nil
		}),
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&email, "email", "", "email for level-up notifications")
	cmd.AddCommand(set)
	return cmd
}

func renderProfile(out io.Writer, p *models.Profile) {
	fmt.Fprintln(out, LabelValue("Player", p.UserID))
	fmt.Fprintln(out, LabelValue("Name", p.DisplayName))
	email := p.Email
	if email == "" {
		email = Muted.Render("(none)")
	}
	fmt.Fprintln(out, LabelValue("Email", email))
}

func (c *cli) newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the player's progression and history",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if !yes {
				return fmt.Errorf("refusing to reset %s without --yes", c.opts.userID)
			}
			if err := a.Progress.Reset(ctx, c.opts.userID); err != nil {
				return err
			}
			fmt.Fprintln(out, Good.Render("Progression reset for "+c.opts.userID))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

// categoriesWithCompletions lists categories with at least one completion in display order
func categoriesWithCompletions(stats map[models.Category]int) []models.Category {
	var out []models.Category
	for _, c := range models.Categories {
		if stats[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}
