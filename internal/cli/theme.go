package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"questforge/internal/generator"
	"questforge/internal/models"
)

const (
	IconSparkle = "✨"
	IconDone    = "✅"
	IconFire    = "🔥"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconScroll  = "📜"
	IconError   = "🧨"
	IconBook    = "📖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("202") // ember
	cGood    = lipgloss.Color("42")  // green
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Pending = lipgloss.NewStyle().Foreground(cAccent)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ProgressBar renders pct (0-100) as a bar of width cells
func ProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// QuestLine renders one quest as a list row
func QuestLine(q models.Quest, completed bool) string {
	mark := "  "
	if completed {
		mark = IconDone
	}
	meta := Muted.Render(fmt.Sprintf("[%s · %s · %s]", q.Category, q.Difficulty, q.Impact))
	return fmt.Sprintf("%s %s %s %s %s %s",
		mark, generator.Icon(q.Category), Key.Render(q.ID), q.Title, meta, Gold.Render(fmt.Sprintf("+%d XP", q.XP)))
}
