package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/github-card/internal/card"
	"github.com/naka-gawa/github-card/internal/domain"
)

var (
	gold        = lipgloss.Color("#deaf56")
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(gold)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(16)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	previewCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(1, 2)
)

// renderPreview draws the front face of the card for a terminal.
func renderPreview(result *domain.Result) string {
	p, s := result.Profile, result.Stats

	header := []string{titleStyle.Render(displayName(p))}
	if region := p.Region(); region != "" {
		header = append(header, mutedStyle.Render(region))
	}
	header = append(header,
		mutedStyle.Render(fmt.Sprintf("%d followers", p.Followers)),
		mutedStyle.Render("created on "+p.CreatedAt.Format("Jan 2, 2006")),
	)

	rows := [][2]string{
		{"Total Stars", fmt.Sprint(s.TotalStars)},
		{"Total Forks", fmt.Sprint(s.TotalForks)},
		{"Total Repos", fmt.Sprint(s.TotalRepos)},
		{"Commits (30d)", commitCount(s)},
		{"Most Active", s.MostActiveDay},
		{"Top Languages", s.TopLanguages},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row[0]), row[1]))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(header, "\n"),
		"",
		strings.Join(lines, "\n"),
		"",
		mutedStyle.Render(card.ProfileURL(p.Login)),
	)
	return previewCard.Render(body)
}

func displayName(p domain.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

func commitCount(s domain.AggregatedStats) string {
	if s.CommitsUnavailable {
		return "unavailable"
	}
	return fmt.Sprint(s.TotalCommits)
}
