package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/pacer/internal/application"
	"github.com/bnema/pacer/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
	// HideUnused drops action types with no quota and no use today.
	HideUnused bool
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	header := fmt.Sprintf("accounts: %d", len(statuses))
	if !opts.Now.IsZero() {
		header += fmt.Sprintf("  day: %s UTC", opts.Now.UTC().Format(time.DateOnly))
	}
	lines := []string{
		s.title.Render("Daily Action Quotas"),
		s.header.Render(header),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts registered."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, opts RenderOptions, s styles) string {
	parts := []string{
		s.account.Render(accountTitle(status.Account.Name, status.ID)),
		s.detail.Render(ageLine(status.Age, status.Quotas)),
	}

	width := 0
	for _, quota := range status.Quotas {
		width = max(width, len(quota.Action.Label()))
	}

	shown := 0
	for _, quota := range status.Quotas {
		if opts.HideUnused && quota.Limit == 0 && quota.Used == 0 {
			continue
		}
		parts = append(parts, quotaLine(quota, width, s))
		shown++
	}
	if shown == 0 {
		parts = append(parts, s.empty.Render("no quotas configured"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func ageLine(age domain.AccountAge, quotas []application.QuotaStatus) string {
	if !age.Known {
		return "age: unknown (full quotas)"
	}

	multiplier := 1.0
	if len(quotas) > 0 {
		multiplier = quotas[0].Multiplier
	}
	if multiplier >= 1 {
		return fmt.Sprintf("age: %d days (warmed up)", age.Days)
	}

	return fmt.Sprintf("age: %d days (warmup x%.2f)", age.Days, multiplier)
}

func quotaLine(quota application.QuotaStatus, width int, s styles) string {
	label := s.quotaKey.Render(fmt.Sprintf("%-*s", width+1, quota.Action.Label()+":"))
	bar := renderProgressBar(quota.Used, quota.Limit, barWidth, s)

	remaining := max(0, quota.Limit-quota.Used)
	countStyle := lipgloss.NewStyle().Foreground(interpolateColor(remainingFraction(quota), 0, 1))
	count := countStyle.Render(fmt.Sprintf("%d/%d", quota.Used, quota.Limit))

	meta := s.quotaMeta.Render(fmt.Sprintf("(%d left, base %d)", remaining, quota.Base))
	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", count, " ", meta)

	switch {
	case quota.Limit == 0:
		line += " " + s.exhausted.Render("[no quota]")
	case quota.Used >= quota.Limit:
		line += " " + s.exhausted.Render("[limit reached]")
	}

	return line
}

func remainingFraction(quota application.QuotaStatus) float64 {
	if quota.Limit <= 0 {
		return 0
	}

	return math.Max(0, float64(quota.Limit-quota.Used)/float64(quota.Limit))
}

func renderProgressBar(used, limit, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := width
	if limit > 0 {
		filled = int(math.Round(float64(width) * float64(used) / float64(limit)))
	}
	filled = min(max(filled, 0), width)

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func accountTitle(name string, id domain.AccountID) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == string(id) {
		return string(id)
	}

	return fmt.Sprintf("%s (%s)", trimmed, id)
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
