// internal/tui/views.go

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medroster/conflictdeck/internal/conflict"
	"github.com/medroster/conflictdeck/internal/history"
	"github.com/medroster/conflictdeck/internal/suggest"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	focusedStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#5B8DEF")).PaddingLeft(1)
	unfocusedLine = lipgloss.NewStyle().PaddingLeft(2)

	severityStyles = map[conflict.Severity]lipgloss.Style{
		conflict.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		conflict.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		conflict.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
		conflict.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
	}
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	header := headerStyle.Render("⬡ CONFLICTDECK")

	var content string
	if a.controller.OverrideOpen() && a.overrideForm != nil {
		content = a.renderOverride()
	} else {
		switch a.controller.ActiveView() {
		case ViewList:
			content = a.renderList(width - 6)
		case ViewSuggestions:
			content = a.renderSuggestions(width - 6)
		case ViewHistory:
			content = a.renderHistory(width - 6)
		case ViewBatch:
			content = a.renderBatch()
		}
	}
	body := panelStyle.Width(max(40, width-2)).Render(content)

	sections := []string{header, a.renderStatisticsStrip(), body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := dimStyle.MarginTop(1).Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

// renderStatisticsStrip is the summary header above the list.
func (a *App) renderStatisticsStrip() string {
	if !a.hasStats {
		return dimStyle.Render("statistics unavailable")
	}
	parts := []string{fmt.Sprintf("Total %d", a.stats.Total)}
	for _, sev := range conflict.Severities {
		if n := a.stats.BySeverity[sev]; n > 0 {
			parts = append(parts, severityStyles[sev].Render(fmt.Sprintf("%s %d", sev.Label(), n)))
		}
	}
	parts = append(parts, fmt.Sprintf("Unresolved %d", a.stats.Unresolved))
	if a.stats.ResolvedToday > 0 {
		parts = append(parts, fmt.Sprintf("Resolved today %d", a.stats.ResolvedToday))
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

func (a *App) renderList(width int) string {
	title := titleStyle.Render(fmt.Sprintf("Conflicts · page %d/%d", a.page.Page, max(1, a.page.Pages)))
	badge := a.renderFilterBadge()

	var body string
	switch {
	case a.listErr != "":
		body = errorStyle.Render(fmt.Sprintf("⚠ %s", a.listErr)) + "\n" + dimStyle.Render("r to retry")
	case a.loadingList && len(a.page.Items) == 0:
		body = dimStyle.Render("Loading conflicts...")
	case len(a.page.Items) == 0 && a.engine.HasActiveFilters():
		body = dimStyle.Render("No conflicts match the current filters. c clears them.")
	case len(a.page.Items) == 0:
		body = dimStyle.Render("No conflicts detected. Press d to run detection.")
	default:
		var rows []string
		for i, c := range a.page.Items {
			rows = append(rows, a.renderConflictRow(c, i == a.controller.FocusedRow(), width))
		}
		body = strings.Join(rows, "\n")
	}

	sections := []string{title, badge, body}
	if a.lastBatch != nil {
		sections = append(sections, dimStyle.Render(fmt.Sprintf(
			"Last batch: %d ok, %d failed of %d", a.lastBatch.Successful, a.lastBatch.Failed, a.lastBatch.Total)))
	}
	if a.searchOpen {
		sections = append(sections, "Search: "+a.searchInput.View())
	}
	hint := hintStyle.Render("j/k move · enter suggestions · space select · b batch · h history · p patterns · o override · / search · d detect · q quit")
	sections = append(sections, hint)
	return strings.Join(sections, "\n")
}

// renderFilterBadge shows the active-filter count that also drives the
// Clear All affordance and the filtered empty-state copy.
func (a *App) renderFilterBadge() string {
	count := a.engine.ActiveFilterCount()
	if count == 0 {
		return dimStyle.Render("No filters · sort " + a.sortLabel())
	}
	return dimStyle.Render(fmt.Sprintf("Filters [%d] · sort %s · c to clear", count, a.sortLabel()))
}

func (a *App) sortLabel() string {
	s := a.engine.Sort()
	return fmt.Sprintf("%s %s", s.Field, s.Direction)
}

func (a *App) renderConflictRow(c conflict.Conflict, focused bool, width int) string {
	check := "[ ]"
	if a.controller.Batch().Selected(c.ID) {
		check = "[x]"
	}
	sev := severityStyles[c.Severity].Render(c.Severity.Label())
	date := c.ConflictDate.Format("2006-01-02")
	if c.Session != "" {
		date += " " + string(c.Session)
	}
	line := fmt.Sprintf("%s %s · %s · %s · %s · %s", check, sev, c.Type.Label(), c.Title, date, c.Status.Label())
	if focused {
		return focusedStyle.Width(max(20, width)).Render(line)
	}
	return unfocusedLine.Width(max(20, width)).Render(line)
}

func (a *App) renderSuggestions(width int) string {
	id := a.controller.SelectedConflictID()
	title := titleStyle.Render("Resolution Suggestions")
	if c, ok := a.conflictByID(id); ok {
		title = titleStyle.Render(fmt.Sprintf("Suggestions · %s", c.Title))
	}

	var body string
	switch {
	case a.suggestErr != "":
		body = errorStyle.Render(fmt.Sprintf("⚠ %s", a.suggestErr)) + "\n" + dimStyle.Render("r to retry")
	case a.loadingSuggestions || a.ranker == nil:
		body = dimStyle.Render("Loading suggestions...")
	case a.ranker.Len() == 0:
		body = dimStyle.Render("No suggestions for this conflict. o creates an override.")
	default:
		var rows []string
		for i, s := range a.ranker.Suggestions() {
			rows = append(rows, a.renderSuggestionRow(s, i == a.suggestFocus, width))
		}
		body = strings.Join(rows, "\n")
	}
	hint := hintStyle.Render("j/k move · enter select · A apply · o override · h history · esc back")
	return strings.Join([]string{title, body, hint}, "\n")
}

func (a *App) renderSuggestionRow(s conflict.ResolutionSuggestion, focused bool, width int) string {
	marker := "( )"
	if sel, ok := a.ranker.Selected(); ok && sel.ID == s.ID {
		marker = "(*)"
	}
	badge := ""
	if s.Recommended {
		badge = " ★ recommended"
	}
	line1 := fmt.Sprintf("%s %s%s", marker, s.Method.Label(), badge)
	line2 := fmt.Sprintf("    impact %d (%s) · confidence %d (%s)",
		s.ImpactScore, suggest.BucketImpact(s.ImpactScore),
		s.Confidence, suggest.BucketConfidence(s.Confidence))
	lines := []string{line1, line2}
	for _, change := range s.Changes {
		lines = append(lines, "    "+change.Summary())
	}
	if s.SideEffects != "" {
		lines = append(lines, dimStyle.Render("    side effects: "+s.SideEffects))
	}
	content := strings.Join(lines, "\n")
	if focused {
		return focusedStyle.Width(max(20, width)).Render(content)
	}
	return unfocusedLine.Width(max(20, width)).Render(content)
}

func (a *App) renderHistory(width int) string {
	if a.controller.PatternsMode() {
		return a.renderPatterns(width)
	}
	title := titleStyle.Render("History")
	if c, ok := a.conflictByID(a.controller.SelectedConflictID()); ok {
		title = titleStyle.Render(fmt.Sprintf("History · %s", c.Title))
	}
	var body string
	switch {
	case a.historyErr != "":
		body = errorStyle.Render(fmt.Sprintf("⚠ %s", a.historyErr)) + "\n" + dimStyle.Render("r to retry")
	case a.loadingHistory:
		body = dimStyle.Render("Loading history...")
	case len(a.timeline) == 0:
		body = dimStyle.Render("No history recorded yet.")
	default:
		var rows []string
		for _, entry := range a.timeline {
			line := fmt.Sprintf("%s  %s", entry.Entry.Timestamp.Format("2006-01-02 15:04"), entry.Label)
			if entry.Entry.Actor != "" {
				line += dimStyle.Render(" by " + entry.Entry.Actor)
			}
			rows = append(rows, line)
			for _, change := range entry.Changes {
				rows = append(rows, dimStyle.Render("    "+change.String()))
			}
			if entry.Entry.Notes != "" {
				rows = append(rows, dimStyle.Render("    "+entry.Entry.Notes))
			}
		}
		body = strings.Join(rows, "\n")
	}
	hint := hintStyle.Render("r refresh · esc back")
	return strings.Join([]string{title, body, hint}, "\n")
}

func (a *App) renderPatterns(width int) string {
	title := titleStyle.Render("Recurring Patterns")
	var body string
	switch {
	case a.historyErr != "":
		body = errorStyle.Render(fmt.Sprintf("⚠ %s", a.historyErr)) + "\n" + dimStyle.Render("r to retry")
	case a.loadingHistory || a.analyzer == nil:
		body = dimStyle.Render("Loading patterns...")
	default:
		var rows []string
		filter := "all types"
		if t := a.analyzer.TypeFilter(); t != "" {
			filter = t.Label()
		}
		summary := fmt.Sprintf("Showing %s · %d conflict(s) · %d people affected",
			filter, a.analyzer.TotalConflicts(), a.analyzer.TotalPeopleAffected())
		if mostFrequent, ok := a.analyzer.MostFrequentType(); ok {
			summary += " · most frequent: " + mostFrequent.Label()
		}
		rows = append(rows, dimStyle.Render(summary))
		patterns := a.analyzer.Patterns()
		if len(patterns) == 0 {
			rows = append(rows, dimStyle.Render("No patterns for this filter."))
		}
		for _, p := range patterns {
			trend := string(history.PatternTrend(p))
			rows = append(rows, fmt.Sprintf("%s · %d occurrence(s) · %s", p.Type.Label(), p.Frequency, trend))
			span := fmt.Sprintf("    %s → %s", p.FirstOccurrence.Format("2006-01-02"), p.LastOccurrence.Format("2006-01-02"))
			rows = append(rows, dimStyle.Render(span))
			for i, person := range p.AffectedPeople {
				if i >= 3 {
					rows = append(rows, dimStyle.Render(fmt.Sprintf("    +%d more", len(p.AffectedPeople)-i)))
					break
				}
				name := person.Name
				if name == "" {
					name = person.PersonID
				}
				rows = append(rows, dimStyle.Render(fmt.Sprintf("    %s (%d)", name, person.Occurrences)))
			}
			if p.RootCause != "" {
				rows = append(rows, dimStyle.Render("    root cause: "+p.RootCause))
			}
		}
		body = strings.Join(rows, "\n")
	}
	hint := hintStyle.Render("t cycle type filter · r refresh · esc back")
	return strings.Join([]string{title, body, hint}, "\n")
}

func (a *App) renderBatch() string {
	count := a.controller.Batch().Count()
	title := titleStyle.Render(fmt.Sprintf("Batch Resolution · %d conflict(s)", count))
	var rows []string
	for i, method := range batchMethods {
		marker := "( )"
		if i == a.batchMethodIdx {
			marker = "(*)"
		}
		rows = append(rows, fmt.Sprintf("%s %s", marker, method.Label()))
	}
	body := strings.Join(rows, "\n")
	if a.batchRunning {
		body += "\n" + dimStyle.Render("Running batch...")
	}
	if a.batchErr != "" {
		body += "\n" + errorStyle.Render(fmt.Sprintf("⚠ %s", a.batchErr))
	}
	hint := hintStyle.Render("j/k choose method · enter resolve · i ignore all · esc cancel")
	return strings.Join([]string{title, body, hint}, "\n")
}

func (a *App) renderOverride() string {
	form := a.overrideForm
	title := titleStyle.Render(form.title)
	var rows []string
	for i, row := range form.rows() {
		line := fmt.Sprintf("%-20s %s", row.label, row.value)
		if overrideField(i) == form.focus {
			if form.editing {
				line = fmt.Sprintf("%-20s %s", row.label, form.input.View())
			}
			rows = append(rows, focusedStyle.Render(line))
			continue
		}
		rows = append(rows, unfocusedLine.Render(line))
	}
	body := strings.Join(rows, "\n")

	status := "Ready to submit (enter)"
	if problems := form.Problems(); len(problems) > 0 {
		status = "Missing: " + strings.Join(problems, "; ")
	}
	footer := dimStyle.Render(status)
	if a.overrideErr != "" {
		footer = errorStyle.Render(fmt.Sprintf("⚠ %s", a.overrideErr))
	}
	hint := hintStyle.Render("tab/j/k move · space toggle · e edit text · enter submit · esc cancel")
	return strings.Join([]string{title, body, footer, hint}, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := titleStyle.Render(fmt.Sprintf("LOG · %s", filepath.Base(a.logbook.Path())))
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}
