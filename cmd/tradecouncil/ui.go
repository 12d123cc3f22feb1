package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tradecouncil/internal/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(80)

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280"))
)

func printSummary(st *state.DecisionState) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", st.Symbol, st.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Signal: %s\n\n", signalStyle(st.FinalSignal).Render(string(st.FinalSignal)))

	fmt.Fprintf(&b, "Analyst reports: %d\n", len(st.AnalystReports))
	fmt.Fprintf(&b, "Debate viewpoints: %d\n", len(st.ResearcherViewpoints))

	if st.RiskManagerDecision != "" {
		fmt.Fprintf(&b, "\n%s\n", firstLines(st.RiskManagerDecision, 6))
	}

	fmt.Println(titleStyle.Render("tradecouncil decision"))
	fmt.Println(boxStyle.Render(b.String()))
}

func signalStyle(signal state.Signal) lipgloss.Style {
	switch signal {
	case state.SignalBuy:
		return buyStyle
	case state.SignalSell:
		return sellStyle
	case state.SignalError:
		return errorStyle
	default:
		return holdStyle
	}
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
