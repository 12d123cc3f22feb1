// Package report renders a finished decision run as a markdown document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"tradecouncil/internal/state"
	"tradecouncil/pkg/errors"
)

// Writer persists decision reports under a base directory, one file per
// run: <dir>/<symbol>_<date>_<run-id-prefix>.md.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write renders the state to markdown and returns the file path.
func (w *Writer) Write(st *state.DecisionState) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrInternal, "create report dir: %v", err)
	}

	name := fmt.Sprintf("%s_%s_%s.md",
		st.Symbol,
		st.Date.Format("2006-01-02"),
		st.RunID.String()[:8],
	)
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, []byte(Render(st)), 0o644); err != nil {
		return "", errors.Wrapf(errors.ErrInternal, "write report: %v", err)
	}

	return path, nil
}

// Render produces the markdown document for a decision state.
func Render(st *state.DecisionState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trading Decision: %s\n\n", st.Symbol)
	fmt.Fprintf(&b, "- **Date**: %s\n", st.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **Run**: `%s`\n", st.RunID)
	fmt.Fprintf(&b, "- **Generated**: %s (%s)\n", time.Now().UTC().Format(time.RFC3339), humanize.Time(time.Now()))
	fmt.Fprintf(&b, "- **Final Signal**: **%s**\n\n", st.FinalSignal)

	section(&b, "Analyst Reports", "")
	for _, r := range st.AnalystReports {
		fmt.Fprintf(&b, "%s\n\n", r)
	}

	section(&b, "Research Debate", "")
	for _, v := range st.ResearcherViewpoints {
		fmt.Fprintf(&b, "%s\n\n", v)
	}

	section(&b, "Research Manager Decision", st.ResearchManagerDecision)
	section(&b, "Trading Plan", st.TradingPlan)

	if !st.RiskDebate.Empty() {
		section(&b, "Risk Debate", st.RiskDebate.Render())
	}

	section(&b, "Risk Manager Decision", st.RiskManagerDecision)

	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if body != "" {
		fmt.Fprintf(b, "%s\n\n", body)
	}
}
