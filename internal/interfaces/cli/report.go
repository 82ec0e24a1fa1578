package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lite-lake/ipsync/internal/application/orchestrator"
	"github.com/lite-lake/ipsync/internal/domain/entity"
)

const (
	ColorPrimary   = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorSecondary = "#6B7280"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimary))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))

	LabelStyle = lipgloss.NewStyle().
			Width(8).
			Bold(true)
)

var titleCase = cases.Title(language.English)

// RenderReport formats the end-of-run summary printed after `ipsync run`.
func RenderReport(r *orchestrator.Report, runErr error) string {
	var b strings.Builder

	mode := "reconcile"
	if r.Passthrough {
		mode = "passthrough"
	}
	fmt.Fprintf(&b, "%s %s\n", TitleStyle.Render("Group "+r.Group), HelpStyle.Render(fmt.Sprintf("(%s, trace %s)", titleCase.String(mode), r.TraceID)))
	if r.PluginStopped {
		fmt.Fprintln(&b, HelpStyle.Render("plugin was paused for this run"))
	}

	for _, f := range r.Families {
		label := LabelStyle.Render(f.Family.String())
		if f.Skipped != "" {
			fmt.Fprintf(&b, "%s %s\n", label, HelpStyle.Render("skipped: "+f.Skipped))
			continue
		}
		line := fmt.Sprintf("candidates %d, assigned %d, created %d, deleted %d", f.Candidates, f.Assignments, f.CreatedCount(), f.Deleted)
		fmt.Fprintf(&b, "%s %s", label, line)
		if f.Failed > 0 {
			fmt.Fprintf(&b, " %s", WarningStyle.Render(fmt.Sprintf("failed %d", f.Failed)))
		}
		if f.Unverified > 0 {
			fmt.Fprintf(&b, " %s", WarningStyle.Render(fmt.Sprintf("unverified %d", f.Unverified)))
		}
		fmt.Fprintf(&b, ", notified %d", f.Notified)
		if f.NotifyFailed > 0 {
			fmt.Fprintf(&b, " %s", WarningStyle.Render(fmt.Sprintf("(%d failed)", f.NotifyFailed)))
		}
		b.WriteString("\n")
	}

	if runErr != nil {
		fmt.Fprintln(&b, ErrorStyle.Render("Error: "+runErr.Error()))
	} else {
		fmt.Fprintln(&b, SuccessStyle.Render(fmt.Sprintf("Done in %s", r.Duration.Round(time.Millisecond))))
	}
	return b.String()
}

func RenderGroups(cfg *entity.Config) string {
	var b strings.Builder
	fmt.Fprintln(&b, TitleStyle.Render("Resolve groups"))
	for i := range cfg.Resolves {
		g := &cfg.Resolves[i]
		channels := strings.Join(g.ChannelNames(), ",")
		if channels == "" {
			channels = "none"
		}
		fmt.Fprintf(&b, "- %s (account: %s, v4: %d, v6: %d, hostnames: %d, channels: %s)",
			g.Name, g.Account, g.V4Quota, g.V6Quota, len(g.Hostnames()), channels)
		if g.IsPassthrough() {
			fmt.Fprintf(&b, " %s", HelpStyle.Render(titleCase.String("passthrough")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
