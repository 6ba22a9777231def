/*
Package report renders derivations for the terminal.

PURPOSE:
  Turns a ResultSet and its Diagnostics into a readable report: one table of
  quantities with their provenance, then one block per unresolved headline
  output listing what each alternative still lacks.

STYLING:
  Lipgloss styles; colors degrade to plain text when the output is not a
  terminal. Unknown values render as "—", never as 0.

SEE ALSO:
  - cmd/vanslyke: The CLI that prints these reports
  - generic/types.go: Quantity.Display
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/vanslyke"
)

var (
	colorEntered = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorDerived = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorMissing = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	missingStyle = lipgloss.NewStyle().Foreground(colorMissing)

	provenanceStyles = map[generic.Provenance]lipgloss.Style{
		generic.ProvenanceUserEntered: lipgloss.NewStyle().Foreground(colorEntered),
		generic.ProvenanceDerived:     lipgloss.NewStyle().Foreground(colorDerived).Bold(true),
		generic.ProvenanceUnknown:     dimStyle,
	}
)

// Options controls what a derivation report includes.
type Options struct {
	Title string
	// HideUnknown drops quantities that are neither entered nor derived.
	HideUnknown bool
	// HideDiagnostics drops the unresolved-output section.
	HideDiagnostics bool
}

// Derivation writes the report for one derivation.
func Derivation(w io.Writer, results vanslyke.ResultSet, diags vanslyke.Diagnostics, opts Options) error {
	var sb strings.Builder

	if opts.Title != "" {
		sb.WriteString(titleStyle.Render(opts.Title))
		sb.WriteString("\n\n")
	}

	t := newTable(
		column{name: "Quantity", width: 26},
		column{name: "Value", width: 14, right: true},
		column{name: "Source", width: 12},
	)
	for _, q := range results.Quantities() {
		if opts.HideUnknown && !q.Known() {
			continue
		}
		value := q.Display()
		if !q.Known() {
			value = dimStyle.Render(value)
		}
		t.addRow(q.Name, value, provenanceStyles[q.Provenance].Render(string(q.Provenance)))
	}
	sb.WriteString(t.render())

	if !opts.HideDiagnostics {
		unresolved := diags.Unresolved()
		sb.WriteString("\n")
		if len(unresolved) == 0 {
			sb.WriteString(headerStyle.Render("All headline outputs resolved"))
			sb.WriteString("\n")
		} else {
			sb.WriteString(headerStyle.Render(fmt.Sprintf("Unresolved (%d of %d)", len(unresolved), len(diags))))
			sb.WriteString("\n")
			for _, d := range unresolved {
				writeDiagnostic(&sb, d)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeDiagnostic(sb *strings.Builder, d vanslyke.Diagnostic) {
	fmt.Fprintf(sb, "  %s %s\n", missingStyle.Render("✗"), d.Output)
	for _, alt := range d.Alternatives {
		if alt.Blocked {
			fmt.Fprintf(sb, "      %s: %s %s\n", alt.Label, dimStyle.Render("blocked,"), alt.Reason)
			continue
		}
		fmt.Fprintf(sb, "      %s: %s %s\n",
			alt.Label, dimStyle.Render("needs"), missingStyle.Render(joinNames(alt.Missing)))
	}
}

// Formulas writes the formula catalogue.
func Formulas(w io.Writer, formulas []vanslyke.Formula) error {
	var sb strings.Builder
	for _, f := range formulas {
		sb.WriteString(headerStyle.Render(string(f.Output)))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    = %s\n", f.Expression)
		fmt.Fprintf(&sb, "    %s %s\n", dimStyle.Render("from"), joinNames(f.Requires))
		if f.Guard != "" {
			fmt.Fprintf(&sb, "    %s %s\n", dimStyle.Render("when"), f.Guard)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Requirements writes the alternatives of every headline output.
func Requirements(w io.Writer) error {
	reqs := vanslyke.Requirements()
	var sb strings.Builder
	for _, output := range vanslyke.Headlines() {
		sb.WriteString(headerStyle.Render(string(output)))
		sb.WriteString("\n")
		for _, req := range reqs[output] {
			fmt.Fprintf(&sb, "    %s: %s\n", req.Label, joinNames(req.Inputs))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func joinNames(ns []vanslyke.Name) string {
	s := make([]string, len(ns))
	for i, n := range ns {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}
