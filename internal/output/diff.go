package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"golang.org/x/term"
)

// ModifiedItem is a changed entry with an optional detail line.
type ModifiedItem struct {
	Name string
	Diff string
}

// RenderDiff renders added, removed and modified dependency names followed by
// a one-line summary.
func RenderDiff(added, removed []string, modified []ModifiedItem) string {
	if len(added) == 0 && len(removed) == 0 && len(modified) == 0 {
		return "No changes detected."
	}

	addStyle := StatusStyle(StatusAdded)
	removeStyle := StatusStyle(StatusRemoved)
	modifyStyle := StatusStyle(StatusReplaced)

	var sb strings.Builder

	if len(added) > 0 {
		sb.WriteString(addStyle.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range added {
			sb.WriteString("  + ")
			sb.WriteString(addStyle.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(removed) > 0 {
		sb.WriteString(removeStyle.Render("Removed:"))
		sb.WriteString("\n")
		for _, name := range removed {
			sb.WriteString("  - ")
			sb.WriteString(removeStyle.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(modified) > 0 {
		sb.WriteString(modifyStyle.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range modified {
			sb.WriteString("  ~ ")
			sb.WriteString(modifyStyle.Render(mod.Name))
			sb.WriteString("\n")
			if mod.Diff != "" {
				sb.WriteString(IndentDiff(mod.Diff, "    "))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(added), len(removed), len(modified)))
	sb.WriteString("\n")

	return sb.String()
}

// diffSummary returns a summary string of changes.
func diffSummary(added, removed, modified int) string {
	if added == 0 && removed == 0 && modified == 0 {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, strconv.Itoa(added)+" added")
	}
	if removed > 0 {
		parts = append(parts, strconv.Itoa(removed)+" removed")
	}
	if modified > 0 {
		parts = append(parts, strconv.Itoa(modified)+" modified")
	}

	return strings.Join(parts, ", ")
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// DiffDocuments computes a structural diff of two JSON or YAML documents
// using dyff. It returns an empty string when they are equivalent.
func DiffDocuments(before, after []byte, useColor bool) (string, error) {
	if len(before) == 0 && len(after) == 0 {
		return "", nil
	}

	beforeInput, err := parseDocumentInput("before", before)
	if err != nil {
		return "", fmt.Errorf("parsing previous document: %w", err)
	}

	afterInput, err := parseDocumentInput("after", after)
	if err != nil {
		return "", fmt.Errorf("parsing new document: %w", err)
	}

	report, err := dyff.CompareInputFiles(beforeInput, afterInput)
	if err != nil {
		return "", fmt.Errorf("comparing documents: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseDocumentInput parses bytes into a dyff input file.
func parseDocumentInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// UseColor reports whether w is a terminal.
func UseColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
