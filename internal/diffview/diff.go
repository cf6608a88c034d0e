// Package diffview renders line-oriented previews of what a create or
// update change would do to an existing file.
package diffview

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	addColor = color.New(color.FgGreen)
	delColor = color.New(color.FgRed)
)

// Line is one line of a rendered preview.
type Line struct {
	// Kind is "add", "del", or "ctx".
	Kind string

	// Text is the line content without a trailing newline.
	Text string
}

// Preview computes a line-level diff between the current content and the
// proposed content. Identical inputs yield no lines.
func Preview(current, proposed string) []Line {
	if current == proposed {
		return nil
	}

	dmp := diffmatchpatch.New()

	// Line mode: diff over line runes, then map back to text.
	c1, c2, lineArray := dmp.DiffLinesToChars(current, proposed)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArray)

	var lines []Line
	for _, d := range diffs {
		kind := "ctx"
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = "add"
		case diffmatchpatch.DiffDelete:
			kind = "del"
		}
		for _, text := range splitLines(d.Text) {
			lines = append(lines, Line{Kind: kind, Text: text})
		}
	}

	return lines
}

// Render formats preview lines with +/- markers, colored when enabled.
func Render(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		switch line.Kind {
		case "add":
			b.WriteString(addColor.Sprintf("+ %s", line.Text))
		case "del":
			b.WriteString(delColor.Sprintf("- %s", line.Text))
		default:
			fmt.Fprintf(&b, "  %s", line.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func splitLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" && text != "" {
		return []string{""}
	}
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
