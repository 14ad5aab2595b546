package pages

import (
	"strconv"
	"strings"
)

// writer accumulates Markdown. Blocks are separated by exactly one blank line.
type writer struct {
	b strings.Builder
}

func (w *writer) block(lines ...string) {
	if w.b.Len() > 0 {
		w.b.WriteString("\n")
	}
	for _, l := range lines {
		w.b.WriteString(l)
		w.b.WriteString("\n")
	}
}

func (w *writer) heading(level int, text string) {
	w.block(strings.Repeat("#", level) + " " + text)
}

func (w *writer) code(lang, body string) {
	w.block("```"+lang, strings.TrimRight(body, "\n"), "```")
}

func (w *writer) table(header []string, rows [][]string) {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, row(header))
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, row(sep))
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = cell(c)
		}
		lines = append(lines, row(cells))
	}
	w.block(lines...)
}

func (w *writer) String() string {
	return w.b.String()
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// cell flattens text for a table cell.
func cell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n\n", "<br>")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

// inlineCode wraps s in backticks, widening the fence when s contains one.
func inlineCode(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func numbered(prefix string, i, total int) string {
	if total <= 1 {
		return prefix
	}
	return prefix + " " + strconv.Itoa(i+1)
}
