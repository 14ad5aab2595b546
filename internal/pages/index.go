package pages

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/frontmatter"
)

var linkText = strings.NewReplacer("[", `\[`, "]", `\]`)

// IndexEntry is one symbol link on the index page.
type IndexEntry struct {
	Name string
	Kind string
	Link string
}

// IndexGroup lists the symbols of one module.
type IndexGroup struct {
	Module  string
	Entries []IndexEntry
}

// Index renders the landing document listing every symbol by module.
// Modules and entries are sorted, so input order does not matter.
func Index(groups []IndexGroup, meta Meta) (string, error) {
	sorted := make([]IndexGroup, 0, len(groups))
	for _, g := range groups {
		entries := append([]IndexEntry(nil), g.Entries...)
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
			return a.Link < b.Link
		})
		sorted = append(sorted, IndexGroup{Module: g.Module, Entries: entries})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Module < sorted[j].Module })

	w := &writer{}
	w.heading(1, meta.Title)
	if meta.Description != "" {
		w.block(meta.Description)
	}
	for _, g := range sorted {
		if len(g.Entries) == 0 {
			continue
		}
		w.heading(2, g.Module)
		lines := make([]string, 0, len(g.Entries))
		for _, e := range g.Entries {
			line := "- [" + linkText.Replace(e.Name) + "](" + e.Link + ")"
			if e.Kind != "" {
				line += " " + badge("info", e.Kind)
			}
			lines = append(lines, line)
		}
		w.block(lines...)
	}

	return frontmatter.Build(map[string]any{
		"title":       meta.Title,
		"description": meta.Description,
	}, w.String())
}
