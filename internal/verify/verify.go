// Package verify checks a rendered output directory for broken internal
// links: every sidebar entry and every index link must point at an existing
// document, and at an explicit anchor when it carries a fragment.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/frontmatter"
	"git.home.luguber.info/inful/vitedoc/internal/markdown"
	"git.home.luguber.info/inful/vitedoc/internal/sidebar"
	"git.home.luguber.info/inful/vitedoc/internal/storage"
)

// ProblemKind classifies a verification failure.
type ProblemKind string

const (
	ProblemMissingDocument ProblemKind = "missing_document"
	ProblemMissingAnchor   ProblemKind = "missing_anchor"
	ProblemOutsideBase     ProblemKind = "outside_base"
	ProblemFrontMatter     ProblemKind = "front_matter"
)

// Problem is one broken reference or malformed document.
type Problem struct {
	Kind   ProblemKind `json:"kind"`
	Source string      `json:"source"`
	Link   string      `json:"link,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

func (p Problem) String() string {
	if p.Link == "" {
		return fmt.Sprintf("%s: %s (%s)", p.Source, p.Kind, p.Detail)
	}
	return fmt.Sprintf("%s: %s %s", p.Source, p.Kind, p.Link)
}

// Result summarizes a verification run.
type Result struct {
	Documents int       `json:"documents"`
	Links     int       `json:"links"`
	Problems  []Problem `json:"problems"`
}

// OK reports whether no problems were found.
func (r *Result) OK() bool { return len(r.Problems) == 0 }

// Err returns a verify error listing the problems, or nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	lines := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		lines = append(lines, p.String())
	}
	return errors.VerifyError(fmt.Sprintf("%d broken reference(s)", len(r.Problems))).
		WithContext("problems", lines).
		Build()
}

// Options locates the sidebar and the link prefix.
type Options struct {
	BaseURL     string
	SidebarPath string
	IndexFile   string
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = "/"
	}
	if !strings.HasSuffix(o.BaseURL, "/") {
		o.BaseURL += "/"
	}
	if o.SidebarPath == "" {
		o.SidebarPath = "../config/sidebar.json"
	}
	if o.IndexFile == "" {
		o.IndexFile = "index.md"
	}
	return o
}

// Run verifies the documents in store. It fails only when the store or the
// sidebar cannot be read; broken references are reported in the result.
func Run(ctx context.Context, store storage.DocumentStore, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	names, err := store.List(ctx)
	if err != nil {
		return nil, errors.FileSystemError("Failed to list output directory").
			WithCause(err).WithContext("path", store.Root()).Build()
	}

	res := &Result{}
	docs := make(map[string]*markdown.Document)
	for _, name := range names {
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		data, err := store.Read(ctx, name)
		if err != nil {
			return nil, errors.FileSystemError("Failed to read document").
				WithCause(err).WithContext("path", name).Build()
		}
		fields, body, err := frontmatter.Parse(data)
		switch {
		case err != nil:
			res.add(Problem{Kind: ProblemFrontMatter, Source: name, Detail: err.Error()})
		case fields["title"] == nil:
			res.add(Problem{Kind: ProblemFrontMatter, Source: name, Detail: "missing title"})
		}
		docs[name] = markdown.Analyze(body)
		res.Documents++
	}

	raw, err := store.Read(ctx, opts.SidebarPath)
	if err != nil {
		return nil, errors.FileSystemError("Failed to read sidebar").
			WithCause(err).WithContext("path", opts.SidebarPath).Build()
	}
	var items []*sidebar.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.VerifyError("Sidebar is not valid JSON").
			WithCause(err).WithContext("path", opts.SidebarPath).Build()
	}

	sidebar.Walk(items, func(it *sidebar.Item) {
		if it.Link != "" {
			res.check(opts, docs, opts.SidebarPath, it.Link)
		}
	})
	if index, ok := docs[opts.IndexFile]; ok {
		for _, l := range index.Links {
			if l.Kind == markdown.LinkKindInline && strings.HasPrefix(l.Destination, opts.BaseURL) {
				res.check(opts, docs, opts.IndexFile, l.Destination)
			}
		}
	}

	sort.SliceStable(res.Problems, func(i, j int) bool {
		if res.Problems[i].Source != res.Problems[j].Source {
			return res.Problems[i].Source < res.Problems[j].Source
		}
		return res.Problems[i].Link < res.Problems[j].Link
	})
	return res, nil
}

func (r *Result) add(p Problem) { r.Problems = append(r.Problems, p) }

func (r *Result) check(opts Options, docs map[string]*markdown.Document, source, link string) {
	r.Links++
	rest, ok := strings.CutPrefix(link, opts.BaseURL)
	if !ok {
		r.add(Problem{Kind: ProblemOutsideBase, Source: source, Link: link})
		return
	}
	page, anchor, _ := strings.Cut(rest, "#")
	page = strings.TrimSuffix(strings.TrimSuffix(page, "/"), ".html")
	name := opts.IndexFile
	if page != "" {
		name = page + ".md"
	}
	doc, ok := docs[name]
	if !ok {
		r.add(Problem{Kind: ProblemMissingDocument, Source: source, Link: link, Detail: name})
		return
	}
	if anchor != "" && !doc.HasAnchor(anchor) {
		r.add(Problem{Kind: ProblemMissingAnchor, Source: source, Link: link, Detail: name})
	}
}
