package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/dirtree"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	ManifestSource `embed:""`
	Slug           string `arg:"" optional:"" help:"Request slug; empty means the content root"`
	JSON           bool   `help:"Print the page decision as JSON"`
}

func (c *ResolveCmd) Run(g *Global, root *CLI) error {
	s, err := openSite(g, root, c.ManifestSource)
	if err != nil {
		return err
	}
	page := s.Page(c.Slug)
	if page.Kind == site.PageNotFound {
		return ferrors.NotFoundError("no document or directory for slug").
			WithContext("slug", page.Slug).
			Build()
	}
	if c.JSON {
		return writeJSON(g.Out, page)
	}

	switch page.Kind {
	case site.PageDocument:
		_, _ = fmt.Fprintf(g.Out, "document\t%s\t%s\t%s\n", page.Document.RawPath, page.Document.Slug, page.Document.Title)
	case site.PageListing:
		_, _ = fmt.Fprintf(g.Out, "listing\t%s\n", page.Title)
		for _, e := range page.Entries {
			_, _ = fmt.Fprintf(g.Out, "  %s\t%s\n", e.Slug, e.Href)
		}
	}
	return nil
}

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	ManifestSource `embed:""`
	Slug           string `arg:"" optional:"" help:"Directory slug; empty means the whole site"`
	JSON           bool   `help:"Print the tree as JSON"`
}

func (c *TreeCmd) Run(g *Global, root *CLI) error {
	s, err := openSite(g, root, c.ManifestSource)
	if err != nil {
		return err
	}
	tree := s.Tree(c.Slug)
	if c.JSON {
		return writeJSON(g.Out, tree)
	}
	printTree(g.Out, tree, 0)
	return nil
}

func printTree(w io.Writer, t dirtree.Tree, depth int) {
	for _, name := range t.Names() {
		child := t[name]
		suffix := ""
		if !child.IsLeaf() {
			suffix = "/"
		}
		_, _ = fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), name, suffix)
		printTree(w, child, depth+1)
	}
}

// NavCmd implements the 'nav' command.
type NavCmd struct {
	ManifestSource `embed:""`
	JSON           bool `help:"Print the navigation tree as JSON"`
}

func (c *NavCmd) Run(g *Global, root *CLI) error {
	s, err := openSite(g, root, c.ManifestSource)
	if err != nil {
		return err
	}
	forest := s.NavTree()
	if c.JSON {
		return writeJSON(g.Out, forest)
	}
	printNav(g.Out, forest, 0)
	return nil
}

func printNav(w io.Writer, forest []*nav.Node, depth int) {
	for _, n := range forest {
		_, _ = fmt.Fprintf(w, "%s%s\t%s\n", strings.Repeat("  ", depth), n.Label, n.Href)
		printNav(w, n.Children, depth+1)
	}
}

// BreadcrumbsCmd implements the 'breadcrumbs' command.
type BreadcrumbsCmd struct {
	ManifestSource `embed:""`
	Slug           string `arg:"" optional:"" help:"Request slug"`
	JSON           bool   `help:"Print the trail as JSON"`
}

func (c *BreadcrumbsCmd) Run(g *Global, root *CLI) error {
	s, err := openSite(g, root, c.ManifestSource)
	if err != nil {
		return err
	}
	crumbs := s.BreadcrumbsFor(c.Slug)
	if c.JSON {
		return writeJSON(g.Out, crumbs)
	}
	for _, cr := range crumbs {
		_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", cr.Label, cr.Href)
	}
	return nil
}

func openSite(g *Global, root *CLI, src ManifestSource) (*site.Site, error) {
	cfg, err := root.LoadedConfig()
	if err != nil {
		return nil, err
	}
	m, err := src.load(g.Ctx, cfg, metrics.NoopRecorder{})
	if err != nil {
		return nil, err
	}
	return newSite(cfg, m, metrics.NoopRecorder{}), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
