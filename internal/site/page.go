package site

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/dirtree"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/resolve"
)

// PageKind says how a request path renders.
type PageKind string

const (
	PageDocument PageKind = "document"
	PageListing  PageKind = "listing"
	PageNotFound PageKind = "not_found"
)

// RootListingTitle titles the listing of the content root.
const RootListingTitle = "Documentation"

// Entry is one document in a directory listing.
type Entry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Page is the render decision for one request path.
type Page struct {
	Kind        PageKind           `json:"kind"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Document    *manifest.Document `json:"document,omitempty"`
	Entries     []Entry            `json:"entries,omitempty"`
	Tree        dirtree.Tree       `json:"tree,omitempty"`
	Breadcrumbs []nav.Crumb        `json:"breadcrumbs"`
}

// Page decides what slugPath renders as: the document the slug resolves to
// (a directory's index included), a listing of the directory's contents, or
// not found.
func (s *Site) Page(slugPath string) Page {
	sl := strings.Trim(slugPath, "/")
	p := s.decide(sl)
	p.Slug = sl
	p.Breadcrumbs = s.BreadcrumbsFor(sl)
	s.recorder.IncPageView(string(p.Kind))
	return p
}

// A directory index is reached through the bare slug key, so a sibling file
// that won that key by collision is rendered in its place.
func (s *Site) decide(sl string) Page {
	if doc, ok := s.Document(sl); ok {
		return documentPage(doc)
	}
	if tree := s.Tree(sl); len(tree) > 0 {
		return Page{
			Kind:    PageListing,
			Title:   listingTitle(sl),
			Entries: s.entries(sl),
			Tree:    tree,
		}
	}
	return Page{Kind: PageNotFound}
}

func documentPage(doc *manifest.Document) Page {
	return Page{Kind: PageDocument, Title: doc.Title, Document: doc}
}

func (s *Site) entries(dir string) []Entry {
	slugs := s.ListDirectory(dir)
	out := make([]Entry, 0, len(slugs))
	for _, sl := range slugs {
		e := Entry{Slug: sl, Title: path.Base(sl), Href: s.Href(sl)}
		if doc, ok := resolve.Resolve(s.manifest, sl); ok && doc.Title != "" {
			e.Title = doc.Title
		}
		out = append(out, e)
	}
	return out
}

func listingTitle(dir string) string {
	if dir == "" {
		return RootListingTitle
	}
	return path.Base(dir)
}
