package handlers

import (
	"net/http"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/server/responses"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ContentHandlers serve document, tree and navigation queries.
type ContentHandlers struct {
	site         *site.Site
	errorAdapter *errors.HTTPErrorAdapter
}

// NewContentHandlers creates content handlers over s.
func NewContentHandlers(s *site.Site, adapter *errors.HTTPErrorAdapter) *ContentHandlers {
	return &ContentHandlers{site: s, errorAdapter: adapter}
}

// HandlePage returns the render decision for a path; not-found pages are 404.
func (h *ContentHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	page := h.site.Page(slug)
	if page.Kind == site.PageNotFound {
		h.errorAdapter.WriteErrorResponse(w, r, errors.NotFoundError("page not found").
			WithContext("slug", slug).
			Build())
		return
	}
	h.write(w, r, page)
}

// HandleDocument resolves a slug to its document.
func (h *ContentHandlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	doc, ok := h.site.Document(slug)
	if !ok {
		h.errorAdapter.WriteErrorResponse(w, r, errors.NotFoundError("document not found").
			WithContext("slug", slug).
			Build())
		return
	}
	h.write(w, r, responses.DocumentResponse{
		Document: doc,
		Href:     h.site.Href(doc.Slug),
		Keys:     h.site.Manifest().KeysFor(doc.RawPath),
	})
}

// HandleTree returns the directory tree below a slug (the whole site when empty).
func (h *ContentHandlers) HandleTree(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.site.Tree(slugParam(r)))
}

// HandleNav returns the navigation forest.
func (h *ContentHandlers) HandleNav(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.site.NavTree())
}

// HandleBreadcrumbs returns the breadcrumb trail for a slug.
func (h *ContentHandlers) HandleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.site.BreadcrumbsFor(slugParam(r)))
}

func (h *ContentHandlers) write(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write response").
			WithContext("path", r.URL.Path).
			Build())
	}
}
