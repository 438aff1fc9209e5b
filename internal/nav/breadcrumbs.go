package nav

import "strings"

// DefaultRootLabel labels the first breadcrumb.
const DefaultRootLabel = "Articles"

// Crumb is one breadcrumb entry.
type Crumb struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// BuildBreadcrumbs returns root followed by one entry per segment, each with
// the cumulative href. Empty segments are skipped.
func BuildBreadcrumbs(segments []string, root Crumb) []Crumb {
	crumbs := make([]Crumb, 0, len(segments)+1)
	crumbs = append(crumbs, root)

	href := strings.TrimSuffix(root.Href, "/")
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		href += "/" + seg
		crumbs = append(crumbs, Crumb{Href: href, Label: seg})
	}
	return crumbs
}
