package manifest

import (
	"log/slog"
	"path"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

// describe derives the manifest handle for a loaded document.
//
// Title precedence: frontmatter "title", first level-1 heading, final slug
// segment. Malformed frontmatter is not fatal; the whole file is then treated
// as body.
func describe(df *docs.DocFile, logger *slog.Logger) *Document {
	s := slug.Normalize(df.RelativePath)
	doc := &Document{
		RawPath: df.RelativePath,
		Slug:    s,
		Size:    int64(len(df.Content)),
	}

	parts, err := frontmatter.Split(df.Content)
	if err != nil {
		logger.Warn("Ignoring unterminated frontmatter", logfields.File(df.RelativePath), logfields.Error(err))
		parts = frontmatter.Parts{Body: df.Content}
	}

	if parts.Had {
		fields, ferr := parts.Fields()
		if ferr != nil {
			logger.Warn("Ignoring unparsable frontmatter", logfields.File(df.RelativePath), logfields.Error(ferr))
		} else {
			doc.Title = frontmatter.String(fields, "title")
		}
	}
	if doc.Title == "" {
		doc.Title = markdown.FirstHeading(parts.Body)
	}
	if doc.Title == "" && s != "" {
		doc.Title = path.Base(s)
	}

	doc.Fingerprint = mdfp.CalculateFingerprintFromParts(string(parts.Raw), string(parts.Body))
	return doc
}
