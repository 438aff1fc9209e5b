// Package frontmatter separates YAML frontmatter from a content document's body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Parts is a document split at its frontmatter boundary.
type Parts struct {
	Raw  []byte // frontmatter without the --- delimiters
	Body []byte
	Had  bool
}

// Split separates `---` delimited YAML frontmatter from the body.
//
// A document without a leading delimiter yields Had == false and the full
// input as Body. Both LF and CRLF documents are accepted.
func Split(content []byte) (Parts, error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Parts{Body: content}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Parts{Raw: []byte{}, Body: rest[len(open):], Had: true}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a trailing newline still closes.
		closeEOF := []byte(nl + "---")
		if bytes.HasSuffix(rest, closeEOF) {
			return Parts{Raw: rest[:len(rest)-len(closeEOF)+len(nl)], Body: []byte{}, Had: true}, nil
		}
		return Parts{}, ErrMissingClosingDelimiter
	}

	return Parts{
		Raw:  rest[:idx+len(nl)],
		Body: rest[idx+len(closeSeq):],
		Had:  true,
	}, nil
}

// Fields parses the frontmatter as a YAML mapping. Documents without
// frontmatter yield an empty map.
func (p Parts) Fields() (map[string]any, error) {
	if len(p.Raw) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(p.Raw, &fields); err != nil {
		return nil, fmt.Errorf("parse frontmatter yaml: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// String returns a trimmed string field, or "" when missing or not scalar.
func String(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
