package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	parts, err := Split(input)
	require.NoError(t, err)
	require.False(t, parts.Had)
	require.Empty(t, parts.Raw)
	require.Equal(t, input, parts.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	parts, err := Split([]byte("---\ntitle: Setup\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, parts.Had)
	require.Equal(t, []byte("title: Setup\n"), parts.Raw)
	require.Equal(t, []byte("# Title\n"), parts.Body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	parts, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, parts.Had)
	require.Equal(t, []byte("key: value\r\n"), parts.Raw)
	require.Equal(t, []byte("# Title\r\n"), parts.Body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	parts, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, parts.Had)
	require.Empty(t, parts.Raw)
	require.Equal(t, []byte("# Title\n"), parts.Body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	parts, err := Split([]byte("---\ntitle: Only\n---"))
	require.NoError(t, err)
	require.True(t, parts.Had)
	require.Equal(t, []byte("title: Only\n"), parts.Raw)
	require.Empty(t, parts.Body)
}

func TestFields(t *testing.T) {
	parts, err := Split([]byte("---\ntitle: \"  Getting Started \"\nweight: 3\ntags: [a, b]\n---\nbody\n"))
	require.NoError(t, err)

	fields, err := parts.Fields()
	require.NoError(t, err)
	require.Equal(t, "Getting Started", String(fields, "title"))
	require.Equal(t, "3", String(fields, "weight"))
	require.Equal(t, "", String(fields, "tags"))
	require.Equal(t, "", String(fields, "missing"))
}

func TestFields_InvalidYAML(t *testing.T) {
	parts, err := Split([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.NoError(t, err)
	_, err = parts.Fields()
	require.Error(t, err)
}
