package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func newColors() *Normalizer[color] {
	return NewNormalizer("color", map[string]color{
		"Red":  "red",
		"blue": "blue",
	}, "blue")
}

func TestNormalize(t *testing.T) {
	n := newColors()
	assert.Equal(t, color("red"), n.Normalize("  RED "))
	assert.Equal(t, color("blue"), n.Normalize("green"))
	assert.Equal(t, color("blue"), n.Normalize(""))
}

func TestParse(t *testing.T) {
	n := newColors()

	v, err := n.Parse("red")
	require.NoError(t, err)
	assert.Equal(t, color("red"), v)

	v, err = n.Parse(" ")
	require.NoError(t, err)
	assert.Equal(t, color("blue"), v)

	_, err = n.Parse("green")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "color")
	assert.Contains(t, err.Error(), "blue, red")
}

func TestKeys(t *testing.T) {
	n := newColors()
	keys := n.Keys()
	assert.Equal(t, []string{"blue", "red"}, keys)
	keys[0] = "x"
	assert.Equal(t, []string{"blue", "red"}, n.Keys())
}
