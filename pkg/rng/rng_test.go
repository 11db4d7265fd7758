package rng_test

import (
	"strings"
	"testing"

	"github.com/oscore/simkit/pkg/rng"
	"github.com/stretchr/testify/require"
)

func TestLoadAndDraw(t *testing.T) {
	src, err := rng.Load(strings.NewReader("3\n1\n2\n3\n"))
	require.NoError(t, err)

	require.Equal(t, 1+(1%5), src.Draw(5))
	require.Equal(t, 1+(2%5), src.Draw(5))
	require.Equal(t, 1+(3%5), src.Draw(5))
	// wraps back to the first value
	require.Equal(t, 1+(1%5), src.Draw(5))
}

func TestIndexWraps(t *testing.T) {
	src, err := rng.Load(strings.NewReader("2\n7\n9\n"))
	require.NoError(t, err)

	require.Equal(t, 7%4, src.Index(4))
	require.Equal(t, 9%4, src.Index(4))
	require.Equal(t, 7%4, src.Index(4))
}

func TestLoadRejectsEmpty(t *testing.T) {
	_, err := rng.Load(strings.NewReader(""))
	require.Error(t, err)
}
