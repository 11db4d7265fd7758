package util_test

import (
	"testing"

	"github.com/oscore/simkit/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, util.SafeDiv(4, 2))
	assert.Equal(t, 0.0, util.SafeDiv(4, 0))
	assert.Equal(t, 0.0, util.SafeDiv(4, 1e-13))
}
