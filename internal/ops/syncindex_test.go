package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPort(t *testing.T) {
	assert.True(t, hasPort("buildhost:2222"))
	assert.False(t, hasPort("buildhost"))
	assert.False(t, hasPort("[::1]"))
	assert.True(t, hasPort("[::1]:22"))
}
