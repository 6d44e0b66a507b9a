package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "surrealkit "+Version)
	assert.Contains(t, info, runtime.Version())
	assert.Equal(t, Version, Short())
}
