package zeni

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompiledFeatures(t *testing.T) {
	features := CompiledFeatures()
	assert.True(t, slices.IsSorted(features))
	assert.True(t, slices.ContainsFunc(features, func(f string) bool { return len(f) > 6 && f[:6] == "video:" }))
	assert.True(t, slices.ContainsFunc(features, func(f string) bool { return len(f) > 6 && f[:6] == "audio:" }))

	// The returned slice is a copy.
	if len(features) > 0 {
		features[0] = "changed"
		assert.NotEqual(t, "changed", CompiledFeatures()[0])
	}

	var buf bytes.Buffer
	PrintFeatures(&buf)
	assert.Contains(t, buf.String(), "Zeni Engine "+Version)
	assert.Contains(t, buf.String(), "Compiled features:")
}
