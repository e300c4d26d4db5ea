package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkers(t *testing.T) {
	assert.Contains(t, Check("basic-counter"), "basic-counter")
	assert.Contains(t, Cross("arithmetic"), "arithmetic")
	assert.Contains(t, Warn("Missing @title JSDoc tag"), "Missing @title JSDoc tag")
	assert.Contains(t, Stats("Valid", 3, SuccessStyle), "3")
	assert.Contains(t, Banner("Scaffold Summary"), "Scaffold Summary")
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Counter\n\nDoes counting.\n", 80)
	assert.Contains(t, out, "Counter")
	assert.Contains(t, out, "Does counting.")
}

func TestRenderDiff(t *testing.T) {
	out := RenderDiff("--- a\n+++ b\n-old\n+new\n")
	assert.Contains(t, out, "old")
	assert.Contains(t, out, "new")
}
