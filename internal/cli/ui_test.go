package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterKeyValue(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}

	p.keyValue("workers", "4")
	p.keyValue("circulation outside window", "window window-circulation")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "workers "), lines[0])
	assert.Equal(t, keyWidth+1, strings.Index(lines[0], "4"))
	assert.Contains(t, lines[1], "circulation outside window window window-circulation")
}
