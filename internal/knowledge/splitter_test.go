package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortDocument(t *testing.T) {
	assert.Nil(t, SplitText("", 100, 20))

	chunks := SplitText("fits in one chunk", 100, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, "fits in one chunk", chunks[0])
}

func TestSplitTextChunkBounds(t *testing.T) {
	text := strings.Repeat("word ", 500) // 2500 chars
	chunks := SplitText(text, 1000, 200)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1000, "chunk %d too large", i)
		assert.NotEmpty(t, c)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 200)
	chunks := SplitText(text, 300, 60)
	require.Greater(t, len(chunks), 1)

	// each chunk starts inside the previous one
	for i := 1; i < len(chunks); i++ {
		head := []rune(chunks[i])[:10]
		assert.Contains(t, chunks[i-1], string(head), "chunk %d should start inside chunk %d", i, i-1)
	}
}

func TestSplitTextPrefersWordBoundaries(t *testing.T) {
	text := strings.Repeat("ten chars ", 300) // spaces every 10 runes
	chunks := SplitText(text, 1000, 200)

	for i, c := range chunks[:len(chunks)-1] {
		last := c[len(c)-1]
		assert.True(t, last == ' ' || last == '\n', "chunk %d ends mid-word: %q", i, c[len(c)-5:])
	}
}

func TestSplitTextNoBreakPoint(t *testing.T) {
	// a single unbroken run must still make progress via hard cuts
	text := strings.Repeat("x", 2500)
	chunks := SplitText(text, 1000, 200)

	require.Greater(t, len(chunks), 1)
	var rebuilt strings.Builder
	for _, c := range chunks {
		rebuilt.WriteString(c)
	}
	// every rune of the source appears in order at least once
	assert.GreaterOrEqual(t, rebuilt.Len(), len(text))
}
