package queue

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/loopq/model/message"
)

func TestDumpTicksMarker(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	fixed := time.Now()
	q := New(WithLogger(logger), WithNow(func() time.Time { return fixed }))

	first := message.New(kindA, nil)
	marker := message.New(kindB, nil)
	require.NoError(t, q.Post(first, 10*time.Millisecond, 0))
	require.NoError(t, q.Post(marker, 20*time.Millisecond, 0))

	q.Dump(marker)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], first.ID)
	assert.Contains(t, lines[0], `"tick":" "`)
	assert.Contains(t, lines[1], marker.ID)
	assert.Contains(t, lines[1], `"tick":">"`)
}

func TestDumpEmptyQueue(t *testing.T) {
	var buf bytes.Buffer
	q := New(WithLogger(zerolog.New(&buf)))

	q.Dump(nil)
	assert.Empty(t, buf.String())
}
