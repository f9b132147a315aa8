package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New(7, "payload")
	assert.Equal(t, Kind(7), m.Kind)
	assert.Equal(t, "payload", m.Data)
	assert.NotEmpty(t, m.ID)
	assert.Nil(t, m.Handler)
	assert.True(t, m.Due.IsZero())

	other := New(7, "payload")
	assert.NotEqual(t, m.ID, other.ID)
}

func TestNewWithHandler(t *testing.T) {
	m := NewWithHandler(3, nil, func(ctx context.Context, m *Message) Disposition {
		return Consumed
	})
	assert.NotNil(t, m.Handler)
	assert.Equal(t, Consumed, m.Handler(context.Background(), m))
}
