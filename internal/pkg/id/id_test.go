package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortableAndValid(t *testing.T) {
	a := New()
	time.Sleep(2 * time.Millisecond)
	b := New()

	assert.Len(t, a, 26)
	assert.True(t, Valid(a))
	assert.Less(t, a, b)
}

func TestValid_RejectsGarbage(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-ulid"))
	assert.False(t, Valid("01ARZ3NDEKTSV4RRFFQ69G5FA!"))
}

func TestTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	got, err := Time(New())
	require.NoError(t, err)
	assert.True(t, got.After(before))

	_, err = Time("nope")
	assert.Error(t, err)
}
