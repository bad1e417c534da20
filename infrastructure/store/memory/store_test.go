package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "docA", 1234.5))

	offset, ok, err := s.Get(ctx, "docA")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1234.5, offset)
}

func TestSave_Overwrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "docA", 100))
	require.NoError(t, s.Save(ctx, "docA", 200))

	offset, ok, err := s.Get(ctx, "docA")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(200), offset)
}

func TestGet_AbsentDocument(t *testing.T) {
	s := NewStore()

	_, ok, err := s.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "docA", 50))
	require.NoError(t, s.Delete(ctx, "docA"))

	_, ok, err := s.Get(ctx, "docA")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_AbsentIsNoError(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Delete(context.Background(), "missing"))
}

func TestCancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, "docA", 1))
	_, _, err := s.Get(ctx, "docA")
	assert.Error(t, err)
}

func TestClose_DropsEntries(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "docA", 50))
	require.NoError(t, s.Close())

	_, ok, err := s.Get(ctx, "docA")
	require.NoError(t, err)
	assert.False(t, ok)
}
