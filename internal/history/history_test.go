package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonspect/internal/models"
)

func entry(kind EntryKind, batch []models.Value) Entry {
	return Entry{
		Timestamp: time.Now(),
		Kind:      kind,
		Source:    models.Object{{Key: "a", Value: "b"}},
		Batch:     batch,
	}
}

func TestSessionAppendAndEntries(t *testing.T) {
	s := NewStore().Session("s1")
	assert.Empty(t, s.Entries())

	s.Append(entry(KindFormat, nil))
	s.Append(entry(KindMock, []models.Value{models.Object{{Key: "x", Value: "y"}}}))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, KindFormat, entries[0].Kind)
	assert.Equal(t, KindMock, entries[1].Kind)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, KindMock, latest.Kind)
}

func TestSessionEntriesReturnsCopy(t *testing.T) {
	s := NewStore().Session("s1")
	s.Append(entry(KindFormat, nil))

	entries := s.Entries()
	entries[0].Kind = KindMock

	fresh := s.Entries()
	assert.Equal(t, KindFormat, fresh[0].Kind)
}

func TestSessionLatestBatch(t *testing.T) {
	s := NewStore().Session("s1")

	_, ok := s.LatestBatch()
	assert.False(t, ok)

	batch := []models.Value{models.Object{{Key: "n", Value: "v"}}}
	s.Append(entry(KindMock, batch))
	s.Append(entry(KindFormat, nil))

	// The latest entry is a format; the batch still comes from the most
	// recent mock entry.
	got, ok := s.LatestBatch()
	require.True(t, ok)
	assert.Equal(t, batch, got)
}

func TestSessionClear(t *testing.T) {
	s := NewStore().Session("s1")
	s.Append(entry(KindFormat, nil))
	require.True(t, s.TryUseAI(3))

	s.Clear()
	assert.Empty(t, s.Entries())
	assert.Equal(t, 0, s.AIUses())

	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestTryUseAI(t *testing.T) {
	s := NewStore().Session("s1")

	for i := 0; i < 3; i++ {
		assert.True(t, s.TryUseAI(3), "use %d should be allowed", i+1)
	}
	assert.False(t, s.TryUseAI(3))
	assert.Equal(t, 3, s.AIUses())

	s.Clear()
	assert.True(t, s.TryUseAI(3))
}

func TestTryUseAIUnlimited(t *testing.T) {
	s := NewStore().Session("s1")
	for i := 0; i < 100; i++ {
		assert.True(t, s.TryUseAI(0))
	}
}

func TestStoreSessionIdentity(t *testing.T) {
	st := NewStore()

	a := st.Session("alpha")
	b := st.Session("alpha")
	assert.Same(t, a, b)
	assert.Equal(t, "alpha", a.ID())

	c := st.Session("beta")
	assert.NotSame(t, a, c)
}

func TestStoreSessionIsolation(t *testing.T) {
	st := NewStore()
	a := st.Session("alpha")
	b := st.Session("beta")

	a.Append(entry(KindFormat, nil))
	assert.Len(t, a.Entries(), 1)
	assert.Empty(t, b.Entries())

	for i := 0; i < 3; i++ {
		a.TryUseAI(3)
	}
	assert.False(t, a.TryUseAI(3))
	assert.True(t, b.TryUseAI(3))
}

func TestStoreGeneratesSessionIDs(t *testing.T) {
	st := NewStore()

	a := st.Session("")
	b := st.Session("")
	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	// A generated ID resolves back to the same session.
	assert.Same(t, a, st.Session(a.ID()))
}
