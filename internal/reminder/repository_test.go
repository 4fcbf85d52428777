package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitenote/internal/store"
)

const testOrigin = "https://example.com"

func newTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, opts...)
}

func TestAddThenList(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)
	assert.NotEmpty(t, rem.ID)
	assert.Equal(t, "Check comments", rem.Text)
	assert.Equal(t, Stamp(time.Now()), rem.Date)

	list := r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, rem, list[0])
}

func TestAddTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	rem, err := r.Add(ctx, testOrigin, "  Check comments  ")
	require.NoError(t, err)
	assert.Equal(t, "Check comments", rem.Text)
}

func TestAddLengthBounds(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Add(ctx, testOrigin, "ab")
	assert.ErrorIs(t, err, ErrTooShort)

	// Whitespace padding does not rescue a short reminder.
	_, err = r.Add(ctx, testOrigin, "   ab   ")
	assert.ErrorIs(t, err, ErrTooShort)

	_, err = r.Add(ctx, testOrigin, strings.Repeat("x", DefaultMaxLength+1))
	assert.ErrorIs(t, err, ErrTooLong)

	// Nothing was written on any failure.
	assert.Empty(t, r.List(ctx, testOrigin))

	// Exactly at the bounds is fine.
	_, err = r.Add(ctx, testOrigin, "abc")
	assert.NoError(t, err)
	_, err = r.Add(ctx, testOrigin, strings.Repeat("y", DefaultMaxLength))
	assert.NoError(t, err)
}

func TestAddConfiguredMaxLength(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t, WithMaxLength(30))

	_, err := r.Add(ctx, testOrigin, strings.Repeat("x", 31))
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = r.Add(ctx, testOrigin, strings.Repeat("x", 30))
	assert.NoError(t, err)
}

func TestAddDuplicate(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)

	_, err = r.Add(ctx, testOrigin, "Check comments")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, r.List(ctx, testOrigin), 1)

	// Case matters: a different casing is a different reminder.
	_, err = r.Add(ctx, testOrigin, "check comments")
	assert.NoError(t, err)
}

func TestAddPreservesOrder(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	for i := range 5 {
		_, err := r.Add(ctx, testOrigin, fmt.Sprintf("reminder %d", i))
		require.NoError(t, err)
	}
	list := r.List(ctx, testOrigin)
	require.Len(t, list, 5)
	for i, rem := range list {
		assert.Equal(t, fmt.Sprintf("reminder %d", i), rem.Text)
	}
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t, WithClock(func() time.Time {
		return time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)
	}))

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)

	updated, err := r.Edit(ctx, testOrigin, rem.ID, "Check replies")
	require.NoError(t, err)
	assert.Equal(t, rem.ID, updated.ID, "identity survives the edit")
	assert.Equal(t, "Check replies", updated.Text)
	assert.Equal(t, "Jan/5/25", updated.Date)

	list := r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, "Check replies", list[0].Text)
}

func TestEditRestamps(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.January, 5, 12, 0, 0, 0, time.UTC)
	r := newTestRepo(t, WithClock(func() time.Time { return day }))

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)
	assert.Equal(t, "Jan/5/25", rem.Date)

	day = day.AddDate(0, 0, 3)
	updated, err := r.Edit(ctx, testOrigin, rem.ID, "Check replies")
	require.NoError(t, err)
	assert.Equal(t, "Jan/8/25", updated.Date)
}

func TestEditValidatesLength(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)

	_, err = r.Edit(ctx, testOrigin, rem.ID, "ab")
	assert.ErrorIs(t, err, ErrTooShort)

	list := r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, "Check comments", list[0].Text, "failed edit leaves the record alone")
}

func TestEditAllowsDuplicateText(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Add(ctx, testOrigin, "first")
	require.NoError(t, err)
	second, err := r.Add(ctx, testOrigin, "second")
	require.NoError(t, err)

	// Uniqueness is only enforced on add; editing into a clash is
	// accepted and the two records stay distinct by ID.
	updated, err := r.Edit(ctx, testOrigin, second.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Text)
	assert.Len(t, r.List(ctx, testOrigin), 2)
}

func TestEditNotFound(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Edit(ctx, testOrigin, "01MISSING", "long enough")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	first, err := r.Add(ctx, testOrigin, "first")
	require.NoError(t, err)
	_, err = r.Add(ctx, testOrigin, "second")
	require.NoError(t, err)

	require.NoError(t, r.Remove(ctx, testOrigin, first.ID))
	list := r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Text)

	err = r.Remove(ctx, testOrigin, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, r.List(ctx, testOrigin), 1)
}

func TestRemoveLastDeletesEntry(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	r := New(s)

	rem, err := r.Add(ctx, testOrigin, "only one")
	require.NoError(t, err)
	require.NoError(t, r.Remove(ctx, testOrigin, rem.ID))

	_, ok, err := s.Get(ctx, testOrigin)
	require.NoError(t, err)
	assert.False(t, ok, "empty list clears the store entry, not just its contents")
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Add(ctx, testOrigin, "first")
	require.NoError(t, err)
	_, err = r.Add(ctx, testOrigin, "second")
	require.NoError(t, err)

	require.NoError(t, r.ClearAll(ctx, testOrigin))
	assert.Empty(t, r.List(ctx, testOrigin))

	// Clearing an origin that has nothing is a no-op.
	require.NoError(t, r.ClearAll(ctx, testOrigin))
}

func TestNoOriginShortCircuits(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	assert.Empty(t, r.List(ctx, ""))

	_, err := r.Add(ctx, "", "Check comments")
	assert.ErrorIs(t, err, ErrNoOrigin)
	_, err = r.Edit(ctx, "", "id", "Check comments")
	assert.ErrorIs(t, err, ErrNoOrigin)
	assert.ErrorIs(t, r.Remove(ctx, "", "id"), ErrNoOrigin)
	assert.ErrorIs(t, r.ClearAll(ctx, ""), ErrNoOrigin)
}

func TestOriginsIsolated(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.Add(ctx, "https://a.example.com", "for a")
	require.NoError(t, err)
	_, err = r.Add(ctx, "https://b.example.com", "for b one")
	require.NoError(t, err)
	_, err = r.Add(ctx, "https://b.example.com", "for b two")
	require.NoError(t, err)

	origins, err := r.Origins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []OriginCount{
		{Origin: "https://a.example.com", Count: 1},
		{Origin: "https://b.example.com", Count: 2},
	}, origins)

	// The same text may exist under different origins.
	_, err = r.Add(ctx, "https://b.example.com", "for a")
	assert.NoError(t, err)
}

func TestFindByText(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)

	found, ok := r.FindByText(ctx, testOrigin, "Check comments")
	require.True(t, ok)
	assert.Equal(t, rem.ID, found.ID)

	_, ok = r.FindByText(ctx, testOrigin, "missing")
	assert.False(t, ok)
}

func TestOnChangeSignals(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	var signals []string
	r.SetOnChange(func(origin string) { signals = append(signals, origin) })

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)
	_, err = r.Edit(ctx, testOrigin, rem.ID, "Check replies")
	require.NoError(t, err)
	require.NoError(t, r.Remove(ctx, testOrigin, rem.ID))

	// Add and remove change the count and signal; edit does not.
	assert.Equal(t, []string{testOrigin, testOrigin}, signals)

	_, err = r.Add(ctx, testOrigin, "again")
	require.NoError(t, err)
	require.NoError(t, r.ClearAll(ctx, testOrigin))
	assert.Len(t, signals, 4)
}

// Concurrent adds against one origin must not lose updates even though
// each one is a separate read-modify-write cycle.
func TestConcurrentAddsNoLostUpdate(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Add(ctx, testOrigin, fmt.Sprintf("reminder %d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, r.List(ctx, testOrigin), n)
}

func TestScenarioLifecycle(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	today := Stamp(time.Now())

	rem, err := r.Add(ctx, testOrigin, "Check comments")
	require.NoError(t, err)
	list := r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, "Check comments", list[0].Text)
	assert.Equal(t, today, list[0].Date)

	_, err = r.Add(ctx, testOrigin, "Check comments")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, r.List(ctx, testOrigin), 1)

	updated, err := r.Edit(ctx, testOrigin, rem.ID, "Check replies")
	require.NoError(t, err)
	list = r.List(ctx, testOrigin)
	require.Len(t, list, 1)
	assert.Equal(t, "Check replies", list[0].Text)
	assert.Equal(t, today, updated.Date)

	require.NoError(t, r.Remove(ctx, testOrigin, rem.ID))
	assert.Empty(t, r.List(ctx, testOrigin))
}

// brokenStore fails every call, standing in for a persistence layer
// that is down.
type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, string) (json.RawMessage, bool, error) {
	return nil, false, b.err
}
func (b brokenStore) Set(context.Context, string, json.RawMessage) error { return b.err }
func (b brokenStore) Remove(context.Context, string) error               { return b.err }
func (b brokenStore) Keys(context.Context) ([]string, error)             { return nil, b.err }

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store down")
	r := New(brokenStore{err: boom})

	// Reads absorb the failure and present an empty list.
	assert.Empty(t, r.List(ctx, testOrigin))
	assert.Equal(t, 0, r.Count(ctx, testOrigin))

	// Mutations report it to the caller.
	_, err := r.Add(ctx, testOrigin, "Check comments")
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsValidation(err))

	_, err = r.Edit(ctx, testOrigin, "id", "Check comments")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.Remove(ctx, testOrigin, "id"), boom)
	assert.ErrorIs(t, r.ClearAll(ctx, testOrigin), boom)

	_, err = r.Origins(ctx)
	assert.ErrorIs(t, err, boom)
}
