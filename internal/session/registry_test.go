package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRecord struct {
	ID    string   `json:"id"`
	Notes []string `json:"notes"`
}

func (n *noteRecord) SessionID() string { return n.ID }

func (n *noteRecord) Clone() *noteRecord {
	c := *n
	c.Notes = append([]string(nil), n.Notes...)
	return &c
}

// registries returns one instance of every backend under test.
func registries(t *testing.T) map[string]Registry[*noteRecord] {
	t.Helper()
	db, err := OpenSQLite("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Registry[*noteRecord]{
		"memory": NewMemoryRegistry[*noteRecord]("note"),
		"sqlite": NewSQLiteRegistry[*noteRecord](db, "note", "note"),
	}
}

func TestRegistry_InsertGet(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "a1", Notes: []string{"started"}}))

			got, err := reg.Get(ctx, "a1")
			require.NoError(t, err)
			assert.Equal(t, "a1", got.ID)
			assert.Equal(t, []string{"started"}, got.Notes)
		})
	}
}

func TestRegistry_DuplicateInsert(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "dup"}))

			err := reg.Insert(ctx, &noteRecord{ID: "dup"})
			assert.ErrorIs(t, err, ErrDuplicateID)
			assert.ErrorIs(t, err, ErrConflict)
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			_, err := reg.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Equal(t, "not_found", Kind(err))
		})
	}
}

func TestRegistry_UpdateCommitsOnSuccess(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "u1"}))

			updated, err := reg.Update(ctx, "u1", func(rec *noteRecord) error {
				rec.Notes = append(rec.Notes, "evaluated")
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"evaluated"}, updated.Notes)

			got, err := reg.Get(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, []string{"evaluated"}, got.Notes)
		})
	}
}

func TestRegistry_UpdateDiscardsOnError(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "u2", Notes: []string{"kept"}}))

			boom := Validationf("late failure")
			_, err := reg.Update(ctx, "u2", func(rec *noteRecord) error {
				rec.Notes = append(rec.Notes, "partial")
				rec.Notes[0] = "clobbered"
				return boom
			})
			assert.ErrorIs(t, err, ErrValidation)

			got, err := reg.Get(ctx, "u2")
			require.NoError(t, err)
			assert.Equal(t, []string{"kept"}, got.Notes)
		})
	}
}

func TestRegistry_UpdateUnknown(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			called := false
			_, err := reg.Update(context.Background(), "nope", func(*noteRecord) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, ErrNotFound)
			assert.False(t, called)
		})
	}
}

func TestRegistry_ListCreationOrder(t *testing.T) {
	for name, reg := range registries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := reg.List(ctx)
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			for _, id := range []string{"c", "a", "b"} {
				require.NoError(t, reg.Insert(ctx, &noteRecord{ID: id}))
			}
			list, err := reg.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "c", list[0].ID)
			assert.Equal(t, "a", list[1].ID)
			assert.Equal(t, "b", list[2].ID)
		})
	}
}

func TestMemoryRegistry_ReturnsCopies(t *testing.T) {
	reg := NewMemoryRegistry[*noteRecord]("note")
	ctx := context.Background()
	rec := &noteRecord{ID: "x", Notes: []string{"one"}}
	require.NoError(t, reg.Insert(ctx, rec))

	rec.Notes[0] = "mutated after insert"
	got, err := reg.Get(ctx, "x")
	require.NoError(t, err)
	got.Notes[0] = "mutated after get"

	again, err := reg.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "one", again.Notes[0])
}

func TestMemoryRegistry_ConcurrentUpdatesAreSerialized(t *testing.T) {
	reg := NewMemoryRegistry[*noteRecord]("note")
	ctx := context.Background()
	require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "c"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Update(ctx, "c", func(rec *noteRecord) error {
				rec.Notes = append(rec.Notes, fmt.Sprintf("n%d", i))
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := reg.Get(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, got.Notes, 50)
}

func TestInsertNew_RetriesOnCollision(t *testing.T) {
	reg := NewMemoryRegistry[*noteRecord]("note")
	ctx := context.Background()
	require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "taken"}))

	ids := []string{"taken", "taken", "fresh"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	rec, err := InsertNew(ctx, Registry[*noteRecord](reg), next, func(id string) *noteRecord {
		return &noteRecord{ID: id}
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", rec.ID)
}

func TestInsertNew_GivesUp(t *testing.T) {
	reg := NewMemoryRegistry[*noteRecord]("note")
	ctx := context.Background()
	require.NoError(t, reg.Insert(ctx, &noteRecord{ID: "same"}))

	_, err := InsertNew(ctx, Registry[*noteRecord](reg), func() string { return "same" }, func(id string) *noteRecord {
		return &noteRecord{ID: id}
	})
	require.Error(t, err)
}

func TestOpenSQLite_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("driver exploded")
	}

	_, err := OpenSQLite("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver exploded")
}
