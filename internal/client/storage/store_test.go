package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/common"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	mem := NewMemoryStore()
	t.Cleanup(func() { _ = mem.Close() })

	return map[string]Store{"sqlite": sq, "memory": mem}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Set(ctx, KeyUserToken, []byte("t1")))
			v, err := s.Get(ctx, KeyUserToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("t1"), v)

			require.NoError(t, s.Set(ctx, KeyUserToken, []byte("t2")))
			v, err = s.Get(ctx, KeyUserToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("t2"), v)
		})
	}
}

func TestStore_GetAbsent_ReturnsNilNil(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, err := s.Get(context.Background(), "absent")
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestStore_RemoveTwice_IsIdempotent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, KeyUserToken, []byte("t1")))

			for i := 0; i < 2; i++ {
				require.NoError(t, s.Remove(ctx, KeyUserToken))
				v, err := s.Get(ctx, KeyUserToken)
				require.NoError(t, err)
				assert.Nil(t, v)
			}
		})
	}
}

func TestStore_UserProfileRoundTrip(t *testing.T) {
	user := models.User{
		ID:          1,
		Username:    "a@b.com",
		FirstName:   "A",
		Surname:     "B",
		Role:        "user",
		Age:         25,
		Mail:        "a@b.com",
		PhoneNumber: "+79990000000",
	}

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, SetJSON(ctx, s, KeyUserData, user))

			var got models.User
			found, err := GetJSON(ctx, s, KeyUserData, &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.Empty(t, cmp.Diff(user, got))
		})
	}
}

func TestGetJSON_KeepsIntegerPrecision(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyUserData, []byte(`{"id":9007199254740993,"age":25}`)))

	var raw map[string]any
	found, err := GetJSON(ctx, s, KeyUserData, &raw)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, json.Number("9007199254740993"), raw["id"])
	assert.Equal(t, json.Number("25"), raw["age"])
}

func TestGetJSON_AbsentAndCorrupt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var u models.User
	found, err := GetJSON(ctx, s, KeyUserData, &u)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyUserData, []byte("{not json")))
	_, err = GetJSON(ctx, s, KeyUserData, &u)
	var se *common.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "decode", se.Op)
}

func TestStore_UpdateCommitsAll(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			err := s.Update(ctx, func(ctx context.Context, tx KV) error {
				if err := tx.Set(ctx, KeyUserData, []byte(`{"id":1}`)); err != nil {
					return err
				}
				return tx.Set(ctx, KeyUserToken, []byte("t1"))
			})
			require.NoError(t, err)

			tok, _ := s.Get(ctx, KeyUserToken)
			data, _ := s.Get(ctx, KeyUserData)
			assert.Equal(t, []byte("t1"), tok)
			assert.Equal(t, []byte(`{"id":1}`), data)
		})
	}
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, KeyUserData, []byte("old")))

			boom := errors.New("boom")
			err := s.Update(ctx, func(ctx context.Context, tx KV) error {
				require.NoError(t, tx.Set(ctx, KeyUserData, []byte("new")))
				require.NoError(t, tx.Set(ctx, KeyUserToken, []byte("t1")))
				return boom
			})
			require.ErrorIs(t, err, boom)

			data, _ := s.Get(ctx, KeyUserData)
			tok, _ := s.Get(ctx, KeyUserToken)
			assert.Equal(t, []byte("old"), data)
			assert.Nil(t, tok)
		})
	}
}

func TestStore_UpdateRollsBackOnPanic(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.Panics(t, func() {
				_ = s.Update(ctx, func(ctx context.Context, tx KV) error {
					_ = tx.Set(ctx, KeyUserToken, []byte("t1"))
					panic("kaboom")
				})
			})

			tok, err := s.Get(ctx, KeyUserToken)
			require.NoError(t, err)
			assert.Nil(t, tok)
		})
	}
}

func TestMemoryStore_ConcurrentSameKey_LastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, v := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_ = s.Set(ctx, "k", []byte(v))
		}(v)
	}
	wg.Wait()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b", "c", "d"}, string(got))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	v, _ := s.Get(ctx, "k")
	v[0] = 'X'

	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestSQLiteStore_ClosedReturnsStorageError(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(context.Background(), KeyUserToken)
	var se *common.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get", se.Op)
	assert.Equal(t, KeyUserToken, se.Key)

	err = s.Set(context.Background(), KeyUserToken, []byte("x"))
	require.ErrorAs(t, err, &se)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, MemoryDSN)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	path := t.TempDir() + "/natman.db"
	s, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.IsType(t, &SQLiteStore{}, s)

	require.NoError(t, s.Set(ctx, KeyUserToken, []byte("persisted")))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	v, err := reopened.Get(ctx, KeyUserToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), v)
}
