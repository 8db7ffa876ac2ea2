package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/dashboard-service/internal/store"
)

func backends(t *testing.T) map[string]store.KV {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]store.KV{
		"memory": store.NewMemoryKV(),
		"redis":  store.NewRedisKV(rdb),
	}
}

func TestKV_Contract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := kv.Get(ctx, "missing")
			require.True(t, errors.Is(err, store.ErrNotFound), "Get(missing) err = %v", err)

			require.NoError(t, kv.Set(ctx, "a", []byte(`{"v":1}`)))
			got, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":1}`, string(got))

			require.NoError(t, kv.Set(ctx, "a", []byte(`{"v":2}`)))
			got, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(got), "last write wins")

			require.NoError(t, kv.SetMulti(ctx, map[string][]byte{
				"p:1": []byte(`[1]`),
				"p:2": []byte(`[2]`),
			}))
			for k, want := range map[string]string{"p:1": `[1]`, "p:2": `[2]`} {
				got, err := kv.Get(ctx, k)
				require.NoError(t, err)
				assert.JSONEq(t, want, string(got))
			}

			keys, err := kv.Keys(ctx, "p:")
			require.NoError(t, err)
			assert.Equal(t, []string{"p:1", "p:2"}, keys)

			keys, err = kv.Keys(ctx, "nothing-here")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	in := []byte(`"x"`)
	require.NoError(t, kv.Set(ctx, "k", in))
	in[1] = 'y'

	out, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(out))

	out[1] = 'z'
	again, _ := kv.Get(ctx, "k")
	assert.Equal(t, `"x"`, string(again))
}

func TestMemoryKV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.NewMemoryKV().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeysAndUsersWith(t *testing.T) {
	assert.Equal(t, "jobtracker:alice:preferences", store.Key("alice", store.RecordPreferences))
	assert.Equal(t, "jobtracker:alice:digest:2026-10-17", store.DigestKey("alice", "2026-10-17"))

	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, store.Key("alice", store.RecordPreferences), []byte(`{}`)))
	require.NoError(t, kv.Set(ctx, store.Key("bob", store.RecordSaved), []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, store.Key("carol", store.RecordPreferences), []byte(`{}`)))
	require.NoError(t, kv.Set(ctx, store.DigestKey("dave", "2026-10-17"), []byte(`[]`)))

	users, err := store.UsersWith(ctx, kv, store.RecordPreferences)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, users)
}
