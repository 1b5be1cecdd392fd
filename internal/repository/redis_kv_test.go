package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisKV(t *testing.T) (KVStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	return NewRedisKV(client, "skillswap:state:", time.Second), mr
}

func TestStateRepository_RedisRoundTrip(t *testing.T) {
	kv, _ := setupRedisKV(t)
	testStateRoundTrip(t, kv)
}

func TestRedisKV_PrefixedReadWrite(t *testing.T) {
	kv, mr := setupRedisKV(t)

	require.NoError(t, kv.Write("users", []byte(`[{"id":"user-a"}]`)))

	raw, err := mr.Get("skillswap:state:users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"user-a"}]`, raw)

	v, found, err := kv.Read("users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"user-a"}]`, string(v))

	_, found, err = kv.Read("missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisKV_DumpOnlyOwnPrefix(t *testing.T) {
	kv, mr := setupRedisKV(t)
	require.NoError(t, kv.Write("currentPage", []byte("3")))
	require.NoError(t, kv.Write("filters", []byte("{}")))
	require.NoError(t, mr.Set("skillswap:ratelimit:description:ip:1.2.3.4", "x"))
	require.NoError(t, mr.Set("other", "y"))

	all, err := kv.Dump()

	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"currentPage": []byte("3"),
		"filters":     []byte("{}"),
	}, all)
}

func TestRedisKV_ServerDown(t *testing.T) {
	kv, mr := setupRedisKV(t)
	mr.Close()

	_, found, err := kv.Read("users")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, kv.Write("users", []byte("[]")))
}
