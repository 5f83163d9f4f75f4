package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errServedInMemory = errors.New("served in memory")

// memoryHook answers GET, SET, SETNX and DEL from a map so the adapter can be
// exercised without a server. BeforeProcess stops the command before it
// reaches the network; AfterProcess writes the reply into the command.
type memoryHook struct {
	mutex sync.Mutex
	data  map[string]string
	ttls  map[string]string
}

func newMemoryHook() *memoryHook {
	return &memoryHook{data: make(map[string]string), ttls: make(map[string]string)}
}

func (h *memoryHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	return ctx, errServedInMemory
}

func (h *memoryHook) AfterProcess(ctx context.Context, cmd redis.Cmder) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	args := cmd.Args()
	key := fmt.Sprint(args[1])
	cmd.SetErr(nil)

	switch c := cmd.(type) {
	case *redis.StringCmd: // GET
		v, ok := h.data[key]
		if !ok {
			c.SetErr(redis.Nil)
			return nil
		}
		c.SetVal(v)
	case *redis.StatusCmd: // SET key value [EX n]
		h.data[key] = fmt.Sprint(args[2])
		h.ttls[key] = ttlArg(args)
		c.SetVal("OK")
	case *redis.BoolCmd: // SETNX, or SET ... NX
		if _, ok := h.data[key]; ok {
			c.SetVal(false)
			return nil
		}
		h.data[key] = fmt.Sprint(args[2])
		h.ttls[key] = ttlArg(args)
		c.SetVal(true)
	case *redis.IntCmd: // DEL
		var n int64
		for _, a := range args[1:] {
			k := fmt.Sprint(a)
			if _, ok := h.data[k]; ok {
				delete(h.data, k)
				delete(h.ttls, k)
				n++
			}
		}
		c.SetVal(n)
	default:
		c.SetErr(fmt.Errorf("unsupported command %s", cmd.Name()))
	}
	return nil
}

func (h *memoryHook) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	return ctx, errServedInMemory
}

func (h *memoryHook) AfterProcessPipeline(ctx context.Context, cmds []redis.Cmder) error {
	return nil
}

func ttlArg(args []interface{}) string {
	for i := 3; i+1 < len(args); i++ {
		if strings.EqualFold(fmt.Sprint(args[i]), "ex") {
			return fmt.Sprint(args[i+1])
		}
	}
	return ""
}

func newMemoryCache(t *testing.T) (*UserNameCacheRedis, *memoryHook) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })
	hook := newMemoryHook()
	client.AddHook(hook)
	return NewUserNameCacheRedis(client, time.Minute), hook
}

func TestUserNameKey(t *testing.T) {
	assert.Equal(t, "user:name:42", userNameKey("42"))
}

func TestUserNameCache_MissIsNotAnError(t *testing.T) {
	cache, _ := newMemoryCache(t)

	name, hit, err := cache.GetName(context.Background(), "u1")
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, name)
}

func TestUserNameCache_RoundTrip(t *testing.T) {
	cache, hook := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetName(ctx, "u1", "alice"))
	assert.Equal(t, "alice", hook.data["user:name:u1"])
	assert.Equal(t, "60", hook.ttls["user:name:u1"])

	name, hit, err := cache.GetName(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "alice", name)

	require.NoError(t, cache.Forget(ctx, "u1"))
	_, hit, err = cache.GetName(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestUserNameCache_SetNameIfAbsentKeepsExisting(t *testing.T) {
	cache, _ := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetNameIfAbsent(ctx, "u1", "alice"))
	name, _, _ := cache.GetName(ctx, "u1")
	assert.Equal(t, "alice", name)

	require.NoError(t, cache.SetName(ctx, "u1", "bob"))
	require.NoError(t, cache.SetNameIfAbsent(ctx, "u1", "alice"))
	name, _, _ = cache.GetName(ctx, "u1")
	assert.Equal(t, "bob", name)
}

func TestUserNameCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := NewUserNameCacheRedis(client, time.Minute)
	ctx := context.Background()

	name, hit, err := cache.GetName(ctx, "u1")
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Empty(t, name)

	assert.Error(t, cache.SetName(ctx, "u1", "alice"))
	assert.Error(t, cache.SetNameIfAbsent(ctx, "u1", "alice"))
	assert.Error(t, cache.Forget(ctx, "u1"))
}
