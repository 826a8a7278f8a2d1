package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"notion.token": "a", "backend": "memory"},
		map[string]any{"notion.token": "b"},
	)

	assert.Equal(t, "b", store.GetString("notion.token"), "later seeds win")
	assert.Equal(t, "memory", store.GetString("backend"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{"str": "hello", "num": 42})

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Empty(t, store.GetString("num"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"float64", 3.9, 3},
		{"string", "42", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"k": tt.value})
			assert.Equal(t, tt.expected, store.GetInt("k"))
		})
	}

	assert.Zero(t, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"float64", 2.5, 2.5},
		{"int", 3, 3},
		{"int64", int64(4), 4},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"k": tt.value})
			assert.InDelta(t, tt.expected, store.GetFloat("k"), 0.0001)
		})
	}

	assert.Zero(t, NewConfigStore().GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{"yes": true, "no": false, "str": "true"})

	assert.True(t, store.GetBool("yes"))
	assert.False(t, store.GetBool("no"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"typed":  5 * time.Second,
		"string": "1m30s",
		"bad":    "soon",
		"int":    30,
	})

	assert.Equal(t, 5*time.Second, store.GetDuration("typed"))
	assert.Equal(t, 90*time.Second, store.GetDuration("string"))
	assert.Zero(t, store.GetDuration("bad"))
	assert.Zero(t, store.GetDuration("int"))
	assert.Zero(t, store.GetDuration("missing"))
}

func TestConfigStore_SaveLoad_NoOp(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": "v"})

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("shared", n)
			_ = store.GetInt("shared")
			_ = store.GetFloat("shared")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("shared")
	assert.True(t, ok)
}
