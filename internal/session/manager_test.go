package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager(time.Hour)

	id := NewSessionID()
	store := m.GetOrCreate(id)
	require.NotNil(t, store)

	// 同一ID返回同一实例
	assert.Same(t, store, m.GetOrCreate(id))
	assert.Equal(t, 1, m.Len())

	// 不同ID互不可见
	other := m.GetOrCreate(NewSessionID())
	assert.NotSame(t, store, other)
	assert.Equal(t, 2, m.Len())
}

func TestManagerGetUnknownID(t *testing.T) {
	m := NewManager(time.Hour)
	assert.Nil(t, m.Get("missing"))
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(30 * time.Minute)

	current := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return current }

	id := NewSessionID()
	store := m.GetOrCreate(id)
	store.SetJobDescription("keep me")

	// TTL内访问：实例保留
	current = current.Add(20 * time.Minute)
	assert.Same(t, store, m.GetOrCreate(id))

	// 超过TTL后访问：旧状态整体丢弃，等价于整页刷新
	current = current.Add(31 * time.Minute)
	fresh := m.GetOrCreate(id)
	assert.NotSame(t, store, fresh)
	assert.Equal(t, "", fresh.JobDescription())
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(10 * time.Minute)

	current := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return current }

	m.GetOrCreate("a")
	m.GetOrCreate("b")
	current = current.Add(5 * time.Minute)
	m.GetOrCreate("c")

	current = current.Add(8 * time.Minute)
	removed := m.sweep()

	// a和b空闲13分钟被回收，c空闲8分钟保留
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Len())
	assert.NotNil(t, m.Get("c"))
}
