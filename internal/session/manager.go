package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-analyzer-go/internal/logger"
)

// entry 会话表中的一项，记录最近访问时间用于过期清理
type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager 管理所有浏览器会话的存储实例
// 会话以Cookie中的ID为键，空闲超过TTL后被清理协程回收
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration

	now func() time.Time // 可注入时钟，便于测试
}

// NewManager 创建会话管理器
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewSessionID 生成一个新的会话ID
func NewSessionID() string {
	return uuid.NewString()
}

// Get 按ID取出会话存储并刷新访问时间；不存在或已过期时返回nil
func (m *Manager) Get(id string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	if m.now().Sub(e.lastSeen) > m.ttl {
		delete(m.entries, id)
		return nil
	}
	e.lastSeen = m.now()
	return e.store
}

// GetOrCreate 按ID取出会话存储，不存在时创建一个空白存储
func (m *Manager) GetOrCreate(id string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if ok && m.now().Sub(e.lastSeen) <= m.ttl {
		e.lastSeen = m.now()
		return e.store
	}
	// 过期的旧会话直接整体替换，等价于浏览器整页刷新后的空状态
	store := NewStore()
	m.entries[id] = &entry{store: store, lastSeen: m.now()}
	return store
}

// Len 返回当前活跃会话数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// sweep 清理所有空闲超过TTL的会话
func (m *Manager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.entries {
		if m.now().Sub(e.lastSeen) > m.ttl {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper 启动后台清理协程，ctx取消时退出
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.sweep(); removed > 0 {
					logger.Debug().
						Int("removed", removed).
						Int("remaining", m.Len()).
						Msg("清理过期会话完成")
				}
			}
		}
	}()
}
