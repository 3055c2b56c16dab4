package session

import (
	"sync"

	"github.com/arobertov/trans-schedule-sub000/internal/roster"
	"github.com/arobertov/trans-schedule-sub000/internal/store"
)

// Registry 按排班表 ID 复用编辑会话
//
// 同一张表的并发请求打到同一个会话上，网格与自动保存状态机只有
// 一份；会话在首次访问时懒加载
type Registry struct {
	mu         sync.Mutex
	store      *store.Store
	sessions   map[string]*Session
	debounceMS int
	displayMS  int
	colors     roster.ValidationColors // 排班表没有配色偏好时的默认配色
}

func NewRegistry(st *store.Store, debounceMS, displayMS int, colors roster.ValidationColors) *Registry {
	if colors == (roster.ValidationColors{}) {
		colors = roster.DefaultColors()
	}
	return &Registry{
		store:      st,
		sessions:   make(map[string]*Session),
		debounceMS: debounceMS,
		displayMS:  displayMS,
		colors:     colors,
	}
}

// Get 取出或打开指定排班表的会话
func (r *Registry) Get(scheduleID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[scheduleID]; ok {
		return s, nil
	}
	s, err := Open(r.store, scheduleID, r.debounceMS, r.displayMS, r.colors)
	if err != nil {
		return nil, err
	}
	r.sessions[scheduleID] = s
	return s, nil
}

// Close 关闭并移除一个会话（冲刷未保存的编辑）
func (r *Registry) Close(scheduleID string) error {
	r.mu.Lock()
	s, ok := r.sessions[scheduleID]
	delete(r.sessions, scheduleID)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return s.Close()
}

// CloseAll 关停全部会话，进程退出前调用
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close()
	}
}
