package service

import "sync"

// shopLocks 按门店串行化读改写，避免并发切换互相覆盖
//
// 条目按引用计数保留：最后一个持有或等待者释放后即移除，表的大小只随正在写入的门店数变化。
type shopLocks struct {
	mu    sync.Mutex
	locks map[string]*shopLock
}

type shopLock struct {
	sync.Mutex
	refs int
}

func newShopLocks() *shopLocks {
	return &shopLocks{locks: make(map[string]*shopLock)}
}

func (l *shopLocks) lock(shop string) func() {
	l.mu.Lock()
	m, ok := l.locks[shop]
	if !ok {
		m = &shopLock{}
		l.locks[shop] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, shop)
		}
		l.mu.Unlock()
	}
}

func (l *shopLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
