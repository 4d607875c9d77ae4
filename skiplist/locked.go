package skiplist

import "sync"

// Locked 以單一互斥鎖保護整個 TwoDList，供多個 goroutine 共用
type Locked struct {
	mu   sync.Mutex
	list TwoDList
}

func NewLocked(list TwoDList) *Locked {
	return &Locked{list: list}
}

func (l *Locked) Insert(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Insert(key)
}

func (l *Locked) Remove(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Remove(key)
}

func (l *Locked) Contains(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Contains(key)
}

func (l *Locked) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Clear()
}

// Do 在持有鎖的情況下執行 fn，可用來做一致的唯讀走訪
func (l *Locked) Do(fn func(list TwoDList)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.list)
}
