package basic

import (
	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// basicNode 是傳統的 skip list 節點，每層只保留往後的指標
type basicNode struct {
	key  skiplist.K
	next []*basicNode
}

// BasicSkipList 以 forward pointer 陣列實作的 key 集合，
// 升層規則與 twod 相同，拿來當作比較基準
type BasicSkipList struct {
	head      *basicNode
	maxLevels int
	coin      skiplist.Coin
	size      int
	steps     int64
}

func NewBasicSkipList(maxLevels int, coin skiplist.Coin) *BasicSkipList {
	if maxLevels <= 0 {
		maxLevels = 1
	}
	return &BasicSkipList{
		head:      newNode(-1, maxLevels-1),
		maxLevels: maxLevels,
		coin:      coin,
	}
}

func newNode(key skiplist.K, level int) *basicNode {
	return &basicNode{
		key:  key,
		next: make([]*basicNode, level+1),
	}
}

// findPrev 回傳每一層最後一個 key 小於目標的節點
func (sl *BasicSkipList) findPrev(key skiplist.K) []*basicNode {
	update := make([]*basicNode, sl.maxLevels)
	curr := sl.head
	for h := sl.maxLevels - 1; h >= 0; h-- {
		for curr.next[h] != nil && curr.next[h].key < key {
			curr = curr.next[h]
			sl.steps++
		}
		update[h] = curr
	}
	return update
}

func (sl *BasicSkipList) randomLevel() int {
	lvl := 0
	for lvl < sl.maxLevels-1 && sl.coin.Flip() {
		lvl++
	}
	return lvl
}

func (sl *BasicSkipList) Insert(key skiplist.K) bool {
	update := sl.findPrev(key)
	if n := update[0].next[0]; n != nil && n.key == key {
		return false
	}
	lvl := sl.randomLevel()
	n := newNode(key, lvl)
	for h := 0; h <= lvl; h++ {
		n.next[h] = update[h].next[h]
		update[h].next[h] = n
	}
	sl.size++
	return true
}

func (sl *BasicSkipList) Contains(key skiplist.K) bool {
	curr := sl.head
	for h := sl.maxLevels - 1; h >= 0; h-- {
		for curr.next[h] != nil && curr.next[h].key < key {
			curr = curr.next[h]
			sl.steps++
		}
		if curr.next[h] != nil && curr.next[h].key == key {
			return true
		}
	}
	return false
}

func (sl *BasicSkipList) Remove(key skiplist.K) bool {
	update := sl.findPrev(key)
	n := update[0].next[0]
	if n == nil || n.key != key {
		return false
	}
	for h := range n.next {
		update[h].next[h] = n.next[h]
	}
	sl.size--
	return true
}

func (sl *BasicSkipList) Clear() {
	for h := range sl.head.next {
		sl.head.next[h] = nil
	}
	sl.size = 0
}

func (sl *BasicSkipList) Len() int {
	return sl.size
}

func (sl *BasicSkipList) Steps() int64 {
	return sl.steps
}

// LevelKeys 依序回傳該層的 key
func (sl *BasicSkipList) LevelKeys(level int) []skiplist.K {
	if level < 0 || level >= sl.maxLevels {
		return nil
	}
	var keys []skiplist.K
	for n := sl.head.next[level]; n != nil; n = n.next[level] {
		keys = append(keys, n.key)
	}
	return keys
}
