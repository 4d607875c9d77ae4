package twod

import (
	"errors"
	"fmt"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

const (
	DefaultMaxLevels       = 1
	DefaultSeed      int64 = 1
)

var ErrInvalidMaxLevels = errors.New("twod: max levels must be positive")

// level 記錄單一層的頭尾，空層時兩者皆為 none
type level struct {
	head ref
	tail ref
}

// TwoDList 是每個節點都有上下左右四個連結的 skip list。
// level 0 包含所有 key，越高層越稀疏；同一個 key 在相鄰層之間以 up/down 相連。
// 不支援併發，需要共用時請包一層 skiplist.Locked。
type TwoDList struct {
	maxLevels int
	levels    []level
	nodes     []twoDNode // arena
	free      []ref
	coin      skiplist.Coin
	linear    bool
	steps     int64
}

type Option func(*TwoDList)

// WithCoin 指定升層用的硬幣，測試時可注入固定序列
func WithCoin(c skiplist.Coin) Option {
	return func(sl *TwoDList) {
		sl.coin = c
	}
}

// WithSeed 以指定種子建立公平硬幣
func WithSeed(seed int64) Option {
	return func(sl *TwoDList) {
		sl.coin = skiplist.NewRandCoin(seed)
	}
}

// WithLinearSearch 每一層都從 head 線性掃描，不走垂直連結
func WithLinearSearch() Option {
	return func(sl *TwoDList) {
		sl.linear = true
	}
}

func New(maxLevels int, opts ...Option) (*TwoDList, error) {
	if maxLevels <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxLevels, maxLevels)
	}
	sl := &TwoDList{
		maxLevels: maxLevels,
		levels:    make([]level, maxLevels),
	}
	for i := range sl.levels {
		sl.levels[i] = level{head: none, tail: none}
	}
	for _, o := range opts {
		o(sl)
	}
	if sl.coin == nil {
		sl.coin = skiplist.NewRandCoin(DefaultSeed)
	}
	return sl, nil
}

func NewDefault(opts ...Option) *TwoDList {
	sl, _ := New(DefaultMaxLevels, opts...)
	return sl
}

func (sl *TwoDList) MaxLevels() int {
	return sl.maxLevels
}

func (sl *TwoDList) Linear() bool {
	return sl.linear
}

// LevelIsEmpty 判斷該層是否沒有任何節點；只有一個節點 (head == tail) 不算空，
// 超出範圍的層視為空
func (sl *TwoDList) LevelIsEmpty(level int) bool {
	if level < 0 || level >= sl.maxLevels {
		return true
	}
	lv := sl.levels[level]
	return lv.head == none && lv.tail == none
}

// IsEmpty 判斷整個結構是否為空，level 0 為空代表所有層皆空
func (sl *TwoDList) IsEmpty() bool {
	return sl.LevelIsEmpty(0)
}

// predecessor 回傳該層最後一個 key 小於目標的節點，找不到回傳 none。
// from 必須是該層 key 小於目標的節點，none 則從 head 開始。
func (sl *TwoDList) predecessor(level int, from ref, key skiplist.K) ref {
	cur := from
	if cur == none {
		cur = sl.levels[level].head
		if cur == none {
			return none
		}
		sl.steps++
		if sl.node(cur).key >= key {
			return none
		}
	}
	for next := sl.node(cur).next; next != none; next = sl.node(cur).next {
		sl.steps++
		if sl.node(next).key >= key {
			break
		}
		cur = next
	}
	return cur
}

// successor 回傳 pred 之後的節點，pred 為 none 時回傳 head
func (sl *TwoDList) successor(level int, pred ref) ref {
	if pred == none {
		return sl.levels[level].head
	}
	return sl.node(pred).next
}

// trace 由上往下找出每一層的 predecessor。
// express 模式下從上一層的 predecessor 經由 down 直接落到下一層繼續找。
func (sl *TwoDList) trace(key skiplist.K) []ref {
	preds := make([]ref, sl.maxLevels)
	pred := none
	for h := sl.maxLevels - 1; h >= 0; h-- {
		start := none
		if !sl.linear && pred != none {
			start = sl.node(pred).down
		}
		pred = sl.predecessor(h, start, key)
		preds[h] = pred
	}
	return preds
}

// Insert 加入新的 key，若任何一層已經存在就不動作並回傳 false。
// level 0 一定會加入，之後每擲出一次正面就往上多加一層，直到擲出反面或到達最高層。
func (sl *TwoDList) Insert(key skiplist.K) bool {
	preds := sl.trace(key)
	// 任何一層有這個 key，level 0 就一定有
	if r := sl.successor(0, preds[0]); r != none && sl.node(r).key == key {
		return false
	}

	anchors := make([]ref, sl.maxLevels)
	for h, pred := range preds {
		anchors[h] = sl.anchor(h, pred)
	}

	below := sl.alloc(key, 0)
	sl.spliceBefore(below, anchors[0], 0)

	for h := 1; h < sl.maxLevels && sl.coin.Flip(); h++ {
		n := sl.alloc(key, h)
		sl.spliceBefore(n, anchors[h], h)
		sl.node(below).up = n
		sl.node(n).down = below
		below = n
	}
	return true
}

// anchor 是新節點在該層要放在其前面的節點；
// key 比該層全部都大時回傳 tail，空層回傳 none。
func (sl *TwoDList) anchor(level int, pred ref) ref {
	if next := sl.successor(level, pred); next != none {
		return next
	}
	return sl.levels[level].tail
}

// spliceBefore 把 n 接到 anchor 前面，並在 n 成為新的頭或尾時更新該層。
func (sl *TwoDList) spliceBefore(n, anchor ref, level int) {
	lv := &sl.levels[level]
	if lv.head == none {
		lv.head, lv.tail = n, n
		return
	}

	a := sl.node(anchor)
	nn := sl.node(n)
	switch {
	case anchor == lv.head && a.key > nn.key:
		nn.next = anchor
		a.prev = n
		lv.head = n
	case a.key < nn.key:
		// anchor 是 tail（包含只有一個節點、head 也是 tail 的情況）
		nn.prev = anchor
		nn.next = a.next
		if a.next != none {
			sl.node(a.next).prev = n
		} else {
			lv.tail = n
		}
		a.next = n
	default:
		nn.next = anchor
		nn.prev = a.prev
		sl.node(a.prev).next = n
		a.prev = n
	}
}

// Remove 從所有存在的層移除 key。key 不存在時回傳 false；
// 只要 key 存在於任一層就回傳 true，不論實際出現在幾層。
func (sl *TwoDList) Remove(key skiplist.K) bool {
	if !sl.Contains(key) {
		return false
	}

	preds := sl.trace(key)
	for h := sl.maxLevels - 1; h >= 0; h-- {
		r := sl.successor(h, preds[h])
		if r == none || sl.node(r).key != key {
			continue
		}
		sl.unlink(h, r)
		if down := sl.node(r).down; down != none {
			sl.node(down).up = none
		}
		sl.release(r)
	}
	return true
}

func (sl *TwoDList) unlink(level int, r ref) {
	lv := &sl.levels[level]
	n := sl.node(r)
	switch {
	case n.prev == none && n.next == none:
		lv.head, lv.tail = none, none
	case n.prev == none:
		sl.node(n.next).prev = none
		lv.head = n.next
	case n.next == none:
		sl.node(n.prev).next = none
		lv.tail = n.prev
	default:
		sl.node(n.next).prev = n.prev
		sl.node(n.prev).next = n.next
	}
	n.next, n.prev = none, none
}

// Contains 判斷 key 是否存在於任一層
func (sl *TwoDList) Contains(key skiplist.K) bool {
	if sl.linear {
		return sl.containsLinear(key)
	}
	pred := none
	for h := sl.maxLevels - 1; h >= 0; h-- {
		start := none
		if pred != none {
			start = sl.node(pred).down
		}
		pred = sl.predecessor(h, start, key)
		if r := sl.successor(h, pred); r != none && sl.node(r).key == key {
			return true
		}
	}
	return false
}

func (sl *TwoDList) containsLinear(key skiplist.K) bool {
	for h := sl.maxLevels - 1; h >= 0; h-- {
		if sl.LevelIsEmpty(h) {
			continue
		}
		for cur := sl.levels[h].head; cur != none; cur = sl.node(cur).next {
			sl.steps++
			if sl.node(cur).key == key {
				return true
			}
		}
	}
	return false
}

// Clear 逐層從 head 釋放所有節點，並把每一層的頭尾重設為空
func (sl *TwoDList) Clear() {
	for h := range sl.levels {
		for cur := sl.levels[h].head; cur != none; {
			next := sl.node(cur).next
			sl.release(cur)
			cur = next
		}
		sl.levels[h] = level{head: none, tail: none}
	}
	sl.nodes = sl.nodes[:0]
	sl.free = sl.free[:0]
}

func (sl *TwoDList) GetHead(level int) skiplist.Nodelike {
	if level < 0 || level >= sl.maxLevels {
		return nil
	}
	return sl.wrap(sl.levels[level].head)
}

func (sl *TwoDList) GetTail(level int) skiplist.Nodelike {
	if level < 0 || level >= sl.maxLevels {
		return nil
	}
	return sl.wrap(sl.levels[level].tail)
}

func (sl *TwoDList) GetMaxStats() (int, int) {
	return len(sl.nodes) - len(sl.free), sl.maxLevels
}

// Steps 回傳搜尋時走過的節點數，用來比較 express 與 linear 兩種模式
func (sl *TwoDList) Steps() int64 {
	return sl.steps
}

func (sl *TwoDList) ResetSteps() {
	sl.steps = 0
}
