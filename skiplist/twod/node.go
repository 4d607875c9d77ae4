package twod

import (
	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// ref 是節點在 arena 中的位置，none 代表不存在
type ref int32

const none ref = -1

type twoDNode struct {
	key   skiplist.K
	level int
	next  ref
	prev  ref
	up    ref
	down  ref
}

func (n *twoDNode) reset(key skiplist.K, level int) {
	n.key = key
	n.level = level
	n.next, n.prev, n.up, n.down = none, none, none, none
}

// alloc 從 free list 取回節點，沒有可重用的就擴充 arena
func (sl *TwoDList) alloc(key skiplist.K, level int) ref {
	var r ref
	if n := len(sl.free); n > 0 {
		r = sl.free[n-1]
		sl.free = sl.free[:n-1]
	} else {
		sl.nodes = append(sl.nodes, twoDNode{})
		r = ref(len(sl.nodes) - 1)
	}
	sl.nodes[r].reset(key, level)
	return r
}

// release 把節點還給 arena，呼叫前節點必須已從該層解開
func (sl *TwoDList) release(r ref) {
	sl.nodes[r].reset(0, -1)
	sl.free = append(sl.free, r)
}

func (sl *TwoDList) node(r ref) *twoDNode {
	return &sl.nodes[r]
}

// handle 實作 Nodelike，對外只暴露唯讀走訪
type handle struct {
	sl *TwoDList
	r  ref
}

func (sl *TwoDList) wrap(r ref) skiplist.Nodelike {
	if r == none {
		return nil
	}
	return handle{sl: sl, r: r}
}

func (h handle) GetKey() skiplist.K {
	return h.sl.node(h.r).key
}

func (h handle) GetLevel() int {
	return h.sl.node(h.r).level
}

func (h handle) GetNext() skiplist.Nodelike {
	return h.sl.wrap(h.sl.node(h.r).next)
}

func (h handle) GetPrev() skiplist.Nodelike {
	return h.sl.wrap(h.sl.node(h.r).prev)
}

func (h handle) GetUp() skiplist.Nodelike {
	return h.sl.wrap(h.sl.node(h.r).up)
}

func (h handle) GetDown() skiplist.Nodelike {
	return h.sl.wrap(h.sl.node(h.r).down)
}
