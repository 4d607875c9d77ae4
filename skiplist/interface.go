package skiplist

// K 是 TwoDList 儲存的 key 型別，固定為整數
type K = int

type TwoDList interface {
	Insert(key K) bool
	Remove(key K) bool
	Contains(key K) bool
	Clear()
}

// Analyable 提供唯讀走訪與分析功能的介面
type Analyable interface {
	TwoDList
	// MaxLevels 回傳建構時固定的層數
	MaxLevels() int
	// GetHead 回傳該層最小 key 的節點，空層回傳 nil
	GetHead(level int) Nodelike
	// GetTail 回傳該層最大 key 的節點，空層回傳 nil
	GetTail(level int) Nodelike
	// GetMaxStats 獲取目前節點總數與層數
	GetMaxStats() (nodes int, levels int)
}

// Nodelike 是單一層上的一個節點，四個方向皆可能為 nil
type Nodelike interface {
	GetKey() K
	GetLevel() int
	GetNext() Nodelike
	GetPrev() Nodelike
	GetUp() Nodelike
	GetDown() Nodelike
}
