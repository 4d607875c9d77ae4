package basic

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/Hakuto4838/TwoDList.git/datastream"
	"github.com/Hakuto4838/TwoDList.git/skiplist"
	"github.com/Hakuto4838/TwoDList.git/skiplist/analyTool"
	"github.com/Hakuto4838/TwoDList.git/skiplist/twod"
)

func TestBasicSkipListInterface(t *testing.T) {
	var _ skiplist.TwoDList = (*BasicSkipList)(nil)
}

func TestBasicSkipListBasic(t *testing.T) {
	sl := NewBasicSkipList(3, skiplist.NewSeqCoin(true, false, false, true, true))
	assert.Assert(t, sl.Insert(7))
	assert.Assert(t, sl.Insert(4))
	assert.Assert(t, sl.Insert(82))
	assert.Assert(t, !sl.Insert(7))

	assert.DeepEqual(t, sl.LevelKeys(0), []skiplist.K{4, 7, 82})
	assert.DeepEqual(t, sl.LevelKeys(1), []skiplist.K{7, 82})
	assert.DeepEqual(t, sl.LevelKeys(2), []skiplist.K{82})

	assert.Assert(t, sl.Remove(82))
	assert.Assert(t, !sl.Remove(82))
	assert.Assert(t, sl.LevelKeys(2) == nil)
	assert.Equal(t, sl.Len(), 2)

	sl.Clear()
	assert.Equal(t, sl.Len(), 0)
	assert.Assert(t, !sl.Contains(4))
}

// 同一個 coin 種子下，兩種實作的每一層內容都要一致
func TestMatchesTwoDList(t *testing.T) {
	const levels = 8
	gen, err := datastream.NewZipfDataGenerator(1, 500, 1.2, 0, 42)
	assert.NilError(t, err)
	ops, err := datastream.GenerateOps(gen, 20000, 0.3, 42)
	assert.NilError(t, err)

	base := NewBasicSkipList(levels, skiplist.NewRandCoin(9))
	list, err := twod.New(levels, twod.WithSeed(9))
	assert.NilError(t, err)

	for i, op := range ops {
		assert.Equal(t, op.Apply(base), op.Apply(list), "op %d %v %d", i, op.Type, op.Key)
	}
	for h := 0; h < levels; h++ {
		assert.DeepEqual(t, base.LevelKeys(h), analyTool.LevelKeys(list, h))
	}
	nodes, _ := list.GetMaxStats()
	assert.Assert(t, nodes >= base.Len())
	assert.NilError(t, analyTool.CheckStruct(list))
}

func BenchmarkBasicInsert(b *testing.B) {
	sl := NewBasicSkipList(16, skiplist.NewRandCoin(1))
	for i := 0; i < b.N; i++ {
		sl.Insert(i)
	}
}
