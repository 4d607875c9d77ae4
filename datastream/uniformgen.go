package datastream

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// UniformDataGenerator 在 [lo, hi] 之間產生均勻分布的整數 key
type UniformDataGenerator struct {
	lo, hi int
	rng    *rand.Rand
}

func NewUniformDataGenerator(lo, hi int, seed int64) (*UniformDataGenerator, error) {
	if lo > hi {
		return nil, fmt.Errorf("invalid range: lo=%d > hi=%d", lo, hi)
	}
	return &UniformDataGenerator{
		lo:  lo,
		hi:  hi,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Next 產生一個 key
func (u *UniformDataGenerator) Next() skiplist.K {
	return u.lo + u.rng.Intn(u.hi-u.lo+1)
}

// GenerateSequence 產生指定長度的 key 序列
func (u *UniformDataGenerator) GenerateSequence(seqLen int) []skiplist.K {
	seq := make([]skiplist.K, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = u.Next()
	}
	return seq
}

func (u *UniformDataGenerator) Close() error {
	return nil
}

// GetKeyMap 回傳每個 key 的機率
func (u *UniformDataGenerator) GetKeyMap() map[skiplist.K]float64 {
	n := u.hi - u.lo + 1
	result := make(map[skiplist.K]float64, n)
	for k := u.lo; k <= u.hi; k++ {
		result[k] = 1.0 / float64(n)
	}
	return result
}

func (u *UniformDataGenerator) Entropy() float64 {
	n := float64(u.hi - u.lo + 1)
	return math.Log2(n)
}
