package skiplist

import (
	"math/rand"
)

const probability = 0.5

// Coin 決定節點是否再往上一層
type Coin interface {
	Flip() bool
}

// CoinFunc 讓一般函式也能當作 Coin 使用
type CoinFunc func() bool

func (f CoinFunc) Flip() bool { return f() }

// RandCoin 以固定種子的亂數產生器擲出公平硬幣
type RandCoin struct {
	rand *rand.Rand
}

func NewRandCoin(seed int64) *RandCoin {
	return &RandCoin{rand: rand.New(rand.NewSource(seed))}
}

func (c *RandCoin) Flip() bool {
	return c.rand.Float64() < probability
}

// SeqCoin 依序回傳預先給定的結果，用完之後一律回傳 false
type SeqCoin struct {
	outcomes []bool
	pos      int
}

func NewSeqCoin(outcomes ...bool) *SeqCoin {
	cp := make([]bool, len(outcomes))
	copy(cp, outcomes)
	return &SeqCoin{outcomes: cp}
}

func (c *SeqCoin) Flip() bool {
	if c.pos >= len(c.outcomes) {
		return false
	}
	r := c.outcomes[c.pos]
	c.pos++
	return r
}

// Used 回傳已經消耗的次數
func (c *SeqCoin) Used() int { return c.pos }

// Push 在序列尾端追加結果
func (c *SeqCoin) Push(outcomes ...bool) {
	c.outcomes = append(c.outcomes, outcomes...)
}
