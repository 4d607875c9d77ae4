package skiplist

import (
	"math"
	"testing"
)

func TestSeqCoin(t *testing.T) {
	c := NewSeqCoin(true, false, true)
	want := []bool{true, false, true, false, false}
	for i, w := range want {
		if got := c.Flip(); got != w {
			t.Errorf("flip %d = %v, want %v", i, got, w)
		}
	}
	if c.Used() != 3 {
		t.Errorf("Used() = %d, want 3", c.Used())
	}
	c.Push(true)
	if !c.Flip() {
		t.Error("flip after Push = false, want true")
	}
}

func TestRandCoinIsFair(t *testing.T) {
	const n = 200000
	c := NewRandCoin(42)
	heads := 0
	for i := 0; i < n; i++ {
		if c.Flip() {
			heads++
		}
	}
	ratio := float64(heads) / n
	// 五個標準差以內
	tolerance := 5 * math.Sqrt(probability*(1-probability)/n)
	if math.Abs(ratio-probability) > tolerance {
		t.Errorf("heads ratio = %.4f, want %.2f ± %.4f", ratio, probability, tolerance)
	}
}

func TestRandCoinSameSeedSameSequence(t *testing.T) {
	a, b := NewRandCoin(7), NewRandCoin(7)
	for i := 0; i < 1000; i++ {
		if a.Flip() != b.Flip() {
			t.Fatalf("sequences diverge at flip %d", i)
		}
	}
}

func TestGeometricHeights(t *testing.T) {
	// 每次升層機率 1/2，高度 h+1 的數量應約為高度 h 的一半
	const samples = 100000
	const maxLevels = 12
	c := NewRandCoin(0x1234)
	counts := make([]int, maxLevels)
	for i := 0; i < samples; i++ {
		h := 0
		for h+1 < maxLevels && c.Flip() {
			h++
		}
		counts[h]++
	}
	for h := 0; h+1 < 6; h++ {
		ratio := float64(counts[h+1]) / float64(counts[h])
		stdDev := math.Sqrt(probability * (1 - probability) / float64(counts[h]))
		if math.Abs(ratio-probability) > 5*stdDev+0.01 {
			t.Errorf("height %d->%d ratio = %.3f, want about %.2f", h, h+1, ratio, probability)
		}
	}
}
