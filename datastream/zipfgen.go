package datastream

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// ZipfDataGenerator 在 [lo, hi] 之間產生符合 Zipf 分布的 key，
// 排名與 key 的對應會隨機打亂，熱點不會集中在小的 key
type ZipfDataGenerator struct {
	lo      int
	n       int
	a, b    float64
	Weights []float64
	cdf     []float64
	rng     *rand.Rand
}

func NewZipfDataGenerator(lo, hi int, a, b float64, seed int64) (*ZipfDataGenerator, error) {
	if lo > hi {
		return nil, fmt.Errorf("invalid range: lo=%d > hi=%d", lo, hi)
	}
	if a <= 0 {
		return nil, fmt.Errorf("invalid zipf param a=%v, must > 0", a)
	}
	n := hi - lo + 1
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	// 正規化
	for i := range weights {
		weights[i] /= sum
	}
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	// 建立累積分布函數 (CDF)
	cdf := make([]float64, n)
	cdf[0] = weights[0]
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + weights[i]
	}
	return &ZipfDataGenerator{
		lo:      lo,
		n:       n,
		a:       a,
		b:       b,
		Weights: weights,
		cdf:     cdf,
		rng:     rng,
	}, nil
}

// Next 產生一個 key
func (z *ZipfDataGenerator) Next() skiplist.K {
	r := z.rng.Float64()
	// 二分搜尋 cdf
	lo, hi := 0, z.n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > z.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return z.lo + lo
}

// GenerateSequence 產生指定長度的 key 序列
func (z *ZipfDataGenerator) GenerateSequence(seqLen int) []skiplist.K {
	seq := make([]skiplist.K, seqLen)
	for i := 0; i < seqLen; i++ {
		seq[i] = z.Next()
	}
	return seq
}

func (z *ZipfDataGenerator) Close() error {
	return nil
}

func (z *ZipfDataGenerator) GetKeyMap() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, z.n)
	for i := 0; i < z.n; i++ {
		result[z.lo+i] = z.Weights[i]
	}
	return result
}

func (z *ZipfDataGenerator) DistributeToCSV(writer *csv.Writer) error {
	keys := make([]string, 0, z.n)
	probs := make([]string, 0, z.n)
	for i := 0; i < z.n; i++ {
		keys = append(keys, fmt.Sprintf("%d", z.lo+i))
		probs = append(probs, fmt.Sprintf("%f", z.Weights[i]))
	}
	if err := writer.Write(keys); err != nil {
		return err
	}
	if err := writer.Write(probs); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (z *ZipfDataGenerator) Entropy() float64 {
	return EntropyFromDist(z.GetKeyMap())
}
