package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"k8s.io/klog/v2"

	"github.com/Hakuto4838/TwoDList.git/datastream"
	"github.com/Hakuto4838/TwoDList.git/skiplist"
	"github.com/Hakuto4838/TwoDList.git/skiplist/analyTool"
	"github.com/Hakuto4838/TwoDList.git/skiplist/twod"
)

// heightResult 是某個高度下的 list 在同一份分布上的表現
type heightResult struct {
	levels   int
	nodes    int
	score    float64 // 依分布加權的下降步數
	stepsOp  float64 // training 查詢每次平均走過的節點數
	counts   []int
	training int
}

func newStream(o *Options) (datastream.KeyStream, error) {
	if o.A == 0 {
		return datastream.NewUniformDataGenerator(1, o.N, o.Seed)
	}
	return datastream.NewZipfDataGenerator(1, o.N, o.A, o.B, o.Seed)
}

// insertSequential 依 key 由小到大插入，不同高度的 list 會看到相同的插入順序
func insertSequential(sl skiplist.TwoDList, kmap map[skiplist.K]float64, n int) {
	for k := 1; k <= n; k++ {
		if _, ok := kmap[k]; ok {
			sl.Insert(k)
		}
	}
}

func testOne(levels int, o *Options, kmap map[skiplist.K]float64, seq []skiplist.K) (*twod.TwoDList, heightResult, error) {
	sl, err := twod.New(levels, twod.WithSeed(o.Seed))
	if err != nil {
		return nil, heightResult{}, err
	}
	insertSequential(sl, kmap, o.N)

	sl.ResetSteps()
	for _, k := range seq {
		sl.Contains(k)
	}
	res := heightResult{levels: levels, counts: analyTool.CountLevel(sl), training: len(seq)}
	res.nodes, _ = sl.GetMaxStats()
	res.score, _ = analyTool.AnalyzeStep(sl, kmap)
	if len(seq) > 0 {
		res.stepsOp = float64(sl.Steps()) / float64(len(seq))
	}
	return sl, res, nil
}

func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, "/")
}

// Compare 對每個高度建一個 list，印出加權步數與各層節點數
func Compare(w io.Writer, o *Options) ([]heightResult, error) {
	gen, err := newStream(o)
	if err != nil {
		return nil, err
	}
	defer gen.Close()
	kmap := gen.GetKeyMap()
	// 以分布抽出 training 查詢，模擬熱點
	var seq []skiplist.K
	for i := 0; i < o.N*o.Training; i++ {
		seq = append(seq, gen.Next())
	}
	fmt.Fprintf(w, "keys: %d, entropy: %.6f, training queries: %d\n", len(kmap), gen.Entropy(), len(seq))

	results := make([]heightResult, 0, o.MaxLevels-o.MinLevels+1)
	rows := make([][]string, 0, cap(results))
	for levels := o.MinLevels; levels <= o.MaxLevels; levels++ {
		sl, res, err := testOne(levels, o, kmap, seq)
		if err != nil {
			return results, err
		}
		if err := analyTool.CheckStruct(sl); err != nil {
			return results, fmt.Errorf("levels %d: %w", levels, err)
		}
		klog.V(1).Infof("levels %d: score %.6f, steps/op %.3f", levels, res.score, res.stepsOp)
		results = append(results, res)
		rows = append(rows, []string{
			fmt.Sprintf("%d", levels),
			fmt.Sprintf("%d", res.nodes),
			fmt.Sprintf("%.6f", res.score),
			fmt.Sprintf("%.3f", res.stepsOp),
			formatCounts(res.counts),
		})
		if levels == o.Show {
			fmt.Fprintf(w, "=== levels %d ===\n", levels)
			analyTool.PrintTable(w, sl, 35)
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Levels", "Nodes", "Score", "Steps/Op", "Per Level"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return results, nil
}
