package app

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"k8s.io/klog/v2"

	"github.com/Hakuto4838/TwoDList.git/datastream"
	"github.com/Hakuto4838/TwoDList.git/skiplist"
	"github.com/Hakuto4838/TwoDList.git/skiplist/analyTool"
	"github.com/Hakuto4838/TwoDList.git/skiplist/basic"
	"github.com/Hakuto4838/TwoDList.git/skiplist/twod"
)

type benchStats struct {
	avgMs    float64
	minMs    float64
	maxMs    float64
	stepsOp  float64 // 每筆操作平均走過的節點數
	avgSteps float64 // 依分布加權的下降步數，無法分析時為 NaN
	nodes    int
}

// collectBenchFilesFromDir 收集指定目錄下所有 .bin 檔案
func collectBenchFilesFromDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// benchList 是 benchrun 能重播的 list，需要回報走過的節點數
type benchList interface {
	skiplist.TwoDList
	Steps() int64
}

func newList(mode string, maxLevels int, seed int64) (benchList, error) {
	switch mode {
	case modeBasic:
		return basic.NewBasicSkipList(maxLevels, skiplist.NewRandCoin(seed)), nil
	case modeLinear:
		return twod.New(maxLevels, twod.WithSeed(seed), twod.WithLinearSearch())
	default:
		return twod.New(maxLevels, twod.WithSeed(seed))
	}
}

func runOpsAndTime(sl skiplist.TwoDList, bf *datastream.BenchFile) time.Duration {
	start := time.Now()
	for _, op := range bf.Ops {
		op.Apply(sl)
	}
	return time.Since(start)
}

// analyze 記錄第一次重播後的結構數據，只有四向連結的 list 能計算加權步數
func analyze(sl benchList, bf *datastream.BenchFile, stats *benchStats) error {
	if len(bf.Ops) > 0 {
		stats.stepsOp = float64(sl.Steps()) / float64(len(bf.Ops))
	}
	stats.avgSteps = math.NaN()
	switch l := sl.(type) {
	case *twod.TwoDList:
		stats.avgSteps, _ = analyTool.AnalyzeStep(l, bf.Dist)
		stats.nodes, _ = l.GetMaxStats()
		return analyTool.CheckStruct(l)
	case *basic.BasicSkipList:
		stats.nodes = l.Len()
	}
	return nil
}

// benchmarkMode 每次都用相同 seed 建新的 list，各模式的升層結果因此完全相同
func benchmarkMode(bf *datastream.BenchFile, mode string, runs, maxLevels int, seed int64) (benchStats, error) {
	durations := make([]float64, 0, runs)
	var stats benchStats
	for i := 0; i < runs; i++ {
		sl, err := newList(mode, maxLevels, seed)
		if err != nil {
			return stats, err
		}
		elapsed := runOpsAndTime(sl, bf)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
		if i == 0 {
			if err := analyze(sl, bf, &stats); err != nil {
				return stats, fmt.Errorf("%s: %w", mode, err)
			}
		}
	}
	sort.Float64s(durations)
	stats.avgMs = average(durations)
	stats.minMs = durations[0]
	stats.maxMs = durations[len(durations)-1]
	return stats, nil
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func formatSteps(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.6f", v)
}

func throughput(ops int, ms float64) string {
	if ms <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", float64(ops)/(ms/1000.0))
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// runBenchmark 執行單一 benchmark 檔案的測試
func runBenchmark(w io.Writer, benchPath string, modes []string, o *Options) error {
	bf, err := datastream.ReadBenchFile(benchPath)
	if err != nil {
		return fmt.Errorf("reading bench file %s: %w", benchPath, err)
	}

	fmt.Fprintf(w, "bench_file: %s\n", benchPath)
	fmt.Fprintf(w, "ops: %d\n", len(bf.Ops))
	fmt.Fprintf(w, "entropy: %.6f\n", datastream.EntropyFromDist(bf.Dist))

	rows := make([][]string, 0, len(modes))
	for _, mode := range modes {
		fmt.Fprintf(w, "benchmarking %s...\n", mode)
		stats, err := benchmarkMode(bf, mode, o.Runs, o.MaxLevels, o.Seed)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			mode,
			fmt.Sprintf("%d", o.Runs),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			throughput(len(bf.Ops), stats.avgMs),
			fmt.Sprintf("%.3f", stats.stepsOp),
			formatSteps(stats.avgSteps),
			fmt.Sprintf("%d", stats.nodes),
		})
	}
	renderTable(w, []string{"Mode", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "Steps/Op", "AvgSteps", "Nodes"}, rows)
	return nil
}

// runBatchBenchmark 對多個 benchmark 檔案執行測試並匯總統計
func runBatchBenchmark(w io.Writer, benchPaths []string, modes []string, o *Options) error {
	fmt.Fprintf(w, "Testing %d benchmark files...\n\n", len(benchPaths))

	type modeStats struct {
		avgMs, minMs, maxMs []float64
		stepsOp, avgSteps   []float64
		totalOps            int
		totalRuns           int
	}
	all := make(map[string]*modeStats, len(modes))
	for _, mode := range modes {
		all[mode] = &modeStats{}
	}

	for idx, benchPath := range benchPaths {
		fmt.Fprintf(w, "[%d/%d] Testing: %s\n", idx+1, len(benchPaths), filepath.Base(benchPath))
		bf, err := datastream.ReadBenchFile(benchPath)
		if err != nil {
			klog.Errorf("reading bench file %s: %v", benchPath, err)
			continue
		}
		fmt.Fprintf(w, "  ops: %d, entropy: %.6f\n", len(bf.Ops), datastream.EntropyFromDist(bf.Dist))

		for _, mode := range modes {
			fmt.Fprintf(w, "  - benchmarking %s...\n", mode)
			stats, err := benchmarkMode(bf, mode, o.Runs, o.MaxLevels, o.Seed)
			if err != nil {
				return err
			}
			s := all[mode]
			s.avgMs = append(s.avgMs, stats.avgMs)
			s.minMs = append(s.minMs, stats.minMs)
			s.maxMs = append(s.maxMs, stats.maxMs)
			s.stepsOp = append(s.stepsOp, stats.stepsOp)
			if !math.IsNaN(stats.avgSteps) {
				s.avgSteps = append(s.avgSteps, stats.avgSteps)
			}
			s.totalOps += len(bf.Ops)
			s.totalRuns += o.Runs
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "AGGREGATE STATISTICS (across all benchmark files)")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	rows := make([][]string, 0, len(modes))
	for _, mode := range modes {
		s := all[mode]
		if len(s.avgMs) == 0 {
			continue
		}
		sort.Float64s(s.minMs)
		sort.Float64s(s.maxMs)
		avgSteps := "N/A"
		if len(s.avgSteps) > 0 {
			avgSteps = fmt.Sprintf("%.6f", average(s.avgSteps))
		}
		totalMs := 0.0
		for _, v := range s.avgMs {
			totalMs += v
		}
		rows = append(rows, []string{
			mode,
			fmt.Sprintf("%d", s.totalRuns),
			fmt.Sprintf("%.3f", average(s.avgMs)),
			fmt.Sprintf("%.3f", s.minMs[0]),
			fmt.Sprintf("%.3f", s.maxMs[len(s.maxMs)-1]),
			throughput(s.totalOps, totalMs),
			fmt.Sprintf("%.3f", average(s.stepsOp)),
			avgSteps,
		})
	}
	renderTable(w, []string{"Mode", "Total Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Avg Ops/s", "Steps/Op", "AvgSteps"}, rows)
	return nil
}

// Run 判斷模式: --dir 優先於 --file
func Run(w io.Writer, o *Options) error {
	modes, err := parseModes(o.Modes)
	if err != nil {
		return err
	}

	var benchPaths []string
	if o.Dir != "" {
		files, err := collectBenchFilesFromDir(o.Dir)
		if err != nil {
			return fmt.Errorf("scan directory %s: %w", o.Dir, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .bin files found in directory: %s", o.Dir)
		}
		benchPaths = files
		fmt.Fprintf(w, "Found %d bench files in directory: %s\n", len(benchPaths), o.Dir)
	} else {
		benchPaths = []string{o.File}
	}

	fmt.Fprintf(w, "modes to test: %s\n", strings.Join(modes, ","))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	if len(benchPaths) > 1 {
		return runBatchBenchmark(w, benchPaths, modes, o)
	}
	return runBenchmark(w, benchPaths[0], modes, o)
}
