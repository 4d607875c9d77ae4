package app

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"k8s.io/klog/v2"

	"github.com/Hakuto4838/TwoDList.git/datastream"
	"github.com/Hakuto4838/TwoDList.git/skiplist/analyTool"
	"github.com/Hakuto4838/TwoDList.git/skiplist/twod"
)

// Runner 依序執行各個示範情境，所有情境共用同一個 key 產生器
type Runner struct {
	opts *Options
	out  io.Writer
	gen  *datastream.UniformDataGenerator
	coin int64
}

func NewRunner(opts *Options, out io.Writer) (*Runner, error) {
	gen, err := datastream.NewUniformDataGenerator(opts.Lo, opts.Hi, opts.Seed)
	if err != nil {
		return nil, err
	}
	return &Runner{opts: opts, out: out, gen: gen, coin: opts.CoinSeed}, nil
}

// newList 每次建立新 list 都換一個 coin 種子，避免各情境的升層結果相同
func (r *Runner) newList(maxLevels int) (*twod.TwoDList, error) {
	opts := []twod.Option{twod.WithSeed(r.coin)}
	r.coin++
	if r.opts.Linear {
		opts = append(opts, twod.WithLinearSearch())
	}
	return twod.New(maxLevels, opts...)
}

func (r *Runner) heading(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, color.CyanString(title))
}

func (r *Runner) print(sl *twod.TwoDList) error {
	if err := analyTool.PrintTwoDList(r.out, sl); err != nil {
		return err
	}
	if r.opts.Table {
		analyTool.PrintTable(r.out, sl, 0)
	}
	fmt.Fprintln(r.out)
	return nil
}

// Insert 插入 Count 個隨機 key，每次插入後印出整個 list
func (r *Runner) Insert() error {
	r.heading("Testing insert.")
	sl, err := r.newList(r.opts.MaxLevels)
	if err != nil {
		return err
	}
	for i := 0; i < r.opts.Count; i++ {
		number := r.gen.Next()
		ok := sl.Insert(number)
		klog.V(1).Infof("insert %d -> %v", number, ok)
		fmt.Fprintf(r.out, "After adding %d\n", number)
		if err := r.print(sl); err != nil {
			return err
		}
	}
	return nil
}

// Contains 先插入 ContainsCount 個隨機 key，再搜尋 Searches 個隨機 key
func (r *Runner) Contains() error {
	r.heading("Testing contains")
	sl, err := r.newList(r.opts.ContainsLevels)
	if err != nil {
		return err
	}
	for i := 0; i < r.opts.ContainsCount; i++ {
		sl.Insert(r.gen.Next())
	}
	if err := r.print(sl); err != nil {
		return err
	}

	for i := 0; i < r.opts.Searches; i++ {
		number := r.gen.Next()
		fmt.Fprintf(r.out, "Searching for %d\n", number)
		if sl.Contains(number) {
			fmt.Fprintf(r.out, "This list contains %d.\n", number)
		} else {
			fmt.Fprintf(r.out, "%d is not in the list.\n", number)
		}
		fmt.Fprintln(r.out)
	}
	steps, _ := analyTool.AnalyzeStep(sl, r.gen.GetKeyMap())
	klog.V(1).Infof("contains: average descent steps %.3f over %d levels", steps, sl.MaxLevels())
	return nil
}

// Erase 固定插入 4, 7, 6, 82 後依序刪除
func (r *Runner) Erase() error {
	r.heading("Testing insert & erase")
	sl, err := r.newList(r.opts.MaxLevels)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Adding 4, 7, 6, and 82\n\n")
	for _, k := range []int{4, 7, 6, 82} {
		sl.Insert(k)
	}
	if err := r.print(sl); err != nil {
		return err
	}

	steps := []struct {
		title string
		keys  []int
	}{
		{"Removing 82...", []int{82, 35}},
		{"Removing 7...", []int{123, 7}},
		{"Removing 6...", []int{7, 6}},
	}
	for _, s := range steps {
		fmt.Fprintf(r.out, "%s\n\n", s.title)
		for _, k := range s.keys {
			ok := sl.Remove(k)
			klog.V(1).Infof("erase %d -> %v", k, ok)
		}
		if err := r.print(sl); err != nil {
			return err
		}
	}
	return nil
}

// EraseEmpty 在沒有任何節點的 list 上刪除
func (r *Runner) EraseEmpty() error {
	r.heading("Testing erase without any nodes")
	sl, err := r.newList(r.opts.MaxLevels)
	if err != nil {
		return err
	}
	for _, k := range []int{4, 35} {
		ok := sl.Remove(k)
		klog.V(1).Infof("erase %d -> %v", k, ok)
	}
	return r.print(sl)
}

// All 依 insert、contains、erase、erase-empty 的順序執行
func (r *Runner) All() error {
	for _, run := range []func() error{r.Insert, r.Contains, r.Erase, r.EraseEmpty} {
		if err := run(); err != nil {
			return err
		}
	}
	return nil
}
