package analyTool

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

type StepMap map[skiplist.K]int

// FindStep 模擬由最高層往下的搜尋，計算找到 key 的總步數和各層步數。
// 水平移動一個節點算一步，往下一層也算一步。
func FindStep(sl skiplist.Analyable, key skiplist.K) (step int, level []int) {
	maxLevel := sl.MaxLevels() - 1
	stepsPerLevel := make([]int, maxLevel+1)
	totalSteps := 0

	var cur skiplist.Nodelike
	for h := maxLevel; h >= 0; h-- {
		levelSteps := 0

		// cur 為 nil 代表還沒有在任何一層往右走過，從該層 head 開始
		next := sl.GetHead(h)
		if cur != nil {
			next = cur.GetNext()
		}
		for next != nil && next.GetKey() < key {
			cur = next
			next = cur.GetNext()
			levelSteps++
		}

		if next != nil && next.GetKey() == key {
			levelSteps++ // 加上最後一步
			stepsPerLevel[h] = levelSteps
			totalSteps += levelSteps
			return totalSteps, stepsPerLevel
		}

		stepsPerLevel[h] = levelSteps
		totalSteps += levelSteps
		if h > 0 {
			totalSteps++ // 加上向下移動
			if cur != nil {
				cur = cur.GetDown()
			}
		}
	}

	// 如果沒找到，返回搜尋過程中的總步數
	return totalSteps, stepsPerLevel
}

// AnalyzeStep 根據 map 提供的 key 出現機率計算平均搜尋步數，
// 不在結構中的 key 會被略過
func AnalyzeStep(sl skiplist.Analyable, keys map[skiplist.K]float64) (float64, StepMap) {
	if len(keys) == 0 {
		return 0.0, nil
	}

	step := StepMap{}
	var totalExpectedSteps float64
	var totalProbability float64

	for key, prob := range keys {
		if !sl.Contains(key) {
			continue
		}
		s, _ := FindStep(sl, key)
		step[key] = s
		totalExpectedSteps += float64(s) * prob
		totalProbability += prob
	}

	if totalProbability > 0 {
		return totalExpectedSteps / totalProbability, step
	}
	return 0.0, step
}

// LevelKeys 由 head 沿著 next 走訪，回傳該層所有 key
func LevelKeys(sl skiplist.Analyable, level int) []skiplist.K {
	var keys []skiplist.K
	for node := sl.GetHead(level); node != nil; node = node.GetNext() {
		keys = append(keys, node.GetKey())
	}
	return keys
}

// FormatLevel 把該層格式化成 "4, 6, 7"，空層為 "empty"
func FormatLevel(sl skiplist.Analyable, level int) string {
	keys := LevelKeys(sl, level)
	if len(keys) == 0 {
		return "empty"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, ", ")
}

// PrintTwoDList 由最高層往下，每層一行輸出
func PrintTwoDList(w io.Writer, sl skiplist.Analyable) error {
	for i := sl.MaxLevels() - 1; i >= 0; i-- {
		if _, err := fmt.Fprintf(w, "Level: %d -- %s\n", i, FormatLevel(sl, i)); err != nil {
			return err
		}
	}
	return nil
}

// String 回傳與 PrintTwoDList 相同的內容
func String(sl skiplist.Analyable) string {
	var b strings.Builder
	_ = PrintTwoDList(&b, sl)
	return b.String()
}

// LevelsToCSV 將每層輸出到 CSV，欄位依 level 0 的 key 對齊，未升到該層的位置留空
func LevelsToCSV(sl skiplist.Analyable, writer *csv.Writer) error {
	base := LevelKeys(sl, 0)
	for i := sl.MaxLevels() - 1; i >= 0; i-- {
		row := append([]string{fmt.Sprintf("level %d", i)}, alignRow(sl, i, base)...)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// alignRow 以 base 為欄位，回傳該層在每個欄位上的 key 或空字串
func alignRow(sl skiplist.Analyable, level int, base []skiplist.K) []string {
	row := make([]string, len(base))
	node := sl.GetHead(level)
	for i, k := range base {
		if node != nil && node.GetKey() == k {
			row[i] = strconv.Itoa(k)
			node = node.GetNext()
		}
	}
	return row
}

// CheckStruct 檢查結構是否正確，回傳第一個發現的問題
func CheckStruct(sl skiplist.Analyable) error {
	present := make([]map[skiplist.K]bool, sl.MaxLevels())

	for h := 0; h < sl.MaxLevels(); h++ {
		present[h] = map[skiplist.K]bool{}
		head, tail := sl.GetHead(h), sl.GetTail(h)
		if (head == nil) != (tail == nil) {
			return fmt.Errorf("level %d: head/tail mismatch (head=%v, tail=%v)", h, head != nil, tail != nil)
		}
		if head == nil {
			continue
		}
		if head.GetPrev() != nil {
			return fmt.Errorf("level %d: head %d has prev", h, head.GetKey())
		}

		var prev skiplist.Nodelike
		var forward []skiplist.K
		for node := head; node != nil; node = node.GetNext() {
			if node.GetLevel() != h {
				return fmt.Errorf("level %d: node %d reports level %d", h, node.GetKey(), node.GetLevel())
			}
			if prev != nil {
				if node.GetKey() <= prev.GetKey() {
					return fmt.Errorf("level %d: keys not ascending (%d after %d)", h, node.GetKey(), prev.GetKey())
				}
				if node.GetPrev() != prev {
					return fmt.Errorf("level %d: node %d prev link broken", h, node.GetKey())
				}
			}
			if err := checkVertical(node, h, sl.MaxLevels()); err != nil {
				return err
			}
			forward = append(forward, node.GetKey())
			present[h][node.GetKey()] = true
			prev = node
		}
		if prev != tail {
			return fmt.Errorf("level %d: tail is %d, chain ends at %d", h, tail.GetKey(), prev.GetKey())
		}

		// tail -> head 必須剛好是反過來的順序
		i := len(forward) - 1
		for node := tail; node != nil; node = node.GetPrev() {
			if i < 0 || forward[i] != node.GetKey() {
				return fmt.Errorf("level %d: backward traversal differs from forward", h)
			}
			i--
		}
		if i != -1 {
			return fmt.Errorf("level %d: backward traversal shorter than forward", h)
		}
	}

	for h := 1; h < len(present); h++ {
		for k := range present[h] {
			if !present[h-1][k] {
				return fmt.Errorf("key %d at level %d missing from level %d", k, h, h-1)
			}
		}
	}
	return nil
}

func checkVertical(node skiplist.Nodelike, h, maxLevels int) error {
	down := node.GetDown()
	switch {
	case h == 0 && down != nil:
		return fmt.Errorf("level 0: node %d has down link", node.GetKey())
	case h > 0 && down == nil:
		return fmt.Errorf("level %d: node %d has no down link", h, node.GetKey())
	case down != nil && (down.GetKey() != node.GetKey() || down.GetUp() != node):
		return fmt.Errorf("level %d: node %d vertical link broken", h, node.GetKey())
	}
	if up := node.GetUp(); up != nil {
		if h == maxLevels-1 {
			return fmt.Errorf("level %d: top node %d has up link", h, node.GetKey())
		}
		if up.GetKey() != node.GetKey() || up.GetDown() != node {
			return fmt.Errorf("level %d: node %d up link broken", h, node.GetKey())
		}
	}
	return nil
}

// CountLevel 計算每一層的節點數量
func CountLevel(sl skiplist.Analyable) []int {
	levelCounts := make([]int, sl.MaxLevels())
	for i := range levelCounts {
		for node := sl.GetHead(i); node != nil; node = node.GetNext() {
			levelCounts[i]++
		}
	}
	return levelCounts
}

// PrintLevelCount 印出每層的節點數量
func PrintLevelCount(w io.Writer, sl skiplist.Analyable) {
	counts := CountLevel(sl)
	nodes, maxLevel := sl.GetMaxStats()
	fmt.Fprintf(w, "層級節點統計 (總節點數: %d, 層數: %d):\n", nodes, maxLevel)
	for i := maxLevel - 1; i >= 0; i-- {
		fmt.Fprintf(w, "Level %2d: %d 個節點\n", i, counts[i])
	}
}

func (mp StepMap) sorted() [][2]int {
	out := make([][2]int, 0, len(mp))
	for k, v := range mp {
		out = append(out, [2]int{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

func (mp StepMap) Print(w io.Writer) {
	out := mp.sorted()
	for _, v := range out {
		fmt.Fprintf(w, "%2d  ", v[0])
	}
	fmt.Fprintln(w)
	for _, v := range out {
		fmt.Fprintf(w, "%2d  ", v[1])
	}
	fmt.Fprintln(w)
}

func (mp StepMap) PrintToCSV(writer *csv.Writer) error {
	out := mp.sorted()
	keys := make([]string, len(out))
	steps := make([]string, len(out))
	for i, v := range out {
		keys[i] = strconv.Itoa(v[0])
		steps[i] = strconv.Itoa(v[1])
	}
	if err := writer.Write(keys); err != nil {
		return err
	}
	if err := writer.Write(steps); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
