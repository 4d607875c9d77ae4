package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/Hakuto4838/TwoDList.git/datastream"
)

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}

	exp := 0
	divisor := 1
	for temp := n; temp >= 10; temp /= 10 {
		exp++
		divisor *= 10
	}
	coefficient := float64(n) / float64(divisor)

	// 係數是整數就不顯示小數
	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

// formatDecimal 將浮點數格式化為不含小數點的字串（用於檔名）
func formatDecimal(f float64) string {
	// 保留兩位小數的精度
	val := int(f*100 + 0.5)
	switch {
	case val%100 == 0:
		return fmt.Sprintf("%d", val/100)
	case val%10 == 0:
		return fmt.Sprintf("%d_%d", val/100, (val%100)/10)
	default:
		return fmt.Sprintf("%d_%02d", val/100, val%100)
	}
}

// prefix 沒有指定輸出檔名時依參數自動生成
func (o *Options) prefix(n, k int) string {
	if o.Out != "" {
		return o.Out
	}
	dist := "uni"
	if o.A > 0 {
		dist = fmt.Sprintf("a%s_b%s", formatDecimal(o.A), formatDecimal(o.B))
	}
	return fmt.Sprintf("bench_n%s_k%s_%s_dr%s",
		formatScientific(n), formatScientific(k), dist, formatDecimal(o.DeleteRatio))
}

// newStream a 為 0 時使用均勻分布，否則使用 Zipf 分布，key 落在 [1, n]
func (o *Options) newStream(n int, seed int64) (datastream.KeyStream, error) {
	if o.A == 0 {
		return datastream.NewUniformDataGenerator(1, n, seed)
	}
	return datastream.NewZipfDataGenerator(1, n, o.A, o.B, seed)
}

// Generate 依參數產生 Nums 個 bench 檔，回傳寫出的檔案路徑
func Generate(o *Options, w io.Writer) ([]string, error) {
	n, err := parseScientificNotation(o.N)
	if err != nil {
		return nil, err
	}
	k, err := parseScientificNotation(o.K)
	if err != nil {
		return nil, err
	}

	if o.Path != "." && o.Path != "" {
		if err := os.MkdirAll(o.Path, 0755); err != nil {
			return nil, fmt.Errorf("建立輸出目錄失敗: %w", err)
		}
	}
	prefix := o.prefix(n, k)

	fmt.Fprintf(w, "生成參數:\n")
	fmt.Fprintf(w, "  n (keys): %d\n", n)
	fmt.Fprintf(w, "  k (operations): %d\n", k)
	fmt.Fprintf(w, "  a: %.2f\n", o.A)
	fmt.Fprintf(w, "  b: %.2f\n", o.B)
	fmt.Fprintf(w, "  deleteRatio: %.2f\n", o.DeleteRatio)
	fmt.Fprintf(w, "  seed: %d\n", o.Seed)
	fmt.Fprintf(w, "  檔案數量: %d\n", o.Nums)
	fmt.Fprintf(w, "  輸出目錄: %s\n", o.Path)
	fmt.Fprintf(w, "  輸出檔名前綴: %s\n\n", prefix)

	files := make([]string, 0, o.Nums)
	for i := 0; i < o.Nums; i++ {
		filename := prefix + ".bin"
		if o.Nums > 1 {
			filename = fmt.Sprintf("%s_%d.bin", prefix, i)
		}
		outfile := filepath.Join(o.Path, filename)
		fmt.Fprintf(w, "正在生成 %s...\n", outfile)

		seed := o.Seed + int64(i)
		stream, err := o.newStream(n, seed)
		if err != nil {
			return files, err
		}
		bf, err := datastream.WriteBenchFileFromStream(stream, k, o.DeleteRatio, uint64(seed), outfile)
		stream.Close()
		if err != nil {
			return files, err
		}
		klog.V(1).Infof("%s: %d keys, %d ops, entropy %.4f", outfile, len(bf.Dist), len(bf.Ops), datastream.EntropyFromDist(bf.Dist))
		files = append(files, outfile)
	}
	fmt.Fprintln(w, "完成!")
	return files, nil
}
