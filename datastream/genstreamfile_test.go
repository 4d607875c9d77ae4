package datastream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

func floatAlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestUniformDataGeneratorRange(t *testing.T) {
	gen, err := NewUniformDataGenerator(1, 100, 42)
	if err != nil {
		t.Fatalf("NewUniformDataGenerator error: %v", err)
	}
	seen := map[skiplist.K]bool{}
	for _, k := range gen.GenerateSequence(20000) {
		if k < 1 || k > 100 {
			t.Fatalf("key %d out of [1,100]", k)
		}
		seen[k] = true
	}
	if len(seen) != 100 {
		t.Errorf("saw %d distinct keys, want 100", len(seen))
	}
	if !floatAlmostEqual(gen.Entropy(), math.Log2(100), 1e-12) {
		t.Errorf("entropy = %v", gen.Entropy())
	}
	if !floatAlmostEqual(EntropyFromDist(gen.GetKeyMap()), gen.Entropy(), 1e-9) {
		t.Errorf("EntropyFromDist disagrees with Entropy")
	}

	if _, err := NewUniformDataGenerator(5, 4, 1); err == nil {
		t.Error("expected error for lo > hi")
	}
}

func TestZipfDataGenerator(t *testing.T) {
	gen, err := NewZipfDataGenerator(10, 29, 1.2, 0, 42)
	if err != nil {
		t.Fatalf("NewZipfDataGenerator error: %v", err)
	}
	sum := 0.0
	for k, w := range gen.GetKeyMap() {
		if k < 10 || k > 29 {
			t.Fatalf("key %d out of range", k)
		}
		sum += w
	}
	if !floatAlmostEqual(sum, 1, 1e-9) {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	for i := 0; i < 1000; i++ {
		if k := gen.Next(); k < 10 || k > 29 {
			t.Fatalf("Next() = %d out of range", k)
		}
	}
	if _, err := NewZipfDataGenerator(0, 10, 0, 0, 1); err == nil {
		t.Error("expected error for a = 0")
	}
}

func TestGenerateOpsRules(t *testing.T) {
	gen, _ := NewUniformDataGenerator(1, 20, 7)
	ops, err := GenerateOps(gen, 500, 0.2, 42)
	if err != nil {
		t.Fatalf("GenerateOps error: %v", err)
	}
	if len(ops) != 500 {
		t.Fatalf("ops len = %d, want 500", len(ops))
	}
	present := map[skiplist.K]bool{}
	deletes := 0
	for i, op := range ops {
		switch op.Type {
		case OpInsert:
			if present[op.Key] {
				t.Fatalf("op[%d] inserts present key %d", i, op.Key)
			}
			present[op.Key] = true
		case OpDelete:
			if !present[op.Key] {
				t.Fatalf("op[%d] deletes absent key %d", i, op.Key)
			}
			present[op.Key] = false
			deletes++
		case OpQuery:
			if !present[op.Key] {
				t.Fatalf("op[%d] queries absent key %d", i, op.Key)
			}
		}
	}
	if deletes == 0 {
		t.Error("expected some deletes with deleteRatio 0.2")
	}

	if _, err := GenerateOps(gen, 10, 1.5, 1); err == nil {
		t.Error("expected error for deleteRatio > 1")
	}
	if _, err := GenerateOps(nil, 10, 0.1, 1); err == nil {
		t.Error("expected error for nil stream")
	}
}

func TestWriteAndReadBenchFile(t *testing.T) {
	gen, _ := NewZipfDataGenerator(1, 8, 1.2, 0, 42)
	file := filepath.Join(t.TempDir(), "bench.bin")

	written, err := WriteBenchFileFromStream(gen, 200, 0.1, 42, file)
	if err != nil {
		t.Fatalf("WriteBenchFileFromStream error: %v", err)
	}

	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}

	// 驗證分布 map
	if len(bf.Dist) != len(written.Dist) {
		t.Fatalf("dist len mismatch: got %d, want %d", len(bf.Dist), len(written.Dist))
	}
	for k, want := range written.Dist {
		if got, ok := bf.Dist[k]; !ok || !floatAlmostEqual(got, want, 1e-12) {
			t.Fatalf("weight mismatch for key %v: got %v, want %v", k, got, want)
		}
	}

	// 驗證操作序列
	if len(bf.Ops) != len(written.Ops) {
		t.Fatalf("ops len mismatch: got %d, want %d", len(bf.Ops), len(written.Ops))
	}
	for i := range bf.Ops {
		if bf.Ops[i] != written.Ops[i] {
			t.Fatalf("op[%d] = %v, want %v", i, bf.Ops[i], written.Ops[i])
		}
	}

	// 驗證 ToSequenceModel
	m := bf.ToSequenceModel()
	if m.Len() != 200 {
		t.Fatalf("sequence model length = %d, want 200", m.Len())
	}
	first := m.NextN(10)
	if len(first) != 10 || first[0] != bf.Ops[0] {
		t.Fatalf("NextN(10) = %v", first)
	}
	count := len(first)
	for {
		if _, ok := m.Next(); !ok {
			break
		}
		count++
	}
	if count != 200 {
		t.Fatalf("sequence model replayed %d ops, want 200", count)
	}
	m.Reset()
	if op, ok := m.Next(); !ok || op != bf.Ops[0] {
		t.Fatalf("after Reset Next() = %v, %v", op, ok)
	}
}

func TestReadBenchFileRejectsBadMagic(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(file, []byte("BADMAGIC\x01\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBenchFile(file); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("ReadBenchFile error = %v, want ErrInvalidMagic", err)
	}
}

// benchHeader 寫出合法的檔頭，後面只接上指定的 distCount 與 opCount
func benchHeader(distCount uint32, opCount uint64) *bytes.Buffer {
	var buf bytes.Buffer
	buf.Write(benchMagic[:])
	binary.Write(&buf, binary.LittleEndian, benchVersion)
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	binary.Write(&buf, binary.LittleEndian, distCount)
	if distCount == 0 {
		binary.Write(&buf, binary.LittleEndian, opCount)
	}
	return &buf
}

func TestReadBenchRejectsTruncatedCounts(t *testing.T) {
	cases := []struct {
		name      string
		distCount uint32
		opCount   uint64
	}{
		{"huge op count", 0, 1 << 62},
		{"max op count", 0, math.MaxUint64},
		{"huge dist count", math.MaxUint32, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("readBench panicked: %v", r)
				}
			}()
			bf, err := readBench(benchHeader(c.distCount, c.opCount))
			if err == nil {
				t.Fatalf("readBench() = %+v, want error", bf)
			}
		})
	}
}
