package datastream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	randv2 "math/rand/v2"

	"github.com/Hakuto4838/TwoDList.git/skiplist"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "TDLBENCH"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Query,1=Insert,2=Delete)
//   int64   Key

var (
	benchMagic   = [8]byte{'T', 'D', 'L', 'B', 'E', 'N', 'C', 'H'}
	benchVersion = uint16(1)
)

// maxPrealloc 是讀檔時依檔頭數量預先配置的上限
const maxPrealloc = 1 << 16

var ErrInvalidMagic = errors.New("invalid bench file magic")

type BenchFile struct {
	Dist map[skiplist.K]float64
	Ops  []Operation
}

// GenerateOps 由 key 產生器產生 k 筆操作。
// 規則：
//   - key 目前不在表中則輸出 Insert
//   - 已在表中則以 deleteRatio 的機率輸出 Delete，其餘為 Query
func GenerateOps(stream KeyStream, k int, deleteRatio float64, seed uint64) ([]Operation, error) {
	if stream == nil {
		return nil, errors.New("nil KeyStream")
	}
	if k < 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}
	if deleteRatio < 0.0 || deleteRatio > 1.0 {
		return nil, fmt.Errorf("deleteRatio (%v) must be between 0.0 and 1.0", deleteRatio)
	}

	r := randv2.New(randv2.NewPCG(seed, 0))
	present := make(map[skiplist.K]bool)
	ops := make([]Operation, 0, k)
	for i := 0; i < k; i++ {
		key := stream.Next()
		var op OperationType
		if !present[key] {
			op = OpInsert
			present[key] = true
		} else if r.Float64() < deleteRatio {
			op = OpDelete
			present[key] = false
		} else {
			op = OpQuery
		}
		ops = append(ops, Operation{Type: op, Key: key})
	}
	return ops, nil
}

// WriteBenchFile 將分布與操作序列寫入 bin 檔，分布依 key 升冪輸出以確保可重現
func WriteBenchFile(filename string, dist map[skiplist.K]float64, ops []Operation) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := writeBench(w, dist, ops); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return file.Sync()
}

func writeBench(w io.Writer, dist map[skiplist.K]float64, ops []Operation) error {
	// Header
	if _, err := w.Write(benchMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, benchVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return err
	}

	keys := make([]skiplist.K, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := binary.Write(w, binary.LittleEndian, int64(k)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, dist[k]); err != nil {
			return err
		}
	}

	// Operations
	if err := binary.Write(w, binary.LittleEndian, uint64(len(ops))); err != nil {
		return err
	}
	for _, op := range ops {
		if err := binary.Write(w, binary.LittleEndian, uint8(op.Type)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(op.Key)); err != nil {
			return err
		}
	}
	return nil
}

// WriteBenchFileFromStream 由產生器產生 k 筆操作並寫入檔案
func WriteBenchFileFromStream(stream KeyStream, k int, deleteRatio float64, seed uint64, filename string) (*BenchFile, error) {
	ops, err := GenerateOps(stream, k, deleteRatio, seed)
	if err != nil {
		return nil, err
	}
	bf := &BenchFile{Dist: stream.GetKeyMap(), Ops: ops}
	if err := WriteBenchFile(filename, bf.Dist, bf.Ops); err != nil {
		return nil, err
	}
	return bf, nil
}

// ReadBenchFile 讀取 bin 檔案，回傳分布與操作序列。
func ReadBenchFile(filename string) (*BenchFile, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return readBench(bufio.NewReader(fd))
}

func readBench(r io.Reader) (*BenchFile, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != benchMagic {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, magic)
	}
	var ver uint16
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return nil, err
	}
	if ver != benchVersion {
		return nil, fmt.Errorf("unsupported version: %d", ver)
	}
	// reserved
	var reserved uint16
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		return nil, err
	}

	// distribution
	var distCount uint32
	if err := binary.Read(r, binary.LittleEndian, &distCount); err != nil {
		return nil, err
	}
	// 檔頭的數量不可信，容量只當提示，交給實際讀到的資料決定大小
	dist := make(map[skiplist.K]float64, min(distCount, maxPrealloc))
	for i := uint32(0); i < distCount; i++ {
		var key int64
		var weight float64
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &weight); err != nil {
			return nil, err
		}
		dist[skiplist.K(key)] = weight
	}

	// operations
	var opCount uint64
	if err := binary.Read(r, binary.LittleEndian, &opCount); err != nil {
		return nil, err
	}
	ops := make([]Operation, 0, min(opCount, maxPrealloc))
	for i := uint64(0); i < opCount; i++ {
		var t uint8
		var key int64
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, err
		}
		if OperationType(t) > OpDelete {
			return nil, fmt.Errorf("op %d: unknown operation type %d", i, t)
		}
		ops = append(ops, Operation{Type: OperationType(t), Key: skiplist.K(key)})
	}

	return &BenchFile{Dist: dist, Ops: ops}, nil
}

// ToSequenceModel 將 BenchFile 轉為可重播的 SequenceModel
func (bf *BenchFile) ToSequenceModel() *SequenceModel {
	if bf == nil {
		return NewSequenceModelFromOps(nil)
	}
	return NewSequenceModelFromOps(bf.Ops)
}

// EntropyFromDist 計算分布的熵（單位：bit）。
// dist 的 value 應為已正規化的機率；會自動忽略 <= 0 的值。
func EntropyFromDist(dist map[skiplist.K]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
