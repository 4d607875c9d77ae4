package app

import (
	"io"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/Hakuto4838/TwoDList.git/datastream"
)

func TestFormatFileName(t *testing.T) {
	assert.Equal(t, formatScientific(0), "0")
	assert.Equal(t, formatScientific(1000), "1e3")
	assert.Equal(t, formatScientific(25000), "2.5e4")
	assert.Equal(t, formatDecimal(1), "1")
	assert.Equal(t, formatDecimal(0.1), "0_1")
	assert.Equal(t, formatDecimal(1.07), "1_07")

	o := NewOptions()
	o.DeleteRatio = 0.1
	assert.Equal(t, o.prefix(1000, 10000), "bench_n1e3_k1e4_a1_07_b0_dr0_1")
	o.A = 0
	assert.Equal(t, o.prefix(1000, 10000), "bench_n1e3_k1e4_uni_dr0_1")
	o.Out = "custom"
	assert.Equal(t, o.prefix(1000, 10000), "custom")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	o := NewOptions()
	o.N = "50"
	o.K = "2e2"
	o.Seed = 7
	o.Nums = 2
	o.Out = "zipf"
	o.Path = filepath.Join(dir, "out")

	files, err := Generate(o, io.Discard)
	assert.NilError(t, err)
	assert.DeepEqual(t, files, []string{
		filepath.Join(dir, "out", "zipf_0.bin"),
		filepath.Join(dir, "out", "zipf_1.bin"),
	})

	for _, f := range files {
		bf, err := datastream.ReadBenchFile(f)
		assert.NilError(t, err)
		assert.Check(t, is.Len(bf.Ops, 200))
		assert.Check(t, is.Len(bf.Dist, 50))
		for _, op := range bf.Ops {
			assert.Assert(t, op.Key >= 1 && op.Key <= 50, "key %d", op.Key)
		}
	}
}

func TestGenerateUniform(t *testing.T) {
	o := NewOptions()
	o.N = "10"
	o.K = "30"
	o.A = 0
	o.Seed = 3
	o.Out = "uni"
	o.Path = t.TempDir()

	files, err := Generate(o, io.Discard)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(files, 1))

	bf, err := datastream.ReadBenchFile(files[0])
	assert.NilError(t, err)
	for _, w := range bf.Dist {
		assert.Check(t, w > 0.099 && w < 0.101, "weight %v", w)
	}
}

func TestValidate(t *testing.T) {
	assert.Check(t, is.Len(NewOptions().Validate(), 0))

	o := NewOptions()
	o.N = "abc"
	o.K = "-1"
	o.DeleteRatio = 2
	o.Nums = 0
	assert.Check(t, is.Len(o.Validate(), 4))
}
