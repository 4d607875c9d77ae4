package app

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestRunner(t *testing.T, opts *Options) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRunner(opts, &buf)
	assert.NilError(t, err)
	return r, &buf
}

func TestEraseScenario(t *testing.T) {
	r, buf := newTestRunner(t, NewOptions())
	assert.NilError(t, r.Erase())

	out := buf.String()
	assert.Check(t, is.Contains(out, "Adding 4, 7, 6, and 82"))
	assert.Check(t, is.Contains(out, "Level: 0 -- 4, 6, 7, 82\n"))
	assert.Check(t, is.Contains(out, "Level: 0 -- 4, 6, 7\n"))
	assert.Check(t, is.Contains(out, "Level: 0 -- 4, 6\n"))
	assert.Check(t, strings.HasSuffix(out, "Level: 0 -- 4\n\n"), out)
}

func TestEraseEmptyScenario(t *testing.T) {
	r, buf := newTestRunner(t, NewOptions())
	assert.NilError(t, r.EraseEmpty())

	out := buf.String()
	for _, want := range []string{"Level: 2 -- empty\n", "Level: 1 -- empty\n", "Level: 0 -- empty\n"} {
		assert.Check(t, is.Contains(out, want))
	}
}

func TestInsertScenario(t *testing.T) {
	opts := NewOptions()
	opts.Count = 5
	r, buf := newTestRunner(t, opts)
	assert.NilError(t, r.Insert())
	assert.Equal(t, strings.Count(buf.String(), "After adding "), 5)
}

func TestContainsScenario(t *testing.T) {
	opts := NewOptions()
	opts.ContainsCount = 30
	opts.Searches = 7
	opts.Linear = true
	r, buf := newTestRunner(t, opts)
	assert.NilError(t, r.Contains())

	out := buf.String()
	assert.Equal(t, strings.Count(out, "Searching for "), 7)
	found := strings.Count(out, "This list contains ")
	missing := strings.Count(out, " is not in the list.")
	assert.Equal(t, found+missing, 7)
	assert.Check(t, is.Contains(out, "Level: 18 -- "))
}

func TestRunnerRejectsBadRange(t *testing.T) {
	opts := NewOptions()
	opts.Lo, opts.Hi = 10, 1
	_, err := NewRunner(opts, &bytes.Buffer{})
	assert.Check(t, err != nil)
}

func TestOptionsValidate(t *testing.T) {
	assert.Check(t, is.Len(NewOptions().Validate(), 0))

	opts := NewOptions()
	opts.MaxLevels = 0
	opts.Lo, opts.Hi = 5, 1
	opts.Searches = -1
	assert.Check(t, is.Len(opts.Validate(), 3))
}
