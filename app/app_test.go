package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

type testOptions struct {
	Count int    `mapstructure:"count"`
	Name  string `mapstructure:"name"`
}

func (o *testOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.Count, "count", o.Count, "count")
	fs.StringVar(&o.Name, "name", o.Name, "name")
}

func (o *testOptions) Validate() []error {
	if o.Count < 0 {
		return []error{fmt.Errorf("count must not be negative, got %d", o.Count)}
	}
	return nil
}

func execute(t *testing.T, opts *testOptions, args ...string) (bool, string, error) {
	t.Helper()
	var out bytes.Buffer
	ran := false
	a := NewApp("testapp",
		WithOptions(opts),
		WithConfiguration(opts),
		WithOutput(&out),
		WithRunFunc(func(basename string) error {
			ran = true
			return nil
		}),
	)
	cmd := a.Command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return ran, out.String(), err
}

func TestFlagsAreUnmarshalled(t *testing.T) {
	opts := &testOptions{Count: 1, Name: "default"}
	ran, out, err := execute(t, opts, "--count", "7")
	assert.NilError(t, err)
	assert.Check(t, ran)
	assert.Check(t, is.Equal(opts.Count, 7))
	assert.Check(t, is.Equal(opts.Name, "default"))
	assert.Check(t, is.Contains(out, "Starting testapp"))
	assert.Check(t, is.Contains(out, "count:"))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("count: 9\nname: fromfile\n"), 0644))

	opts := &testOptions{Count: 1}
	_, _, err := execute(t, opts, "--config", path)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(opts.Count, 9))
	assert.Check(t, is.Equal(opts.Name, "fromfile"))

	// 命令列優先於設定檔
	opts = &testOptions{Count: 1}
	_, _, err = execute(t, opts, "-C", path, "--count", "3")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(opts.Count, 3))
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, &testOptions{}, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "failed to read configuration file")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("TESTAPP_COUNT", "11")
	opts := &testOptions{Count: 1}
	_, _, err := execute(t, opts)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(opts.Count, 11))
}

func TestValidationFailure(t *testing.T) {
	ran, out, err := execute(t, &testOptions{}, "--count", "-2")
	assert.Check(t, errors.Is(err, ErrInvalidOptions))
	assert.Check(t, !ran)
	assert.Check(t, is.Contains(out, "count must not be negative"))
}

func TestSubCommand(t *testing.T) {
	opts := &testOptions{}
	var got []string
	a := NewApp("testapp",
		WithOptions(opts),
		WithConfiguration(opts),
		WithSilence(),
		WithOutput(&bytes.Buffer{}),
	)
	a.AddCommand(NewCommand("echo", "echo args",
		WithCommandRunFunc(func(args []string) error {
			got = append(got, fmt.Sprintf("%d", opts.Count))
			got = append(got, args...)
			return nil
		}),
	))

	cmd := a.Command()
	cmd.SetArgs([]string{"echo", "--count", "4", "x", "y"})
	assert.NilError(t, cmd.Execute())
	assert.DeepEqual(t, got, []string{"4", "x", "y"})
}

func TestFormatBaseName(t *testing.T) {
	assert.Equal(t, FormatBaseName("/usr/local/bin/demo"), "demo")
}
