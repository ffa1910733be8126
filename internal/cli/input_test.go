package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "alpha\r\n")
	b := writeFile(t, filepath.Join(dir, "b.txt"), "")

	got, err := readInputs([]string{a, b}, false, strings.NewReader("unused"))
	require.NoError(t, err)
	assert.Equal(t, inputs{expected: "alpha\r\n", actual: ""}, got)

	got, err = readInputs([]string{a, "-"}, false, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, inputs{expected: "alpha\r\n", actual: "from stdin"}, got)

	got, err = readInputs([]string{"-", "-x"}, true, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, inputs{expected: "-", actual: "-x"}, got)
}

func TestReadInputsErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "alpha")

	_, err := readInputs([]string{a}, false, nil)
	assert.ErrorIs(t, err, ErrUsage)

	_, err = readInputs([]string{"-", "-"}, false, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUsage)

	_, err = readInputs([]string{a, filepath.Join(dir, "missing")}, false, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read actual")

	boom := errors.New("boom")
	_, err = readInputs([]string{"-", a}, false, iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}
