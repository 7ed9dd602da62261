package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))
	out := &bytes.Buffer{}

	text, err := GetSimpleText(r, "Say something", out)
	require.NoError(t, err)
	require.Equal(t, "hello world", text)
	require.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("no newline"))
	out := &bytes.Buffer{}

	text, err := GetSimpleText(r, "p", out)
	require.NoError(t, err)
	require.Equal(t, "no newline", text)
}

func TestGetTextWithDefault(t *testing.T) {
	t.Run("empty input returns default", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader("\n"))
		out := &bytes.Buffer{}

		text, err := GetTextWithDefault(r, "Email", "s@x.com", out)
		require.NoError(t, err)
		require.Equal(t, "s@x.com", text)
		require.Contains(t, out.String(), "[s@x.com]")
	})

	t.Run("typed input wins", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader("other@x.com\n"))
		out := &bytes.Buffer{}

		text, err := GetTextWithDefault(r, "Email", "s@x.com", out)
		require.NoError(t, err)
		require.Equal(t, "other@x.com", text)
	})
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("secret"), nil }

	out := &bytes.Buffer{}
	pw, err := GetPassword(out, "Enter password")
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), pw)
	require.Contains(t, out.String(), "Enter password")
}
