package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Entry key", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Entry key")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("partial"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer

	_, err := GetSimpleText(reader, "Prompt", &out)
	require.Error(t, err)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	got, err := GetSecret("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), got)

	// the secret itself must not be echoed
	assert.NotContains(t, out.String(), "s3cret")
	assert.Contains(t, out.String(), "Password")
}

func TestGetSecret_ReadError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(fd int) ([]byte, error) {
		return nil, errors.New("not a terminal")
	}

	var out bytes.Buffer
	_, err := GetSecret("Password", &out)
	require.Error(t, err)
}
