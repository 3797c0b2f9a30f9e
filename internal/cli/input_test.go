package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("Mama Ngina\n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Shop name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Mama Ngina", got)
	assert.Contains(t, out.String(), "Shop name")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("no newline"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetNumber(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("12.5\n"))
	var out bytes.Buffer

	got, err := GetNumber(reader, "Price", 0, &out)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
}

func TestGetNumber_EmptyUsesFallback(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\n"))
	var out bytes.Buffer

	got, err := GetNumber(reader, "Quantity", 1, &out)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestGetNumber_Invalid(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("lots\n"))
	var out bytes.Buffer

	_, err := GetNumber(reader, "Quantity", 0, &out)
	assert.Error(t, err)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("secret1"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret1"), pw)
	assert.Contains(t, out.String(), "Password")
}
