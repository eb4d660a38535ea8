package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailWriterUnderLimit(t *testing.T) {
	w := NewTailWriter(16)

	n, err := w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", w.String())
}

func TestTailWriterKeepsEnd(t *testing.T) {
	w := NewTailWriter(8)

	for _, chunk := range []string{"one ", "two ", "three ", "four"} {
		_, err := w.Write([]byte(chunk))
		assert.NoError(t, err)
	}

	assert.Equal(t, "ree four", w.String())
}

func TestTailWriterLargeSingleWrite(t *testing.T) {
	w := NewTailWriter(4)

	_, err := w.Write([]byte(strings.Repeat("a", 100) + "tail"))
	assert.NoError(t, err)
	assert.Equal(t, "tail", w.String())
}
