package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here|")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	n, err := cw.Write([]byte("day 1 done"))
	require.NoError(t, err)
	assert.Equal(t, len("day 1 done"), n)

	assert.Equal(t, "already-here|day 1 done", sb1.String())
	assert.Equal(t, "day 1 done", sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb, &faultyWriter{})

	n, err := cw.Write([]byte("streak reset"))
	require.Error(t, err)
	assert.Equal(t, len("streak reset"), n)
	assert.Equal(t, "streak reset", sb.String())
	assert.Equal(t, "disk full; disk full", err.Error())
}

type faultyWriter struct{}

func (fw *faultyWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}
