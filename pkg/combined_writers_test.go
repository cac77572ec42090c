package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type faultyWriter struct{}

func (fw *faultyWriter) Write(_ []byte) (n int, err error) {
	return 0, errors.New("disk on fire")
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)
	require.NotNil(t, cw)

	msg1 := "a message"
	msg2 := "another message here"
	n, err := cw.Write([]byte(msg1))
	require.NoError(t, err)
	assert.Equal(t, len(msg1)*2, n)
	n, err = cw.Write([]byte(msg2))
	require.NoError(t, err)
	assert.Equal(t, len(msg2)*2, n)

	assert.Equal(t, "already-here"+msg1+msg2, sb1.String())
	assert.Equal(t, msg1+msg2, sb2.String())
}

func TestCombinedWriter_Write_withError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb)

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	assert.ErrorContains(t, err, "disk on fire")

	// written only to the healthy writer
	assert.Equal(t, len(msg), n)
	assert.Equal(t, msg, sb.String())
}
