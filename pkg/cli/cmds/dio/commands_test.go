package dio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/usbadda/pkg/cli/sh/shtest"
)

func TestRead(t *testing.T) {
	s := shtest.New()
	s.Board.Respond("S0R2", "xxx2f")
	require.Equal(t, 0, s.Run("dio_read", "2"))
	require.Equal(t, "47\n", s.Stdout.String())
	require.Equal(t, []string{"S0R2"}, s.Board.Frames())
}

func TestReadJSON(t *testing.T) {
	s := shtest.New()
	s.OutputJSON = true
	s.Board.Respond("S0R4", "xxxff")
	require.Equal(t, 0, s.Run("dio_read", "4"))
	require.JSONEq(t, `{"channel":4,"value":255}`, s.Stdout.String())
}

func TestWrite(t *testing.T) {
	s := shtest.New()
	require.Equal(t, 0, s.Run("dio_write", "2", "0x0a"))
	require.Empty(t, s.Stdout.String())
	require.Equal(t, []string{"S0W20a"}, s.Board.Frames())
}

func TestWriteInvalid(t *testing.T) {
	s := shtest.New()
	require.Equal(t, 1, s.Run("dio_write", "2", "256"))
	require.Empty(t, s.Board.Frames())
	require.Equal(t, 1, s.Run("dio_write", "2"))
	require.Contains(t, s.Stderr.String(), "usage: dio_write <0-4> <0x00-0xFF/0-255>")
}
