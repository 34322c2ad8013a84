package adc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/usbadda/pkg/cli/sh/shtest"
	"github.com/robotalks/usbadda/pkg/comm/commtest"
)

func sweepValues() []uint16 {
	values := make([]uint16, 16)
	for n := range values {
		values[n] = uint16(n * 100)
	}
	return values
}

func TestSettings(t *testing.T) {
	testCases := []struct {
		args  []string
		frame string
	}{
		{[]string{"adc_range", "3"}, "S0AG3"},
		{[]string{"adc_samples", "10"}, "S0AA0a"},
		{[]string{"adc_disable_channel", "0xc"}, "S0ADc"},
		{[]string{"adc_enable_channel", "15"}, "S0AEf"},
	}
	for _, tc := range testCases {
		t.Run(tc.args[0], func(t *testing.T) {
			s := shtest.New()
			require.Equal(t, 0, s.Run(tc.args...))
			require.Equal(t, []string{tc.frame}, s.Board.Frames())
			require.Empty(t, s.Stdout.String())
		})
	}
}

func TestReadAll(t *testing.T) {
	for _, name := range []string{"adc_read_all", "adc_read"} {
		t.Run(name, func(t *testing.T) {
			s := shtest.New()
			s.Board.Respond("S0AR", commtest.SweepData(sweepValues()...))
			require.Equal(t, 0, s.Run(name))
			require.Equal(t, "[0 100 200 300 400 500 600 700 800 900 1000 1100 1200 1300 1400 1500]\n", s.Stdout.String())
		})
	}
}

func TestReadChannel(t *testing.T) {
	s := shtest.New()
	s.OutputJSON = true
	s.Board.Respond("S0AR", commtest.SweepData(sweepValues()...))
	require.Equal(t, 0, s.Run("adc_read_channel", "7"))
	require.JSONEq(t, `{"channel":7,"value":700}`, s.Stdout.String())
}

func TestReadShortResponse(t *testing.T) {
	s := shtest.New()
	s.Board.Respond("S0AR", commtest.SweepData(1, 2, 3))
	require.Equal(t, 1, s.Run("adc_read_all"))
	require.Empty(t, s.Stdout.String())
	require.Contains(t, s.Stderr.String(), "adc_read_all: ")
}
