package adda

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sweepData builds a well formed 96-byte read-all response.
func sweepData(samples ...Sample) []byte {
	segs := make([]string, len(samples))
	for n, s := range samples {
		segs[n] = fmt.Sprintf("%x%04x", s.Channel, s.Value)
	}
	return []byte("A" + strings.Join(segs, "P"))
}

func reversedSweep() Sweep {
	sweep := make(Sweep, ADCChannels)
	for n := range sweep {
		ch := ADCChannels - 1 - n
		sweep[n] = Sample{Channel: uint8(ch), Value: uint16(ch * 0x111)}
	}
	return sweep
}

func TestDecodeDIORead(t *testing.T) {
	val, err := DecodeDIORead([]byte("xxx2f"))
	require.NoError(t, err)
	require.Equal(t, uint8(47), val)

	val, err = DecodeDIORead([]byte("R2xFF"))
	require.NoError(t, err)
	require.Equal(t, uint8(255), val)
}

func TestDecodeDIOReadMalformed(t *testing.T) {
	for _, data := range []string{"xxx2", "xxx2ff", "xxxzz", "xxx-1", ""} {
		t.Run(data, func(t *testing.T) {
			_, err := DecodeDIORead([]byte(data))
			require.True(t, errors.Is(err, ErrMalformedResponse))
		})
	}
}

func TestDecodeADCSweep(t *testing.T) {
	expected := reversedSweep()
	data := sweepData(expected...)
	require.Len(t, data, ADCSweepResponseSize)

	sweep, err := DecodeADCSweep(data)
	require.NoError(t, err)
	require.Equal(t, expected, sweep)

	values := sweep.Values()
	require.Len(t, values, ADCChannels)
	require.Equal(t, uint16(15*0x111), values[0])
	require.Equal(t, uint16(0), values[15])

	val, err := sweep.Lookup(3)
	require.NoError(t, err)
	require.Equal(t, uint16(3*0x111), val)
}

func TestSweepLookupMissing(t *testing.T) {
	sweep := reversedSweep()
	sweep[0].Channel = 14
	_, err := sweep.Lookup(15)
	require.True(t, errors.Is(err, ErrChannelNotFound))
	var nf *ChannelNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, 15, nf.Channel)
}

func TestDecodeADCSweepMalformed(t *testing.T) {
	valid := string(sweepData(reversedSweep()...))
	testCases := []struct {
		name string
		data string
	}{
		{"short", valid[:95]},
		{"long", valid + "0"},
		{"missing delimiter", strings.Replace(valid, "P", "0", 1)},
		{"extra delimiter", valid[:10] + "P" + valid[11:]},
		{"empty segment", valid[:1] + "P" + valid[2:]},
		{"bad channel", valid[:1] + "z" + valid[2:]},
		{"bad value", valid[:2] + "zz" + valid[4:]},
		{"garbage", strings.Repeat("?", ADCSweepResponseSize)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sweep, err := DecodeADCSweep([]byte(tc.data))
			require.Nil(t, sweep)
			require.True(t, errors.Is(err, ErrMalformedResponse), "%v", err)
		})
	}
}
