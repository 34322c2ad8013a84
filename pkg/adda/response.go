package adda

import (
	"bytes"
	"fmt"
	"strconv"
)

// ADC sweep layout: one leading marker byte, then ADCChannels segments
// separated by sweepDelimiter, each one hex channel digit followed by up to
// maxValueDigits hex value digits.
const (
	sweepDelimiter = 'P'
	maxValueDigits = 4
)

// Sample is the value of one ADC channel in a sweep.
type Sample struct {
	Channel uint8  `json:"channel"`
	Value   uint16 `json:"value"`
}

// Sweep holds the samples in the order the board reported them.
type Sweep []Sample

// Values returns the sample values in reported order.
func (s Sweep) Values() []uint16 {
	values := make([]uint16, len(s))
	for n, sample := range s {
		values[n] = sample.Value
	}
	return values
}

// Lookup returns the value of the first sample for channel.
func (s Sweep) Lookup(channel int) (uint16, error) {
	for _, sample := range s {
		if int(sample.Channel) == channel {
			return sample.Value, nil
		}
	}
	return 0, &ChannelNotFoundError{Channel: channel}
}

// DecodeDIORead extracts the DIO value from bytes [3:5] of the response.
func DecodeDIORead(data []byte) (uint8, error) {
	if len(data) != DIOReadResponseSize {
		return 0, malformed(OpDIORead, data, "expect %d bytes, got %d", DIOReadResponseSize, len(data))
	}
	val, err := strconv.ParseUint(string(data[3:5]), 16, 8)
	if err != nil {
		return 0, malformed(OpDIORead, data, "invalid value %q", data[3:5])
	}
	return uint8(val), nil
}

// DecodeADCSweep parses the response of an ADC read-all command.
func DecodeADCSweep(data []byte) (Sweep, error) {
	if len(data) != ADCSweepResponseSize {
		return nil, malformed(OpADCReadAll, data, "expect %d bytes, got %d", ADCSweepResponseSize, len(data))
	}
	segments := bytes.Split(data[1:], []byte{sweepDelimiter})
	if len(segments) != ADCChannels {
		return nil, malformed(OpADCReadAll, data, "expect %d segments, got %d", ADCChannels, len(segments))
	}
	sweep := make(Sweep, 0, ADCChannels)
	for n, seg := range segments {
		if len(seg) < 2 || len(seg) > maxValueDigits+1 {
			return nil, malformed(OpADCReadAll, data, "segment %d has invalid length %d", n, len(seg))
		}
		ch, err := strconv.ParseUint(string(seg[:1]), 16, 8)
		if err != nil {
			return nil, malformed(OpADCReadAll, data, "segment %d has invalid channel %q", n, seg[:1])
		}
		val, err := strconv.ParseUint(string(seg[1:]), 16, 16)
		if err != nil {
			return nil, malformed(OpADCReadAll, data, "segment %d has invalid value %q", n, seg[1:])
		}
		sweep = append(sweep, Sample{Channel: uint8(ch), Value: uint16(val)})
	}
	return sweep, nil
}

func malformed(op Op, data []byte, format string, args ...interface{}) error {
	return &MalformedResponseError{Op: op, Data: data, Reason: fmt.Sprintf(format, args...)}
}
