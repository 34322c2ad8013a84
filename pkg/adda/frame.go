package adda

import (
	"fmt"
	"strconv"
)

// Op identifies a board operation.
type Op string

// Operations supported by the board.
const (
	OpDIOWrite          Op = "dio_write"
	OpDIORead           Op = "dio_read"
	OpADCRange          Op = "adc_range"
	OpADCSamples        Op = "adc_samples"
	OpADCDisableChannel Op = "adc_disable_channel"
	OpADCEnableChannel  Op = "adc_enable_channel"
	OpADCReadAll        Op = "adc_read_all"
	OpADCReadChannel    Op = "adc_read_channel"
	OpDACSet            Op = "dac_set"
	OpDACAdjust         Op = "dac_adjust"
	OpDACRange          Op = "dac_range"
	OpDACReset          Op = "dac_reset"
)

// Argument limits, all inclusive with a lower bound of 0.
const (
	MaxCardID     = 0x0f
	MaxDIOChannel = 4
	MaxDIOValue   = 0xff
	MaxADCRange   = 3
	MaxADCSamples = 0xff
	MaxADCChannel = 0x0f
	MaxDACChannel = 1
	MaxDACValue   = 0xffff
	MaxDACRange   = 0x0f
)

// Sizes of the data phase following the echo.
const (
	DIOReadResponseSize  = 5
	ADCSweepResponseSize = 96
	ADCChannels          = 16
)

// Command is an encoded command frame together with the number of data
// bytes the board sends after echoing it.
type Command struct {
	Op     Op
	Frame  []byte
	Expect int
}

// String returns the frame as text.
func (c *Command) String() string {
	return string(c.Frame)
}

// frameBuilder appends fixed-width fields to a frame and stops at the first
// invalid one.
type frameBuilder struct {
	op  Op
	buf []byte
	err error
}

// newFrame starts a frame S<card><code>.
func newFrame(op Op, cardID int, code string) *frameBuilder {
	b := &frameBuilder{op: op, buf: make([]byte, 0, 8)}
	b.buf = append(b.buf, 'S')
	b.hex("card id", cardID, MaxCardID, 1)
	b.buf = append(b.buf, code...)
	return b
}

func (b *frameBuilder) hex(name string, val, max, width int) *frameBuilder {
	return b.field(name, val, max, width, 16)
}

func (b *frameBuilder) dec(name string, val, max, width int) *frameBuilder {
	return b.field(name, val, max, width, 10)
}

func (b *frameBuilder) field(name string, val, max, width, base int) *frameBuilder {
	if b.err != nil {
		return b
	}
	if val < 0 || val > max {
		b.err = &ArgumentError{Op: b.op, Name: name, Value: val, Max: max}
		return b
	}
	digits := strconv.FormatInt(int64(val), base)
	if len(digits) > width {
		b.err = fmt.Errorf("%s: %s %d doesn't fit %d digits: %w", b.op, name, val, width, ErrInvalidArgument)
		return b
	}
	for n := len(digits); n < width; n++ {
		b.buf = append(b.buf, '0')
	}
	b.buf = append(b.buf, digits...)
	return b
}

func (b *frameBuilder) command(expect int) (*Command, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Command{Op: b.op, Frame: b.buf, Expect: expect}, nil
}

// EncodeDIOWrite builds S<card>W<ch><val:2>.
func EncodeDIOWrite(cardID, channel, value int) (*Command, error) {
	return newFrame(OpDIOWrite, cardID, "W").
		hex("channel", channel, MaxDIOChannel, 1).
		hex("value", value, MaxDIOValue, 2).
		command(0)
}

// EncodeDIORead builds S<card>R<ch>.
func EncodeDIORead(cardID, channel int) (*Command, error) {
	return newFrame(OpDIORead, cardID, "R").
		hex("channel", channel, MaxDIOChannel, 1).
		command(DIOReadResponseSize)
}

// EncodeADCRange builds S<card>AG<range>, range in decimal.
func EncodeADCRange(cardID, adcRange int) (*Command, error) {
	return newFrame(OpADCRange, cardID, "AG").
		dec("range", adcRange, MaxADCRange, 1).
		command(0)
}

// EncodeADCSamples builds S<card>AA<samples:2>.
func EncodeADCSamples(cardID, samples int) (*Command, error) {
	return newFrame(OpADCSamples, cardID, "AA").
		hex("samples", samples, MaxADCSamples, 2).
		command(0)
}

// EncodeADCDisableChannel builds S<card>AD<ch>.
func EncodeADCDisableChannel(cardID, channel int) (*Command, error) {
	return newFrame(OpADCDisableChannel, cardID, "AD").
		hex("channel", channel, MaxADCChannel, 1).
		command(0)
}

// EncodeADCEnableChannel builds S<card>AE<ch>.
func EncodeADCEnableChannel(cardID, channel int) (*Command, error) {
	return newFrame(OpADCEnableChannel, cardID, "AE").
		hex("channel", channel, MaxADCChannel, 1).
		command(0)
}

// EncodeADCReadAll builds S<card>AR.
func EncodeADCReadAll(cardID int) (*Command, error) {
	return newFrame(OpADCReadAll, cardID, "AR").command(ADCSweepResponseSize)
}

// EncodeDACSet builds S<card>D<ch><val:4>, channel in decimal.
func EncodeDACSet(cardID, channel, value int) (*Command, error) {
	return newFrame(OpDACSet, cardID, "D").
		dec("channel", channel, MaxDACChannel, 1).
		hex("value", value, MaxDACValue, 4).
		command(0)
}

// EncodeDACAdjust builds S<card>DJ<ch><val:4>.
func EncodeDACAdjust(cardID, channel, value int) (*Command, error) {
	return newFrame(OpDACAdjust, cardID, "DJ").
		dec("channel", channel, MaxDACChannel, 1).
		hex("value", value, MaxDACValue, 4).
		command(0)
}

// EncodeDACRange builds S<card>DG<ch><range>.
func EncodeDACRange(cardID, channel, dacRange int) (*Command, error) {
	return newFrame(OpDACRange, cardID, "DG").
		dec("channel", channel, MaxDACChannel, 1).
		hex("range", dacRange, MaxDACRange, 1).
		command(0)
}

// EncodeDACReset builds S<card>DR<ch>.
func EncodeDACReset(cardID, channel int) (*Command, error) {
	return newFrame(OpDACReset, cardID, "DR").
		dec("channel", channel, MaxDACChannel, 1).
		command(0)
}
