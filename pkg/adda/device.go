package adda

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/usbadda/pkg/comm"
)

// Device is a session with one board identified by its card id.
// Every operation performs exactly one transaction. Device is not safe for
// concurrent use.
type Device struct {
	cardID int
	conn   *comm.Conn
}

// New creates a Device owning the transport. The transport is closed by
// Device.Close, but not when New fails.
func New(t comm.Transport, cardID int) (*Device, error) {
	if cardID < 0 || cardID > MaxCardID {
		return nil, &ArgumentError{Op: "open", Name: "card id", Value: cardID, Max: MaxCardID}
	}
	return &Device{cardID: cardID, conn: comm.NewConn(t)}, nil
}

// CardID gets the card id.
func (d *Device) CardID() int {
	return d.cardID
}

// Conn gets the underlying connection.
func (d *Device) Conn() *comm.Conn {
	return d.conn
}

// Close implements io.Closer.
func (d *Device) Close() error {
	glog.V(1).Infof("closing card %x", d.cardID)
	return d.conn.Close()
}

// Do executes an encoded command and returns the data bytes.
func (d *Device) Do(ctx context.Context, cmd *Command) ([]byte, error) {
	return d.conn.Transact(ctx, cmd.Frame, cmd.Expect)
}

func (d *Device) exec(ctx context.Context, cmd *Command, err error) error {
	if err != nil {
		return err
	}
	_, err = d.Do(ctx, cmd)
	return err
}

// DIOWrite writes an output value to a DIO channel.
func (d *Device) DIOWrite(ctx context.Context, channel, value int) error {
	cmd, err := EncodeDIOWrite(d.cardID, channel, value)
	return d.exec(ctx, cmd, err)
}

// DIORead reads back a DIO channel.
func (d *Device) DIORead(ctx context.Context, channel int) (uint8, error) {
	cmd, err := EncodeDIORead(d.cardID, channel)
	if err != nil {
		return 0, err
	}
	data, err := d.Do(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return DecodeDIORead(data)
}

// ADCRange selects the ADC input range (0-3, see board manual).
func (d *Device) ADCRange(ctx context.Context, adcRange int) error {
	cmd, err := EncodeADCRange(d.cardID, adcRange)
	return d.exec(ctx, cmd, err)
}

// ADCSamples sets the number of samples per read.
func (d *Device) ADCSamples(ctx context.Context, samples int) error {
	cmd, err := EncodeADCSamples(d.cardID, samples)
	return d.exec(ctx, cmd, err)
}

// ADCDisableChannel disables an ADC channel.
func (d *Device) ADCDisableChannel(ctx context.Context, channel int) error {
	cmd, err := EncodeADCDisableChannel(d.cardID, channel)
	return d.exec(ctx, cmd, err)
}

// ADCEnableChannel enables an ADC channel.
func (d *Device) ADCEnableChannel(ctx context.Context, channel int) error {
	cmd, err := EncodeADCEnableChannel(d.cardID, channel)
	return d.exec(ctx, cmd, err)
}

// ADCReadAll reads all ADC channels.
func (d *Device) ADCReadAll(ctx context.Context) (Sweep, error) {
	cmd, err := EncodeADCReadAll(d.cardID)
	if err != nil {
		return nil, err
	}
	data, err := d.Do(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return DecodeADCSweep(data)
}

// ADCReadChannel reads all ADC channels and picks one.
func (d *Device) ADCReadChannel(ctx context.Context, channel int) (uint16, error) {
	if channel < 0 || channel > MaxADCChannel {
		return 0, &ArgumentError{Op: OpADCReadChannel, Name: "channel", Value: channel, Max: MaxADCChannel}
	}
	sweep, err := d.ADCReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return sweep.Lookup(channel)
}

// DACSet sets the output value of a DAC channel.
func (d *Device) DACSet(ctx context.Context, channel, value int) error {
	cmd, err := EncodeDACSet(d.cardID, channel, value)
	return d.exec(ctx, cmd, err)
}

// DACAdjust adjusts the output value of a DAC channel.
func (d *Device) DACAdjust(ctx context.Context, channel, value int) error {
	cmd, err := EncodeDACAdjust(d.cardID, channel, value)
	return d.exec(ctx, cmd, err)
}

// DACRange sets the output range of a DAC channel.
func (d *Device) DACRange(ctx context.Context, channel, dacRange int) error {
	cmd, err := EncodeDACRange(d.cardID, channel, dacRange)
	return d.exec(ctx, cmd, err)
}

// DACReset resets a DAC channel to GND.
func (d *Device) DACReset(ctx context.Context, channel int) error {
	cmd, err := EncodeDACReset(d.cardID, channel)
	return d.exec(ctx, cmd, err)
}
