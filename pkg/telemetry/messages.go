package telemetry

import (
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/usbadda/pkg/adda"
)

// ADCSample is the wire form of adda.Sample.
type ADCSample struct {
	Channel uint32 `protobuf:"varint,1,opt,name=channel,proto3" json:"channel"`
	Value   uint32 `protobuf:"varint,2,opt,name=value,proto3" json:"value"`
}

// ProtoMessage implements proto.Message.
func (m *ADCSample) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ADCSample) Reset() { *m = ADCSample{} }

// String implements proto.Message.
func (m *ADCSample) String() string { return proto.CompactTextString(m) }

// ADCSweep is published for every ADC read-all.
type ADCSweep struct {
	CardID      uint32       `protobuf:"varint,1,opt,name=card_id,proto3" json:"card_id"`
	TimestampMs int64        `protobuf:"varint,2,opt,name=timestamp_ms,proto3" json:"timestamp_ms"`
	Samples     []*ADCSample `protobuf:"bytes,3,rep,name=samples,proto3" json:"samples,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *ADCSweep) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ADCSweep) Reset() { *m = ADCSweep{} }

// String implements proto.Message.
func (m *ADCSweep) String() string { return proto.CompactTextString(m) }

// NewADCSweep converts a sweep taken at the given time.
func NewADCSweep(cardID int, sweep adda.Sweep, at time.Time) *ADCSweep {
	m := &ADCSweep{
		CardID:      uint32(cardID),
		TimestampMs: at.UnixNano() / int64(time.Millisecond),
		Samples:     make([]*ADCSample, len(sweep)),
	}
	for n, s := range sweep {
		m.Samples[n] = &ADCSample{Channel: uint32(s.Channel), Value: uint32(s.Value)}
	}
	return m
}

// Sweep converts back to adda.Sweep.
func (m *ADCSweep) Sweep() adda.Sweep {
	sweep := make(adda.Sweep, len(m.Samples))
	for n, s := range m.Samples {
		sweep[n] = adda.Sample{Channel: uint8(s.Channel), Value: uint16(s.Value)}
	}
	return sweep
}
