package telemetry

import (
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/usbadda/pkg/adda"
)

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Reporter publishes ADC sweeps of one board.
type Reporter struct {
	Publisher Publisher
	CardID    int
	// Now is the clock, time.Now if nil.
	Now func() time.Time
}

// ADCTopic is the topic sweeps of a card are published to, relative to the
// queue topic prefix.
func ADCTopic(cardID int) string {
	return fmt.Sprintf("card/%x/adc", cardID)
}

// ReportSweep encodes and publishes a sweep.
func (r *Reporter) ReportSweep(sweep adda.Sweep) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	payload, err := proto.Marshal(NewADCSweep(r.CardID, sweep, now()))
	if err != nil {
		return err
	}
	return r.Publisher.Publish(ADCTopic(r.CardID), payload)
}

// DecodeADCSweep decodes a published payload.
func DecodeADCSweep(payload []byte) (*ADCSweep, error) {
	var m ADCSweep
	if err := proto.Unmarshal(payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
