package mqtt

import (
	"time"

	"github.com/robotalks/fuel.go/pkg/msgs"
	"github.com/robotalks/fuel.go/pkg/protocol"
)

// SamplesTopic returns the topic samples of device are published to.
func SamplesTopic(device string) string {
	return device + "/samples"
}

// Publisher publishes decoded samples as msgs.SampleBatch.
type Publisher struct {
	Queue    *Queue
	DeviceID string

	now func() time.Time
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue, deviceID string) *Publisher {
	return &Publisher{Queue: q, DeviceID: deviceID, now: time.Now}
}

// HandleSamples publishes the samples.
func (p *Publisher) HandleSamples(samples []protocol.Sample) error {
	data, err := p.batch(samples).Encode()
	if err != nil {
		return err
	}
	token := p.Queue.Pub(SamplesTopic(p.DeviceID), data)
	token.Wait()
	return token.Error()
}

func (p *Publisher) batch(samples []protocol.Sample) *msgs.SampleBatch {
	now := p.now
	if now == nil {
		now = time.Now
	}
	return msgs.NewSampleBatch(p.DeviceID, now(), samples)
}

// SubSamples subscribes sample batches of all devices.
func SubSamples(q *Queue, handler func(topic string, batch *msgs.SampleBatch, err error)) *Subscription {
	return q.Sub(SamplesTopic("+"), func(topic string, payload []byte) {
		batch, err := msgs.DecodeSampleBatch(payload)
		handler(topic, batch, err)
	})
}
