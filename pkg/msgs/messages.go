package msgs

import (
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/fuel.go/pkg/protocol"
)

// Sample is the serializable form of protocol.Sample.
type Sample struct {
	Timestamp uint32 `protobuf:"varint,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	FuelLevel uint32 `protobuf:"varint,2,opt,name=fuel_level,json=fuelLevel,proto3" json:"fuel_level,omitempty"`
}

// Reset implements proto.Message.
func (m *Sample) Reset() { *m = Sample{} }

// String implements proto.Message.
func (m *Sample) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Sample) ProtoMessage() {}

// SampleBatch is the samples from one response.
type SampleBatch struct {
	DeviceId   string    `protobuf:"bytes,1,opt,name=device_id,json=deviceId,proto3" json:"device_id,omitempty"`
	ReceivedAt int64     `protobuf:"varint,2,opt,name=received_at,json=receivedAt,proto3" json:"received_at,omitempty"`
	Samples    []*Sample `protobuf:"bytes,3,rep,name=samples,proto3" json:"samples,omitempty"`
}

// Reset implements proto.Message.
func (m *SampleBatch) Reset() { *m = SampleBatch{} }

// String implements proto.Message.
func (m *SampleBatch) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*SampleBatch) ProtoMessage() {}

// NewSampleBatch creates a SampleBatch from decoded samples.
func NewSampleBatch(deviceID string, at time.Time, samples []protocol.Sample) *SampleBatch {
	b := &SampleBatch{
		DeviceId:   deviceID,
		ReceivedAt: at.UnixNano() / int64(time.Millisecond),
		Samples:    make([]*Sample, len(samples)),
	}
	for n, s := range samples {
		b.Samples[n] = &Sample{Timestamp: uint32(s.Timestamp), FuelLevel: uint32(s.FuelLevel)}
	}
	return b
}

// Time returns ReceivedAt as time.Time.
func (m *SampleBatch) Time() time.Time {
	return time.Unix(0, m.ReceivedAt*int64(time.Millisecond))
}

// ProtocolSamples converts back to protocol samples.
// Values out of 16-bit range are rejected.
func (m *SampleBatch) ProtocolSamples() ([]protocol.Sample, error) {
	samples := make([]protocol.Sample, len(m.Samples))
	for n, s := range m.Samples {
		if s == nil {
			continue
		}
		if s.Timestamp > 0xffff || s.FuelLevel > 0xffff {
			return nil, fmt.Errorf("sample[%d] out of range: %d, %d", n, s.Timestamp, s.FuelLevel)
		}
		samples[n] = protocol.Sample{Timestamp: uint16(s.Timestamp), FuelLevel: uint16(s.FuelLevel)}
	}
	return samples, nil
}

// Encode encodes the batch to bytes.
func (m *SampleBatch) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeSampleBatch decodes bytes into SampleBatch.
func DecodeSampleBatch(data []byte) (*SampleBatch, error) {
	var batch SampleBatch
	if err := proto.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}
