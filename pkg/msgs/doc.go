// Package msgs provides messages published to subscribers of fuel telemetry.
package msgs

// Sample batches are published over MQTT after each successful query,
// encoded with protobuf so that non-Go consumers can decode them with
// the schema below.
//
//	syntax = "proto3";
//	package fuel.v1;
//
//	message Sample {
//	  uint32 timestamp = 1;
//	  uint32 fuel_level = 2;
//	}
//
//	message SampleBatch {
//	  string device_id = 1;
//	  int64 received_at = 2; // unix milliseconds
//	  repeated Sample samples = 3;
//	}
//
// Producer: fuelviz, fuelsh (with MQTT configured)
// Consumer: fuelmon
