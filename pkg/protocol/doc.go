// Package protocol provides the fuel telemetry wire codec.
package protocol

// The protocol is spoken over a serial link between a host and a fuel
// level sensor. The host sends a Query asking for a number of samples and
// the sensor replies with a Response carrying that many samples.
//
// Packet layout, all integers big-endian:
//
//	Header(2) | Command(2) | Length(2) | Payload(Length) | CRC(2)
//
// CRC is CRC-16/CCITT-FALSE over every byte before it.
//
// Producer: sensor firmware
// Consumer: host
