package protocol

import "github.com/sigurn/crc16"

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Checksum computes CRC-16/CCITT-FALSE of data.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}
