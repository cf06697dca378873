package supra

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Serializer writes Binary Canonical Serialization (BCS) values.
type Serializer struct {
	buffer bytes.Buffer
}

func (s *Serializer) U8(value uint8) {
	s.buffer.WriteByte(value)
}

func (s *Serializer) U64(value uint64) {
	var encoded [8]byte
	binary.LittleEndian.PutUint64(encoded[:], value)
	s.buffer.Write(encoded[:])
}

func (s *Serializer) Bool(value bool) {
	if value {
		s.U8(1)
		return
	}
	s.U8(0)
}

// Uleb128 writes a length or enum variant index.
func (s *Serializer) Uleb128(value uint32) {
	for value >= 0x80 {
		s.buffer.WriteByte(byte(value&0x7f) | 0x80)
		value >>= 7
	}
	s.buffer.WriteByte(byte(value))
}

// Bytes writes a length-prefixed byte vector.
func (s *Serializer) Bytes(value []byte) {
	s.Uleb128(uint32(len(value)))
	s.buffer.Write(value)
}

// FixedBytes writes raw bytes without a length prefix.
func (s *Serializer) FixedBytes(value []byte) {
	s.buffer.Write(value)
}

func (s *Serializer) Str(value string) {
	s.Bytes([]byte(value))
}

func (s *Serializer) ToBytes() []byte {
	return append([]byte(nil), s.buffer.Bytes()...)
}

// EncodeArgument BCS-encodes a single entry function argument. Strings map to
// Move strings, unsigned and non-negative signed integers to u64, bools to
// bool, byte slices to vector<u8>, and addresses to address.
func EncodeArgument(value any) ([]byte, error) {
	serializer := &Serializer{}
	switch typed := value.(type) {
	case string:
		serializer.Str(typed)
	case bool:
		serializer.Bool(typed)
	case []byte:
		serializer.Bytes(typed)
	case AccountAddress:
		serializer.FixedBytes(typed[:])
	case uint64:
		serializer.U64(typed)
	case uint:
		serializer.U64(uint64(typed))
	case uint32:
		serializer.U64(uint64(typed))
	case uint16:
		serializer.U64(uint64(typed))
	case uint8:
		serializer.U64(uint64(typed))
	case int:
		if typed < 0 {
			return nil, fmt.Errorf("negative integer argument %d", typed)
		}
		serializer.U64(uint64(typed))
	case int64:
		if typed < 0 {
			return nil, fmt.Errorf("negative integer argument %d", typed)
		}
		serializer.U64(uint64(typed))
	case int32:
		if typed < 0 {
			return nil, fmt.Errorf("negative integer argument %d", typed)
		}
		serializer.U64(uint64(typed))
	default:
		return nil, fmt.Errorf("unsupported argument type %T", value)
	}
	return serializer.ToBytes(), nil
}
