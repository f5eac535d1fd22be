package proc

import (
	"encoding/binary"
	"fmt"
)

// Memory is the caller's linear memory. Pointer arguments are offsets into
// it; all multi-byte values are little endian.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
	ReadI32(offset uint32) (int32, error)
	WriteI32(offset uint32, value int32) error
}

// Bytes is a Memory backed by a plain slice.
type Bytes []byte

func (b Bytes) bounds(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(b)) {
		return fmt.Errorf("out of bounds: offset=%d, length=%d, size=%d", offset, length, len(b))
	}
	return nil
}

func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	if err := b.bounds(offset, length); err != nil {
		return nil, err
	}
	return b[offset : offset+length], nil
}

func (b Bytes) Write(offset uint32, data []byte) error {
	if err := b.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(b[offset:], data)
	return nil
}

func (b Bytes) ReadU32(offset uint32) (uint32, error) {
	data, err := b.Read(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (b Bytes) WriteU32(offset uint32, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return b.Write(offset, buf[:])
}

func (b Bytes) ReadI32(offset uint32) (int32, error) {
	v, err := b.ReadU32(offset)
	return int32(v), err
}

func (b Bytes) WriteI32(offset uint32, value int32) error {
	return b.WriteU32(offset, uint32(value))
}

var _ Memory = Bytes(nil)
