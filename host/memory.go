package host

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/mockgl/proc"
)

// guestMemory wraps the caller's wazero memory to implement proc.Memory.
type guestMemory struct {
	mem api.Memory
}

func (m guestMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, fmt.Errorf("caller exports no memory")
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m guestMemory) Write(offset uint32, data []byte) error {
	if m.mem == nil {
		return fmt.Errorf("caller exports no memory")
	}
	if !m.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m guestMemory) ReadU32(offset uint32) (uint32, error) {
	if m.mem == nil {
		return 0, fmt.Errorf("caller exports no memory")
	}
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m guestMemory) WriteU32(offset uint32, value uint32) error {
	if m.mem == nil {
		return fmt.Errorf("caller exports no memory")
	}
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m guestMemory) ReadI32(offset uint32) (int32, error) {
	v, err := m.ReadU32(offset)
	return int32(v), err
}

func (m guestMemory) WriteI32(offset uint32, value int32) error {
	return m.WriteU32(offset, uint32(value))
}

var _ proc.Memory = guestMemory{}
