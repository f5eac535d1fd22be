package mockgl

import (
	"bytes"
	"fmt"
	"strconv"
)

// goroutineID extracts the id from the header of a runtime.Stack dump,
// "goroutine 17 [running]:".
func goroutineID(stack []byte) (uint64, error) {
	field, ok := bytes.CutPrefix(stack, []byte("goroutine "))
	if !ok {
		return 0, fmt.Errorf("unexpected stack header %q", firstLine(stack))
	}
	if i := bytes.IndexByte(field, ' '); i > 0 {
		field = field[:i]
	}
	id, err := strconv.ParseUint(string(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("goroutine id: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("goroutine id is zero")
	}
	return id, nil
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}
