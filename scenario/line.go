package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
)

// ParseLine parses one step in line syntax:
//
//	gen 2
//	delete 1 2
//	delete count=-1
//	is_buffer 1
//	bind GL_ARRAY_BUFFER 1
//	data GL_ARRAY_BUFFER 4 deadbeef GL_STATIC_DRAW
//	named_data 1 4 - GL_STATIC_DRAW
//	get_integer GL_ARRAY_BUFFER_BINDING
//	get_buffer_param GL_ARRAY_BUFFER GL_BUFFER_SIZE
//	get_error
//	store 1
//
// Constants may drop the GL_ prefix and be written in lower case. A "-"
// payload is a null source.
func ParseLine(line string) (Step, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Step{}, errors.InvalidInput(errors.PhaseScenario, "empty line")
	}
	st := Step{Op: f[0]}
	args := f[1:]

	var err error
	switch st.Op {
	case OpGen:
		if err = arity(st.Op, args, 1); err == nil {
			var n int32
			n, err = parseCount(args[0])
			st.Count = &n
		}
	case OpDelete:
		err = parseDelete(&st, args)
	case OpIsBuffer, OpStore:
		if err = arity(st.Op, args, 1); err == nil {
			st.Buffer, err = parseHandle(args[0])
		}
	case OpBind:
		if err = arity(st.Op, args, 2); err == nil {
			st.Target, err = parseEnum(args[0])
			if err == nil {
				st.Buffer, err = parseHandle(args[1])
			}
		}
	case OpData, OpNamedData:
		if err = arity(st.Op, args, 4); err == nil {
			err = parseData(&st, args)
		}
	case OpGetInteger:
		if err = arity(st.Op, args, 1); err == nil {
			st.Pname, err = parseEnum(args[0])
		}
	case OpGetBufferParam:
		if err = arity(st.Op, args, 2); err == nil {
			st.Target, err = parseEnum(args[0])
			if err == nil {
				st.Pname, err = parseEnum(args[1])
			}
		}
	case OpGetError:
		err = arity(st.Op, args, 0)
	default:
		err = fmt.Errorf("unknown op %q", st.Op)
	}
	if err == nil {
		err = st.Validate()
	}
	if err != nil {
		return Step{}, errors.Wrap(errors.PhaseScenario, errors.KindInvalidInput, err, "parse line")
	}
	return st, nil
}

func arity(op string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", op, n, len(args))
	}
	return nil
}

func parseDelete(st *Step, args []string) error {
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "count="); ok {
			n, err := parseCount(v)
			if err != nil {
				return err
			}
			st.Count = &n
			continue
		}
		h, err := parseHandle(a)
		if err != nil {
			return err
		}
		st.Buffers = append(st.Buffers, h)
	}
	return nil
}

func parseData(st *Step, args []string) error {
	var err error
	if st.Op == OpData {
		st.Target, err = parseEnum(args[0])
	} else {
		st.Buffer, err = parseHandle(args[0])
	}
	if err != nil {
		return err
	}
	if st.Size, err = strconv.ParseInt(args[1], 0, 64); err != nil {
		return fmt.Errorf("size %q: %w", args[1], err)
	}
	if args[2] != "-" {
		st.Data = args[2]
	}
	st.Usage, err = parseEnum(args[3])
	return err
}

func parseCount(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", s, err)
	}
	return int32(n), nil
}

func parseHandle(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("buffer %q: %w", s, err)
	}
	return uint32(n), nil
}

func parseEnum(s string) (Enum, error) {
	v, err := gl.Parse(s)
	return Enum(v), err
}
