package scenario

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/resource"
)

// Runner executes steps against a context it does not own.
type Runner struct {
	c *mockgl.Context
}

// NewRunner wraps c.
func NewRunner(c *mockgl.Context) *Runner {
	return &Runner{c: c}
}

// Outcome is what one step did.
type Outcome struct {
	// Line is the step in line syntax followed by its result.
	Line     string
	Panic    *errors.Error
	Failures []string
}

func (o *Outcome) failf(format string, args ...any) {
	o.Failures = append(o.Failures, fmt.Sprintf(format, args...))
}

// Step runs st, recovering policy panics, and checks its expectations.
// Panics that do not carry an *errors.Error propagate.
func (r *Runner) Step(st Step) Outcome {
	var out Outcome
	got := r.guard(&out, func() string { return r.exec(st, &out) })

	line := Format(st)
	if got != "" {
		line += " -> " + got
	}

	switch {
	case out.Panic != nil:
		line += " panic=" + string(out.Panic.Kind)
		if st.Panic == "" {
			out.failf("unexpected panic: %v", out.Panic)
		} else if string(out.Panic.Kind) != st.Panic {
			out.failf("panic %s, want %s", out.Panic.Kind, st.Panic)
		}
	case st.Panic != "":
		out.failf("no panic, want %s", st.Panic)
	}

	if st.Error != nil {
		var code uint32
		r.guard(&out, func() string {
			code = r.c.GetError()
			return ""
		})
		line += " error=" + gl.Name(code)
		if code != uint32(*st.Error) {
			out.failf("error %s, want %s", gl.Name(code), st.Error)
		}
	}

	out.Line = line
	return out
}

func (r *Runner) guard(out *Outcome, fn func() string) (got string) {
	defer func() {
		if v := recover(); v != nil {
			e, ok := v.(*errors.Error)
			if !ok {
				panic(v)
			}
			out.Panic = e
		}
	}()
	return fn()
}

func handles(ids []uint32) []resource.Handle {
	out := make([]resource.Handle, len(ids))
	for i, id := range ids {
		out[i] = resource.Handle(id)
	}
	return out
}

func (r *Runner) exec(st Step, out *Outcome) string {
	c := r.c
	switch st.Op {
	case OpGen:
		hs := c.GenBuffers(*st.Count)
		ids := make([]uint32, len(hs))
		for i, h := range hs {
			ids[i] = uint32(h)
		}
		if st.WantBuffers != nil && !equal(ids, st.WantBuffers) {
			out.failf("buffers %v, want %v", ids, st.WantBuffers)
		}
		return fmt.Sprint(ids)

	case OpDelete:
		c.DeleteBuffers(st.count(), handles(st.Buffers))
		return ""

	case OpIsBuffer:
		live := c.IsBuffer(resource.Handle(st.Buffer))
		r.want(st, out, boolValue(live))
		return strconv.FormatBool(live)

	case OpBind:
		c.BindBuffer(gl.Enum(st.Target), resource.Handle(st.Buffer))
		return ""

	case OpData:
		c.BufferData(gl.Enum(st.Target), st.Size, st.source(), gl.Enum(st.Usage))
		return ""

	case OpNamedData:
		c.NamedBufferData(resource.Handle(st.Buffer), st.Size, st.source(), gl.Enum(st.Usage))
		return ""

	case OpGetInteger:
		v, ok := c.GetIntegerv(gl.Enum(st.Pname))
		return r.scalar(st, out, v, ok)

	case OpGetBufferParam:
		v, ok := c.GetBufferParameteriv(gl.Enum(st.Target), gl.Enum(st.Pname))
		got := r.scalar(st, out, v, ok)
		if ok && gl.Enum(st.Pname) == gl.BUFFER_USAGE {
			got = gl.Name(gl.Enum(v))
		}
		return got

	case OpGetError:
		code := c.GetError()
		r.want(st, out, Value(code))
		return gl.Name(code)

	case OpStore:
		data, ok := c.BufferStore(resource.Handle(st.Buffer))
		got := "-"
		if ok {
			got = hex.EncodeToString(data)
		}
		if st.WantBytes != "" && st.WantBytes != got {
			want, _ := hex.DecodeString(st.WantBytes)
			if st.WantBytes == "-" || !bytes.Equal(data, want) {
				out.failf("store %s, want %s", got, st.WantBytes)
			}
		}
		return got
	}
	out.failf("unknown op %q", st.Op)
	return ""
}

func (r *Runner) scalar(st Step, out *Outcome, v int32, ok bool) string {
	if !ok {
		if st.Want != nil {
			out.failf("no value written, want %d", *st.Want)
		}
		return "none"
	}
	r.want(st, out, Value(v))
	return strconv.FormatInt(int64(v), 10)
}

func (r *Runner) want(st Step, out *Outcome, got Value) {
	if st.Want != nil && *st.Want != got {
		out.failf("got %d, want %d", got, *st.Want)
	}
}

func boolValue(b bool) Value {
	if b {
		return gl.TRUE
	}
	return gl.FALSE
}

func equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (st *Step) count() int32 {
	if st.Count != nil {
		return *st.Count
	}
	return int32(len(st.Buffers))
}

// source decodes Data; an empty string is a null source.
func (st *Step) source() []byte {
	if st.Data == "" {
		return nil
	}
	data, _ := hex.DecodeString(st.Data)
	return data
}

// Format renders st in line syntax, the inverse of ParseLine.
func Format(st Step) string {
	var b strings.Builder
	b.WriteString(st.Op)
	arg := func(s string) {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	data := st.Data
	if data == "" {
		data = "-"
	}

	switch st.Op {
	case OpGen:
		if st.Count != nil {
			arg(strconv.Itoa(int(*st.Count)))
		}
	case OpDelete:
		if st.Count != nil && int(*st.Count) != len(st.Buffers) {
			arg("count=" + strconv.Itoa(int(*st.Count)))
		}
		for _, id := range st.Buffers {
			arg(strconv.FormatUint(uint64(id), 10))
		}
	case OpIsBuffer, OpStore:
		arg(strconv.FormatUint(uint64(st.Buffer), 10))
	case OpBind:
		arg(st.Target.String())
		arg(strconv.FormatUint(uint64(st.Buffer), 10))
	case OpData:
		arg(st.Target.String())
		arg(strconv.FormatInt(st.Size, 10))
		arg(data)
		arg(st.Usage.String())
	case OpNamedData:
		arg(strconv.FormatUint(uint64(st.Buffer), 10))
		arg(strconv.FormatInt(st.Size, 10))
		arg(data)
		arg(st.Usage.String())
	case OpGetInteger:
		arg(st.Pname.String())
	case OpGetBufferParam:
		arg(st.Target.String())
		arg(st.Pname.String())
	}
	return b.String()
}
