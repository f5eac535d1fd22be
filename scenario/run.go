package scenario

import (
	"fmt"
	"strings"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/version"
)

// Run executes s on a fresh context and finalizes it. The returned error
// covers setup failures only; failed expectations land in the Result.
func Run(s *Scenario, opts ...mockgl.Option) (*Result, error) {
	v, p, err := s.Setup()
	if err != nil {
		return nil, err
	}

	c, err := begin(v, p, opts...)
	if err != nil {
		return nil, err
	}

	res := NewResult(s.Name)
	r := NewRunner(c)
	for i, st := range s.Steps {
		out := r.Step(st)
		res.Trace = append(res.Trace, out.Line)
		for _, f := range out.Failures {
			res.AddError(fmt.Sprintf("step %d (%s): %s", i+1, st.Op, f))
		}
	}

	live := c.Inspect().Live
	ids := make([]uint32, len(live))
	for i, h := range live {
		ids[i] = uint32(h)
	}
	want := s.ExpectLeaks
	if want == nil {
		want = []uint32{}
	}
	if !equal(ids, want) {
		res.AddError(fmt.Sprintf("live at finalize %v, want %v", ids, want))
	}

	line := "finalize"
	if len(ids) > 0 {
		line += fmt.Sprintf(" leaks=%v", ids)
	}
	if e := catch(c.Finalize); e != nil {
		line += " panic=" + string(e.Kind)
		if s.ExpectFinalize == "" {
			res.AddError(fmt.Sprintf("finalize: unexpected panic: %v", e))
		} else if string(e.Kind) != s.ExpectFinalize {
			res.AddError(fmt.Sprintf("finalize: panic %s, want %s", e.Kind, s.ExpectFinalize))
		}
	} else if s.ExpectFinalize != "" {
		res.AddError(fmt.Sprintf("finalize: no panic, want %s", s.ExpectFinalize))
	}
	res.Trace = append(res.Trace, line)

	return res, nil
}

// Golden renders the trace the way golden files store it.
func (r *Result) Golden() []byte {
	return []byte(strings.Join(r.Trace, "\n") + "\n")
}

func begin(v *version.Version, p diag.Policy, opts ...mockgl.Option) (c *mockgl.Context, err error) {
	if e := catch(func() { c = mockgl.Begin(v, p, opts...) }); e != nil {
		return nil, e
	}
	return c, nil
}

func catch(fn func()) (e *errors.Error) {
	defer func() {
		if v := recover(); v != nil {
			var ok bool
			if e, ok = v.(*errors.Error); !ok {
				panic(v)
			}
		}
	}()
	fn()
	return nil
}
