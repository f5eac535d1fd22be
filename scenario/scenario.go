// Package scenario runs scripted call sequences against a fresh context and
// checks the results, the error register and the policy panics they produce.
package scenario

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/mockgl/config"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/version"
)

// Scenario is one script with the context it runs in.
type Scenario struct {
	// Name identifies the scenario and names its golden trace.
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Profile, Version and Extensions select the emulated version. They
	// default to desktop 2.1.
	Profile    string   `yaml:"profile,omitempty"`
	Version    string   `yaml:"version,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`

	// Policy and PanicOnWarning select the diagnostics policy. They default
	// to panic-early without warnings.
	Policy         string `yaml:"policy,omitempty"`
	PanicOnWarning bool   `yaml:"panic_on_warning,omitempty"`

	Steps []Step `yaml:"steps"`

	// ExpectLeaks lists the buffers expected to be live at finalize.
	ExpectLeaks []uint32 `yaml:"expect_leaks,omitempty"`

	// ExpectFinalize is the kind of panic finalize is expected to raise.
	ExpectFinalize string `yaml:"expect_finalize,omitempty"`
}

// Op names.
const (
	OpGen            = "gen"
	OpDelete         = "delete"
	OpIsBuffer       = "is_buffer"
	OpBind           = "bind"
	OpData           = "data"
	OpNamedData      = "named_data"
	OpGetInteger     = "get_integer"
	OpGetBufferParam = "get_buffer_param"
	OpGetError       = "get_error"
	OpStore          = "store"
)

// Step is one call with optional expectations.
type Step struct {
	Op string `yaml:"op"`

	// Count is the n argument of gen and delete. Delete defaults it to the
	// number of Buffers.
	Count   *int32   `yaml:"count,omitempty"`
	Buffers []uint32 `yaml:"buffers,omitempty"`
	Buffer  uint32   `yaml:"buffer,omitempty"`
	Target  Enum     `yaml:"target,omitempty"`
	Pname   Enum     `yaml:"pname,omitempty"`
	Size    int64    `yaml:"size,omitempty"`
	// Data is hex; empty means a null source.
	Data  string `yaml:"data,omitempty"`
	Usage Enum   `yaml:"usage,omitempty"`

	// Want is the scalar result of is_buffer, get_integer,
	// get_buffer_param and get_error.
	Want *Value `yaml:"want,omitempty"`
	// WantBuffers is the result of gen.
	WantBuffers []uint32 `yaml:"want_buffers,omitempty"`
	// WantBytes is the hex store expected by store; "-" expects no store.
	WantBytes string `yaml:"want_bytes,omitempty"`
	// Error is the code GetError must return right after the step.
	Error *Enum `yaml:"error,omitempty"`
	// Panic is the kind of the panic the step must raise.
	Panic string `yaml:"panic,omitempty"`
}

// Enum is a numeric constant written either by name or as a number.
type Enum gl.Enum

func (e *Enum) UnmarshalYAML(node *yaml.Node) error {
	v, err := gl.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = Enum(v)
	return nil
}

func (e Enum) String() string { return gl.Name(gl.Enum(e)) }

// Value is a scalar expectation: an integer, a constant name, or a boolean.
type Value int64

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "true":
		*v = gl.TRUE
		return nil
	case "false":
		*v = gl.FALSE
		return nil
	}
	if n, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
		*v = Value(n)
		return nil
	}
	e, err := gl.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = Value(e)
	return nil
}

// Load reads a scenario file. Unknown fields are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseScenario, errors.KindInvalidInput, err, "read scenario")
	}
	return Parse(data)
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.PhaseScenario, errors.KindInvalidInput, err, "parse scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks required fields, op names and hex payloads.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.InvalidInput(errors.PhaseScenario, "name is required")
	}
	if len(s.Steps) == 0 {
		return errors.InvalidInput(errors.PhaseScenario, "steps list is required and must be non-empty")
	}
	if _, err := s.Config().Version(); err != nil {
		return err
	}
	if _, err := s.Config().Policy(); err != nil {
		return err
	}
	for i := range s.Steps {
		if err := s.Steps[i].Validate(); err != nil {
			return errors.Wrap(errors.PhaseScenario, errors.KindInvalidInput, err, fmt.Sprintf("step %d", i+1))
		}
	}
	return nil
}

// Config renders the scenario header as a context configuration.
func (s *Scenario) Config() *config.Config {
	cfg := config.Default()
	if s.Profile != "" {
		cfg.Context.Profile = s.Profile
	}
	if s.Version != "" {
		cfg.Context.Version = s.Version
	}
	cfg.Context.Extensions = s.Extensions
	if s.Policy != "" {
		cfg.Diagnostics.Policy = s.Policy
	}
	cfg.Diagnostics.PanicOnWarning = s.PanicOnWarning
	return cfg
}

// Setup returns the version and policy the scenario runs under.
func (s *Scenario) Setup() (*version.Version, diag.Policy, error) {
	cfg := s.Config()
	v, err := cfg.Version()
	if err != nil {
		return nil, diag.Policy{}, err
	}
	p, err := cfg.Policy()
	if err != nil {
		return nil, diag.Policy{}, err
	}
	return v, p, nil
}

// Validate checks the op name and decodes hex payloads.
func (st *Step) Validate() error {
	switch st.Op {
	case OpGen:
		if st.Count == nil {
			return fmt.Errorf("gen needs count")
		}
	case OpDelete, OpIsBuffer, OpBind, OpData, OpNamedData,
		OpGetInteger, OpGetBufferParam, OpGetError, OpStore:
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	if _, err := hex.DecodeString(st.Data); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if st.WantBytes != "" && st.WantBytes != "-" {
		if _, err := hex.DecodeString(st.WantBytes); err != nil {
			return fmt.Errorf("want_bytes: %w", err)
		}
	}
	return nil
}
