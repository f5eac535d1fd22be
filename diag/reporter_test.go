package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/mockgl/errors"
)

func warning() *errors.Error {
	return errors.DoubleFree(errors.PhaseResource, "glDeleteBuffers", 1)
}

func invalidValue() *errors.Error {
	return errors.NegativeCount(errors.PhaseResource, "glGenBuffers", "count", -1)
}

func catch(fn func()) (got *errors.Error) {
	defer func() {
		if v := recover(); v != nil {
			got = v.(*errors.Error)
		}
	}()
	fn()
	return nil
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{PanicEarly, PanicOnFinalize, DoNotPanic} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("Do_Not_Panic")
	require.NoError(t, err)
	assert.Equal(t, DoNotPanic, got)

	_, err = ParseMode("sometimes")
	assert.Error(t, err)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "panic-early", DefaultPolicy().String())
	assert.Equal(t, "panic-early+warnings", Policy{PanicEarly, true}.String())
	assert.Equal(t, "do-not-panic", Policy{DoNotPanic, true}.String())
}

func TestPanicEarly(t *testing.T) {
	r := NewReporter(DefaultPolicy(), nil)

	assert.Nil(t, catch(func() { r.Report(warning()) }))
	got := catch(func() { r.Report(invalidValue()) })
	require.NotNil(t, got)
	assert.Equal(t, errors.KindInvalidValue, got.Kind)
	assert.True(t, r.AnyErrors())
}

func TestPanicOnWarning(t *testing.T) {
	r := NewReporter(Policy{Mode: PanicEarly, PanicOnWarning: true}, nil)
	got := catch(func() { r.Report(warning()) })
	require.NotNil(t, got)
	assert.Equal(t, errors.KindDoubleFree, got.Kind)
	assert.False(t, r.AnyErrors(), "warnings are not errors")
}

func TestPanicOnFinalize(t *testing.T) {
	r := NewReporter(Policy{Mode: PanicOnFinalize}, nil)
	assert.Nil(t, catch(func() { r.Teardown("finalize") }))

	assert.Nil(t, catch(func() { r.Report(invalidValue()) }))
	assert.Nil(t, catch(func() { r.Report(invalidValue()) }))
	got := catch(func() { r.Teardown("finalize") })
	require.NotNil(t, got)
	assert.Equal(t, errors.KindTeardown, got.Kind)
	assert.Contains(t, got.Detail, "2 error(s)")
}

func TestDoNotPanic(t *testing.T) {
	r := NewReporter(Policy{Mode: DoNotPanic, PanicOnWarning: true}, nil)
	assert.Nil(t, catch(func() {
		r.Report(warning())
		r.Report(invalidValue())
		r.Teardown("finalize")
	}))
	w, e := r.Counts()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, e)
}

func TestFatalIgnoresPolicy(t *testing.T) {
	r := NewReporter(Policy{Mode: DoNotPanic}, nil)
	got := catch(func() {
		r.Fatal(errors.New(errors.PhaseContext, errors.KindCrossThread).Op("glGetError").Build())
	})
	require.NotNil(t, got)
	assert.Equal(t, errors.SeverityFatal, got.Severity)
}

func TestLogFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewReporter(Policy{Mode: DoNotPanic}, zap.New(core))

	r.Report(warning())
	r.Report(invalidValue())

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "double freed object 1", entries[0].Message)
	assert.NotContains(t, entries[0].ContextMap(), "backtrace")

	fields := entries[1].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "glGenBuffers", fields["op"])
	assert.Equal(t, "invalid_value", fields["kind"])
	assert.Equal(t, "0x0501", fields["code"])
	assert.Contains(t, fields, "backtrace")
}
