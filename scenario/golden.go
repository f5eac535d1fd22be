package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares the trace of res against testdata/golden/<name>.golden.
// Run the test with -update to rewrite the fixture.
func AssertGolden(t *testing.T, res *Result) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, res.Name, res.Golden())
}

// RunWithGolden loads path, runs it and checks both its expectations and
// its golden trace.
func RunWithGolden(t *testing.T, path string) *Result {
	t.Helper()
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	res, err := Run(s)
	if err != nil {
		t.Fatalf("run %s: %v", path, err)
	}
	for _, e := range res.Errors {
		t.Errorf("%s: %s", s.Name, e)
	}
	AssertGolden(t, res)
	return res
}
