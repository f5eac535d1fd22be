package scenario

// Result is the outcome of running a scenario.
type Result struct {
	Name string
	// Trace has one line per step plus a final finalize line.
	Trace []string
	// Errors lists every failed expectation. Empty when Pass is true.
	Errors []string
	Pass   bool
}

// NewResult creates a passing result.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true}
}

// AddError records a failed expectation.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
