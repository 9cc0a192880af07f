// Package analysis models the output of the external compiler analysis and
// provides the boundary used to invoke it.
package analysis

// EventKind distinguishes the events emitted by the external analysis.
type EventKind string

const (
	// EventCompileError is a diagnostic finding; the only kind the adapter reports.
	EventCompileError EventKind = "CompileError"

	// EventCompileDiagnostic is an informational diagnostic.
	EventCompileDiagnostic EventKind = "CompileDiagnostic"

	// EventCompileSuccess marks a unit that compiled cleanly.
	EventCompileSuccess EventKind = "CompileSuccess"

	// EventCompileSkip marks a unit the analysis skipped (e.g. opt-out directive).
	EventCompileSkip EventKind = "CompileSkip"

	// EventPipelineError marks an internal pipeline failure.
	EventPipelineError EventKind = "PipelineError"

	// EventTiming carries timing information.
	EventTiming EventKind = "Timing"
)

// Operation is an abstract edit operation tag. Values outside the known set
// are kept as-is so that translation can reject them.
type Operation string

const (
	// OpInsertBefore inserts text before the start of the range.
	OpInsertBefore Operation = "InsertBefore"

	// OpInsertAfter inserts text after the end of the range.
	OpInsertAfter Operation = "InsertAfter"

	// OpReplace replaces the range with text.
	OpReplace Operation = "Replace"

	// OpRemove deletes the range.
	OpRemove Operation = "Remove"
)

// Severity is an opaque severity tag supplied by the external analysis.
type Severity string

// Well-known severity tags.
const (
	SeverityError        Severity = "Error"
	SeverityWarning      Severity = "Warning"
	SeverityHint         Severity = "Hint"
	SeverityOff          Severity = "Off"
	SeverityInvalidReact Severity = "InvalidReact"
	SeverityInvalidJS    Severity = "InvalidJS"
	SeverityTodo         Severity = "Todo"
)

// Range is a half-open [start, end) byte offset pair into the source text.
type Range [2]int

// Start returns the inclusive start offset.
func (r Range) Start() int { return r[0] }

// End returns the exclusive end offset.
func (r Range) End() int { return r[1] }

// Suggestion is an abstract edit suggested by the external analysis.
type Suggestion struct {
	Op          Operation `json:"op"`
	Range       Range     `json:"range"`
	Description string    `json:"description"`
	Text        *string   `json:"text,omitempty"`
}

// Detail is the diagnostic payload of a CompileError event.
type Detail struct {
	Severity    Severity     `json:"severity"`
	Category    string       `json:"category"`
	Reason      string       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Location    Location     `json:"loc"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Event is one entry of the ordered event stream.
type Event struct {
	Kind EventKind `json:"kind"`

	// Unit is the span of the owning compilation unit, when known.
	Unit *Span `json:"fnLoc,omitempty"`

	Detail *Detail `json:"detail,omitempty"`
}

// IsCompileError reports whether the event is a reportable compile error.
func (e Event) IsCompileError() bool {
	return e.Kind == EventCompileError && e.Detail != nil
}

// StatementKind classifies a unit body statement.
type StatementKind string

const (
	// StatementDirective is a string-literal expression statement.
	StatementDirective StatementKind = "directive"

	// StatementOther is any other statement.
	StatementOther StatementKind = "other"
)

// Statement is one direct statement of a compilation unit body.
type Statement struct {
	Kind  StatementKind `json:"kind"`
	Value string        `json:"value,omitempty"`
	Span  Span          `json:"loc"`
	Range Range         `json:"range"`
}

// Unit is a function-like compilation unit with its direct body statements.
type Unit struct {
	Kind string      `json:"kind"`
	Name string      `json:"name,omitempty"`
	Span Span        `json:"loc"`
	Body []Statement `json:"body,omitempty"`
}

// Comment is a source comment echoed by the external analysis.
type Comment struct {
	Text string `json:"text"`
	Span Span   `json:"loc"`
}

// Result is the full output of one file-analysis run.
type Result struct {
	// Source is the exact text that was analyzed.
	Source   string    `json:"source"`
	Filename string    `json:"filename"`
	Events   []Event   `json:"events"`
	Units    []Unit    `json:"units,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// CompileErrorCount returns the number of compile-error events.
func (r *Result) CompileErrorCount() int {
	n := 0

	for _, e := range r.Events {
		if e.IsCompileError() {
			n++
		}
	}

	return n
}
