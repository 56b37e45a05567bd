// Package pipeline runs the report steps in sequence.
//
// Each Step fills one section of a model.Report by querying a Source. The
// pipeline executes the steps strictly one after another on the caller's
// goroutine, stops at the first failing step and returns its error
// prefixed with the step name. An optional hook runs after every
// successful step, which the CLI uses to print each section as soon as its query finishes.
package pipeline
