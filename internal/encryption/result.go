package encryption

// Result is the outcome of one file passing through the processor. Workers
// produce them, the printer goroutine consumes them.
type Result struct {
	// Source path as given on the command line.
	Source string

	// Destination path; empty when the file failed.
	Destination string

	// Written is the number of bytes in Destination.
	Written int64

	// Err marks the file as failed.
	Err error
}

// failure builds a Result for a file that could not be processed.
func failure(source string, err error) Result {
	return Result{Source: source, Err: err}
}

// Failed reports whether the file could not be processed.
func (r Result) Failed() bool {
	return r.Err != nil
}
