package exc

import "sync"

// Reporter accumulates exceptions found while reading a file. Verification
// keeps going after a non-fatal report so that every bad reference in a
// file is shown at once; the parser stops at its first report.
type Reporter interface {
	// Report records e and returns it again when it is fatal, or nil.
	Report(e Exception) Exception
	// Reported returns everything recorded so far, in order.
	Reported() []Exception
}

// NewReporter returns a Reporter that is safe for concurrent use. The
// reference checks are always non-fatal; nonFatal adds more codes.
func NewReporter(nonFatal []string) Reporter {
	r := &reporter{nonFatal: make(map[string]bool, len(defaultNonFatal)+len(nonFatal))}
	for code := range defaultNonFatal {
		r.nonFatal[code] = true
	}
	for _, code := range nonFatal {
		r.nonFatal[code] = true
	}
	return r
}

type reporter struct {
	mu       sync.Mutex
	reported []Exception
	nonFatal map[string]bool
}

func (r *reporter) Report(e Exception) Exception {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reported = append(r.reported, e)
	if r.nonFatal[e.Code()] {
		return nil
	}
	return e
}

func (r *reporter) Reported() []Exception {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Exception(nil), r.reported...)
}
