package step

import (
	"context"
	"fmt"
	"strings"

	"github.com/ifcstep/ifcstep/internal/ctxlog"
	"github.com/ifcstep/ifcstep/internal/exc"
)

// Whitelist is the set of keywords a reference field accepts. The zero
// value accepts any keyword.
type Whitelist struct {
	keywords []string
}

func Accept(keywords ...string) Whitelist {
	w := Whitelist{keywords: make([]string, 0, len(keywords))}
	for _, k := range keywords {
		w.keywords = append(w.keywords, strings.ToUpper(k))
	}
	return w
}

func (w Whitelist) Any() bool {
	return len(w.keywords) == 0
}

func (w Whitelist) Contains(keyword string) bool {
	if w.Any() {
		return true
	}
	keyword = strings.ToUpper(keyword)
	for _, k := range w.keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

func (w Whitelist) String() string {
	if w.Any() {
		return "any entity"
	}
	return strings.Join(w.keywords, ", ")
}

// Verifier checks the references of one record at a time against the
// store they live in.
type Verifier struct {
	store    *Store
	reporter exc.Reporter
	uri      string
	id       ID
	keyword  string
	failures int
	// set once the reporter treats a failure as fatal
	stopped bool
}

func NewVerifier(store *Store, reporter exc.Reporter, uri string) *Verifier {
	return &Verifier{store: store, reporter: reporter, uri: uri}
}

func (v *Verifier) Failures() int {
	return v.failures
}

func (v *Verifier) report(code string, message string) {
	v.failures++
	loc := exc.Location{URI: v.uri}
	if source, ok := v.store.Source(v.id); ok {
		loc.Location = source
	}
	if v.reporter.Report(exc.New(loc, code, message)) != nil {
		v.stopped = true
	}
}

// Ref checks that target exists and that its keyword is accepted.
func (v *Verifier) Ref(field string, target ID, accept Whitelist) {
	e, ok := v.store.GetUntyped(target)
	if !ok {
		v.report(exc.CodeDanglingReference, fmt.Sprintf(
			"%s %s field %s references %s which does not exist", v.id, v.keyword, field, target))
		return
	}
	if !accept.Contains(e.Keyword()) {
		v.report(exc.CodeUnexpectedReferenceType, fmt.Sprintf(
			"%s %s field %s references %s: unexpected %s (expecting %s)", v.id, v.keyword, field, target, e.Keyword(), accept))
	}
}

func VerifyRef[R Reference](v *Verifier, field string, ref R, accept Whitelist) {
	v.Ref(field, ref.Target(), accept)
}

// VerifyOptional checks a custom value and ignores omitted or inherited
// ones.
func VerifyOptional[R Reference](v *Verifier, field string, o Optional[R], accept Whitelist) {
	if ref, ok := o.Value(); ok {
		v.Ref(field, ref.Target(), accept)
	}
}

func VerifyList[R Reference](v *Verifier, field string, l List[R], accept Whitelist) {
	for x, ref := range l {
		v.Ref(fmt.Sprintf("%s[%d]", field, x), ref.Target(), accept)
	}
}

func VerifyOptionalList[R Reference](v *Verifier, field string, o Optional[List[R]], accept Whitelist) {
	if l, ok := o.Value(); ok {
		VerifyList(v, field, l, accept)
	}
}

// Verify checks every record of the store and returns how many problems
// were reported.
func Verify(ctx context.Context, store *Store, reporter exc.Reporter, uri string) int {
	logger := ctxlog.FromContext(ctx)
	v := NewVerifier(store, reporter, uri)
	checked := 0
	for id, e := range store.All() {
		if v.stopped {
			break
		}
		verifiable, ok := e.(Verifiable)
		if !ok {
			continue
		}
		v.id, v.keyword = id, e.Keyword()
		verifiable.VerifyStep(v)
		checked++
	}
	logger.Debug("verified references", "uri", uri, "records", checked, "failures", v.failures)
	return v.failures
}
