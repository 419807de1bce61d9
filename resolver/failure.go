package resolver

import (
	"errors"
	"fmt"

	"github.com/samber/mo"
)

// ErrMissingSourceURL is wrapped by failures whose response lacks the sourceUrl field.
var ErrMissingSourceURL = errors.New("response has no sourceUrl field")

// Kind classifies why a resolution failed.
type Kind int

const (
	KindRequest Kind = iota + 1
	KindNetwork
	KindStatus
	KindDecode
	KindMissingField
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindMissingField:
		return "missing-field"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failure is the error carried by a failed resolution.
type Failure struct {
	Kind Kind
	// URL is the request URL, empty when it could not be built.
	URL string
	// StatusCode is set for KindStatus only.
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	if f.URL == "" {
		return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s failure for %s: %v", f.Kind, f.URL, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf extracts the failure kind from err, if err wraps a *Failure.
func KindOf(err error) mo.Option[Kind] {
	var failure *Failure
	if errors.As(err, &failure) {
		return mo.Some(failure.Kind)
	}
	return mo.None[Kind]()
}

func fail(kind Kind, target string, err error) mo.Result[string] {
	return mo.Err[string](&Failure{Kind: kind, URL: target, Err: err})
}
