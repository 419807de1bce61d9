package resolver

import (
	"errors"

	"github.com/samber/mo"
)

// Report is the machine-readable outcome of one resolution.
type Report struct {
	// Page is the page URL sent to the endpoint, omitted when none was sent.
	Page *string `json:"page,omitempty" jsonschema:"description=Page URL forwarded as the url parameter"`
	// Request is the exact URL requested.
	Request string `json:"request,omitempty" jsonschema:"description=URL requested from the resolution endpoint"`
	// Source is the resolved media URL on success.
	Source *string `json:"source,omitempty" jsonschema:"description=Playable media source URL"`
	// Error describes the failure, if any.
	Error *ReportError `json:"error,omitempty"`
}

// ReportError is the serialisable form of a *Failure.
type ReportError struct {
	Kind       string `json:"kind" jsonschema:"enum=request,enum=network,enum=status,enum=decode,enum=missing-field,enum=unknown"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// OK reports whether the resolution succeeded.
func (r Report) OK() bool {
	return r.Error == nil
}

// Report resolves page and describes the outcome.
func (r *Resolver) Report(page mo.Option[string]) Report {
	var report Report
	if p, ok := page.Get(); ok {
		report.Page = &p
	}
	request, err := r.RequestURL(page)
	report.Request = request

	var source string
	if err == nil {
		source, err = r.Resolve(page).Get()
	}
	if err != nil {
		report.Error = &ReportError{Kind: "unknown", Message: err.Error()}
		var failure *Failure
		if errors.As(err, &failure) {
			report.Error.Kind = failure.Kind.String()
			report.Error.StatusCode = failure.StatusCode
		}
		return report
	}

	report.Source = &source
	return report
}
