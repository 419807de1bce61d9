// Package resolver turns web page URLs into playable media source URLs through the remote resolution endpoint.
package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/network"
	"github.com/beachcam-al/beachcam/util"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// DefaultEndpoint is the cloud function that performs the resolution.
const DefaultEndpoint = "https://us-central1-beachcam-al.cloudfunctions.net/getSource"

// PageParam is the query parameter carrying the page URL.
const PageParam = "url"

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver issues resolution requests against a single endpoint.
// It holds no mutable state, so one value can serve concurrent callers.
type Resolver struct {
	endpoint string
	client   Doer
}

// response is the part of the endpoint's reply we read.
type response struct {
	SourceURL *string `json:"sourceUrl"`
}

// New returns a resolver for endpoint. A nil client means network.Client.
func New(endpoint string, client Doer) *Resolver {
	if client == nil {
		client = network.Client
	}
	return &Resolver{endpoint: endpoint, client: client}
}

// FromConfig returns a resolver for the configured endpoint using the shared client.
func FromConfig() *Resolver {
	return New(viper.GetString(key.ResolverEndpoint), network.Client)
}

// Endpoint returns the base URL requests are sent to.
func (r *Resolver) Endpoint() string {
	return r.endpoint
}

// RequestURL builds the URL that Resolve would request for page.
// An absent page leaves the endpoint without a query parameter.
func (r *Resolver) RequestURL(page mo.Option[string]) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", &Failure{Kind: KindRequest, Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	if !u.IsAbs() || u.Host == "" {
		return "", &Failure{Kind: KindRequest, Err: fmt.Errorf("endpoint %q is not an absolute URL", r.endpoint)}
	}

	if pageURL, ok := page.Get(); ok {
		param := PageParam + "=" + EncodeComponent(pageURL)
		if u.RawQuery == "" {
			u.RawQuery = param
		} else {
			u.RawQuery += "&" + param
		}
	}

	return u.String(), nil
}

// Resolve performs one GET against the endpoint and returns the sourceUrl field of the reply.
// Every failure is a *Failure inside the result; nothing is retried.
func (r *Resolver) Resolve(page mo.Option[string]) mo.Result[string] {
	target, err := r.RequestURL(page)
	if err != nil {
		return mo.Err[string](err)
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return fail(KindRequest, target, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("resolving source via %s", target)
	resp, err := r.client.Do(req)
	if err != nil {
		return fail(KindNetwork, target, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return mo.Err[string](&Failure{
			Kind:       KindStatus,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid response '%s'", resp.Status),
		})
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(KindNetwork, target, fmt.Errorf("read response: %w", err))
	}

	var body response
	if err := json.Unmarshal(raw, &body); err != nil {
		return fail(KindDecode, target, fmt.Errorf("decode response: %w", err))
	}

	if body.SourceURL == nil {
		return fail(KindMissingField, target, ErrMissingSourceURL)
	}

	return mo.Ok(*body.SourceURL)
}

// ResolvePage resolves the source behind pageURL.
func (r *Resolver) ResolvePage(pageURL string) mo.Result[string] {
	return r.Resolve(mo.Some(pageURL))
}

// ResolveDefault asks the endpoint for its default source, sending no page.
func (r *Resolver) ResolveDefault() mo.Result[string] {
	return r.Resolve(mo.None[string]())
}

// Extract resolves page and reports failure only as absence, logging the cause.
func (r *Resolver) Extract(page mo.Option[string]) mo.Option[string] {
	source, err := r.Resolve(page).Get()
	if err == nil {
		return mo.Some(source)
	}

	fields := log.Fields{"page": page.OrEmpty()}
	var failure *Failure
	if errors.As(err, &failure) {
		fields["kind"] = failure.Kind.String()
		fields["url"] = failure.URL
	}
	log.WithFields(fields).Errorf("an error occurred while fetching or parsing the page source: %v", err)

	return mo.None[string]()
}

// ExtractSource is Extract on a resolver built from the current configuration.
func ExtractSource(page mo.Option[string]) mo.Option[string] {
	return FromConfig().Extract(page)
}
