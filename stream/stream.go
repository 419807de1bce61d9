// Package stream holds the built-in live camera feeds.
package stream

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Reference is a third-party URL that embeds a live video feed for direct display.
type Reference string

const (
	Sunset  Reference = "https://v.angelcam.com/iframe?v=1ny8jxnjr0&autoplay=1"
	Sunrise Reference = "https://v.angelcam.com/iframe?v=jzy1v9dvyn&autoplay=1"
)

const (
	NameSunrise = "sunrise"
	NameSunset  = "sunset"
)

func (r Reference) String() string {
	return string(r)
}

// ID returns the opaque camera identifier embedded in the reference.
func (r Reference) ID() string {
	u, err := url.Parse(string(r))
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// Validate reports whether the reference is an absolute http(s) URL.
func (r Reference) Validate() error {
	u, err := url.Parse(string(r))
	if err != nil {
		return fmt.Errorf("parse stream reference: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("stream reference %q: unsupported scheme %q", r, u.Scheme)
	}
	if u.Host == "" {
		return errors.New("stream reference has no host")
	}
	return nil
}

// Catalog is the fixed set of camera feeds. It is handed out by value.
type Catalog struct {
	Sunrise Reference `json:"sunrise"`
	Sunset  Reference `json:"sunset"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Sunrise: Sunrise,
		Sunset:  Sunset,
	}
}

// Names lists the stream names in a stable order.
func (c Catalog) Names() []string {
	return []string{NameSunrise, NameSunset}
}

// Get looks a stream up by name, ignoring case and surrounding spaces.
func (c Catalog) Get(name string) mo.Option[Reference] {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameSunrise:
		return mo.Some(c.Sunrise)
	case NameSunset:
		return mo.Some(c.Sunset)
	default:
		return mo.None[Reference]()
	}
}

// Closest returns the known stream name nearest to name.
func (c Catalog) Closest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return lo.MinBy(c.Names(), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
}
