// Package pages remembers page URLs that resolved successfully so the CLI can suggest them again.
// It stores the page URLs only, never the resolved sources.
package pages

import (
	"strings"
	"sync"

	"github.com/beachcam-al/beachcam/filesystem"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank int    `json:"rank"`
	Page string `json:"page"`
}

var (
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*record]
)

func store() *gache.Cache[map[string]*record] {
	if cacher == nil {
		cacher = gache.New[map[string]*record](&gache.Options{
			Path:       where.Pages(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

func load() map[string]*record {
	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember records a page or bumps its rank by weight.
// It does nothing when resolver.remember_pages is off.
func Remember(page string, weight int) error {
	if !viper.GetBool(key.ResolverRememberPages) {
		return nil
	}

	page = sanitize(page)
	if page == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	saved := load()
	if r, ok := saved[page]; ok {
		r.Rank += weight
	} else {
		saved[page] = &record{Rank: weight, Page: page}
	}

	return store().Set(saved)
}

// Lookup returns the one remembered page that contains partial, ignoring case.
// Blank input, no match or more than one match yield absence.
func Lookup(partial string) mo.Option[string] {
	partial = strings.ToLower(sanitize(partial))
	if partial == "" || !viper.GetBool(key.ResolverRememberPages) {
		return mo.None[string]()
	}

	mu.Lock()
	saved := load()
	mu.Unlock()

	matches := lo.Filter(lo.Keys(saved), func(page string, _ int) bool {
		return strings.Contains(strings.ToLower(page), partial)
	})
	if len(matches) != 1 {
		return mo.None[string]()
	}
	return mo.Some(matches[0])
}

// SuggestMany returns remembered pages fuzzily matching partial input, highest rank first.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.ResolverRememberPages) {
		return []string{}
	}

	partial = sanitize(partial)

	mu.Lock()
	saved := load()
	mu.Unlock()

	matches := lo.Filter(lo.Values(saved), func(r *record, _ int) bool {
		return fuzzy.MatchFold(partial, r.Page)
	})

	slices.SortFunc(matches, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Page, b.Page)
	})

	return lo.Map(matches, func(r *record, _ int) string {
		return r.Page
	})
}

// Forget drops every remembered page.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()
	return store().Set(make(map[string]*record))
}

func sanitize(page string) string {
	return strings.TrimSpace(page)
}
