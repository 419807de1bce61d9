package resolver

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/beachcam-al/beachcam/filesystem"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/stream"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

// endpoint serves body with status and records the query of the last request.
type endpoint struct {
	mu       sync.Mutex
	rawQuery string
	query    url.Values
	hits     int
}

func (e *endpoint) serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.rawQuery = r.URL.RawQuery
		e.query = r.URL.Query()
		e.hits++
		e.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRequestURL(t *testing.T) {
	Convey("Given a resolver for the default endpoint", t, func() {
		r := New(DefaultEndpoint, nil)

		Convey("A page URL is percent-encoded into the url parameter", func() {
			target, err := r.RequestURL(mo.Some(string(stream.Sunset)))
			So(err, ShouldBeNil)
			So(target, ShouldEqual, DefaultEndpoint+"?url=https%3A%2F%2Fv.angelcam.com%2Fiframe%3Fv%3D1ny8jxnjr0%26autoplay%3D1")

			parsed := lo.Must(url.Parse(target))
			So(parsed.Query().Get(PageParam), ShouldEqual, string(stream.Sunset))
		})

		Convey("An absent page leaves no query parameter", func() {
			target, err := r.RequestURL(mo.None[string]())
			So(err, ShouldBeNil)
			So(target, ShouldEqual, DefaultEndpoint)
			So(lo.Must(url.Parse(target)).Query().Has(PageParam), ShouldBeFalse)
		})

		Convey("A present empty page still sends the parameter", func() {
			target, err := r.RequestURL(mo.Some(""))
			So(err, ShouldBeNil)
			So(target, ShouldEqual, DefaultEndpoint+"?url=")
		})
	})

	Convey("Given an endpoint that already has a query", t, func() {
		r := New("https://example.com/getSource?key=abc", nil)
		target, err := r.RequestURL(mo.Some("a b"))
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://example.com/getSource?key=abc&url=a%20b")
	})

	Convey("Given a relative endpoint", t, func() {
		r := New("/getSource", nil)
		_, err := r.RequestURL(mo.None[string]())
		So(err, ShouldNotBeNil)
		So(KindOf(err).MustGet(), ShouldEqual, KindRequest)
	})
}

func TestEncodeComponent(t *testing.T) {
	Convey("EncodeComponent", t, func() {
		So(EncodeComponent("hello world"), ShouldEqual, "hello%20world")
		So(EncodeComponent("a+b&c=d/e?f:g#h"), ShouldEqual, "a%2Bb%26c%3Dd%2Fe%3Ff%3Ag%23h")
		So(EncodeComponent("-_.!~*'()"), ShouldEqual, "-_.!~*'()")
		So(EncodeComponent("café"), ShouldEqual, "caf%C3%A9")
		So(EncodeComponent(""), ShouldEqual, "")
	})
}

func TestResolve(t *testing.T) {
	Convey("Given an endpoint returning a source", t, func() {
		e := &endpoint{}
		server := e.serve(http.StatusOK, `{"sourceUrl": "https://example.com/stream.m3u8", "extra": 1}`)
		defer server.Close()
		r := New(server.URL, server.Client())

		Convey("ResolvePage returns exactly the source URL", func() {
			source, err := r.ResolvePage("https://example.com/page?a=1&b=2").Get()
			So(err, ShouldBeNil)
			So(source, ShouldEqual, "https://example.com/stream.m3u8")
			So(e.query.Get(PageParam), ShouldEqual, "https://example.com/page?a=1&b=2")
			So(e.rawQuery, ShouldEqual, "url=https%3A%2F%2Fexample.com%2Fpage%3Fa%3D1%26b%3D2")
		})

		Convey("ResolveDefault sends no page", func() {
			source, err := r.ResolveDefault().Get()
			So(err, ShouldBeNil)
			So(source, ShouldEqual, "https://example.com/stream.m3u8")
			So(e.rawQuery, ShouldBeEmpty)
		})

		Convey("Only one request is made per call", func() {
			_ = r.ResolveDefault()
			So(e.hits, ShouldEqual, 1)
		})

		Convey("Concurrent calls are independent", func() {
			var wg sync.WaitGroup
			results := make([]mo.Result[string], 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = r.ResolveDefault()
				}(i)
			}
			wg.Wait()
			for _, res := range results {
				So(res.IsOk(), ShouldBeTrue)
			}
			So(e.hits, ShouldEqual, len(results))
		})
	})

	Convey("Given an empty sourceUrl", t, func() {
		server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": ""}`)
		defer server.Close()

		source, err := New(server.URL, server.Client()).ResolveDefault().Get()
		So(err, ShouldBeNil)
		So(source, ShouldBeEmpty)
	})

	Convey("Failures are typed", t, func() {
		Convey("Missing field", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{"other": "value"}`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMissingSourceURL), ShouldBeTrue)
			So(KindOf(err).MustGet(), ShouldEqual, KindMissingField)
		})

		Convey("Null field", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": null}`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindMissingField)
		})

		Convey("Non-JSON body", func() {
			server := (&endpoint{}).serve(http.StatusOK, `<html>oops</html>`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindDecode)
		})

		Convey("Trailing data after the object", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": "https://example.com/a.m3u8"} junk`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindDecode)
		})

		Convey("Non-string field", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": 42}`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindDecode)
		})

		Convey("Error status", func() {
			server := (&endpoint{}).serve(http.StatusBadGateway, `{"sourceUrl": "ignored"}`)
			defer server.Close()

			_, err := New(server.URL, server.Client()).ResolveDefault().Get()
			var failure *Failure
			So(errors.As(err, &failure), ShouldBeTrue)
			So(failure.Kind, ShouldEqual, KindStatus)
			So(failure.StatusCode, ShouldEqual, http.StatusBadGateway)
			So(failure.URL, ShouldEqual, server.URL)
		})

		Convey("Network error", func() {
			_, err := New(DefaultEndpoint, failingDoer{}).ResolvePage("https://example.com").Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindNetwork)
			So(err.Error(), ShouldContainSubstring, "connection refused")
		})

		Convey("Closed server", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{}`)
			server.Close()

			_, err := New(server.URL, nil).ResolveDefault().Get()
			So(KindOf(err).MustGet(), ShouldEqual, KindNetwork)
		})
	})

	Convey("Stream constants are unchanged by resolution", t, func() {
		server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": "x"}`)
		defer server.Close()

		r := New(server.URL, server.Client())
		_ = r.ResolvePage(string(stream.Sunset))
		_ = r.ResolvePage(string(stream.Sunrise))
		So(stream.Default(), ShouldResemble, stream.Catalog{Sunrise: stream.Sunrise, Sunset: stream.Sunset})
		So(string(stream.Sunset), ShouldEqual, "https://v.angelcam.com/iframe?v=1ny8jxnjr0&autoplay=1")
		So(string(stream.Sunrise), ShouldEqual, "https://v.angelcam.com/iframe?v=jzy1v9dvyn&autoplay=1")
	})
}

func TestExtract(t *testing.T) {
	Convey("Given file logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "error")
		So(log.Setup(), ShouldBeNil)
		defer func() {
			viper.Set(key.LogsWrite, false)
			_ = log.Setup()
		}()

		Convey("A network failure yields absence and a log entry", func() {
			So(func() {
				result := New(DefaultEndpoint, failingDoer{}).Extract(mo.Some("https://example.com/cam"))
				So(result.IsAbsent(), ShouldBeTrue)
			}, ShouldNotPanic)

			content := string(lo.Must(filesystem.API().ReadFile(log.Path())))
			So(content, ShouldContainSubstring, "connection refused")
			So(content, ShouldContainSubstring, "kind=network")
		})

		Convey("A missing field yields absence", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{}`)
			defer server.Close()

			So(New(server.URL, server.Client()).Extract(mo.None[string]()).IsAbsent(), ShouldBeTrue)
		})

		Convey("A success yields the source", func() {
			server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": "https://example.com/stream.m3u8"}`)
			defer server.Close()

			result := New(server.URL, server.Client()).Extract(mo.Some(string(stream.Sunrise)))
			So(result.MustGet(), ShouldEqual, "https://example.com/stream.m3u8")
		})
	})

	Convey("Given the default logging configuration", t, func() {
		var stderr bytes.Buffer
		log.RedirectErrors(&stderr)
		viper.Set(key.LogsWrite, false)
		So(log.Setup(), ShouldBeNil)
		defer func() {
			log.RedirectErrors(os.Stderr)
			_ = log.Setup()
		}()

		Convey("A failure emits one diagnostic with the cause", func() {
			result := New(DefaultEndpoint, failingDoer{}).Extract(mo.Some("https://example.com/cam"))
			So(result.IsAbsent(), ShouldBeTrue)
			So(log.Path(), ShouldBeEmpty)
			So(stderr.String(), ShouldContainSubstring, "connection refused")
			So(stderr.String(), ShouldContainSubstring, "kind=network")
			So(strings.Count(stderr.String(), "\n"), ShouldEqual, 1)
		})
	})

	Convey("ExtractSource reads the endpoint from configuration", t, func() {
		server := (&endpoint{}).serve(http.StatusOK, `{"sourceUrl": "https://example.com/configured.m3u8"}`)
		defer server.Close()

		viper.Set(key.ResolverEndpoint, server.URL)
		defer viper.Set(key.ResolverEndpoint, DefaultEndpoint)

		So(FromConfig().Endpoint(), ShouldEqual, server.URL)
		So(ExtractSource(mo.None[string]()).MustGet(), ShouldEqual, "https://example.com/configured.m3u8")
	})
}
