package pages

import (
	"testing"

	"github.com/beachcam-al/beachcam/filesystem"
	"github.com/beachcam-al/beachcam/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPages(t *testing.T) {
	Convey("Given remembering is enabled", t, func() {
		viper.Set(key.ResolverRememberPages, true)
		So(Forget(), ShouldBeNil)

		sunset := "https://v.angelcam.com/iframe?v=1ny8jxnjr0&autoplay=1"
		sunrise := "https://v.angelcam.com/iframe?v=jzy1v9dvyn&autoplay=1"

		Convey("When remembering pages", func() {
			So(Remember(sunset, 1), ShouldBeNil)
			So(Remember(sunrise, 1), ShouldBeNil)
			So(Remember(sunrise, 1), ShouldBeNil)

			Convey("Then suggestions are ranked by use", func() {
				s := SuggestMany("angelcam")
				So(s, ShouldResemble, []string{sunrise, sunset})
			})

			Convey("Then Lookup expands input contained in exactly one page", func() {
				So(Lookup("1NY8").MustGet(), ShouldEqual, sunset)
				So(Lookup(" jzy1v9 ").MustGet(), ShouldEqual, sunrise)
			})

			Convey("Then Lookup refuses blank or ambiguous input", func() {
				So(Lookup("").IsAbsent(), ShouldBeTrue)
				So(Lookup("   ").IsAbsent(), ShouldBeTrue)
				So(Lookup("angelcam").IsAbsent(), ShouldBeTrue)
			})

			Convey("Then unrelated input matches nothing", func() {
				So(SuggestMany("youtube"), ShouldBeEmpty)
				So(Lookup("youtube").IsAbsent(), ShouldBeTrue)
			})

			Convey("Then Forget clears them", func() {
				So(Forget(), ShouldBeNil)
				So(SuggestMany(""), ShouldBeEmpty)
			})
		})

		Convey("Blank pages are ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldBeEmpty)
		})
	})

	Convey("Given remembering is disabled", t, func() {
		viper.Set(key.ResolverRememberPages, false)
		defer viper.Set(key.ResolverRememberPages, true)

		So(Remember("https://example.com", 1), ShouldBeNil)
		So(SuggestMany("example"), ShouldBeEmpty)
	})
}
