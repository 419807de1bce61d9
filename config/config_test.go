package config

import (
	"encoding/json"
	"testing"

	"github.com/beachcam-al/beachcam/filesystem"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/resolver"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.ResolverEndpoint), ShouldEqual, resolver.DefaultEndpoint)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("BEACHCAM_STREAMS_DEFAULT", "sunrise")
			_ = Setup()
			So(viper.GetString(key.StreamsDefault), ShouldEqual, "sunrise")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("resolver.remember_pages"), ShouldEqual, "resolver_remember_pages")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the endpoint field", t, func() {
		_ = Setup()
		field := Default[key.ResolverEndpoint]

		Convey("Env is prefixed", func() {
			So(field.Env(), ShouldEqual, "BEACHCAM_RESOLVER_ENDPOINT")
		})

		Convey("Pretty mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.ResolverEndpoint)
		})

		Convey("MarshalJSON carries the type and default", func() {
			data, err := json.Marshal(&field)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded["type"], ShouldEqual, "string")
			So(decoded["default"], ShouldEqual, resolver.DefaultEndpoint)
		})
	})
}
