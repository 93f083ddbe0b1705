package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given a config path", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		Reset(func() { Config = nil })

		Convey("A missing file falls back to defaults", func() {
			So(Init(path), ShouldBeNil)
			So(Config.Tmdb.ApiURL, ShouldEqual, "https://api.themoviedb.org/3")
			So(Config.Tmdb.RateLimit, ShouldEqual, 20)
			So(Config.Cache.Enabled, ShouldBeTrue)
			So(Config.Cache.StreamTTL, ShouldEqual, 15*time.Minute)
			So(Config.Providers, ShouldHaveLength, 4)
		})

		Convey("Configured providers replace the defaults", func() {
			So(os.WriteFile(path, []byte(`
tmdb:
  api_key: secret
cache:
  enabled: false
  stream_ttl: 1h
providers:
  mirrors:
    type: ableflix
    endpoints:
      - https://mirror.example/api/
  hexa:
    servers: [1, 2]
    subtitles: Label == "French"
`), 0o644), ShouldBeNil)

			So(Init(path), ShouldBeNil)
			So(Config.Tmdb.ApiKey, ShouldEqual, "secret")
			So(Config.Tmdb.Timeout, ShouldEqual, 15)
			So(Config.Cache.Enabled, ShouldBeFalse)
			So(Config.Cache.StreamTTL, ShouldEqual, time.Hour)
			So(Config.Providers, ShouldHaveLength, 2)

			p, err := GetProvider("MIRRORS")
			So(err, ShouldBeNil)
			So(p.Type, ShouldEqual, "ableflix")
			So(p.Endpoints, ShouldResemble, []string{"https://mirror.example/api/"})

			p, err = GetProvider("hexa")
			So(err, ShouldBeNil)
			So(p.Type, ShouldEqual, "hexa")
			So(p.Servers, ShouldResemble, []int{1, 2})
			So(p.Subtitles, ShouldEqual, `Label == "French"`)

			_, err = GetProvider("bingeflex")
			So(err, ShouldNotBeNil)
		})

		Convey("Environment variables override file and defaults", func() {
			env := map[string]string{
				"STREAMARR_TMDB_API_KEY":     "fromenv",
				"STREAMARR_TMDB_RATE_LIMIT":  "7",
				"STREAMARR_CACHE_STREAM_TTL": "30s",
			}
			for k, v := range env {
				So(os.Setenv(k, v), ShouldBeNil)
			}
			Reset(func() {
				for k := range env {
					_ = os.Unsetenv(k)
				}
			})

			So(Init(path), ShouldBeNil)
			So(Config.Tmdb.ApiKey, ShouldEqual, "fromenv")
			So(Config.Tmdb.RateLimit, ShouldEqual, 7)
			So(Config.Cache.StreamTTL, ShouldEqual, 30*time.Second)
		})

		Convey("A malformed file is an error", func() {
			So(os.WriteFile(path, []byte("tmdb: [unclosed"), 0o644), ShouldBeNil)
			So(Init(path), ShouldNotBeNil)
		})
	})

	Convey("Without a loaded config provider lookups fail", t, func() {
		Config = nil
		_, err := GetProvider("hexa")
		So(err, ShouldNotBeNil)
	})
}
