package tmdb

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/l3uddz/streamarr/database"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(calls *int32) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":550,"media_type":"movie","title":"Fight Club","poster_path":"/fc.jpg"},
			{"id":1399,"media_type":"tv","name":"Game of Thrones","poster_path":"/got.jpg"}
		],"total_pages":1,"total_results":2}`))
	})
	mux.HandleFunc("/movie/550", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		_, _ = w.Write([]byte(`{"id":550,"title":"Fight Club","overview":"An insomniac.","runtime":139,"release_date":"1999-10-15"}`))
	})
	mux.HandleFunc("/tv/1399", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1399,"name":"Game of Thrones","episode_run_time":[60],"first_air_date":"2011-04-17",
			"seasons":[{"season_number":0},{"season_number":1},{"season_number":2}]}`))
	})
	mux.HandleFunc("/tv/1399/season/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"season_number":1,"episodes":[{"episode_number":1,"name":"Winter Is Coming"},{"episode_number":2,"name":"The Kingsroad"}]}`))
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	Convey("Client", t, func() {
		var calls int32
		srv := newTestServer(&calls)
		Reset(srv.Close)

		c := New(srv.URL, "key", WithTimeout(5))

		Convey("SearchMulti", func() {
			results, err := c.SearchMulti("game of")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].Kind(), ShouldEqual, KindMovie)
			So(results[1].DisplayTitle(), ShouldEqual, "Game of Thrones")
		})

		Convey("SearchMulti with a bad key", func() {
			_, err := New(srv.URL, "nope").SearchMulti("x")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "401")
		})

		Convey("Movie", func() {
			m, err := c.Movie("550")
			So(err, ShouldBeNil)
			So(m.Runtime, ShouldEqual, 139)
			So(m.ReleaseDate, ShouldEqual, "1999-10-15")
		})

		Convey("Show and Season", func() {
			s, err := c.Show("1399")
			So(err, ShouldBeNil)
			So(s.Seasons, ShouldHaveLength, 3)

			season, err := c.Season("1399", 1)
			So(err, ShouldBeNil)
			So(season.Episodes, ShouldHaveLength, 2)
			So(season.Episodes[0].Name, ShouldEqual, "Winter Is Coming")
		})

		Convey("Missing item", func() {
			_, err := c.Season("1399", 9)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "404")
		})

		Convey("Cached metadata", func() {
			So(database.Init(filepath.Join(t.TempDir(), "cache.db")), ShouldBeNil)
			Reset(database.Close)

			cached := New(srv.URL, "key", WithCache(time.Hour))
			_, err := cached.Movie("550")
			So(err, ShouldBeNil)
			_, err = cached.Movie("550")
			So(err, ShouldBeNil)
			So(atomic.LoadInt32(&calls), ShouldEqual, 1)
		})

		Convey("ImageURL", func() {
			So(c.ImageURL("/fc.jpg"), ShouldEqual, "https://image.tmdb.org/t/p/w500/fc.jpg")
			So(c.ImageURL(""), ShouldEqual, "")
		})
	})
}

func TestResult(t *testing.T) {
	Convey("Result", t, func() {
		Convey("Title implies movie", func() {
			r := Result{Title: "Heat"}
			So(r.Kind(), ShouldEqual, KindMovie)
			So(r.DisplayTitle(), ShouldEqual, "Heat")
		})

		Convey("Name implies show", func() {
			r := Result{Name: "Dark"}
			So(r.Kind(), ShouldEqual, KindShow)
			So(r.DisplayTitle(), ShouldEqual, "Dark")
		})

		Convey("Original titles are used when localized ones are missing", func() {
			So(Result{MediaType: "movie", OriginalTitle: "Amélie"}.DisplayTitle(), ShouldEqual, "Amélie")
			So(Result{MediaType: "tv", OriginalName: "Dark"}.DisplayTitle(), ShouldEqual, "Dark")
		})

		Convey("Unknown falls back to Untitled", func() {
			r := Result{MediaType: "person"}
			So(r.Kind(), ShouldEqual, KindUnknown)
			So(r.DisplayTitle(), ShouldEqual, "Untitled")
		})
	})
}
