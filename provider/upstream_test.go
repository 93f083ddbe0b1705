package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/l3uddz/streamarr/config"
)

// newUpstream fakes tmdb and every stream source the providers talk to.
func newUpstream() *httptest.Server {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)

	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	/* tmdb */
	mux.HandleFunc("/3/search/multi", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		write(w, `{"page":1,"results":[
			{"id":550,"media_type":"movie","title":"Fight Club","poster_path":"/fc.jpg"},
			{"id":1399,"media_type":"tv","name":"Game of Thrones","poster_path":"/got.jpg"},
			{"id":287,"media_type":"person","name":"Brad Pitt"},
			{"id":9}
		]}`)
	})
	mux.HandleFunc("/3/movie/550", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"id":550,"title":"Fight Club","overview":"An insomniac office worker.","runtime":139,"release_date":"1999-10-15"}`)
	})
	mux.HandleFunc("/3/movie/551", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"id":551,"title":"Unknown"}`)
	})
	mux.HandleFunc("/3/tv/1399", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"id":1399,"name":"Game of Thrones","overview":"Seven noble families.","episode_run_time":[60,55],
			"first_air_date":"2011-04-17","seasons":[{"season_number":0},{"season_number":1},{"season_number":2},{"season_number":3}]}`)
	})
	mux.HandleFunc("/3/tv/1399/season/1", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"season_number":1,"episodes":[{"episode_number":1,"name":"Winter Is Coming"},{"episode_number":2,"name":"The Kingsroad"}]}`)
	})
	mux.HandleFunc("/3/tv/1399/season/2", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"season_number":2,"episodes":[{"episode_number":1}]}`)
	})
	mux.HandleFunc("/3/tv/1399/season/3", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"season_number":3,"episodes":[]}`)
	})

	/* fishstick mirrors */
	mux.HandleFunc("/fishstick/hexa1/550", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/fishstick/hexa4/550", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"stream":[{"type":"mp4","url":"https://cdn.example.com/fc.mp4"}]}`)
	})
	mux.HandleFunc("/fishstick/hexa2/550", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"stream":[{"type":"hls","url":""},{"type":"hls","url":"https://cdn.example.com/fc/master.m3u8"}]}`)
	})
	mux.HandleFunc("/fishstick/hexa1/1399/1/2", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"stream":[{"type":"hls","url":"https://cdn.example.com/got/s1e2.m3u8"}]}`)
	})

	/* autoembed */
	mux.HandleFunc("/autoembed", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("id") == "552" && q.Get("sr") == "1":
			write(w, fmt.Sprintf(`{"url":[{"type":"playlist","link":"%s/unusable.m3u8"}]}`, srv.URL))
		case q.Get("id") == "552" && q.Get("sr") == "2":
			write(w, fmt.Sprintf(`{"url":[{"type":"playlist","link":"%s/master.m3u8"}]}`, srv.URL))
		case q.Get("sr") != "2":
			write(w, `{"url":[]}`)
		case q.Get("id") == "550":
			write(w, fmt.Sprintf(`{"url":[{"type":"mp4","link":"x"},{"type":"playlist","link":"%s/master.m3u8"}],
				"tracks":[{"lang":"French","url":"https://subs.example.com/fr.vtt"},{"lang":"English - SDH","url":"https://subs.example.com/en.vtt"}]}`, srv.URL))
		case q.Get("id") == "1399" && q.Get("ss") == "1" && q.Get("ep") == "1":
			write(w, fmt.Sprintf(`{"url":[{"type":"playlist","link":"%s/master.m3u8"}]}`, srv.URL))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("/master.m3u8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#EXTM3U\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360\nhttps://cdn.example.com/360.m3u8\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=5000000,RESOLUTION=1920x1080\nhttps://cdn.example.com/1080.m3u8\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=2800000,RESOLUTION=1280x720\nhttps://cdn.example.com/720.m3u8\n"))
	})

	mux.HandleFunc("/unusable.m3u8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#EXTM3U\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360\nrelative/360.m3u8\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=2800000\nhttps://cdn.example.com/unknown.m3u8\n"))
	})

	/* vid3c */
	mux.HandleFunc("/vid3c/allmvse2e.php", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "WVdabQ==": // 550
			write(w, `{"source4":null,"source1":{"url":"https://vid3c.site/stream/file2/video.mp4","language":"English"},
				"source2":{"url":"https://cdn.example.com/bf/550.m3u8","language":"English"},
				"source3":{"url":"https://cdn.example.com/bf/never.m3u8","language":"English"},"source5":null}`)
		default:
			write(w, `{"source1":{"url":"https://cdn.example.com/de.m3u8","language":"German"},"source2":null,"source4":null,"source5":null}`)
		}
	})
	mux.HandleFunc("/vid3c/alltvse2e.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "TVMweExUazVNekU9" { // 1399-1-1
			w.WriteHeader(http.StatusNotFound)
			return
		}
		write(w, `{"source4":{"url":"https://cdn.example.com/bf/got.m3u8","language":"English"},"source1":null}`)
	})

	/* wyzie */
	mux.HandleFunc("/wyzie", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("id") == "550":
			write(w, `[{"display":"Spanish","url":"https://subs.example.com/es.srt"},{"display":"English","url":"https://subs.example.com/en.srt"}]`)
		case q.Get("id") == "1399" && q.Get("season") == "1" && q.Get("episode") == "1":
			write(w, `[{"display":"English (CC)","url":"https://subs.example.com/got.srt"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	/* rivestream */
	mux.HandleFunc("/rive", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("proxyMode") != "noProxy" || q.Get("service") != "guru" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch {
		case q.Get("secretKey") == "I":
			write(w, `{"error":"Internal Server Error"}`)
		case q.Get("requestID") == "movieVideoProvider" && q.Get("id") == "550":
			write(w, `{"data":{"sources":[{"format":"mp4","quality":"HLS 1","url":"https://cdn.example.com/r.mp4"},
				{"format":"hls","quality":"HLS 4","url":"https://cdn.example.com/r4.m3u8"},
				{"format":"hls","quality":"HLS 7","url":"https://cdn.example.com/r7.m3u8"}]}}`)
		case q.Get("requestID") == "tvVideoProvider" && q.Get("season") == "1" && q.Get("episode") == "1":
			write(w, `{"data":{"sources":[{"format":"hls","quality":"HLS 99","url":"https://cdn.example.com/got99.m3u8"}]}}`)
		default:
			write(w, `{"data":{"sources":[]}}`)
		}
	})

	return srv
}

// useUpstream points the global tmdb configuration at srv.
func useUpstream(srv *httptest.Server) {
	config.Config = &config.Configuration{
		Tmdb: config.Tmdb{
			ApiURL:    srv.URL + "/3",
			ApiKey:    "key",
			ImageURL:  "https://image.tmdb.org/t/p",
			RateLimit: 100,
			Timeout:   5,
		},
	}
}
