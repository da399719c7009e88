// Copyright 2021 The restx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restx

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

// echo is the JSON document the /echo/body route responds with.
type echo struct {
	Method          string `json:"method"`
	Query           string `json:"query"`
	ContentType     string `json:"contentType"`
	ContentEncoding string `json:"contentEncoding"`
	ContentLength   int64  `json:"contentLength"`
	Body            string `json:"body"`
}

// testServer is an httptest.Server with a fixed set of routes which
// let the client exercise statuses, redirects, slowness and retries.
type testServer struct {
	*httptest.Server
	lock sync.Mutex
	hits map[string]int
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{hits: make(map[string]int)}
	mux := http.NewServeMux()
	mux.HandleFunc("/echo/headers", s.echoHeaders)
	mux.HandleFunc("/echo/body", s.echoBody)
	mux.HandleFunc("/status/{code}", s.status)
	mux.HandleFunc("/slow", s.slow)
	mux.HandleFunc("/from", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/to", http.StatusFound)
	})
	mux.HandleFunc("/to", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "arrived")
	})
	mux.HandleFunc("/flaky/{key}", s.flaky)
	mux.HandleFunc("/truncated/{key}", s.truncated)
	mux.HandleFunc("/dates", s.dates)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *testServer) count(key string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.hits[key]
}

func (s *testServer) hit(key string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.hits[key]++
	return s.hits[key]
}

func (s *testServer) echoHeaders(w http.ResponseWriter, r *http.Request) {
	s.hit("/echo/headers")
	h := make(map[string]string)
	for name := range r.Header {
		h[name] = r.Header.Get(name)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}

func (s *testServer) echoBody(w http.ResponseWriter, r *http.Request) {
	s.hit("/echo/body")
	var src io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		src = gz
	}
	b, err := io.ReadAll(src)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(echo{
		Method:          r.Method,
		Query:           r.URL.RawQuery,
		ContentType:     r.Header.Get("Content-Type"),
		ContentEncoding: r.Header.Get("Content-Encoding"),
		ContentLength:   r.ContentLength,
		Body:            string(b),
	})
}

// status responds with the status code in the path, and the content
// type, content encoding and body given by the "type", "encoding" and
// "body" query parameters.
func (s *testServer) status(w http.ResponseWriter, r *http.Request) {
	s.hit("/status")
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	if ct := q.Get("type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if ce := q.Get("encoding"); ce != "" {
		w.Header().Set("Content-Encoding", ce)
	}
	w.WriteHeader(code)
	_, _ = io.WriteString(w, q.Get("body"))
}

// slow waits for the duration in the "d" query parameter before
// sending the response headers.
func (s *testServer) slow(w http.ResponseWriter, r *http.Request) {
	s.hit("/slow")
	d, _ := time.ParseDuration(r.URL.Query().Get("d"))
	select {
	case <-time.After(d):
	case <-r.Context().Done():
		return
	}
	_, _ = io.WriteString(w, "late")
}

// flaky responds 503 to the first n requests for a key, where n is the
// "fail" query parameter. Afterwards it responds 200 with the request
// body, or "ok" if there is none.
func (s *testServer) flaky(w http.ResponseWriter, r *http.Request) {
	n := s.hit("/flaky/" + r.PathValue("key"))
	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fail, _ := strconv.Atoi(r.URL.Query().Get("fail"))
	if n <= fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "busy")
		return
	}
	if len(b) == 0 {
		b = []byte("ok")
	}
	_, _ = w.Write(b)
}

// truncated cuts the connection partway through the response body for
// the first n requests for a key, where n is the "fail" query
// parameter, and responds 200 "whole" afterwards.
func (s *testServer) truncated(w http.ResponseWriter, r *http.Request) {
	n := s.hit("/truncated/" + r.PathValue("key"))
	fail, _ := strconv.Atoi(r.URL.Query().Get("fail"))
	if n > fail {
		_, _ = io.WriteString(w, "whole")
		return
	}
	conn, buf, err := http.NewResponseController(w).Hijack()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\npartial")
	_ = buf.Flush()
}

var testDate = time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)

func (s *testServer) dates(w http.ResponseWriter, _ *http.Request) {
	h := w.Header()
	h.Set("Date", testDate.Format(http.TimeFormat))
	h.Set("Last-Modified", testDate.Add(-time.Hour).Format(http.TimeFormat))
	h.Set("Expires", testDate.Add(time.Hour).Format(http.TimeFormat))
	h.Set("X-Count", "42")
	h.Set("X-Bad-Count", "forty-two")
	_, _ = io.WriteString(w, "dated")
}
