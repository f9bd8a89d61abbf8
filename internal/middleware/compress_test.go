package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompress_GzipWhenAccepted(t *testing.T) {
	c := NewCompress()
	handler := c.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))

	req := httptest.NewRequest("GET", "/api/profiles", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("expected gzip content encoding")
	}

	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("invalid gzip body: %v", err)
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("reading gzip body: %v", err)
	}
	if string(body) != `{"status":"ok"}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestCompress_PassthroughWithoutAcceptEncoding(t *testing.T) {
	c := NewCompress()
	handler := c.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Header().Get("Content-Encoding") != "" {
		t.Fatal("expected no content encoding")
	}
	if rr.Body.String() != "plain" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}
