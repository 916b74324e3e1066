package httputil

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), NewClient(nil), srv.URL, 0)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, gotUA)
	assert.Contains(t, gotAccept, "text/html")
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), NewClient(nil), srv.URL, 3)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), NewClient(nil), srv.URL, 1)
	assert.Error(t, err)
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), NewClient(nil), srv.URL, 3)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestReadBodyGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed payload"))
		gz.Close()
	}))
	defer srv.Close()

	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := Get(context.Background(), client, srv.URL, 0)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(body))
}

func TestReadBodyBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		br := brotli.NewWriter(w)
		br.Write([]byte("brotli payload"))
		br.Close()
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), NewClient(nil), srv.URL, 0)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "brotli payload", string(body))
}
