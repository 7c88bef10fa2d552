// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"

	"carvel.dev/stache/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestHTTPFileSources(t *testing.T) {
	url := "http://example.com/some/path"

	client := NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusOK,
			// Send response to be tested
			Body: io.NopCloser(bytes.NewBufferString(`OK`)),
			// Must be set to non-nil value or it panics
			Header: make(http.Header),
		}
	})

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = client
	body, err := fileSource.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("OK"), body)

	// 2xx Status Codes
	client = NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusIMUsed,
			Body:       io.NopCloser(bytes.NewBufferString(`OK`)),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	body, err = fileSource.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("OK"), body)

	// Non-OK HTTP Status Code
	status := "404 Not Found"
	client = NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     status,
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	_, err = fileSource.Bytes()
	require.EqualError(t, err, fmt.Sprintf("Requesting URL '%s': %s", url, status))
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func TestLocalSourceRelativePath(t *testing.T) {
	src := files.NewLocalSource("/tmp/tpls/views/page.mustache", "/tmp/tpls")
	relPath, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "views/page.mustache", relPath)

	src = files.NewLocalSource("/tmp/tpls/views/page.mustache", "")
	relPath, err = src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "page.mustache", relPath)

	src = files.NewLocalSource("/elsewhere/page.mustache", "/tmp/tpls")
	_, err = src.RelativePath()
	require.EqualError(t, err, "unknown relative path for /elsewhere/page.mustache")
}

func TestCachedSourceReadsOnce(t *testing.T) {
	calls := 0
	client := NewTestClient(func(req *http.Request) *http.Response {
		calls++
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`Hi {{name}}`)),
			Header:     make(http.Header),
		}
	})

	httpSrc := files.NewHTTPSource("http://example.com/hi.mustache")
	httpSrc.Client = client
	src := files.NewCachedSource(httpSrc)

	for i := 0; i < 3; i++ {
		body, err := src.Bytes()
		require.NoError(t, err)
		require.Equal(t, "Hi {{name}}", string(body))
	}
	require.Equal(t, 1, calls)

	relPath, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "hi.mustache", relPath)
}

func TestNewSource(t *testing.T) {
	require.IsType(t, files.HTTPSource{}, files.NewSource("https://example.com/a.mustache"))
	require.IsType(t, files.LocalSource{}, files.NewSource("a.mustache"))
}
