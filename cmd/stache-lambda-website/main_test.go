// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func TestProxyEventToHTTPRequest(t *testing.T) {
	t.Setenv(CustomHostVariable, "https://stache.test")

	accessor := RequestAccessor{stripBasePath: "/api"}
	req, err := accessor.ProxyEventToHTTPRequest(events.ALBTargetGroupRequest{
		HTTPMethod:      "post",
		Path:            "/api/render",
		Body:            base64.StdEncoding.EncodeToString([]byte("body")),
		IsBase64Encoded: true,
		Headers:         map[string]string{"X-One": "1"},
		MultiValueQueryStringParameters: map[string][]string{
			"b": {"2"},
			"a": {"1 2"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "https://stache.test/render?a=1+2&b=2", req.URL.String())
	require.Equal(t, "1", req.Header.Get("X-One"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.Equal(t, "body", string(body))
}

func TestProxyEventToHTTPRequestBadBase64(t *testing.T) {
	_, err := (&RequestAccessor{}).ProxyEventToHTTPRequest(events.ALBTargetGroupRequest{
		HTTPMethod: "GET", Path: "/", Body: "!!", IsBase64Encoded: true,
	})
	require.Error(t, err)
}

func TestProxyServesHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Path", r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	resp, err := New(handler).Proxy(events.ALBTargetGroupRequest{HTTPMethod: "GET", Path: "health"})
	require.NoError(t, err)

	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.Equal(t, "418 I'm a teapot", resp.StatusDescription)
	require.Equal(t, "/health", resp.Headers["X-Path"])
	require.Equal(t, "short and stout", resp.Body)
	require.False(t, resp.IsBase64Encoded)
}

func TestProxyResponseWriterBinaryBody(t *testing.T) {
	w := NewProxyResponseWriter()
	_, err := w.GetProxyResponse()
	require.EqualError(t, err, "Expected status code to be set")

	w.Write([]byte{0xff, 0xfe})

	resp, err := w.GetProxyResponse()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, resp.IsBase64Encoded)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe}), resp.Body)
}
