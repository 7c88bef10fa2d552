// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

const defaultStatusCode = -1

// ProxyResponseWriter collects what a http.Handler writes and turns it into
// an ALB target group response.
type ProxyResponseWriter struct {
	headers http.Header
	body    bytes.Buffer
	status  int
}

var _ http.ResponseWriter = &ProxyResponseWriter{}

func NewProxyResponseWriter() *ProxyResponseWriter {
	return &ProxyResponseWriter{headers: http.Header{}, status: defaultStatusCode}
}

func (r *ProxyResponseWriter) Header() http.Header { return r.headers }

func (r *ProxyResponseWriter) Write(body []byte) (int, error) {
	if r.status == defaultStatusCode {
		r.status = http.StatusOK
	}

	// detect content type like net/http does
	if len(r.headers.Get("Content-Type")) == 0 {
		r.headers.Set("Content-Type", http.DetectContentType(body))
	}

	return r.body.Write(body)
}

func (r *ProxyResponseWriter) WriteHeader(status int) { r.status = status }

func (r *ProxyResponseWriter) GetProxyResponse() (events.ALBTargetGroupResponse, error) {
	if r.status == defaultStatusCode {
		return events.ALBTargetGroupResponse{}, fmt.Errorf("Expected status code to be set")
	}

	var output string
	isBase64 := false

	bb := r.body.Bytes()
	if utf8.Valid(bb) {
		output = string(bb)
	} else {
		output = base64.StdEncoding.EncodeToString(bb)
		isBase64 = true
	}

	headers := map[string]string{}
	for k, vs := range r.headers {
		headers[k] = strings.Join(vs, ",")
	}

	return events.ALBTargetGroupResponse{
		StatusCode:        r.status,
		StatusDescription: fmt.Sprintf("%d %s", r.status, http.StatusText(r.status)),
		Headers:           headers,
		MultiValueHeaders: map[string][]string(r.headers),
		Body:              output,
		IsBase64Encoded:   isBase64,
	}, nil
}
