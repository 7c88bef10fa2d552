// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// CustomHostVariable names the environment variable holding the scheme and
// host prepended to request paths (e.g. https://stache.example.com).
const CustomHostVariable = "STACHE_API_HOST"

// DefaultServerAddress is used when CustomHostVariable is not set.
const DefaultServerAddress = "https://stache-api.local"

type RequestAccessor struct {
	stripBasePath string
}

func (r *RequestAccessor) ProxyEventToHTTPRequest(req events.ALBTargetGroupRequest) (*http.Request, error) {
	decodedBody := []byte(req.Body)
	if req.IsBase64Encoded {
		base64Body, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("Decoding base64 body: %s", err)
		}
		decodedBody = base64Body
	}

	path := req.Path
	if len(r.stripBasePath) > 1 {
		path = strings.TrimPrefix(path, r.stripBasePath)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	serverAddress := DefaultServerAddress
	if customAddress, ok := os.LookupEnv(CustomHostVariable); ok {
		serverAddress = customAddress
	}
	path = serverAddress + path

	if query := r.queryString(req); len(query) > 0 {
		path += "?" + query
	}

	httpRequest, err := http.NewRequest(strings.ToUpper(req.HTTPMethod), path, bytes.NewReader(decodedBody))
	if err != nil {
		return nil, fmt.Errorf("Converting request %s %s: %s", req.HTTPMethod, req.Path, err)
	}

	for h := range req.Headers {
		httpRequest.Header.Add(h, req.Headers[h])
	}

	for hk, hvs := range req.MultiValueHeaders {
		for _, hv := range hvs {
			httpRequest.Header.Add(hk, hv)
		}
	}

	return httpRequest, nil
}

func (r *RequestAccessor) queryString(req events.ALBTargetGroupRequest) string {
	values := url.Values{}
	for q, l := range req.MultiValueQueryStringParameters {
		for _, v := range l {
			values.Add(q, v)
		}
	}
	if len(values) == 0 {
		for q, v := range req.QueryStringParameters {
			values.Add(q, v)
		}
	}

	var keys []string
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pieces []string
	for _, k := range keys {
		for _, v := range values[k] {
			pieces = append(pieces, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(pieces, "&")
}
