// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"path"
	"strings"
	"time"
)

type ServerOpts struct {
	ListenAddr      string
	RedirectToHTTPS bool

	// RenderFunc takes and returns templates in bulk format
	RenderFunc func([]byte) ([]byte, error)
	ErrorFunc  func(error) ([]byte, error)
}

type Server struct {
	opts ServerOpts
}

func NewServer(opts ServerOpts) *Server {
	return &Server{opts}
}

// middleware wraps a handler with one cross-cutting concern.
type middleware func(http.HandlerFunc) http.HandlerFunc

type route struct {
	pattern     string
	handler     http.HandlerFunc
	middlewares []middleware
}

func (s *Server) routes() []route {
	page := []middleware{s.requireHTTPS, noCache}
	api := []middleware{s.requireHTTPS, noCache, allowAnyOrigin}

	return []route{
		{"/", s.indexHandler, page},
		{"/js/", s.assetHandler, page},
		{"/examples", s.exampleSetsHandler, api},
		{"/examples/", s.exampleHandler, api},
		// POST responses are not cached by clients
		{"/render", s.renderHandler, []middleware{s.requireHTTPS, allowAnyOrigin}},
		{"/health", s.healthHandler, nil},
	}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	for _, r := range s.routes() {
		handler := r.handler
		for i := len(r.middlewares) - 1; i >= 0; i-- {
			handler = r.middlewares[i](handler)
		}
		mux.HandleFunc(r.pattern, handler)
	}
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("Listening on http://%s\n", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeAsset(w, r, "assets/index.html")
}

var assetContentTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

func (s *Server) assetHandler(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(r.URL.Path)
	if contentType, found := assetContentTypes[path.Ext(name)]; found {
		w.Header().Set("Content-Type", contentType)
	}
	s.writeAsset(w, r, path.Join("assets", name))
}

func (s *Server) writeAsset(w http.ResponseWriter, r *http.Request, name string) {
	data, err := assets.ReadFile(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Write(data)
}

// exampleSetsHandler lists example sets without file contents.
func (s *Server) exampleSetsHandler(w http.ResponseWriter, _ *http.Request) {
	listing := make([]exampleSet, 0, len(exampleSets))

	for _, set := range exampleSets {
		slim := set
		slim.Examples = make([]Example, 0, len(set.Examples))
		for _, example := range set.Examples {
			slim.Examples = append(slim.Examples, Example{ID: example.ID, DisplayName: example.DisplayName})
		}
		listing = append(listing, slim)
	}

	s.writeJSON(w, listing)
}

func (s *Server) exampleHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/examples/")

	example, found := findExample(id)
	if !found {
		s.fail(w, fmt.Errorf("Did not find example: %v", id))
		return
	}
	s.writeJSON(w, example)
}

func findExample(id string) (Example, bool) {
	for _, set := range exampleSets {
		for _, example := range set.Examples {
			if example.ID == id {
				return example, true
			}
		}
	}
	return Example{}, false
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "expected POST", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp, err := s.opts.RenderFunc(data)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Write(resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, val interface{}) {
	bs, err := json.Marshal(val)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Write(bs)
}

// fail logs err and responds with it in bulk output form.
func (s *Server) fail(w http.ResponseWriter, err error) {
	log.Print(err.Error())

	resp, err := s.opts.ErrorFunc(err)
	if err != nil {
		fmt.Fprintf(w, "generation error: %s", err.Error())
		return
	}
	w.Write(resp)
}

// requireHTTPS redirects plain GET and HEAD requests to https and rejects
// other plain requests. Requests from localhost are let through.
func (s *Server) requireHTTPS(next http.HandlerFunc) http.HandlerFunc {
	if !s.opts.RedirectToHTTPS {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if isLocal(r) || r.Header.Get("X-Forwarded-Proto") == "https" {
			next(w, r)
			return
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			// body may have been sent in the clear
			s.fail(w, fmt.Errorf("expected HTTPs connection"))
			return
		}

		host := r.Header.Get("Host")
		if len(host) == 0 {
			s.fail(w, fmt.Errorf("expected non-empty Host header"))
			return
		}
		http.Redirect(w, r, "https://"+host, http.StatusMovedPermanently)
	}
}

func isLocal(r *http.Request) bool {
	clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
	return err == nil && clientIP == "127.0.0.1"
}

var noCacheHeaders = map[string]string{
	"Expires":         time.Unix(0, 0).Format(time.RFC1123),
	"Cache-Control":   "no-cache, private, max-age=0",
	"Pragma":          "no-cache",
	"X-Accel-Expires": "0",
}

func noCache(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}
		next(w, r)
	}
}

func allowAnyOrigin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		next(w, r)
	}
}
