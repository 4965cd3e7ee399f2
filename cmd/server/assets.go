package main

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed web/*
var webFiles embed.FS

// webHandler serves the embedded client. Unknown paths without a file
// extension fall back to index.html so client-side routes survive a reload.
func webHandler() (http.Handler, error) {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		return nil, err
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" && !strings.Contains(path, ".") {
			if _, err := fs.Stat(sub, path); err != nil {
				r.URL.Path = "/"
			}
		}
		files.ServeHTTP(w, r)
	}), nil
}
