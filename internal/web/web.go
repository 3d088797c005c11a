// Package web holds the server-rendered pages: embedded templates, static
// assets and the view helpers the templates use.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates/*.html static/*
var assets embed.FS

// FuncMap is installed on every page template.
var FuncMap = template.FuncMap{
	"ringCircumference": func() float64 { return RingCircumference },
	"ringRadius":        func() float64 { return ringRadius },
	"ringOffset":        RingOffset,
	"ringTone":          RingTone,
	"join":              strings.Join,
	"topMatch":          func(score int) bool { return score >= TopMatchThreshold },
}

// Templates parses all page templates. Each page is addressed by its file
// name, e.g. "results.html".
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the embedded static assets rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
