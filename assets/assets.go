// Package assets holds the files the web server serves out of the binary.
package assets

import (
	"embed"
)

//go:embed fs/*
var FS embed.FS

//go:embed templates/*
var Templates embed.FS
