package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates static
var content embed.FS

func Templates() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func StaticFiles() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
