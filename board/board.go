// Package board serves the browser client: a canvas that redraws every frame
// streamed over the game websocket and turns key presses into inputs.
package board

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Files returns the board assets rooted at the directory holding index.html.
func Files() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves index.html and board.js.
func Handler() http.Handler {
	return http.FileServer(http.FS(Files()))
}
