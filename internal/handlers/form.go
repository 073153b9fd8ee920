package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var chatFormHTML []byte

// ChatForm serves the browser client for POST /chat.
func ChatForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(chatFormHTML)
}
