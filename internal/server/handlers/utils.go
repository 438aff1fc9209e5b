// Package handlers provides the HTTP handlers behind the docsite API.
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// writeJSON encodes v into a buffer first so a failed encode never produces
// a partial response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}

// writeJSONPretty indents the output when the request has ?pretty=1 or
// ?pretty=true.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) error {
	if p := r.URL.Query().Get("pretty"); p != "1" && p != "true" {
		return writeJSON(w, status, v)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		slog.Error("failed writing pretty JSON", logfields.Error(err))
		return err
	}
	return nil
}

// slugParam returns the {slug...} wildcard without surrounding slashes.
func slugParam(r *http.Request) string {
	return strings.Trim(r.PathValue("slug"), "/")
}
