// Package logfields holds the canonical slog attribute keys used across docsite.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyRoot       = "content_root"
	KeyPath       = "path"
	KeyFile       = "file"
	KeySlug       = "slug"
	KeyAliasKey   = "alias_key"
	KeyCount      = "count"
	KeyManifestID = "manifest_id"
	KeyRequestID  = "request_id"
	KeyFormat     = "format"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyListenAddr = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }
func Root(dir string) slog.Attr          { return slog.String(KeyRoot, dir) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Slug(s string) slog.Attr            { return slog.String(KeySlug, s) }
func AliasKey(k string) slog.Attr        { return slog.String(KeyAliasKey, k) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func ManifestID(id string) slog.Attr     { return slog.String(KeyManifestID, id) }
func RequestID(id string) slog.Attr      { return slog.String(KeyRequestID, id) }
func Format(f string) slog.Attr          { return slog.String(KeyFormat, f) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr      { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr      { return slog.String(KeyRemoteAddr, a) }
func ListenAddr(a string) slog.Attr      { return slog.String(KeyListenAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
