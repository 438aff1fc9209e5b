package config

import (
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate checks the normalized configuration.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Content.Root) == "":
		return required("content.root")
	case strings.TrimSpace(c.Manifest.Output) == "":
		return required("manifest.output")
	case c.Server.Addr == "":
		return required("server.addr")
	}

	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return ferrors.ConfigError("site.base_path must start with /").
			WithContext("field", "site.base_path").
			WithContext("value", c.Site.BasePath).
			Build()
	}
	if h := c.Site.BreadcrumbRoot.Href; h != "" && !strings.HasPrefix(h, "/") && !strings.Contains(h, "://") {
		return ferrors.ConfigError("site.breadcrumb_root.href must be absolute").
			WithContext("field", "site.breadcrumb_root.href").
			WithContext("value", h).
			Build()
	}

	timeouts := []struct {
		field string
		value time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value < 0 {
			return ferrors.ConfigError("timeout must not be negative").
				WithContext("field", t.field).
				WithContext("value", t.value.String()).
				Build()
		}
	}
	return nil
}

func required(field string) error {
	return ferrors.ConfigError(field + " is required").
		WithContext("field", field).
		Build()
}

func invalid(field string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid "+field).
		WithContext("field", field).
		UserAction().
		Build()
}
