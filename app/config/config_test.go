package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"inkwell/app/config"
)

func TestDefault(t *testing.T) {
	c := qt.New(t)

	cfg := config.Default()

	c.Assert(cfg.Server.Addr, qt.Equals, ":8080")
	c.Assert(cfg.Database.DSN, qt.Equals, "data/blog.db")
	c.Assert(cfg.Session.TTL, qt.Equals, 7*24*time.Hour)
	c.Assert(cfg.Session.CookieName, qt.Equals, "inkwell_session")
	c.Assert(cfg.Auth.BcryptCost, qt.Equals, 10)
	c.Assert(cfg.Blog.Locale, qt.Equals, "en")
	c.Assert(cfg.Blog.EnforceCommentOwnership, qt.IsFalse)
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoadFromFile(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	content := `
server:
  addr: ":9090"
  shutdown_timeout: 3s
database:
  dsn: memory
session:
  path: ""
  ttl: 1h
blog:
  locale: ru
  enforce_comment_ownership: true
log:
  format: console
`
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)

	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Server.Addr, qt.Equals, ":9090")
	c.Assert(cfg.Server.ShutdownTimeout, qt.Equals, 3*time.Second)
	c.Assert(cfg.Database.DSN, qt.Equals, "memory")
	c.Assert(cfg.Session.Path, qt.Equals, "")
	c.Assert(cfg.Session.TTL, qt.Equals, time.Hour)
	c.Assert(cfg.Blog.Locale, qt.Equals, "ru")
	c.Assert(cfg.Blog.EnforceCommentOwnership, qt.IsTrue)
	c.Assert(cfg.Log.Format, qt.Equals, "console")
	// untouched keys keep their defaults
	c.Assert(cfg.Auth.BcryptCost, qt.Equals, 10)
}

func TestLoadEnvOverride(t *testing.T) {
	c := qt.New(t)
	t.Setenv("INKWELL_SERVER_ADDR", ":7070")
	t.Setenv("INKWELL_AUTH_BCRYPT_COST", "4")

	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	c.Assert(os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644), qt.IsNil)

	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Server.Addr, qt.Equals, ":7070")
	c.Assert(cfg.Auth.BcryptCost, qt.Equals, 4)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	c := qt.New(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	c.Assert(err, qt.ErrorMatches, "read config: .*")
}

func TestValidateRegionalLocale(t *testing.T) {
	c := qt.New(t)
	cfg := config.Default()
	cfg.Blog.Locale = "ru-RU"
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errRe  string
	}{
		{
			name:   "empty addr",
			mutate: func(cfg *config.Config) { cfg.Server.Addr = "" },
			errRe:  "config: server.addr is required",
		},
		{
			name:   "zero ttl",
			mutate: func(cfg *config.Config) { cfg.Session.TTL = 0 },
			errRe:  "config: session.ttl must be positive",
		},
		{
			name:   "bcrypt cost too low",
			mutate: func(cfg *config.Config) { cfg.Auth.BcryptCost = 2 },
			errRe:  `config: auth.bcrypt_cost 2 out of range \[4,31\]`,
		},
		{
			name:   "zero read timeout",
			mutate: func(cfg *config.Config) { cfg.Server.ReadTimeout = 0 },
			errRe:  "config: server.read_timeout must be positive",
		},
		{
			name:   "negative shutdown timeout",
			mutate: func(cfg *config.Config) { cfg.Server.ShutdownTimeout = -time.Second },
			errRe:  "config: server.shutdown_timeout must be positive",
		},
		{
			name:   "unsupported locale",
			mutate: func(cfg *config.Config) { cfg.Blog.Locale = "de" },
			errRe:  `config: unsupported blog.locale "de"`,
		},
		{
			name:   "mistyped locale",
			mutate: func(cfg *config.Config) { cfg.Blog.Locale = "english" },
			errRe:  `config: unsupported blog.locale "english"`,
		},
		{
			name:   "unknown log format",
			mutate: func(cfg *config.Config) { cfg.Log.Format = "xml" },
			errRe:  `config: unknown log.format "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			cfg := config.Default()
			tt.mutate(cfg)
			c.Assert(cfg.Validate(), qt.ErrorMatches, tt.errRe)
		})
	}
}
