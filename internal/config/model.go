// internal/config/model.go
//
// Typed configuration model for Luvora.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `LUVORA_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so downstream code
// never sees Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import "fmt"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Pool section
//

// Pool locates the static message corpus.  The path is relative to the
// runtime root unless absolute.
type Pool struct {
	Path string `koanf:"path" validate:"required"`
}

//
// Database section
//

// Database holds the connection settings for the engagement and audit
// tables.  Both fields are optional: with an empty DSN the service runs
// read-only and the write endpoints answer 503.  When Password is set,
// DSN is a template with a single `%s` verb where the password goes:
//
//	luvora:%s@tcp(127.0.0.1:3306)/luvora?parseTime=true&loc=UTC
//
// Password is typically a `vault:secret/luvora#db_password` reference
// resolved at load, so the plaintext never sits in a flat file.
type Database struct {
	DSN      string `koanf:"dsn"`
	Password string `koanf:"password"`
}

// BuildDSN returns the connection string handed to the driver.  With a
// password present the DSN template is filled in; otherwise the DSN is
// used verbatim (credentials already embedded, or a socket login).
func (d Database) BuildDSN() string {
	if d.Password == "" {
		return d.DSN
	}
	return fmt.Sprintf(d.DSN, d.Password)
}

//
// Geo section
//

// Geo points at an optional GeoLite2 database for request enrichment.
// Empty path disables geolocation; UA parsing still runs.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or LUVORA_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // LUVORA_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Pool     Pool     `koanf:"pool"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
