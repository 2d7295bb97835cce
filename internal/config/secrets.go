// internal/config/secrets.go
//
// Vault reference resolution.
//
// Context
// -------
// Operators keep credentials out of flat files by writing config values
// as `vault:<mount>/<path>#<key>`.  ResolveSecrets walks the fields that
// may carry such references and rewrites them in place through the Vault
// client.  It is called from main() after Load(), and only when at least
// one reference is present, so dev setups without Vault keep working.

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/luvora/luvora/internal/vault"
)

const vaultPrefix = "vault:"

// secretTTL caches resolved values inside the Vault client; config is
// only re-resolved on Reload, so a long TTL is fine.
const secretTTL = 30 * time.Minute

// HasSecretRefs reports whether any config field carries a vault: value.
func (c *Config) HasSecretRefs() bool {
	return strings.HasPrefix(c.Database.Password, vaultPrefix)
}

// ResolveSecrets rewrites every vault: reference through cli.  The
// config is mutated in place; call before handing cfg to consumers.
func (c *Config) ResolveSecrets(ctx context.Context, cli *vault.Client) error {
	fields := []*string{&c.Database.Password}
	for _, f := range fields {
		if !strings.HasPrefix(*f, vaultPrefix) {
			continue
		}
		val, err := resolveRef(ctx, cli, *f)
		if err != nil {
			return err
		}
		*f = val
	}
	return nil
}

// resolveRef splits `vault:mount/path#key` and fetches the value.
func resolveRef(ctx context.Context, cli *vault.Client, ref string) (string, error) {
	body := strings.TrimPrefix(ref, vaultPrefix)
	path, key, ok := strings.Cut(body, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("config: malformed vault reference %q", ref)
	}
	return cli.GetKV(ctx, path, key, secretTTL)
}
