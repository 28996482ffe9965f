package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/caarlos0/env/v11"

	"github.com/unkn0wn-root/keycache"
)

const keysXML = `<Cache>
  <HashDb db="0-2" expire="0:30:0">
    <Users key="users" />
  </HashDb>
  <DataDb>
    <Profile key="profile" />
  </DataDb>
</Cache>`

func run(t *testing.T, cfg envConfig, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func keysFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cache.xml")
	if err := os.WriteFile(p, []byte(keysXML), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func testEnv(t *testing.T, vars map[string]string) envConfig {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	var cfg envConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		t.Fatalf("env: %v", err)
	}
	return cfg
}

func TestEnvDefaults(t *testing.T) {
	cfg := testEnv(t, map[string]string{"KEYCACHE_REDIS_PASSWORD": "pw"})
	if cfg.RedisAddr != "localhost:6379" || cfg.LogLevel != "warn" || cfg.RedisPassword != "pw" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestList(t *testing.T) {
	out, err := run(t, testEnv(t, nil), "--keys", keysFile(t), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"NODE", "HashDb", "users", "0,1,2", "30m0s", "Profile"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestResolve(t *testing.T) {
	out, err := run(t, testEnv(t, map[string]string{"KEYCACHE_KEYS": keysFile(t)}), "--prefix", "app:", "resolve", "HashDb", "Users", "42", "EU")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, "key\tapp:hash_db:users:42:eu\ndb\t0\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	_, err = run(t, testEnv(t, nil), "--keys", keysFile(t), "resolve", "HashDb", "Nope")
	if !errors.Is(err, keycache.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestMissingKeysFlag(t *testing.T) {
	if _, err := run(t, testEnv(t, nil), "list"); err == nil {
		t.Fatalf("expected error without --keys")
	}
	if _, err := run(t, testEnv(t, map[string]string{"KEYCACHE_LOG_LEVEL": "loud"}), "list"); err == nil {
		t.Fatalf("expected invalid log level error")
	}
}

func TestTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testEnv(t, map[string]string{"KEYCACHE_REDIS_ADDR": mr.Addr()})
	mr.Set("data_db:profile:7", "x")
	mr.SetTTL("data_db:profile:7", time.Minute)

	out, err := run(t, cfg, "--keys", keysFile(t), "ttl", "DataDb", "Profile", "7")
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if out != "data_db:profile:7\t1m0s\n" {
		t.Fatalf("out = %q", out)
	}

	out, _ = run(t, cfg, "--keys", keysFile(t), "ttl", "DataDb", "Profile", "8")
	if !strings.Contains(out, "missing") {
		t.Fatalf("out = %q", out)
	}
}
