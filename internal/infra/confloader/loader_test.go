package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server testServerSection `koanf:"server"`
	Env    string            `koanf:"env"`
}

type testServerSection struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	ReadTimeout time.Duration `koanf:"read_timeout"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_Options(t *testing.T) {
	l := NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/tmp/x.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/tmp/x.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/tmp/x.yaml")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  host: 10.0.0.1\n  port: 4000\n  read_timeout: 5s\nenv: test\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "10.0.0.1" {
		t.Errorf("Host = %q, want 10.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Env != "test" {
		t.Errorf("Env = %q, want test", cfg.Env)
	}
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	var cfg testConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() should fail for missing file")
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("GREETD_SERVER_HOST", "envhost")
	t.Setenv("GREETD_SERVER_PORT", "4100")
	t.Setenv("GREETD_ENV", "production")

	l := NewLoader()
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "envhost" {
		t.Errorf("Host = %q, want envhost", cfg.Server.Host)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Port = %d, want 4100", cfg.Server.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
}

func TestLoader_EnvKeyTransform(t *testing.T) {
	// Underscores inside key names must survive: only the first
	// underscore after the prefix separates section from key.
	t.Setenv("GREETD_SERVER_READ_TIMEOUT", "7s")

	l := NewLoader()
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 7*time.Second {
		t.Errorf("ReadTimeout = %v, want 7s", cfg.Server.ReadTimeout)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("GREETD_SERVER_PORT", "4200")

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 4200 {
		t.Errorf("Port = %d, env should override file, want 4200", cfg.Server.Port)
	}
}
