package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_REAPER_ENABLED", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Fatalf("expected provider gemini, got %s", cfg.Provider)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if !cfg.ReaperEnabled {
		t.Fatal("expected reaper enabled by default")
	}
	if cfg.ReaperSchedule != "* * * * *" {
		t.Fatalf("expected every-minute schedule, got %s", cfg.ReaperSchedule)
	}
}

func TestLoadConfig_UnsupportedProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "unknown")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "db", Port: "5433", User: "prep", Password: "secret", Name: "prepdb", SSLMode: "disable",
	}.DSN()

	want := "host=db user=prep password=secret dbname=prepdb port=5433 sslmode=disable"
	if dsn != want {
		t.Fatalf("DSN = %q, want %q", dsn, want)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("UNIT_TEST_ENV", "value")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("UNIT_TEST_ENV", "")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %s", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("UNIT_TEST_BOOL", "false")
	if getEnvBool("UNIT_TEST_BOOL", true) {
		t.Fatal("expected false from env")
	}
	t.Setenv("UNIT_TEST_BOOL", "nonsense")
	if !getEnvBool("UNIT_TEST_BOOL", true) {
		t.Fatal("expected default on unparseable value")
	}
}
