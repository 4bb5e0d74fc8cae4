package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CHARTDESK_TEST_STR", "value")
	if got := getEnv("CHARTDESK_TEST_STR", "fallback"); got != "value" {
		t.Errorf("Expected set value, got %q", got)
	}
	if got := getEnv("CHARTDESK_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}

	t.Setenv("CHARTDESK_TEST_BOOL", "true")
	if !getEnvBool("CHARTDESK_TEST_BOOL", false) {
		t.Error("Expected true for set bool")
	}
	t.Setenv("CHARTDESK_TEST_BOOL", "not-a-bool")
	if !getEnvBool("CHARTDESK_TEST_BOOL", true) {
		t.Error("Expected fallback for unparseable bool")
	}
}

func TestDotenvQuoting(t *testing.T) {
	// Dataset URLs and paths may carry quotes; make sure the .env parser
	// unwraps them the way we rely on.
	path := filepath.Join(t.TempDir(), ".env")
	content := `SONGS_CSV='path with "quotes".csv'`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `path with "quotes".csv`
	if env["SONGS_CSV"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["SONGS_CSV"])
	}
}
