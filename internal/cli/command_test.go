package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "csvtranslator [input.csv]" {
		t.Errorf("Expected Use to be 'csvtranslator [input.csv]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "localization CSV") {
		t.Errorf("Expected Short description to mention localization CSV")
	}

	flagTests := []string{
		"config",
		"output",
		"input-dir",
		"output-dir",
		"source",
		"target",
		"fill-empty",
		"workers",
		"test-key",
		"gui",
		"no-cache",
		"cache-path",
		"max-attempts",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestParseTargetFlag(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if err := cmd.ParseFlags([]string{"--target", "de,fr", "-t", "ja"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	want := []string{"de", "fr", "ja"}
	if len(flags.TargetLangs) != len(want) {
		t.Fatalf("TargetLangs = %v, want %v", flags.TargetLangs, want)
	}
	for i, lang := range want {
		if flags.TargetLangs[i] != lang {
			t.Errorf("TargetLangs[%d] = %q, want %q", i, flags.TargetLangs[i], lang)
		}
	}
}

func TestGetDeepLKeyPrefersEnvironment(t *testing.T) {
	t.Setenv("DEEPL_API_KEY", "env-key")
	viper.Set("deepl.api_key", "config-key")
	defer viper.Reset()

	if got := GetDeepLKey(); got != "env-key" {
		t.Errorf("Expected environment key, got %q", got)
	}

	t.Setenv("DEEPL_API_KEY", "")
	if got := GetDeepLKey(); got != "config-key" {
		t.Errorf("Expected config key, got %q", got)
	}
}

func TestSaveAndLoadTargets(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".csvtranslator.yaml")
	if err := os.WriteFile(cfgPath, []byte("deepl:\n  api_key: dummy\n"), 0644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	viper.Reset()
	defer viper.Reset()
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if err := SaveLastUsedTargets([]string{"de", "fr"}); err != nil {
		t.Fatalf("SaveLastUsedTargets failed: %v", err)
	}

	// A fresh viper instance reads the same values back.
	viper.Reset()
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to re-read config: %v", err)
	}

	got := LastUsedTargets()
	if len(got) != 2 || got[0] != "de" || got[1] != "fr" {
		t.Errorf("LastUsedTargets = %v, want [de fr]", got)
	}
}

func TestSaveAPIKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".csvtranslator.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	viper.Reset()
	defer viper.Reset()
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if err := SaveAPIKey("saved-key"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("Failed to read config back: %v", err)
	}
	if !strings.Contains(string(data), "saved-key") {
		t.Errorf("Expected key persisted to config, got:\n%s", data)
	}
}
