package cli

import "testing"

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"InputDir", flags.InputDir, "input"},
		{"OutputDir", flags.OutputDir, "output"},
		{"SourceLang", flags.SourceLang, "en"},
		{"Workers", flags.Workers, 1},
		{"MaxAttempts", flags.MaxAttempts, 3},
		{"OutputPath", flags.OutputPath, ""},
		{"CachePath", flags.CachePath, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"TestKey", flags.TestKey},
		{"GUIMode", flags.GUIMode},
		{"FillEmptyOnly", flags.FillEmptyOnly},
		{"NoCache", flags.NoCache},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("Expected %s to default to false", tt.name)
			}
		})
	}

	if len(flags.TargetLangs) != 0 {
		t.Errorf("Expected no default target languages, got %v", flags.TargetLangs)
	}
}
