package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputPath string
	InputDir   string
	OutputDir  string
	TestKey    bool
	GUIMode    bool

	// Translation flags
	SourceLang    string
	TargetLangs   []string
	FillEmptyOnly bool
	Workers       int

	// Translation memory flags
	NoCache   bool
	CachePath string

	// Retry flags
	MaxAttempts int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputDir:    "input",
		OutputDir:   "output",
		SourceLang:  "en",
		Workers:     1,
		MaxAttempts: 3,
	}
}
