package config

// Application constants
const (
	AppName = "quizstats"

	// EnvPrefix namespaces environment overrides, e.g. QUIZSTATS_TOURNAMENT_ROUNDS.
	EnvPrefix = "QUIZSTATS"

	// Tournament defaults
	DefaultRounds     = 7
	DefaultRooms      = 4
	DefaultInputDir   = "scoresheets"
	DefaultFilePrefix = "MATCH"
	ScoresheetExt     = ".xlsx"

	// Report defaults
	DefaultOutputPath = "combined_stats.xlsx"

	// Log settings
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/quizstats.log"

	// CompletionMessage is printed once the report has been written
	CompletionMessage = "Stats Successfully Compiled."
)

// Parse modes for scoresheet cells
const (
	ParseModeLenient = "lenient"
	ParseModeStrict  = "strict"
)

// Report formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)
