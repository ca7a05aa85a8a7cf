// Package config loads and validates quizstats configuration.
//
// Sources are applied in order of increasing precedence:
//
//	1. Default values (Default)
//	2. An optional YAML file
//	3. Environment variables prefixed QUIZSTATS_
//
// Environment variables follow the nesting of Config:
//
//	QUIZSTATS_TOURNAMENT_ROUNDS=7
//	QUIZSTATS_TOURNAMENT_ROOMS=4
//	QUIZSTATS_TOURNAMENT_INPUT_DIR=scoresheets
//	QUIZSTATS_TOURNAMENT_PARSE_MODE=strict
//	QUIZSTATS_REPORT_FORMAT=csv
//	QUIZSTATS_LOGGING_LEVEL=debug
//
// The equivalent YAML file:
//
//	tournament:
//	  rounds: 7
//	  rooms: 4
//	  input_dir: scoresheets
//	  file_prefix: MATCH
//	  parse_mode: lenient
//	report:
//	  output_path: combined_stats.xlsx
//	  format: xlsx
//
// Validation runs after all sources are merged; a failure is returned as a
// CONFIG AppError.
package config
