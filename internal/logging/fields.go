package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldGrammar  = "grammar"
	FieldLanguage = "language"
	FieldBlocks   = "blocks"
	FieldJobs     = "jobs"
	FieldFormat   = "format"

	FieldTokens          = "tokens"
	FieldLexErrors       = "lex_errors"
	FieldUnclosed        = "unclosed"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
