package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Mode fields.
	FieldLanguage   = "language"
	FieldIndentUnit = "indent_unit"
	FieldTabSize    = "tab_size"
	FieldBlock      = "blocks"

	// Run fields.
	FieldCommand = "command"
	FieldWrite   = "write"
	FieldCheck   = "check"
	FieldJobs    = "jobs"
	FieldBackup  = "backup"
	FieldReason  = "reason"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesChanged    = "files_changed"
	FieldLinesChanged    = "lines_changed"
	FieldTokens          = "tokens"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
