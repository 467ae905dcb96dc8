package vfs

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Command completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid memvfs.yaml or environment overrides
	ExitInvalidPath  = 20 // Malformed path or impossible path arithmetic
	ExitNotFound     = 21 // File, directory or parent does not exist
	ExitConflict     = 22 // Entry already exists
	ExitNotEmpty     = 23 // Directory still has children
	ExitUnsupported  = 24 // Operation not supported by the backend or channel
)

const (
	// DefaultInitialCapacity is the initial byte capacity of a new content buffer.
	DefaultInitialCapacity = 256

	// DefaultGrowthIncrement of 0 selects doubling growth.
	DefaultGrowthIncrement = 0

	// DefaultFlushThreshold is the size of the staging area in front of a
	// content buffer's backing array.
	DefaultFlushThreshold = 64

	// TempDirName is the directory under the root where TempDir creates entries.
	TempDirName = "tmp"
)
