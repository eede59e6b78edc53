package entities

// CopyOptions holds runtime options for a single copy run.
type CopyOptions struct {
	Source      string
	Destination string
	WorkDir     string // Directory the repository root is resolved from
	DryRun      bool
}

// CopyResult summarises what a tree copy did.
type CopyResult struct {
	FilesCopied        int
	DirectoriesCreated int
	SymlinksCopied     int
	Skipped            int
	Pending            []PendingSubmodule
}
