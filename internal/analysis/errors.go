package analysis

import "fmt"

// Stage names the pipeline stage that raised a fatal error, so the report
// layer can render a precise diagnostic.
type Stage string

const (
	StageFingerprint Stage = "fingerprint"
	StageCatalog     Stage = "catalog"
)

// IOError is fatal: the root path is unreadable or vanished mid-scan.
// Unreadable subdirectories are not IOErrors; they set the fingerprint's
// PartialRead flag and the run continues.
type IOError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
