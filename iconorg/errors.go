package iconorg

import (
	"errors"
	"fmt"
)

// Sentinel errors for per-file failures. A FileError unwraps to the sentinel
// matching its Kind as well as to the underlying cause.
var (
	ErrUnreadableFile   = errors.New("file cannot be opened or read")
	ErrUndecodableImage = errors.New("image content cannot be decoded")
	ErrOutputWrite      = errors.New("output file cannot be written")
)

// Kind classifies a per-file failure.
type Kind int

const (
	KindUnreadable Kind = iota + 1
	KindUndecodable
	KindWriteFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnreadable:
		return "unreadable"
	case KindUndecodable:
		return "undecodable"
	case KindWriteFailure:
		return "write_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnreadable:
		return ErrUnreadableFile
	case KindUndecodable:
		return ErrUndecodableImage
	case KindWriteFailure:
		return ErrOutputWrite
	default:
		return nil
	}
}

// MarshalText lets Kind appear by name in the JSON report.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for _, c := range []Kind{KindUnreadable, KindUndecodable, KindWriteFailure} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", text)
}

// Stage names the pipeline step in which a failure happened.
type Stage string

const (
	StageDigest      Stage = "digest"
	StageFingerprint Stage = "fingerprint"
	StageCopy        Stage = "copy"
)

// FileError records a non-fatal failure for a single path.
type FileError struct {
	Path  string
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Stage, e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	errs := []error{e.Err}
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}
