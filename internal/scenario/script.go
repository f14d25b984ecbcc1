// Package scenario replays YAML scripts of simulator operations.
//
// A script is a list of steps:
//
//	name: fragment-and-repair
//	steps:
//	  - {op: mkdir, name: docs, as: docs}
//	  - {op: create, name: a.txt, parent: docs, size: 5, strategy: contiguous, as: a}
//	  - {op: crash, severity: 0.3}
//	  - {op: recover}
//	  - {op: read, file: a}
//
// "as" binds the id of a created entry to an alias. "file" and "parent"
// accept an alias or a literal id; an empty parent means the root.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Op names a step operation.
type Op string

const (
	OpMkdir   Op = "mkdir"
	OpCreate  Op = "create"
	OpDelete  Op = "delete"
	OpRead    Op = "read"
	OpCrash   Op = "crash"
	OpRecover Op = "recover"
	OpFsck    Op = "fsck"
	OpDefrag  Op = "defrag"
	OpStats   Op = "stats"
)

var knownOps = map[Op]bool{
	OpMkdir: true, OpCreate: true, OpDelete: true, OpRead: true, OpCrash: true,
	OpRecover: true, OpFsck: true, OpDefrag: true, OpStats: true,
}

// ErrInvalidScript is returned for scripts that cannot be replayed.
var ErrInvalidScript = errors.New("invalid scenario script")

// Step is one scripted operation.
type Step struct {
	Op       Op      `yaml:"op"`
	Name     string  `yaml:"name,omitempty"`
	As       string  `yaml:"as,omitempty"`
	File     string  `yaml:"file,omitempty"`
	Parent   string  `yaml:"parent,omitempty"`
	Size     int     `yaml:"size,omitempty"`
	Strategy string  `yaml:"strategy,omitempty"`
	Severity float64 `yaml:"severity,omitempty"`
}

// Script is a named list of steps.
type Script struct {
	Name string `yaml:"name,omitempty"`
	// ContinueOnError keeps replaying after a step fails.
	ContinueOnError bool   `yaml:"continueOnError,omitempty"`
	Steps           []Step `yaml:"steps"`
}

// Parse decodes a YAML script. Unknown fields are rejected.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return s, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	return s, s.Validate()
}

// Load reads and parses the script at path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Marshal encodes s as YAML with a two-space indent.
func Marshal(w io.Writer, s Script) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	return enc.Close()
}

// Validate checks step shapes. It does not resolve aliases; those bind at
// replay time.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	aliases := map[string]bool{}
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return fmt.Errorf("%w: step %d: unknown op %q", ErrInvalidScript, i, st.Op)
		}
		switch st.Op {
		case OpMkdir, OpCreate:
			if st.Name == "" {
				return fmt.Errorf("%w: step %d: %s needs a name", ErrInvalidScript, i, st.Op)
			}
		case OpDelete, OpRead:
			if st.File == "" {
				return fmt.Errorf("%w: step %d: %s needs a file", ErrInvalidScript, i, st.Op)
			}
		}
		if st.As != "" {
			if st.Op != OpMkdir && st.Op != OpCreate {
				return fmt.Errorf("%w: step %d: only mkdir and create bind aliases", ErrInvalidScript, i)
			}
			if aliases[st.As] {
				return fmt.Errorf("%w: step %d: alias %q bound twice", ErrInvalidScript, i, st.As)
			}
			aliases[st.As] = true
		}
	}
	return nil
}
