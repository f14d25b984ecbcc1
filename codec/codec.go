// Package codec centralizes how simulator state is encoded for export.
//
// A dump is the codec's output, optionally wrapped in a zstd or lz4 frame.
// Compressed dumps are self-describing: DetectCompression recognizes the frame
// magic, so readers only need to know the codec.
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names returns the names accepted by ByName, sorted.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name()}
	sort.Strings(names)
	return names
}

// Parse is ByName with an error for unknown names.
func Parse(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (want one of %v)", name, Names())
	}
	return c, nil
}
