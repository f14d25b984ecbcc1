package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the frame wrapped around an encoded dump.
type Compression uint8

const (
	// CompressionNone writes the codec output as is.
	CompressionNone Compression = 0
	// CompressionLZ4 wraps the dump in an LZ4 frame (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD wraps the dump in a zstd frame (better ratio).
	CompressionZSTD Compression = 2
)

// Frame magic numbers, little endian.
const (
	lz4Magic  uint32 = 0x184D2204
	zstdMagic uint32 = 0xFD2FB528
)

var compressionNames = [...]string{"none", "lz4", "zstd"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Compression) MarshalText() ([]byte, error) {
	if int(c) >= len(compressionNames) {
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compression) UnmarshalText(b []byte) error {
	v, err := ParseCompression(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCompression maps "none", "lz4" or "zstd" (case-insensitive) to a
// Compression. The empty string means none.
func ParseCompression(name string) (Compression, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CompressionNone, nil
	}
	for i, s := range compressionNames {
		if s == n {
			return Compression(i), nil
		}
	}
	return CompressionNone, fmt.Errorf("unknown compression %q", name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewCompressWriter wraps w so that everything written is framed with c.
// Close flushes the frame but does not close w.
func NewCompressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
			return nil, err
		}
		return zw, nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}
}

// NewDecompressReader undoes NewCompressWriter for a known compression.
func NewDecompressReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}
}

// DetectCompression peeks at the first bytes of r to recognize an LZ4 or zstd
// frame. Anything else is reported as CompressionNone. The returned reader
// replays the peeked bytes.
func DetectCompression(r io.Reader) (Compression, io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return CompressionNone, br, err
	}
	if len(head) < 4 {
		return CompressionNone, br, nil
	}
	switch binary.LittleEndian.Uint32(head) {
	case lz4Magic:
		return CompressionLZ4, br, nil
	case zstdMagic:
		return CompressionZSTD, br, nil
	}
	return CompressionNone, br, nil
}

// Encode marshals v with c and frames the result with comp.
func Encode(w io.Writer, c Codec, comp Compression, v any) error {
	if c == nil {
		c = Default
	}
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec %s marshal: %w", c.Name(), err)
	}
	zw, err := NewCompressWriter(w, comp)
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Decode reads a dump written by Encode, detecting the compression, and
// unmarshals it into v with c.
func Decode(r io.Reader, c Codec, v any) error {
	if c == nil {
		c = Default
	}
	comp, br, err := DetectCompression(r)
	if err != nil {
		return err
	}
	zr, err := NewDecompressReader(br, comp)
	if err != nil {
		return err
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(zr); err != nil {
		return fmt.Errorf("read %s dump: %w", comp, err)
	}
	if err := c.Unmarshal(buf.Bytes(), v); err != nil {
		return fmt.Errorf("codec %s unmarshal: %w", c.Name(), err)
	}
	return nil
}
