package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dumpDoc struct {
	Name   string   `json:"name"`
	Blocks []int    `json:"blocks"`
	Labels []string `json:"labels"`
}

func sampleDoc() dumpDoc {
	d := dumpDoc{Name: "disk"}
	for i := 0; i < 256; i++ {
		d.Blocks = append(d.Blocks, i%7)
		d.Labels = append(d.Labels, "free")
	}
	return d
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)

	_, err := Parse("msgpack")
	require.Error(t, err)
	assert.Equal(t, []string{"go-json", "json"}, Names())
}

func TestCodecsInterchangeable(t *testing.T) {
	doc := sampleDoc()

	data, err := GoJSON{}.Marshal(doc)
	require.NoError(t, err)

	var back dumpDoc
	require.NoError(t, JSON{}.Unmarshal(data, &back))
	assert.Equal(t, doc, back)
}

func TestEncodeDecodeAllCompressions(t *testing.T) {
	doc := sampleDoc()

	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, nil, comp, doc))

			detected, _, err := DetectCompression(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, comp, detected)

			var back dumpDoc
			require.NoError(t, Decode(&buf, JSON{}, &back))
			assert.Equal(t, doc, back)
		})
	}
}

func TestCompressionShrinksRepetitiveDumps(t *testing.T) {
	doc := sampleDoc()

	var plain, zstd bytes.Buffer
	require.NoError(t, Encode(&plain, GoJSON{}, CompressionNone, doc))
	require.NoError(t, Encode(&zstd, GoJSON{}, CompressionZSTD, doc))
	assert.Less(t, zstd.Len(), plain.Len())
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{
		"":      CompressionNone,
		"none":  CompressionNone,
		"LZ4":   CompressionLZ4,
		" zstd": CompressionZSTD,
	} {
		got, err := ParseCompression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCompression("gzip")
	require.Error(t, err)

	var c Compression
	require.NoError(t, c.UnmarshalText([]byte("zstd")))
	assert.Equal(t, CompressionZSTD, c)
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "zstd", string(text))
}

func TestDetectShortInput(t *testing.T) {
	c, r, err := DetectCompression(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	var sb bytes.Buffer
	_, err = sb.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "{}", sb.String())
}
