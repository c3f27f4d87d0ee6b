// Package snapshot converts a TicketStore to and from bytes.
// Three formats are supported: YAML (default), JSON (comments and trailing
// commas tolerated on read) and CBOR.
package snapshot

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/ironjira/internal/domain"
)

// Format names.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Ensure codecs implement domain.Codec.
var (
	_ domain.Codec = YAMLCodec{}
	_ domain.Codec = JSONCodec{}
	_ domain.Codec = CBORCodec{}
)

// YAMLCodec encodes snapshots as YAML.
type YAMLCodec struct{}

// Format returns "yaml".
func (YAMLCodec) Format() string { return FormatYAML }

// Encode serializes snap as YAML.
func (YAMLCodec) Encode(snap domain.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}

// Decode parses YAML into a snapshot.
func (YAMLCodec) Decode(data []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// JSONCodec encodes snapshots as indented JSON.
type JSONCodec struct{}

// Format returns "json".
func (JSONCodec) Format() string { return FormatJSON }

// Encode serializes snap as indented JSON.
func (JSONCodec) Encode(snap domain.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses JSON into a snapshot.
// Line comments, block comments and trailing commas are stripped first.
func (JSONCodec) Decode(data []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if len(strings.TrimSpace(string(data))) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// cborEncMode uses Core Deterministic Encoding so the same store always
// produces identical bytes. Times are written as RFC 3339 strings with
// nanoseconds so nothing is lost on a round trip.
var cborEncMode cbor.EncMode

var cborDecMode cbor.DecMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	cborEncMode, err = opts.EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec encodes snapshots as CBOR.
type CBORCodec struct{}

// Format returns "cbor".
func (CBORCodec) Format() string { return FormatCBOR }

// Encode serializes snap as CBOR.
func (CBORCodec) Encode(snap domain.Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(snap)
}

// Decode parses CBOR into a snapshot.
func (CBORCodec) Decode(data []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if len(data) == 0 {
		return snap, nil
	}
	if err := cborDecMode.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// CodecFor returns the codec for a format name.
// An empty name selects YAML.
func CodecFor(format string) (domain.Codec, error) {
	switch strings.ToLower(format) {
	case "", FormatYAML, "yml":
		return YAMLCodec{}, nil
	case FormatJSON, "jsonc":
		return JSONCodec{}, nil
	case FormatCBOR:
		return CBORCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// FormatFromPath guesses the format from a file extension.
// Unknown extensions map to YAML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".cbor":
		return FormatCBOR
	default:
		return FormatYAML
	}
}

// CodecForPath returns the codec for an explicit format, or the one implied
// by path when format is empty.
func CodecForPath(format, path string) (domain.Codec, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	return CodecFor(format)
}
