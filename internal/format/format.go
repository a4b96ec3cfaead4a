// Package format provides the config file codecs used by platform adapters.
//
// Every codec turns a file's bytes into a generic map and back. Structured
// formats (JSON, JSONC, TOML, YAML) decode as usual; document formats
// (Markdown, MDC) wrap their text in a map so callers can treat every
// config file the same way.
package format

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names as they appear in platform metadata.
const (
	NameJSON     = "json"
	NameJSONC    = "jsonc"
	NameTOML     = "toml"
	NameYAML     = "yaml"
	NameMarkdown = "markdown"
	NameMDC      = "mdc"
)

// Keys used by the document codecs.
const (
	KeyInstructions = "instructions"
	KeyFrontmatter  = "frontmatter"
	KeyBody         = "body"
)

// ErrUnknownFormat is returned by ByName for unrecognized format names.
var ErrUnknownFormat = errors.New("unknown config format")

// Codec converts between a config file's bytes and a generic map.
type Codec interface {
	// Name returns the format name.
	Name() string

	// Decode parses data. Empty input decodes to an empty map.
	Decode(data []byte) (map[string]any, error)

	// Encode renders cfg. A nil map encodes like an empty one.
	Encode(cfg map[string]any) ([]byte, error)
}

// ByName returns the codec for a format name.
func ByName(name string) (Codec, error) {
	switch name {
	case NameJSON:
		return JSON{}, nil
	case NameJSONC:
		return JSONC{}, nil
	case NameTOML:
		return TOML{}, nil
	case NameYAML, "yml":
		return YAML{}, nil
	case NameMarkdown, "md":
		return Markdown{}, nil
	case NameMDC:
		return MDC{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// Transcode decodes data with from and re-encodes it with to.
func Transcode(data []byte, from, to Codec) ([]byte, error) {
	cfg, err := from.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", from.Name())
	}
	out, err := to.Encode(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", to.Name())
	}
	return out, nil
}

// JSON is the plain JSON codec. Output uses two-space indentation.
type JSON struct{}

// Name implements Codec.
func (JSON) Name() string { return NameJSON }

// Decode implements Codec.
func (JSON) Decode(data []byte) (map[string]any, error) {
	if isBlank(data) {
		return map[string]any{}, nil
	}
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	return orEmpty(cfg), nil
}

// Encode implements Codec.
func (JSON) Encode(cfg map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(orEmpty(cfg), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return append(data, '\n'), nil
}

// TOML is the TOML codec backed by pelletier/go-toml.
type TOML struct{}

// Name implements Codec.
func (TOML) Name() string { return NameTOML }

// Decode implements Codec.
func (TOML) Decode(data []byte) (map[string]any, error) {
	var cfg map[string]any
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing TOML")
	}
	return orEmpty(cfg), nil
}

// Encode implements Codec.
func (TOML) Encode(cfg map[string]any) ([]byte, error) {
	data, err := toml.Marshal(orEmpty(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "marshaling TOML")
	}
	return data, nil
}

// YAML is the YAML codec backed by gopkg.in/yaml.v3.
type YAML struct{}

// Name implements Codec.
func (YAML) Name() string { return NameYAML }

// Decode implements Codec.
func (YAML) Decode(data []byte) (map[string]any, error) {
	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing YAML")
	}
	return orEmpty(cfg), nil
}

// Encode implements Codec.
func (YAML) Encode(cfg map[string]any) (out []byte, err error) {
	// yaml.Marshal panics on some unmarshalable values
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(orEmpty(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "marshaling YAML")
	}
	return data, nil
}

func orEmpty(cfg map[string]any) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return cfg
}

func isBlank(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
