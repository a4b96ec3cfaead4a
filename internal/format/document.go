package format

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aibridge/pkg/frontmatter"
)

// Markdown treats the whole file as prose: it decodes to
// {"instructions": text} and encodes the "instructions" value back.
type Markdown struct{}

// Name implements Codec.
func (Markdown) Name() string { return NameMarkdown }

// Decode implements Codec. It never fails.
func (Markdown) Decode(data []byte) (map[string]any, error) {
	return map[string]any{KeyInstructions: string(data)}, nil
}

// Encode implements Codec.
func (Markdown) Encode(cfg map[string]any) ([]byte, error) {
	s, _ := cfg[KeyInstructions].(string)
	return []byte(s), nil
}

// MDC is Markdown with an optional YAML frontmatter block, the format of
// Cursor rule files. It decodes to {"frontmatter": map, "body": text}.
// Invalid frontmatter is not an error: the whole file becomes the body.
type MDC struct{}

// Name implements Codec.
func (MDC) Name() string { return NameMDC }

// Decode implements Codec. It never fails.
func (MDC) Decode(data []byte) (map[string]any, error) {
	matter, body := SplitMDC(string(data))
	return map[string]any{KeyFrontmatter: matter, KeyBody: body}, nil
}

// Encode implements Codec. An empty frontmatter map yields only the body;
// with no body the "instructions" value is used instead.
func (MDC) Encode(cfg map[string]any) ([]byte, error) {
	body, _ := cfg[KeyBody].(string)
	if body == "" {
		body, _ = cfg[KeyInstructions].(string)
	}

	matter, _ := cfg[KeyFrontmatter].(map[string]any)
	if len(matter) == 0 {
		return []byte(body), nil
	}

	out, err := frontmatter.Format(matter, body)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// SplitMDC separates frontmatter from body. The body is trimmed. When the
// block is missing or not valid YAML the frontmatter is an empty map and the
// body is the untouched content.
func SplitMDC(content string) (map[string]any, string) {
	raw, body, ok := frontmatter.Split(content)
	if !ok {
		return map[string]any{}, content
	}

	matter := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &matter); err != nil || matter == nil {
			return map[string]any{}, content
		}
	}
	return matter, strings.TrimSpace(body)
}

// JSONOrMarkdown decodes JSON settings when the file is a JSON object and
// otherwise treats it as prose, like Markdown. Encoding a map whose only key
// is "instructions" writes the bare text; anything else becomes JSON.
type JSONOrMarkdown struct{}

// Name implements Codec.
func (JSONOrMarkdown) Name() string { return NameJSON }

// Decode implements Codec. It never fails.
func (JSONOrMarkdown) Decode(data []byte) (map[string]any, error) {
	if gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject() {
		var cfg map[string]any
		if err := json.Unmarshal(data, &cfg); err == nil {
			return orEmpty(cfg), nil
		}
	}
	return Markdown{}.Decode(data)
}

// Encode implements Codec.
func (JSONOrMarkdown) Encode(cfg map[string]any) ([]byte, error) {
	if s, ok := cfg[KeyInstructions].(string); ok && len(cfg) == 1 {
		return []byte(s), nil
	}
	return JSON{}.Encode(cfg)
}

// InstructionsFromJSON returns the string at the "instructions" key of a JSON
// object. ok is false when content is not a JSON object.
func InstructionsFromJSON(content string) (text string, ok bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return "", false
	}
	return gjson.Get(trimmed, KeyInstructions).String(), true
}

// ErrNotJSON is returned by SetPath when the document is not valid JSON.
var ErrNotJSON = errors.New("document is not valid JSON")

// LookupPath returns the value at a dotted path ("agent.default_model.model")
// in cfg, using gjson path syntax over the map's JSON encoding.
func LookupPath(cfg map[string]any, path string) (any, bool) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, false
	}
	r := gjson.GetBytes(data, path)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// SetPath sets the value at a dotted path in a JSON document and returns the
// edited document. Unlike a decode and re-encode, key order and formatting of
// untouched parts are kept. Documents with comments are rejected.
func SetPath(data []byte, path string, value any) ([]byte, error) {
	if !isBlank(data) && !gjson.ValidBytes(data) {
		return nil, ErrNotJSON
	}
	if isBlank(data) {
		data = []byte("{}")
	}
	out, err := sjson.SetBytes(data, path, value)
	if err != nil {
		return nil, errors.Wrapf(err, "setting %s", path)
	}
	return out, nil
}
