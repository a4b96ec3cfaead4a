package format

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSONC reads JSON with "//" and "/* */" comments and trailing commas, as
// used by OpenCode. It writes plain JSON, so comments do not survive a
// rewrite.
type JSONC struct{}

// Name implements Codec.
func (JSONC) Name() string { return NameJSONC }

// Decode implements Codec.
func (JSONC) Decode(data []byte) (map[string]any, error) {
	clean := StripJSONComments(data)
	if isBlank(clean) {
		return map[string]any{}, nil
	}
	var cfg map[string]any
	if err := json.Unmarshal(clean, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing JSONC")
	}
	return orEmpty(cfg), nil
}

// Encode implements Codec.
func (JSONC) Encode(cfg map[string]any) ([]byte, error) {
	return JSON{}.Encode(cfg)
}

// StripJSONComments removes comments and trailing commas from JSONC input.
// String literals are left untouched, so URLs such as "https://x" survive.
// Comment bytes are replaced by spaces (newlines are kept) so error offsets
// still point at the right line.
func StripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))

	const (
		stateCode = iota
		stateString
		stateLineComment
		stateBlockComment
	)
	state := stateCode

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch state {
		case stateString:
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				out = append(out, c)
				state = stateCode
			} else {
				out = append(out, ' ')
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				out = append(out, ' ', ' ')
				i++
				state = stateCode
			} else if c == '\n' {
				out = append(out, c)
			} else {
				out = append(out, ' ')
			}
		default:
			switch {
			case c == '"':
				out = append(out, c)
				state = stateString
			case c == '/' && i+1 < len(data) && data[i+1] == '/':
				out = append(out, ' ', ' ')
				i++
				state = stateLineComment
			case c == '/' && i+1 < len(data) && data[i+1] == '*':
				out = append(out, ' ', ' ')
				i++
				state = stateBlockComment
			default:
				out = append(out, c)
			}
		}
	}

	return stripTrailingCommas(out)
}

// stripTrailingCommas blanks commas that are followed only by whitespace
// before a closing bracket or brace. Input must already be comment-free.
func stripTrailingCommas(data []byte) []byte {
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			rest := bytes.TrimLeft(data[i+1:], " \t\r\n")
			if len(rest) > 0 && (rest[0] == '}' || rest[0] == ']') {
				data[i] = ' '
			}
		}
	}
	return data
}
