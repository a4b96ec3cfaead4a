package format

import (
	"testing"
)

func TestJSONC_Decode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantVal any
		wantErr bool
	}{
		{
			name:    "line comments",
			input:   "{\n  // the model\n  \"model\": \"x\"\n}",
			wantKey: "model",
			wantVal: "x",
		},
		{
			name:    "block comment",
			input:   "{ /* provider\n settings */ \"provider\": \"anthropic\" }",
			wantKey: "provider",
			wantVal: "anthropic",
		},
		{
			name:    "slashes inside strings survive",
			input:   `{"url": "https://opencode.ai/config.json" // schema` + "\n}",
			wantKey: "url",
			wantVal: "https://opencode.ai/config.json",
		},
		{
			name:    "escaped quote inside string",
			input:   `{"cmd": "echo \"// not a comment\""}`,
			wantKey: "cmd",
			wantVal: `echo "// not a comment"`,
		},
		{
			name:    "trailing commas",
			input:   "{\n  \"instructions\": [\"CLAUDE.md\",],\n  \"model\": \"x\",\n}",
			wantKey: "model",
			wantVal: "x",
		},
		{
			name:    "comma inside string is kept",
			input:   `{"s": "a, ]"}`,
			wantKey: "s",
			wantVal: "a, ]",
		},
		{
			name:    "invalid",
			input:   "{ \"a\": }",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := JSONC{}.Decode([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := cfg[tt.wantKey]; got != tt.wantVal {
				t.Errorf("Decode()[%q] = %v, want %v", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestStripJSONComments_PreservesLines(t *testing.T) {
	in := "{\n/* a\nb */\n\"k\": 1 // c\n}"
	out := StripJSONComments([]byte(in))

	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}
	for i := range in {
		if in[i] == '\n' && out[i] != '\n' {
			t.Errorf("newline at %d was not preserved", i)
		}
	}
}
