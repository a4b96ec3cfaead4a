package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{name: "markdown", data: []byte("# Rules\n\n## Style\nUse tabs.\n"), perm: 0o644},
		{name: "empty data", data: []byte{}, perm: 0o644},
		{name: "private file", data: []byte("token = \"x\"\n"), perm: 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			if runtime.GOOS == "windows" {
				return
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file.md")
	if err := AtomicWriteFile(path, []byte("x"), 0o644); err == nil {
		t.Error("AtomicWriteFile() into missing directory should fail")
	}
}

func TestAtomicWriteFile_OverwriteLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CLAUDE.md")

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only CLAUDE.md", names)
	}
}

func TestWriteFileAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cursor", "rules", "main.mdc")

	if err := WriteFileAll(path, []byte("---\n---\n")); err != nil {
		t.Fatalf("WriteFileAll() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "---\n---\n" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteFileAll_KeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAll(path, []byte(`{"model":"o3"}`)); err != nil {
		t.Fatalf("WriteFileAll() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %o, want 600", info.Mode().Perm())
	}
}

func TestWriteFileAll_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}

	dir := t.TempDir()
	real := filepath.Join(dir, "dotfiles", "config.toml")
	if err := os.MkdirAll(filepath.Dir(real), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(real, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "config.toml")
	if err := os.Symlink(real, link); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAll(link, []byte("new")); err != nil {
		t.Fatalf("WriteFileAll() error = %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink was replaced by a regular file")
	}
	if got, _ := os.ReadFile(real); string(got) != "new" {
		t.Errorf("link target content = %q, want %q", got, "new")
	}

	// a dangling link gets its target created
	dangling := filepath.Join(dir, "AGENTS.md")
	if err := os.Symlink(filepath.Join("shared", "AGENTS.md"), dangling); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAll(dangling, []byte("# Agents")); err != nil {
		t.Fatalf("WriteFileAll() on dangling link error = %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "shared", "AGENTS.md")); string(got) != "# Agents" {
		t.Errorf("dangling target content = %q", got)
	}
}

func TestWriteFileAll_Directory(t *testing.T) {
	if err := WriteFileAll(t.TempDir(), []byte("x")); err == nil {
		t.Error("WriteFileAll() onto a directory should fail")
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	in := map[string]any{"platform": "codex", "files": []string{"AGENTS.md"}}

	if err := AtomicWriteJSON(path, in); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("JSON output should end with a newline")
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out["platform"] != "codex" {
		t.Errorf("platform = %v, want codex", out["platform"])
	}
}

func TestAtomicWriteJSON_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := AtomicWriteJSON(path, map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("AtomicWriteJSON() with channel value should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed write should not create the file")
	}
}
