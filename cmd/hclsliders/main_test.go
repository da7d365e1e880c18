package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CLICOLOR_FORCE", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hclsliders.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestColorCommands(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.hcl")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"convert", []string{"convert", "#ff0000", "--to", "hsv"}, "hsv(0, 1, 1)\n"},
		{"convert keeps hue", []string{"convert", "#808080", "--to", "hsv", "--hue", "120"}, "hsv(120, 0, 0.502)\n"},
		{"parse as oklch", []string{"parse", "--as", "oklch", "70% 0.1 30"}, ""},
		{"set hue", []string{"--settings", missing, "set", "hsvHue", "#ff0000", "120"}, "#00ff00\n"},
		{"set value", []string{"--settings", missing, "set", "hsvValue", "#ff0000", "50"}, "#800000\n"},
		{"gradient", []string{"--settings", missing, "gradient", "hsvValue", "#ff0000", "--points", "3"}, "#000000\n#800000\n#ff0000\n"},
		{"version", []string{"version"}, "dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stderr, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("error = %v\n%s", err, stderr)
			}
			if tt.want != "" && out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	out, _, err := run(t, "parse", "oklch(70% 0.1 30)")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[2] != "oklch  oklch(70% 0.1 30)" {
		t.Errorf("oklch line = %q", lines[2])
	}
	if !strings.HasPrefix(lines[0], "hex    #") {
		t.Errorf("hex line = %q", lines[0])
	}

	asOut, _, err := run(t, "parse", "--as", "oklch", "70% 0.1 30")
	if err != nil {
		t.Fatal(err)
	}
	if asOut != out {
		t.Errorf("parse --as oklch = %q, want %q", asOut, out)
	}
}

func TestCommandErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.hcl")

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown model", []string{"convert", "#fff", "--to", "cmyk"}, ""},
		{"malformed color", []string{"parse", "oklch(70% x 30)"}, "^"},
		{"bad --as", []string{"parse", "--as", "rgb", "1 2 3"}, ""},
		{"unknown channel", []string{"--settings", missing, "set", "rgbRed", "#fff", "1"}, ""},
		{"value out of range", []string{"--settings", missing, "set", "hsvValue", "#fff", "150"}, ""},
		{"bad settings", []string{"--settings", writeSettings(t, `notation = "rgb"`), "channels"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.stderr)
			}
		})
	}
}

func TestChannels(t *testing.T) {
	path := writeSettings(t, `displayed = ["okhslHue", "hsvValue"]

channel "okhslHue" {
  interval = 20
}
`)
	out, _, err := run(t, "--settings", path, "channels", "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "okhslHue         interval 20") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "value 100.000 / 100.000") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestHistory(t *testing.T) {
	path := writeSettings(t, `history {
  colors = ["#ff0000", "#00ff00"]
}
`)
	list := func() []string {
		t.Helper()
		out, _, err := run(t, "--settings", path, "history")
		if err != nil {
			t.Fatal(err)
		}
		if out == "" {
			return nil
		}
		return strings.Split(strings.TrimRight(out, "\n"), "\n")
	}
	mustRun := func(args ...string) string {
		t.Helper()
		out, stderr, err := run(t, append([]string{"--settings", path}, args...)...)
		if err != nil {
			t.Fatalf("%v: %v\n%s", args, err, stderr)
		}
		return out
	}

	if diff := cmp.Diff([]string{"  0  #ff0000", "  1  #00ff00"}, list()); diff != "" {
		t.Errorf("initial history (-want +got):\n%s", diff)
	}

	mustRun("history", "add", "#0000ff")
	if diff := cmp.Diff([]string{"  0  #0000ff", "  1  #ff0000", "  2  #00ff00"}, list()); diff != "" {
		t.Errorf("after add (-want +got):\n%s", diff)
	}

	if out := mustRun("history", "use", "2"); out != "#00ff00\n" {
		t.Errorf("use output = %q", out)
	}
	if diff := cmp.Diff([]string{"  0  #00ff00", "  1  #0000ff", "  2  #ff0000"}, list()); diff != "" {
		t.Errorf("after use (-want +got):\n%s", diff)
	}

	mustRun("history", "delete", "2", "1")
	if diff := cmp.Diff([]string{"  0  #00ff00"}, list()); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}

	mustRun("history", "clear")
	if got := list(); got != nil {
		t.Errorf("after clear = %v, want empty", got)
	}

	if _, _, err := run(t, "--settings", path, "history", "delete", "0"); err == nil {
		t.Error("expected error deleting from an empty history")
	}
}

func TestHistoryCreatesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hclsliders.hcl")
	if _, _, err := run(t, "--settings", path, "history", "add", "#123456"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"#123456"`) {
		t.Errorf("settings file lacks the added color:\n%s", data)
	}
}

func TestHistoryDisabled(t *testing.T) {
	path := writeSettings(t, "history {\n  enabled = false\n}\n")
	if _, _, err := run(t, "--settings", path, "history", "add", "#123456"); err == nil {
		t.Error("expected an error adding to a disabled history")
	}
}

func TestFmt(t *testing.T) {
	unformatted := "notation=\"hex\"\n"
	path := writeSettings(t, unformatted)

	out, _, err := run(t, "fmt", "--check", path)
	if !errors.Is(err, errUnformatted) {
		t.Fatalf("fmt --check error = %v, want errUnformatted", err)
	}
	if out != path+"\n" {
		t.Errorf("fmt --check output = %q, want the path", out)
	}
	if data, _ := os.ReadFile(path); string(data) != unformatted {
		t.Error("fmt --check modified the file")
	}

	if _, _, err := run(t, "fmt", path); err != nil {
		t.Fatalf("fmt error = %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "notation = \"hex\"\n" {
		t.Errorf("formatted file = %q", data)
	}

	out, _, err = run(t, "fmt", "--check", path)
	if err != nil || out != "" {
		t.Errorf("fmt --check on formatted file = %q, %v", out, err)
	}

	if _, _, err := run(t, "fmt", filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExport(t *testing.T) {
	path := writeSettings(t, `history {
  colors = ["#eb6f92", "#191724"]
}
`)
	tmplDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmplDir, "colors.txt.tmpl"), []byte(`{{ hex "history.0" }} {{ hexBare "history.1" }}`), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(t.TempDir(), "out")

	out, stderr, err := run(t, "--settings", path, "export", "--templates", tmplDir, "--out", outDir)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, stderr)
	}
	if out != "Exported files in "+outDir+"\n" {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "colors.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "#eb6f92 191724" {
		t.Errorf("exported file = %q", data)
	}

	if _, _, err := run(t, "--settings", path, "export", "--templates", t.TempDir(), "--out", outDir); err == nil {
		t.Error("expected an error for an empty templates directory")
	}
}
