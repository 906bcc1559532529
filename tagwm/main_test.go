package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCheckDefaults(t *testing.T) {
	out, err := execute(t, "check", "-c", filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok: 36 bindings, 9 tags\n" {
		t.Fatalf("check output = %q", out)
	}
}

func TestCheckRejectsBadBinding(t *testing.T) {
	path := writeConfig(t, `
bindings:
  - keys: M-j
    do: cycle_client
    arg: forward
  - keys: Hyper-j
    do: exit
`)
	_, err := execute(t, "check", "-c", path)
	if err == nil || !strings.Contains(err.Error(), "binding 1") {
		t.Fatalf("expected error naming binding 1, got %v", err)
	}
}

func TestKeysListsSortedBindings(t *testing.T) {
	path := writeConfig(t, `
tags: ["1", "2"]
bindings:
  - keys: M-Return
    run: [$terminal]
  - keys: M-{}
    do: focus_workspace
    for_each_tag: true
`)
	out, err := execute(t, "keys", "-c", path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("keys output = %q", out)
	}
	if f := strings.Fields(lines[0]); len(f) != 2 || f[0] != "M-1" || f[1] != "focus_workspace(1)" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, "run(alacritty)") {
		t.Errorf("terminal binding missing from %q", out)
	}
}

func TestConfigPrintsLoadableYAML(t *testing.T) {
	path := writeConfig(t, `launcher: rofi`)
	out, err := execute(t, "config", "-c", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "launcher: rofi") {
		t.Fatalf("config output missing launcher:\n%s", out)
	}
	cfg, err := config.Load(writeConfig(t, out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Launcher != "rofi" {
		t.Fatalf("launcher = %q", cfg.Launcher)
	}
}

func TestRenderPreview(t *testing.T) {
	cfg := config.DefaultConfig()
	data, err := renderPreview(cfg, previewOptions{width: 320, focus: "2", occupied: []string{"1", "5"}}, pslog.Ctx(context.Background()))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != cfg.Bar.Height {
		t.Fatalf("preview size = %v", b)
	}

	if _, err := renderPreview(cfg, previewOptions{width: 320, focus: "nope"}, nil); err == nil {
		t.Fatal("expected error for unknown focus tag")
	}
}

func TestPreviewCommandWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bar.png")
	if _, err := execute(t, "preview", "-c", filepath.Join(t.TempDir(), "none.yaml"), "-o", out, "--occupied", "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}
