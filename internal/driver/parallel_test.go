package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"postfix/internal/driver"
	"postfix/internal/printer"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestListFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.rs":             "",
		"a.rs":             "",
		"notes.txt":        "",
		"sub/e.rs":         "",
		"sub/.hidden/c.rs": "",
		"target/d.rs":      "",
	})
	got, err := driver.ListFiles(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "a.rs"),
		filepath.Join(root, "b.rs"),
		filepath.Join(root, "sub", "e.rs"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("ListFiles = %v, want %v", got, want)
	}
}

func TestRewriteDirAndWriteBack(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.rs":     "let v = x.f!();\n",
		"b.rs":     "fn main() {}\n",
		"sub/c.rs": "fn main() { .f!(); }\n",
	})

	events := make(chan driver.Event, 128)
	opts := driver.Options{Mode: printer.Layout, Jobs: 2, Progress: driver.ChannelSink{Ch: events}}
	_, results, err := driver.RewriteDir(context.Background(), root, opts)
	close(events)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	a, b, c := results[0], results[1], results[2]
	if a.Failed() || !a.Changed || a.Output != "let v = f!(x);\n" {
		t.Fatalf("a.rs: %+v", a)
	}
	if b.Failed() || b.Changed {
		t.Fatalf("b.rs: %+v", b)
	}
	if !c.Failed() {
		t.Fatal("c.rs must fail")
	}

	final := map[string]driver.Status{}
	queued := 0
	for ev := range events {
		if ev.Status == driver.StatusQueued {
			queued++
			continue
		}
		if ev.Stage == driver.StagePrint && ev.Status != driver.StatusWorking {
			final[filepath.Base(ev.File)] = ev.Status
		}
	}
	if queued != 3 {
		t.Fatalf("queued events = %d", queued)
	}
	if final["a.rs"] != driver.StatusDone || final["b.rs"] != driver.StatusUnchanged || final["c.rs"] != driver.StatusError {
		t.Fatalf("final statuses = %v", final)
	}

	for _, res := range results {
		if err := driver.WriteBack(res); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, "a.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "let v = f!(x);\n" {
		t.Fatalf("a.rs on disk = %q", data)
	}
	data, err = os.ReadFile(filepath.Join(root, "sub", "c.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fn main() { .f!(); }\n" {
		t.Fatal("failed file was written")
	}
	info, err := os.Stat(filepath.Join(root, "a.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestRewritePathsEmpty(t *testing.T) {
	fs, results, err := driver.RewritePaths(context.Background(), "", nil, driver.Options{})
	if err != nil || len(results) != 0 || fs == nil {
		t.Fatalf("RewritePaths(nil) = %v, %v, %v", fs, results, err)
	}
}

func TestRewritePathsCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rs": "x.f!();"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.RewritePaths(ctx, root, []string{filepath.Join(root, "a.rs")}, driver.Options{})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}
