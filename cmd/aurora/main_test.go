package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/aurora/internal/config"
)

// TestFunctional runs every testdata/*.aur that has a .want file next to
// it and compares stdout followed by stderr with the expectation.
func TestFunctional(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*"+config.SourceFileExt))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no test files found")
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), config.SourceFileExt)
		wantFile := strings.TrimSuffix(file, config.SourceFileExt) + ".want"
		if _, err := os.Stat(wantFile); err != nil {
			continue
		}

		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			want, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatal(err)
			}

			var stdout, stderr bytes.Buffer
			session := newSession(config.Default())
			session.SetOutput(&stdout)
			opts := options{stdout: &stdout, stderr: &stderr}
			runSource(context.Background(), session, string(source), filepath.Base(file), opts)

			got := strings.TrimSpace(stdout.String() + stderr.String())
			if got != strings.TrimSpace(string(want)) {
				t.Errorf("output mismatch\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		source string
		status int
	}{
		{"x = 1", 0},
		{"x = ", 1},
		{"print y", 1},
		{"x = 1 / 0", 1},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		session := newSession(config.Default())
		session.SetOutput(&out)
		got := runSource(context.Background(), session, tt.source, "", options{stdout: &out, stderr: &out})
		if got != tt.status {
			t.Errorf("%q: expected status %d, got %d (%s)", tt.source, tt.status, got, out.String())
		}
	}
}

func TestPrintAST(t *testing.T) {
	var out bytes.Buffer
	session := newSession(config.Default())
	opts := options{printAST: true, stdout: &out, stderr: &out}
	if status := runSource(context.Background(), session, "x=1+2\nif x>2 print x", "", opts); status != 0 {
		t.Fatalf("unexpected status %d: %s", status, out.String())
	}
	if out.String() != "x = 1 + 2\nif x > 2 print x\n" {
		t.Errorf("unexpected canonical form %q", out.String())
	}
	// printing does not run the program
	if _, ok := session.Global("x"); ok {
		t.Errorf("-ast must not execute")
	}
}

func TestSandboxLeavesOutHostNatives(t *testing.T) {
	cfg, err := config.ParseConfig([]byte("sandbox: true\n"), "aurora.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	session := newSession(cfg)
	session.SetOutput(&out)
	status := runSource(context.Background(), session, `x = execute("ls")`, "", options{stdout: &out, stderr: &out})
	if status != 1 || !strings.Contains(out.String(), "undefined variable 'execute'") {
		t.Errorf("expected execute to be unavailable, got status %d: %s", status, out.String())
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		source string
		more   bool
	}{
		{"x = 1", false},
		{"if x > 1", true},
		{"fn f a\n    return a", true},
		{"fn f a\n    return a\nend", false},
		{"s = \"open", true},
		{"xs = [1,", true},
		{"x = )", false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.source); got != tt.more {
			t.Errorf("%q: expected %t, got %t", tt.source, tt.more, got)
		}
	}
}
