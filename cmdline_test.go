package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProcName(t *testing.T) {
	for _, tt := range []struct {
		name    string
		exe     string
		cmdline string
		want    string
	}{
		{"plain", "/usr/bin/bash", "/usr/bin/bash\x00-l\x00", "bash"},
		{"no args", "/usr/sbin/sshd", "/usr/sbin/sshd\x00", "sshd"},
		{"proctitle", "/usr/sbin/nginx", "nginx: worker process\x00\x00\x00", "nginx: worker process"},
		{"script", "/usr/bin/python3.11", "/usr/bin/python3\x00/opt/app.py\x00", "/usr/bin/python3 /opt/app.py"},
		{"deleted exe", "/usr/bin/vim (deleted)", "vim\x00notes.txt\x00", "vim notes.txt"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			fakeProcess(t, root, 100, tt.exe, tt.cmdline)
			got, err := procName(root, 100)
			if err != nil {
				t.Fatalf("procName: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q; want %q", got, tt.want)
			}
		})
	}
}

func TestProcNameFailures(t *testing.T) {
	root := t.TempDir()
	// kernel thread
	fakeProcess(t, root, 2, "", "")
	// zombie
	fakeProcess(t, root, 3, "/usr/lib/systemd/systemd", "")

	for _, pid := range []int{2, 3, 4} {
		if name, err := procName(root, pid); err == nil {
			t.Fatalf("pid %d: expected error, got name %q", pid, name)
		}
	}
}

func TestReadCmdLineTruncates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "9", "cmdline"), "/bin/sh\x00"+strings.Repeat("x", 4096))

	s, err := readCmdLine(root, 9)
	if err != nil {
		t.Fatalf("readCmdLine: %v", err)
	}
	if len(s) != cmdLineMax {
		t.Fatalf("got %d bytes; want %d", len(s), cmdLineMax)
	}
	if !strings.HasPrefix(s, "/bin/sh x") {
		t.Fatalf("unexpected prefix: %q", s[:16])
	}
}

func TestReadCmdLineMissing(t *testing.T) {
	_, err := readCmdLine(t.TempDir(), 9)
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
