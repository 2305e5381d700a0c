package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// only used for the prefix comparison against the exe path
const cmdLineMax = 1024

func pidPath(root string, pid int, file string) string {
	return filepath.Join(root, strconv.Itoa(pid), file)
}

// readCmdLine returns the command line of pid with its NUL separators
// replaced by spaces. At most cmdLineMax bytes are read.
func readCmdLine(root string, pid int) (string, error) {
	p := pidPath(root, pid, "cmdline")
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	contents, err := io.ReadAll(io.LimitReader(f, cmdLineMax))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	s := string(bytes.Trim(contents, "\x00"))
	s = strings.ReplaceAll(s, "\x00", " ")
	if len(s) == 0 {
		return "", errors.New("empty command line in " + p)
	}
	return s, nil
}

// procName returns the display name of pid. A plain invocation, whose
// command line starts with the executable path, is named after the
// executable's basename. Anything else (interpreted scripts, processes
// that rewrote their title) is named by its full command line.
//
// Readlink fails for kernel threads and for processes that have exited;
// either way the process is not reported.
func procName(root string, pid int) (string, error) {
	exe, err := os.Readlink(pidPath(root, pid, "exe"))
	if err != nil {
		return "", err
	}
	cmdline, err := readCmdLine(root, pid)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(cmdline, exe) {
		return path.Base(exe), nil
	}
	return cmdline, nil
}
