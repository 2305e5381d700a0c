package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// isDigit reports whether b is an ascii digit between 0 and 9, inclusive.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// listPids returns the PIDs of every process visible under root.
// Entries that vanish between the listing and the stat are skipped.
func listPids(root string) ([]int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}
	pids := make([]int, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if len(name) == 0 || !isDigit(name[0]) {
			continue
		}
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || !info.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(name)
		if err != nil {
			panic(fmt.Sprintf("listPids: directory %s/%s is not a pid: %v", root, name, err))
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
