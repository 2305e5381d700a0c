package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

const rollupFixture = `00400000-7ffd3f5fe000 ---p 00000000 00:00 0                              [rollup]
Rss:                4984 kB
Pss:                1234 kB
Pss_Anon:            600 kB
Pss_File:            634 kB
Pss_Shmem:             0 kB
Shared_Clean:       3500 kB
Shared_Dirty:          0 kB
Private_Clean:       300 kB
Private_Dirty:       700 kB
Referenced:         4984 kB
Anonymous:           600 kB
LazyFree:              0 kB
AnonHugePages:         0 kB
ShmemPmdMapped:        0 kB
FilePmdMapped:         0 kB
Shared_Hugetlb:        0 kB
Private_Hugetlb:       0 kB
Swap:                 64 kB
SwapPss:              64 kB
Locked:                0 kB
`

const smapsFixture = `55a4c8e00000-55a4c8e21000 rw-p 00000000 00:00 0                          [heap]
Size:                132 kB
KernelPageSize:        4 kB
MMUPageSize:           4 kB
Rss:                  96 kB
Pss:                  96 kB
Pss_Dirty:            96 kB
Shared_Clean:          0 kB
Shared_Dirty:          0 kB
Private_Clean:         0 kB
Private_Dirty:        96 kB
Referenced:           96 kB
Anonymous:            96 kB
LazyFree:              0 kB
AnonHugePages:         0 kB
ShmemPmdMapped:        0 kB
FilePmdMapped:         0 kB
Shared_Hugetlb:        0 kB
Private_Hugetlb:       0 kB
Swap:                  8 kB
SwapPss:               8 kB
Locked:                0 kB
THPeligible:    0
VmFlags: rd wr mr mw me ac sd
7f2b1c000000-7f2b1c1c5000 r-xp 00000000 08:01 1835019                    /usr/lib/x86_64-linux-gnu/libc.so.6
Size:               1812 kB
KernelPageSize:        4 kB
MMUPageSize:           4 kB
Rss:                1200 kB
Pss:                 150 kB
Pss_Dirty:             0 kB
Shared_Clean:       1200 kB
Shared_Dirty:          0 kB
Private_Clean:         0 kB
Private_Dirty:         0 kB
Referenced:         1200 kB
Anonymous:             0 kB
Swap:                  0 kB
SwapPss:               0 kB
Locked:                0 kB
THPeligible:    0
VmFlags: rd ex mr mw me sd
7ffd3f5dd000-7ffd3f5fe000 rw-p 00000000 00:00 0
Size:                132 kB
Rss:                   0 kB
Pss:                   0 kB
Private_Clean:         0 kB
Private_Dirty:         0 kB
Swap:                  0 kB
VmFlags: rd wr mr mw me gd ac
`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fakeProcess creates root/pid with an exe link and a cmdline file.
// An empty exe leaves the link out, like a kernel thread.
func fakeProcess(t *testing.T, root string, pid int, exe, cmdline string) string {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if exe != "" {
		if err := os.Symlink(exe, filepath.Join(dir, "exe")); err != nil {
			t.Fatalf("symlink: %v", err)
		}
	}
	writeFile(t, filepath.Join(dir, "cmdline"), cmdline)
	return dir
}
