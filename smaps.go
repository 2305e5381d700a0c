package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Source selects which smaps file procMem reads.
type Source string

const (
	// SourceAuto reads smaps_rollup and falls back to smaps.
	SourceAuto     Source = "auto"
	SourceRollup   Source = "rollup"
	SourceDetailed Source = "detailed"
)

// from ps_mem: average error due to truncation in the kernel's pss
// calculations, added once to a rollup total
const pssAdjust = .5

const (
	statPss          = "Pss:"
	statSwap         = "Swap:"
	statPrivateClean = "Private_Clean:"
	statPrivateDirty = "Private_Dirty:"
)

var errNoPss = errors.New("no Pss field")

// Usage is the memory accounted to one process, in KiB.
type Usage struct {
	Pss    float32
	Shared float32
	Heap   float32
	Swap   float32
}

// parseSmaps accumulates the Pss, Swap and Private_* lines of an smaps or
// smaps_rollup file. Per-mapping header lines are only inspected to track
// the [heap] mapping.
func parseSmaps(r io.Reader, rollup bool) (Usage, error) {
	var u Usage
	var priv float32
	var inHeap, sawPss bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !strings.HasSuffix(fields[0], ":") {
			// mapping header: start-end perms offset dev inode [path]
			inHeap = len(fields) >= 6 && fields[5] == "[heap]"
			continue
		}

		var dst *float32
		switch {
		case strings.HasPrefix(line, statPss):
			dst = &u.Pss
			sawPss = true
		case strings.HasPrefix(line, statSwap):
			dst = &u.Swap
		case strings.HasPrefix(line, statPrivateClean), strings.HasPrefix(line, statPrivateDirty):
			dst = &priv
		default:
			continue
		}
		if len(fields) < 2 {
			return Usage{}, fmt.Errorf("missing value: %q", line)
		}
		v, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return Usage{}, fmt.Errorf("parsing %q: %w", line, err)
		}
		*dst += float32(v)
		if inHeap && dst == &u.Pss {
			u.Heap += float32(v)
		}
	}
	if err := scanner.Err(); err != nil {
		return Usage{}, err
	}

	if rollup {
		if !sawPss {
			return Usage{}, errNoPss
		}
		u.Pss += pssAdjust
	}
	u.Shared = u.Pss - priv
	return u, nil
}

func readSmaps(root string, pid int, rollup bool) (Usage, error) {
	name := "smaps"
	if rollup {
		name = "smaps_rollup"
	}
	p := pidPath(root, pid, name)
	f, err := os.Open(p)
	if err != nil {
		return Usage{}, err
	}
	defer f.Close()

	u, err := parseSmaps(f, rollup)
	if err != nil {
		return Usage{}, fmt.Errorf("%s: %w", p, err)
	}
	return u, nil
}

// procMem returns the memory usage of pid. With SourceAuto any failure
// to read smaps_rollup is retried once against smaps.
func procMem(root string, pid int, src Source) (Usage, error) {
	switch src {
	case SourceRollup:
		return readSmaps(root, pid, true)
	case SourceDetailed:
		return readSmaps(root, pid, false)
	}
	u, err := readSmaps(root, pid, true)
	if err == nil {
		return u, nil
	}
	u, derr := readSmaps(root, pid, false)
	if derr != nil {
		return Usage{}, errors.Join(err, derr)
	}
	return u, nil
}
