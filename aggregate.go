package main

import (
	"slices"
	"strings"
)

// ProcessRecord is the memory used by a command, summed over the Count
// processes sharing its name. Sizes are in KiB.
type ProcessRecord struct {
	Name   string  `yaml:"name"`
	PID    int     `yaml:"-"` // first pid read, diagnostics only
	Pss    float32 `yaml:"pss_kib"`
	Shared float32 `yaml:"shared_kib"`
	Heap   float32 `yaml:"heap_kib,omitempty"`
	Swap   float32 `yaml:"swap_kib"`
	Count  int     `yaml:"count"`
}

// Report is the aggregated result of one scan.
type Report struct {
	Records   []ProcessRecord `yaml:"processes"`
	TotalPss  float32         `yaml:"total_pss_kib"`
	TotalSwap float32         `yaml:"total_swap_kib"`
}

// aggregate merges records with identical names and orders the result by
// ascending pss, so the heaviest commands end up next to the totals.
func aggregate(records []ProcessRecord) Report {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, byName)

	merged := make([]ProcessRecord, 0, len(sorted))
	for _, r := range sorted {
		if n := len(merged); n > 0 && merged[n-1].Name == r.Name {
			sum := &merged[n-1]
			sum.Pss += r.Pss
			sum.Shared += r.Shared
			sum.Heap += r.Heap
			sum.Swap += r.Swap
			sum.Count++
			continue
		}
		if r.Count < 1 {
			r.Count = 1
		}
		merged = append(merged, r)
	}

	slices.SortStableFunc(merged, byPssThenName)
	return newReport(merged)
}

func newReport(records []ProcessRecord) Report {
	rep := Report{Records: records}
	for _, r := range records {
		rep.TotalPss += r.Pss
		rep.TotalSwap += r.Swap
	}
	return rep
}

// Filter returns the records whose name contains substr, with totals
// over those records only.
func (rep Report) Filter(substr string) Report {
	if substr == "" {
		return rep
	}
	var kept []ProcessRecord
	for _, r := range rep.Records {
		if strings.Contains(r.Name, substr) {
			kept = append(kept, r)
		}
	}
	return newReport(kept)
}
