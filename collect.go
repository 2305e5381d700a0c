package main

import (
	"sync"
)

type result struct {
	record ProcessRecord
	ok     bool
}

// newRecord resolves the name and memory usage of a single pid.
func newRecord(root string, pid int, src Source) (ProcessRecord, error) {
	name, err := procName(root, pid)
	if err != nil {
		return ProcessRecord{}, err
	}
	u, err := procMem(root, pid, src)
	if err != nil {
		return ProcessRecord{}, err
	}
	return ProcessRecord{
		Name:   name,
		PID:    pid,
		Pss:    u.Pss,
		Shared: u.Shared,
		Heap:   u.Heap,
		Swap:   u.Swap,
		Count:  1,
	}, nil
}

func worker(root string, src Source, pids []int, work <-chan int, results []result, wg *sync.WaitGroup, log *Logger) {
	defer wg.Done()
	for i := range work {
		r, err := newRecord(root, pids[i], src)
		if err != nil {
			// the process exited or is not readable by us
			log.Debugf("skipping pid %d: %v", pids[i], err)
			continue
		}
		results[i] = result{r, true}
	}
}

// collect builds a record for every pid that can still be read, using at
// most workers goroutines. Records come back in the order of pids.
func collect(root string, pids []int, src Source, workers int, log *Logger) []ProcessRecord {
	if workers < 1 {
		workers = 1
	}
	results := make([]result, len(pids))
	work := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go worker(root, src, pids, work, results, &wg, log)
	}
	for i := range pids {
		work <- i
	}
	close(work)
	wg.Wait()

	records := make([]ProcessRecord, 0, len(pids))
	for _, r := range results {
		if r.ok {
			records = append(records, r.record)
		}
	}
	log.Debugf("read %d of %d processes", len(records), len(pids))
	return records
}
