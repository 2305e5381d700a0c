/*
psm reports the RAM and swap used by the commands running on a Linux host.

Processes are grouped by command name. For every command psm shows:

- RAM - proportional set size (PSS), the command's private memory plus a
proportional share of memory shared with other processes.

- SHARED - the part of PSS that is shared with other processes.

- HEAP - PSS of the [heap] mappings (only with --heap).

- SWAPPED - memory swapped out to disk.

Commands are listed by ascending RAM, so the heaviest are printed last,
right above the totals. psm must run as root to read the memory maps of
other users' processes.

Usage:

psm [flags]

Flags:

	--help
		Print help information.

	-c, --config
		Read defaults from a TOML file.

	-w, --wide
		Always print the full command name, even if it exceeds the screen width.

	-h, --human-readable
		Print sizes in human readable format (e.g. MiB, GiB).

	-q, --quiet
		Suppress the column header and the totals footer.

	--heap
		Show the heap column. Implies --source=detailed.

	--filter
		Only report commands whose name contains this string.

	--source
		auto, rollup or detailed: which smaps file to read.

	-j, --workers
		Number of processes read in parallel.

	-o, --format
		table or yaml.

	--proc
		Location of the proc filesystem.

	-v, --verbose
		Log processes that could not be read.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const flagHelpDescription = "print help information"
const flagConfigDescription = "read defaults from this TOML file"
const flagWideDescription = "always print full command name"
const flagHumanReadableDescription = "print sizes in human readable format"
const flagQuietDescription = "suppress column header and totals footer"
const flagHeapDescription = "show heap column"
const flagFilterDescription = "only report commands containing this string"
const flagSourceDescription = "smaps source: auto, rollup or detailed"
const flagWorkersDescription = "number of processes read in parallel"
const flagFormatDescription = "output format: table or yaml"
const flagProcDescription = "location of the proc filesystem"
const flagVerboseDescription = "log processes that could not be read"

func printUsage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTION]...\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), `Simple, accurate RAM and swap reporting.

Options:
  --help                %s
  -c, --config FILE     %s
  -w, --wide            %s
  -h, --human-readable  %s
  -q, --quiet           %s
  --heap                %s
  --filter STRING       %s
  --source SOURCE       %s
  -j, --workers N       %s
  -o, --format FORMAT   %s
  --proc DIR            %s
  -v, --verbose         %s
`,
		flagHelpDescription,
		flagConfigDescription,
		flagWideDescription,
		flagHumanReadableDescription,
		flagQuietDescription,
		flagHeapDescription,
		flagFilterDescription,
		flagSourceDescription,
		flagWorkersDescription,
		flagFormatDescription,
		flagProcDescription,
		flagVerboseDescription)
}

const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitFailure          = 2
)

// applyFlags copies every flag given on the command line over cfg
func applyFlags(cfg *Config, fromFlags Config) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["proc"] {
		cfg.ProcDir = fromFlags.ProcDir
	}
	if set["source"] {
		cfg.Source = fromFlags.Source
	}
	if set["workers"] || set["j"] {
		cfg.Workers = fromFlags.Workers
	}
	if set["format"] || set["o"] {
		cfg.Format = fromFlags.Format
	}
	if set["filter"] {
		cfg.Filter = fromFlags.Filter
	}
	if set["wide"] || set["w"] {
		cfg.Wide = fromFlags.Wide
	}
	if set["human-readable"] || set["h"] {
		cfg.HumanReadable = fromFlags.HumanReadable
	}
	if set["quiet"] || set["q"] {
		cfg.Quiet = fromFlags.Quiet
	}
	if set["heap"] {
		cfg.Heap = fromFlags.Heap
	}
	if set["verbose"] || set["v"] {
		cfg.Verbose = fromFlags.Verbose
	}
}

// scan reads every process under cfg.ProcDir and aggregates the result
func scan(cfg Config, log *Logger) (Report, error) {
	pids, err := listPids(cfg.ProcDir)
	if err != nil {
		return Report{}, err
	}
	records := collect(cfg.ProcDir, pids, Source(cfg.Source), cfg.Workers, log)
	return aggregate(records).Filter(cfg.Filter), nil
}

func main() {
	// parse command line arguments
	var help bool
	var configFile string
	fromFlags := defaultConfig()
	flag.BoolVar(&help, "help", false, flagHelpDescription)
	flag.StringVar(&configFile, "config", "", flagConfigDescription)
	flag.StringVar(&configFile, "c", "", flagConfigDescription)
	flag.BoolVar(&fromFlags.Wide, "wide", false, flagWideDescription)
	flag.BoolVar(&fromFlags.Wide, "w", false, flagWideDescription)
	flag.BoolVar(&fromFlags.HumanReadable, "human-readable", false, flagHumanReadableDescription)
	flag.BoolVar(&fromFlags.HumanReadable, "h", false, flagHumanReadableDescription)
	flag.BoolVar(&fromFlags.Quiet, "quiet", false, flagQuietDescription)
	flag.BoolVar(&fromFlags.Quiet, "q", false, flagQuietDescription)
	flag.BoolVar(&fromFlags.Heap, "heap", false, flagHeapDescription)
	flag.StringVar(&fromFlags.Filter, "filter", "", flagFilterDescription)
	flag.StringVar(&fromFlags.Source, "source", fromFlags.Source, flagSourceDescription)
	flag.IntVar(&fromFlags.Workers, "workers", fromFlags.Workers, flagWorkersDescription)
	flag.IntVar(&fromFlags.Workers, "j", fromFlags.Workers, flagWorkersDescription)
	flag.StringVar(&fromFlags.Format, "format", fromFlags.Format, flagFormatDescription)
	flag.StringVar(&fromFlags.Format, "o", fromFlags.Format, flagFormatDescription)
	flag.StringVar(&fromFlags.ProcDir, "proc", fromFlags.ProcDir, flagProcDescription)
	flag.BoolVar(&fromFlags.Verbose, "verbose", false, flagVerboseDescription)
	flag.BoolVar(&fromFlags.Verbose, "v", false, flagVerboseDescription)
	flag.Usage = printUsage
	flag.Parse()

	if help {
		printUsage()
		os.Exit(ExitSuccess)
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unknown argument: %s\n", flag.Arg(0))
		printUsage()
		os.Exit(ExitInvalidArguments)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitInvalidArguments)
	}
	applyFlags(&cfg, fromFlags)
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitInvalidArguments)
	}

	log := NewLogger(os.Stderr, cfg.Verbose)

	// need to be root to read map info for other users' processes
	if cfg.ProcDir == defaultProcDir && unix.Geteuid() != 0 {
		fmt.Fprintf(os.Stderr, "%s requires root privileges. (try 'sudo `which %s`')\n", os.Args[0], os.Args[0])
		os.Exit(ExitFailure)
	}

	rep, err := scan(cfg, log)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(ExitFailure)
	}

	if cfg.Format == "yaml" {
		if err := writeYAML(os.Stdout, rep); err != nil {
			log.Printf("writing report: %v", err)
			os.Exit(ExitFailure)
		}
		return
	}
	render(os.Stdout, rep, renderOptions{
		width:         terminalWidth(),
		wide:          cfg.Wide,
		humanReadable: cfg.HumanReadable,
		quiet:         cfg.Quiet,
		heap:          cfg.Heap,
	})
}
