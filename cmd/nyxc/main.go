// Command nyxc drives internal/fixture and internal/semantic over a
// single source file: load it, run the analyzer, print diagnostics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/nyxlang/nyx/internal/config"
	"github.com/nyxlang/nyx/internal/fixture"
	"github.com/nyxlang/nyx/internal/semantic"
)

func main() {
	var (
		showVersion bool
		watch       bool
		minVersion  string
	)

	flag.BoolVar(&showVersion, "version", false, "print the toolchain version and exit")
	flag.BoolVar(&watch, "watch", false, "re-run the analyzer whenever the source file changes")
	flag.StringVar(&minVersion, "min-version", "", "require the toolchain to satisfy this semver constraint, e.g. \">= 0.1.0\"")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] FILE\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("nyxc %s\n", config.ToolchainVersion)
		return
	}

	if minVersion != "" {
		if err := config.CheckVersion(config.Manifest{MinVersion: minVersion}); err != nil {
			log.Fatalf("%v", err)
		}
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := args[0]

	if err := analyzeFile(path); err != nil {
		log.Fatalf("%v", err)
	}

	if watch {
		if err := watchAndReanalyze(path); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// analyzeFile loads and analyzes path once, printing every diagnostic
// and a final error count. It never treats a nonzero error count as a
// failure to run: diagnostics are the tool's normal output, not an
// exceptional condition.
func analyzeFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("nyxc: %w", err)
	}

	prog, err := fixture.Load(path, string(src))
	if err != nil {
		return fmt.Errorf("nyxc: %s: %w", path, err)
	}

	result := semantic.Analyze(prog.Tree, prog.Builtins)
	fmt.Printf("%s: %d error(s)\n", path, result.Errors)
	return nil
}

// watchAndReanalyze re-runs analyzeFile whenever path (or the directory
// it lives in, to catch editors that write via rename) reports a write.
func watchAndReanalyze(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("nyxc: watch: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("nyxc: watch: %w", err)
	}

	log.Printf("watching %s for changes (ctrl-c to stop)", path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := analyzeFile(path); err != nil {
				log.Printf("%v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("nyxc: watch: %v", err)
		}
	}
}
