package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/penguin/internal/analyzer"
	"github.com/olehluchkiv/penguin/internal/diagram"
	"github.com/olehluchkiv/penguin/internal/logging"
	"github.com/olehluchkiv/penguin/internal/scenario"
)

func main() {
	// Go's flag.Parse stops at the first non-flag argument, which breaks
	// "penguin scenario.yaml -log-level debug". Reorder so flags come first.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("penguin", flag.ExitOnError)
	feathers := fs.Int("feathers", 10, "initial feather count (ignored with a scenario file)")
	steps := fs.String("steps", "molt,swim", "comma separated steps to run: molt, swim")
	strict := fs.Bool("strict", false, "reject negative initial feather counts")
	diagramDir := fs.String("diagram", "", "analyze the Go module at this path and emit a Mermaid capability diagram")
	output := fs.String("output", "", "write the diagram to this file instead of stdout")
	filter := fs.String("filter", "", "package path prefix filter for -diagram")
	includeUnexported := fs.Bool("include-unexported", false, "include unexported types and interfaces in -diagram")
	maxMethods := fs.Int("max-methods", analyzer.DefaultMaxMethods, "flag interfaces with more methods than this as wide (0 disables)")
	logFile := fs.String("log-file", "logs/penguin.log", "log file path (empty for stderr only)")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if *diagramDir != "" {
		opts := analyzer.Options{
			Filter:            *filter,
			IncludeUnexported: *includeUnexported,
			MaxMethods:        *maxMethods,
		}
		if err := writeDiagram(ctx, *diagramDir, opts, *output, logger); err != nil {
			logger.Error("diagram failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error generating diagram: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scenarioPath := ""
	if len(positional) > 0 {
		scenarioPath = positional[0]
	}
	sc, err := buildScenario(scenarioPath, *feathers, *steps, *strict)
	if err != nil {
		logger.Error("invalid scenario", "error", err)
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		os.Exit(1)
	}

	state, err := scenario.Run(ctx, sc, logger)
	if err != nil {
		logger.Error("run failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running scenario: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(formatState(state))
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position. Flags that take a value consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-feathers": true, "-steps": true, "-diagram": true, "-output": true,
		"-filter": true, "-max-methods": true, "-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

// buildScenario loads path when given, otherwise assembles a scenario from
// the flag values. -strict applies to both.
func buildScenario(path string, feathers int, steps string, strict bool) (scenario.Scenario, error) {
	if path != "" {
		sc, err := scenario.Load(path)
		if err != nil {
			return scenario.Scenario{}, err
		}
		sc.Strict = sc.Strict || strict
		return sc, nil
	}

	names, err := scenario.ParseSteps(steps)
	if err != nil {
		return scenario.Scenario{}, err
	}
	return scenario.Scenario{Feathers: feathers, Strict: strict, Steps: names}, nil
}

func writeDiagram(ctx context.Context, path string, opts analyzer.Options, output string, logger *slog.Logger) error {
	dir, err := analyzer.ModuleRoot(path)
	if err != nil {
		return err
	}
	logger.Info("resolved module root", "input", path, "module_root", dir)

	result, err := analyzer.Analyze(ctx, dir, opts, logger)
	if err != nil {
		return err
	}
	result = analyzer.Filter(result, opts)

	for _, c := range analyzer.WideContracts(result) {
		logger.Warn("wide interface", "interface", c.PkgPath+"."+c.Name, "methods", len(c.Methods), "max", opts.MaxMethods)
	}

	diagramOpts := diagram.DefaultOptions()
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
		diagramOpts.IncludeInit = true
	}

	if _, err := fmt.Fprintln(w, diagram.GenerateMermaid(result, diagramOpts)); err != nil {
		return fmt.Errorf("writing diagram: %w", err)
	}
	return nil
}

func formatState(s scenario.State) string {
	return fmt.Sprintf("location=%q feathers=%d", s.Location, s.Feathers)
}
