package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"tim/internal/config"
	"tim/internal/logger"
	"tim/pkg/color"
	"tim/pkg/loader"
	"tim/pkg/machine"
	"tim/pkg/printer"
)

type Runner struct {
	Help       bool      // Show help message
	Verbose    bool      // Enable verbose output and console step tracing
	NoColor    bool      // Disable colored output
	ConfigFile string    // Path to a YAML config file
	TraceFile  string    // Path to the JSON-lines trace file
	MaxSteps   int       // Step limit, 0 = unlimited
	Dump       string    // Final state format: text, pretty or none
	SourceFile string    // Path to the program file
	Out        io.Writer // Where the final state is written, stdout when nil
}

// ApplyConfig fills every option not named in set (the flags given on the
// command line) from cfg
func (r *Runner) ApplyConfig(cfg config.Config, set map[string]bool) {
	if !set["v"] {
		r.Verbose = cfg.Verbose
	}
	if !set["n"] {
		r.NoColor = cfg.NoColor
	}
	if !set["m"] {
		r.MaxSteps = cfg.MaxSteps
	}
	if !set["t"] {
		r.TraceFile = cfg.Trace
	}
	if !set["d"] {
		r.Dump = cfg.Dump
	}
}

// Run loads the program, runs it to a final state and prints that state
func (r *Runner) Run() error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	if err := (config.Config{MaxSteps: r.MaxSteps, Dump: r.Dump}).Validate(); err != nil {
		return err
	}

	log.Info("Loading program", "file", r.SourceFile)
	code, err := loader.Load(r.SourceFile)
	if err != nil {
		return fmt.Errorf("loading failed: %w", err)
	}
	log.Debug("Program loaded", "labels", len(code))

	if _, ok := code[machine.EntryLabel]; !ok {
		log.Warn("Program has no entry label", "label", machine.EntryLabel)
	}

	var trace io.Writer
	if r.TraceFile != "" {
		f, err := os.OpenFile(r.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer f.Close()
		trace = f
	}

	opts := []machine.Option{machine.WithMaxSteps(r.MaxSteps)}
	if tracer, runID := logger.NewTracer(r.Verbose, trace); tracer != nil {
		log.Info("Tracing run", "run", runID, "file", r.TraceFile)
		opts = append(opts, machine.WithTracer(tracer))
	}

	m := machine.New(code, opts...)
	if err := m.Run(); err != nil {
		return fmt.Errorf("execution failed after %d steps: %w", m.Steps(), err)
	}
	log.Info("Run finished", "steps", m.Steps())

	switch r.Dump {
	case config.DumpText:
		fmt.Fprintln(out, color.GreenText("=== Final State ==="))
		return printer.Text(out, m.State())
	case config.DumpPretty:
		return printer.Pretty(out, m.State())
	}

	return nil
}
