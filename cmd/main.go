package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"tim/internal/config"
	"tim/internal/logger"
	"tim/internal/runner"
	"tim/pkg/color"
)

// Main entry point for the TIM machine runner.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode, traces every step to the console")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.ConfigFile, "c", "", "YAML config file")
	flag.StringVar(&options.TraceFile, "t", "", "Write a JSON-lines step trace to this file")
	flag.IntVar(&options.MaxSteps, "m", 0, "Stop after this many steps (0 = unlimited)")
	flag.StringVar(&options.Dump, "d", config.DumpText, "Final state format (text, pretty, none)")

	flag.Parse()
	args := flag.Args()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, cfgErr := config.Load(options.ConfigFile)
	if cfgErr == nil {
		options.ApplyConfig(cfg, set)
	}

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <program.json|program.cue|program.yaml>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if cfgErr != nil {
		log.Fatal("Invalid config", "error", cfgErr)
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	err := options.Run()
	if err != nil {
		log.Fatal("Execution failed", "error", err)
	}
}
