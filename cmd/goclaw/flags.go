// ABOUTME: CLI flag parsing using the stdlib flag package
// ABOUTME: Supports -p, -model, -base-url, -format, -resume, -yolo, -verbose, -version

package main

import "flag"

type cliArgs struct {
	prompt  string
	model   string
	baseURL string
	format  string
	resume  string
	yolo    bool
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.prompt, "p", "", "Run one prompt non-interactively and exit")
	flag.StringVar(&args.model, "model", "", "Model to use (e.g., claude-sonnet-4-20250514)")
	flag.StringVar(&args.baseURL, "base-url", "", "Custom API base URL")
	flag.StringVar(&args.format, "format", "text", "Print-mode output format: text or json")
	flag.StringVar(&args.resume, "resume", "", "Resume a saved session by id")
	flag.BoolVar(&args.yolo, "yolo", false, "Skip all permission prompts")
	flag.BoolVar(&args.verbose, "verbose", false, "Verbose logging and tool output")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
