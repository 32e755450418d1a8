// Command triton renders the compact sequence-diagram notation to SVG.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/axelerator/triton/internal/svgserver"
	"github.com/axelerator/triton/internal/triyaml"
	"github.com/axelerator/triton/pkg/triton"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	exitSuccess    = 0
	exitValidation = 1
	exitSystem     = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitSystem)
	}
	switch os.Args[1] {
	case "render":
		os.Exit(cmdRender(os.Args[2:]))
	case "validate":
		os.Exit(cmdValidate(os.Args[2:]))
	case "serve":
		os.Exit(cmdServe(os.Args[2:]))
	case "version":
		fmt.Printf("triton %s\n", version)
		os.Exit(exitSuccess)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(exitSuccess)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(exitSystem)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: triton <command> [options]

Commands:
  render    Render a sequence-diagram source file to SVG
  validate  Validate a sequence-diagram source file
  serve     Start the HTTP server with live preview
  version   Print version information
  help      Show this help

Run 'triton <command> --help' for command-specific help.`)
}

func cmdRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default stdout)")
	configPath := fs.String("config", "", "YAML config overrides")
	if err := fs.Parse(args); err != nil {
		return exitSystem
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: triton render <file.seq|-> [-o output.svg] [-config path.yaml]")
		return exitSystem
	}
	inputPath := remaining[0]
	if err := fs.Parse(remaining[1:]); err != nil {
		return exitSystem
	}

	opts, err := loadOptions(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return exitSystem
	}

	var input *os.File
	if inputPath == "-" {
		input = os.Stdin
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return exitSystem
		}
		defer func() { _ = f.Close() }()
		input = f
	}
	var out *os.File
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return exitSystem
		}
		defer func() { _ = f.Close() }()
		out = f
	} else {
		out = os.Stdout
	}
	if err := triton.Render(input, out, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		if isValidationError(err) {
			return exitValidation
		}
		return exitSystem
	}
	return exitSuccess
}

func cmdValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return exitSystem
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: triton validate <file.seq>")
		return exitSystem
	}
	inputPath := remaining[0]
	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return exitSystem
	}
	defer func() { _ = f.Close() }()
	if err := triton.Validate(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s:%s\n", inputPath, err)
		return exitValidation
	}
	fmt.Println("OK")
	return exitSuccess
}

func cmdServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.Int("port", 8080, "port to listen on")
	host := fs.String("host", "localhost", "host to bind to")
	if err := fs.Parse(args); err != nil {
		return exitSystem
	}
	cfg := svgserver.DefaultConfig()
	cfg.Port = *port
	cfg.Host = *host
	srv := svgserver.New(cfg)
	fmt.Fprintf(os.Stderr, "triton server listening on http://%s:%d\n", cfg.Host, cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return exitSystem
	}
	return exitSuccess
}

func loadOptions(configPath string) ([]triton.Option, error) {
	if configPath == "" {
		return nil, nil
	}
	o, err := triyaml.Load(configPath)
	if err != nil {
		return nil, err
	}
	var opts []triton.Option
	if o.FontSize != 0 {
		opts = append(opts, triton.WithFontSize(o.FontSize))
	}
	if o.Padding != 0 {
		opts = append(opts, triton.WithPadding(o.Padding))
	}
	if o.MsgGutter != 0 {
		opts = append(opts, triton.WithMsgGutter(o.MsgGutter))
	}
	if o.MaxMsgLabelLength != 0 {
		opts = append(opts, triton.WithMaxMsgLabelLength(o.MaxMsgLabelLength))
	}
	if o.MaxParticipantHeadLength != 0 {
		opts = append(opts, triton.WithMaxParticipantHeadLength(o.MaxParticipantHeadLength))
	}
	if o.FontScaleFactor != 0 {
		opts = append(opts, func(c *triton.Config) { c.FontScaleFactor = o.FontScaleFactor })
	}
	if o.CornerRadius != 0 {
		opts = append(opts, func(c *triton.Config) { c.CornerRadius = o.CornerRadius })
	}
	return opts, nil
}

func isValidationError(err error) bool {
	return strings.Contains(err.Error(), ":")
}
