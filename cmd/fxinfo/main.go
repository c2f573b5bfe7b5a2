// Command fxinfo lists the registered effect types and their parameters.
//
// Usage:
//
//	fxinfo [flags] [effect-type ...]
//
// Without arguments it prints the parameter table of every effect type.
//
// Examples:
//
//	fxinfo reverb
//	fxinfo -list
//	fxinfo -preset compressor limiter
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/nueva/dsp/effect"
	"github.com/cwbudde/nueva/dsp/effectchain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fxinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.Bool("list", false, "list effect type names")
	preset := fs.Bool("preset", false, "print a default JSON preset instead of the parameter table")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fxinfo [flags] [effect-type ...]\n\n")
		fmt.Fprintf(stderr, "Prints the parameters of the built-in effects.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fxinfo reverb\n")
		fmt.Fprintf(stderr, "  fxinfo -preset compressor limiter\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg := effectchain.DefaultRegistry()
	if *list {
		for _, typ := range reg.Types() {
			fmt.Fprintln(stdout, typ)
		}
		return 0
	}

	types := fs.Args()
	if len(types) == 0 {
		types = reg.Types()
	}

	var effects []effect.Effect
	for _, typ := range types {
		e, err := reg.New(strings.ToLower(strings.TrimSpace(typ)), "")
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v (use -list to see available)\n", err)
			continue
		}
		effects = append(effects, e)
	}
	if len(effects) == 0 {
		fmt.Fprintf(stderr, "error: no matching effect types\n")
		return 1
	}

	if *preset {
		return printPreset(stdout, stderr, effects)
	}
	return printParams(stdout, stderr, effects)
}

func printParams(stdout, stderr io.Writer, effects []effect.Effect) int {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Effect\tParameter\tRange\tDefault\tUnit\n")
	fmt.Fprintf(tw, "------\t---------\t-----\t-------\t----\n")

	for _, e := range effects {
		for _, p := range e.Spec() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Type(), p.Name, p.Range(), formatDefault(p), p.Unit)
		}
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "error: failed to flush output: %v\n", err)
		return 1
	}
	return 0
}

func formatDefault(p effect.Param) string {
	switch v := p.Encode(p.Default).(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func printPreset(stdout, stderr io.Writer, effects []effect.Effect) int {
	data, err := json.MarshalIndent(effects, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%s\n", data)
	return 0
}
