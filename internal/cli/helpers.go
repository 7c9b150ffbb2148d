package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/incomewatch/tax-estimator/internal/format"
	"github.com/incomewatch/tax-estimator/internal/income"
)

const (
	tableFormat    = "table"
	markdownFormat = "markdown"
	jsonFormat     = "json"
	yamlFormat     = "yaml"
)

var (
	legalOutputTypes = []string{tableFormat, markdownFormat, jsonFormat, yamlFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func outputHelp() string {
	return fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", "))
}

// printStructured writes v as json or yaml and reports whether output was one of them.
func printStructured(w io.Writer, output string, v any) (bool, error) {
	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("marshalling to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case yamlFormat:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("marshalling to YAML: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return true, err
	}
	return false, nil
}

func tableMode(output string) format.Mode {
	if output == markdownFormat {
		return format.Markdown
	}
	return format.ASCII
}

func capOrOpen(c *float64) string {
	if c == nil {
		return "and above"
	}
	return format.Money(*c)
}

// parseArgsWithNumbers parses the flags of a command that sets DisableFlagParsing, so a
// negative amount such as -5000 reaches the command as an argument instead of failing as
// an unknown shorthand flag. It reports whether help was printed.
func parseArgsWithNumbers(cmd *cobra.Command, args []string, positional cobra.PositionalArgs) ([]string, bool, error) {
	fs := cmd.Flags()
	if err := fs.Parse(numbersAsArgs(fs, args)); err != nil {
		return nil, false, err
	}
	if help, _ := fs.GetBool("help"); help {
		return nil, true, cmd.Help()
	}

	args = fs.Args()
	if err := positional(cmd, args); err != nil {
		return nil, false, err
	}
	return args, false, nil
}

// numbersAsArgs moves negative numbers that are not flag values behind a "--" terminator.
func numbersAsArgs(fs *pflag.FlagSet, args []string) []string {
	var (
		flags   []string
		numbers []string
		rest    []string
	)
	terminated := false
	for i, a := range args {
		if a == "--" {
			rest = args[i+1:]
			terminated = true
			break
		}
		if i > 0 && takesValue(fs, args[i-1]) {
			flags = append(flags, a)
			continue
		}
		if len(a) > 1 && a[0] == '-' {
			if _, err := income.ParseStrict(a); err == nil {
				numbers = append(numbers, a)
				continue
			}
		}
		flags = append(flags, a)
	}
	if len(numbers) == 0 && !terminated {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, flags...)
	out = append(out, "--")
	out = append(out, numbers...)
	return append(out, rest...)
}

// takesValue reports whether arg is a flag, written without "=", that consumes the next argument.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if len(arg) < 2 || arg[0] != '-' || strings.Contains(arg, "=") {
		return false
	}

	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		f = fs.Lookup(arg[2:])
	case len(arg) == 2:
		f = fs.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}
