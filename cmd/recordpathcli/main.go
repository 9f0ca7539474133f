// Command recordpathcli is a small demo host: it compiles a Record Path
// expression, evaluates it against a JSON document, and either prints the
// matched values or writes a new value back to the first match.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/flowforge/recordpath"
	"github.com/flowforge/recordpath/internal/jsonrecord"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath string
		setValue  string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "recordpathcli <path-expression>",
		Short: "Evaluate a Record Path expression against a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			return run(logger, args[0], inputPath, setValue)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the JSON document to evaluate against (required)")
	cmd.Flags().StringVar(&setValue, "set", "", "if given, write this string value back to the first match instead of printing results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return logger
}

func run(logger log.Logger, expr, inputPath, setValue string) error {
	compiled, err := recordpath.Compile(expr)
	if err != nil {
		return fmt.Errorf("compile %q: %w", expr, err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	root, err := jsonrecord.Decode(logger, data)
	if err != nil {
		return err
	}

	result, err := compiled.Evaluate(root)
	if err != nil {
		return err
	}

	if setValue != "" {
		for fv := range result.SelectedFields() {
			if err := fv.UpdateValue(setValue); err != nil {
				return fmt.Errorf("set value: %w", err)
			}
			break
		}
		if err := result.Err(); err != nil {
			return err
		}

		out, err := jsonrecord.Encode(logger, root)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	count := 0
	for fv := range result.SelectedFields() {
		out, err := jsonrecord.Encode(logger, fv.Value())
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		count++
	}
	if err := result.Err(); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "evaluation complete", "matches", count)
	return nil
}
