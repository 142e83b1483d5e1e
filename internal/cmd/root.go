// Package cmd implements the jflat command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jflat/internal/flatten"
	"jflat/internal/output"
	"jflat/internal/reader"
)

// outputAuto is the value --output takes when -o is passed bare; the target
// path is then derived from the input name inside the Downloads folder.
const outputAuto = "auto"

func newRootCmd() *cobra.Command {
	var (
		sep     string
		rows    int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "jflat <input.json>",
		Short: "Flatten JSON or JSON Lines into a table",
		Long: `jflat converts nested JSON or JSON Lines input into a flat table.

Nested keys are joined with a separator (e.g. address__city) and the result
is displayed in the terminal or saved as CSV.`,
		Example: `  jflat data.json
  jflat --sep . -n 0 data.json
  jflat -o data.jsonl
  jflat --output=out/data.csv data.jsonl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], sep, rows, outPath, cmd.Flags().Changed("output"))
		},
	}

	cmd.Flags().StringVar(&sep, "sep", flatten.DefaultSep, "separator for nested keys")
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of rows to display (0 = all)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "",
		"save CSV instead of displaying; bare -o writes <input>_flat.csv to Downloads, use --output=PATH for an explicit target")
	cmd.Flags().Lookup("output").NoOptDefVal = outputAuto

	return cmd
}

// Execute runs the root command against os.Args, printing any failure to
// stderr. Map the returned error to a process status with ExitCode.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func run(cmd *cobra.Command, input, sep string, rows int, outPath string, save bool) error {
	if rows < 0 {
		return fmt.Errorf("--rows must be non-negative, got %d", rows)
	}

	inPath, err := expandPath(input)
	if err != nil {
		return err
	}
	if _, err := os.Stat(inPath); err != nil {
		return &exitError{code: ExitInput, err: fmt.Errorf("input file not found: %s", inPath)}
	}

	data, err := reader.ReadFile(inPath)
	if err != nil {
		var perr *reader.ParseError
		if errors.As(err, &perr) {
			return &exitError{code: ExitParse, err: fmt.Errorf("failed to parse JSON/JSON Lines: %w", err)}
		}
		return &exitError{code: ExitInput, err: err}
	}

	table := flatten.Normalize(data, sep)
	table.Clean()

	if len(table.Rows) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No records found in %s.\n", inPath)
		return nil
	}

	if save {
		return saveCSV(cmd, table, inPath, outPath)
	}
	return display(cmd, table, inPath, rows)
}

// display prints a summary header and the first rows of the table.
func display(cmd *cobra.Command, t *flatten.Table, inPath string, rows int) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "--- Data from %s (Total Rows: %d, Columns: %d) ---\n", inPath, len(t.Rows), len(t.Columns))

	shown := t
	if rows > 0 && len(t.Rows) > rows {
		fmt.Fprintf(out, "\nShowing the first %d rows:\n", rows)
		shown = t.Head(rows)
	} else {
		fmt.Fprintf(out, "\nShowing all rows:\n")
	}

	return output.NewTableFormatter(out).Format(shown)
}

// saveCSV writes the whole table to the resolved target path, creating
// parent directories as needed.
func saveCSV(cmd *cobra.Command, t *flatten.Table, inPath, outPath string) error {
	target, err := resolveOutputPath(inPath, outPath)
	if err != nil {
		return &exitError{code: ExitWrite, err: err}
	}

	if err := writeCSVFile(t, target); err != nil {
		return &exitError{code: ExitWrite, err: fmt.Errorf("failed to save file to %s: %w", target, err)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Success! Flattened data saved to %s (Rows: %d).\n", target, len(t.Rows))
	return nil
}

func writeCSVFile(t *flatten.Table, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}

	if err := output.NewCSVFormatter(f).Format(t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// resolveOutputPath picks the CSV target: the explicit path when one was
// given, otherwise <input-stem>_flat.csv in the user's Downloads folder.
func resolveOutputPath(inPath, outPath string) (string, error) {
	if outPath == "" || outPath == outputAuto {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate home directory: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
		return filepath.Join(home, "Downloads", base+"_flat.csv"), nil
	}
	return expandPath(outPath)
}

// expandPath resolves a leading ~ against the home directory and makes the
// path absolute.
func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~ in %q: %w", p, err)
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
