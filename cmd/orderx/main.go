// orderx is the one-shot CLI: read pasted order text from a file or
// stdin, run the extraction pipeline, and write the XLSX workbook.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/common"
	"github.com/bdcommerce/order-extractor/internal/export"
	"github.com/bdcommerce/order-extractor/internal/patterns"
	"github.com/bdcommerce/order-extractor/internal/pipeline"
)

// Version is set at build time using ldflags.
var Version = "dev"

var (
	inPath       string
	outPath      string
	patternsPath string
	sheetName    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "orderx",
	Short: "Extract customer orders from pasted Bengali/English text",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process pasted order text into an XLSX workbook",
	Long: `Reads loosely formatted customer order text (Bengali and English),
splits it into per-customer entries, extracts name, phone, address,
amount and note, and writes the valid entries to an XLSX workbook.
Entries with missing fields are reported and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orderx %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	processCmd.Flags().StringVarP(&inPath, "in", "i", "", "input text file (default stdin)")
	processCmd.Flags().StringVarP(&outPath, "out", "o", "", "output workbook path (default timestamped name)")
	processCmd.Flags().StringVar(&patternsPath, "patterns", "", "marker override file (YAML)")
	processCmd.Flags().StringVar(&sheetName, "sheet", export.DefaultSheet, "worksheet name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}

func runProcess() error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	lib := patterns.Default()
	if patternsPath != "" {
		loaded, err := patterns.Load(patternsPath)
		if err != nil {
			return err
		}
		lib = loaded
	}

	input, err := readInput()
	if err != nil {
		return err
	}

	writer := export.NewWriter(sheetName, logger)
	proc := pipeline.NewProcessor(lib, writer, logger)

	summary, data, err := proc.ProcessToXLSX(context.Background(), input)
	if summary != nil {
		report(summary)
	}
	if err != nil {
		if errors.Is(err, common.ErrNoInput) || errors.Is(err, common.ErrNoValidData) {
			return fmt.Errorf("%w", err)
		}
		return err
	}

	path := outPath
	if path == "" {
		path = export.Filename(time.Now())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	fmt.Printf("Wrote %d entr%s to %s\n", len(summary.Rows), plural(len(summary.Rows)), path)
	return nil
}

func readInput() (string, error) {
	if inPath == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(raw), nil
}

func report(summary *pipeline.Summary) {
	fmt.Printf("Found %d customer entr%s\n", summary.Blocks, plural(summary.Blocks))
	for _, rej := range summary.Rejected {
		fmt.Printf("Entry %d: missing %s\n", rej.BlockIndex,
			strings.Join(constants.FieldsAsStrings(rej.Missing), ", "))
	}
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
