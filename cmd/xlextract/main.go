// Package main provides the CLI entry point for xlextract-go.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlextract-go/pkg/xlextract"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/output"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
	"github.com/xuri/excelize/v2"
)

var (
	sheetName   string
	headerRow   int
	columns     string
	fromRow     int
	toRow       int
	stopAtBlank bool
	outputPath  string
	pretty      bool
	dump        bool
	verbose     int
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlextract",
		Short: "Extract column bands of Excel sheets into structured records",
		Long: `xlextract-go reads a horizontal band of columns from every data row of
a sheet and labels each value with the header cell above it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	rootCmd.PersistentFlags().IntVar(&headerRow, "header-row", 1, "Row holding the header labels (1-based)")
	rootCmd.PersistentFlags().StringVar(&columns, "columns", "", "Column band, e.g. B:D")
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "Log verbosity")
	rootCmd.MarkPersistentFlagRequired("columns")

	rootCmd.AddCommand(newBandCommand())
	rootCmd.AddCommand(newHeadersCommand())
	return rootCmd
}

func newBandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "band [input.xlsx]",
		Short: "Extract the band of every data row as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runBand,
	}

	cmd.Flags().IntVar(&fromRow, "from-row", 0, "First data row (default: row after the header row)")
	cmd.Flags().IntVar(&toRow, "to-row", 0, "Last data row (default: last non-empty row)")
	cmd.Flags().BoolVar(&stopAtBlank, "stop-at-blank", false, "Stop at the first row whose band is empty")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump Go values instead of JSON")
	return cmd
}

func newHeadersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "headers [input.xlsx]",
		Short: "List the header labels of the band with suggested Go field names",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeaders,
	}
}

func newLogger() logr.Logger {
	stdr.SetVerbosity(verbose)
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

func splitColumns(band string) (initial, final string, err error) {
	parts := strings.Split(band, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid columns: %q (must look like B:D)", band)
	}
	return parts[0], parts[1], nil
}

func openSheet(inputPath string) (*excelize.File, *parser.Sheet, error) {
	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file not found: %s", inputPath)
	}

	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	sheet, err := parser.NewSheet(f, sheetName)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, sheet, nil
}

func runBand(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	initial, final, err := splitColumns(columns)
	if err != nil {
		return err
	}

	entries, err := xlextract.NewCollectionColumnExtractor(
		func(r *models.BandRow) *[]models.BandEntry { return &r.Entries },
		func(e *models.BandEntry) *string { return &e.Header }, headerRow,
		func(e *models.BandEntry) *string { return &e.Value },
		initial, final)
	if err != nil {
		return err
	}
	rowNumber, err := xlextract.NewRowNumberExtractor(func(r *models.BandRow) *int { return &r.R })
	if err != nil {
		return err
	}

	f, sheet, err := openSheet(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := xlextract.DefaultOptions()
	opts.FromRow = fromRow
	if opts.FromRow == 0 {
		opts.FromRow = headerRow + 1
	}
	opts.ToRow = toRow
	opts.Logger = newLogger()
	if stopAtBlank {
		opts.Stop = func(row int, rng xlextract.Range) (bool, error) {
			cells, err := rng.Cells(entries.BandRef(row))
			if err != nil {
				return false, err
			}
			for _, c := range cells {
				if !c.IsEmpty() {
					return false, nil
				}
			}
			return true, nil
		}
	}

	rows, err := xlextract.Extract[models.BandRow](sheet, opts, rowNumber, entries)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	band := &models.BandData{
		BookName:  filepath.Base(inputPath),
		SheetName: sheet.Name(),
		HeaderRow: headerRow,
		Columns:   strings.ToUpper(columns),
		Rows:      rows,
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer file.Close()
		out = file
	}

	if dump {
		spew.Fdump(out, band)
		return nil
	}

	jsonData, err := output.BandToJSON(band, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runHeaders(cmd *cobra.Command, args []string) error {
	initial, final, err := splitColumns(columns)
	if err != nil {
		return err
	}

	f, sheet, err := openSheet(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ref := fmt.Sprintf("%s%d:%s%d", initial, headerRow, final, headerRow)
	cells, err := sheet.Cells(ref)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CELL\tHEADER\tFIELD")
	for _, c := range cells {
		label := fmt.Sprint(c.Value)
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Address, label, parser.GoName(label))
	}
	return w.Flush()
}
