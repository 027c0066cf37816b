package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabulate/internal/chunk"
	"github.com/mesh-intelligence/tabulate/internal/export"
	"github.com/mesh-intelligence/tabulate/internal/paths"
	"github.com/mesh-intelligence/tabulate/pkg/types"
)

func (a *app) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <input.json>",
		Short: "Export a catalog document to chunked CSV files",
		Long: `Export reads a product array or a schema+data catalog and writes one or
more {table}_{n}.csv files per table, each below the byte budget.

Chunk files go to --out-dir, or next to the input file when unset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args[0])
		},
	}

	f := cmd.Flags()
	f.String("delimiter", defaultDelimiter, "field separator: comma, semicolon, tab, pipe, or the character itself")
	f.Int("max-bytes", types.DefaultMaxBytes, "maximum bytes per chunk file, including BOM and header")
	f.String("out-dir", "", "directory for chunk files (default: the input file's directory)")
	f.Int("tick-every", types.DefaultTickEvery, "iterations between progress ticks (0 disables)")
	f.String("archive", "", "also store chunks in this SQLite database")
	bindFlag(a.v, cfgKeyDelimiter, f.Lookup("delimiter"))
	bindFlag(a.v, cfgKeyMaxBytes, f.Lookup("max-bytes"))
	bindFlag(a.v, cfgKeyOutputDir, f.Lookup("out-dir"))
	bindFlag(a.v, cfgKeyTickEvery, f.Lookup("tick-every"))
	bindFlag(a.v, cfgKeyArchive, f.Lookup("archive"))

	return cmd
}

func (a *app) runExport(cmd *cobra.Command, input string) error {
	s, err := a.loadSettings()
	if err != nil {
		return userError(err)
	}
	opts, err := s.options()
	if err != nil {
		return userError(err)
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return sysError(fmt.Errorf("generate run id: %w", err))
	}
	logger := a.logger(cmd, s).With("run_id", runID.String(), "input", input)

	outDir, err := paths.ResolveOutputDir(s.OutputDir, input)
	if err != nil {
		return sysError(fmt.Errorf("resolve output dir: %w", err))
	}

	f, err := os.Open(input)
	if err != nil {
		return sysError(fmt.Errorf("open input: %w", err))
	}
	defer f.Close()

	var sink chunk.Sink = chunk.NewDirSink(outDir)
	if s.Archive != "" {
		archive, err := chunk.OpenSQLiteSink(s.Archive, runID.String())
		if err != nil {
			return sysError(err)
		}
		defer archive.Close()
		sink = chunk.Tee{sink, archive}
		logger.Debug("archiving chunks", "archive", s.Archive)
	}

	progress := newProgressReporter(logger)
	engine, err := export.NewEngine(opts, sink, progress.hooks())
	if err != nil {
		return userError(err)
	}

	logger.Info("export started", "out_dir", outDir, "delimiter", types.DelimiterName(opts.Delimiter), "max_bytes", opts.MaxBytes)
	report, err := engine.Run(f)
	if report != nil {
		if werr := a.writeReport(cmd.OutOrStdout(), outDir, report); werr != nil {
			return sysError(werr)
		}
	}
	if err != nil {
		logger.Error("export failed", "error", err)
		return classify(err)
	}
	logger.Info("export finished", "format", report.Format, "tables", len(report.Tables), "chunks", report.Chunks())
	return nil
}

// classify maps engine errors to exit codes.
func classify(err error) error {
	switch {
	case errors.Is(err, types.ErrMalformedInput), errors.Is(err, types.ErrUnrecognizedFormat):
		return userError(err)
	default:
		return sysError(err)
	}
}

type exportOutput struct {
	OutputDir string `json:"output_dir"`
	*export.Report
}

func (a *app) writeReport(w io.Writer, outDir string, report *export.Report) error {
	if a.jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportOutput{OutputDir: outDir, Report: report})
	}
	for _, t := range report.Tables {
		for _, c := range t.Chunks {
			if _, err := fmt.Fprintf(w, "%s\t%d rows\t%d bytes\n", c.Name, c.Rows, c.Bytes); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s: %d tables, %d chunks in %s\n", report.Format, len(report.Tables), report.Chunks(), outDir)
	return err
}
