package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jsphweid/midistrip/file"
	"github.com/jsphweid/midistrip/midi"
	"github.com/jsphweid/midistrip/strip"
	"github.com/jsphweid/midistrip/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	stripTracks    bool
	stripEvents    bool
	stripKeepTime  bool
	stripOutDir    string
	stripSuffix    string
	stripOverwrite bool
	stripDryRun    bool
	stripMax       int
)

func init() {
	stripCmd.Flags().BoolVar(&stripTracks, "tracks", true, "remove tracks without note on or tempo events")
	stripCmd.Flags().BoolVar(&stripEvents, "events", true, "remove program change and control change messages")
	stripCmd.Flags().BoolVar(&stripKeepTime, "keep-time", false, "fold removed deltas into the next event")
	stripCmd.Flags().StringVar(&stripOutDir, "out", "", "directory for stripped files (default: next to the input)")
	stripCmd.Flags().StringVar(&stripSuffix, "suffix", ".stripped", "appended to the file name before the extension")
	stripCmd.Flags().BoolVar(&stripOverwrite, "overwrite", false, "replace existing output files")
	stripCmd.Flags().BoolVar(&stripDryRun, "dry-run", false, "report what would be removed without writing")
	stripCmd.Flags().IntVar(&stripMax, "max", 0, "stop after this many files (0 for no limit)")
	rootCmd.AddCommand(stripCmd)
}

var stripCmd = &cobra.Command{
	Use:   "strip PATH...",
	Short: "Strips files or directories of MIDI files",
	Long: `Strips every file given and every .mid/.midi file below each directory given,
writing the result next to the input (or into --out) with --suffix added.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := stripRunOptions{
			Strip:     cfg.StripOptions(),
			OutDir:    cfg.Output.Dir,
			Suffix:    cfg.Output.Suffix,
			Overwrite: cfg.Output.Overwrite,
			DryRun:    stripDryRun,
		}
		flags := cmd.Flags()
		if flags.Changed("tracks") {
			opts.Strip.EmptyTracks = stripTracks
		}
		if flags.Changed("events") {
			opts.Strip.UnwantedEvents = stripEvents
		}
		if flags.Changed("keep-time") {
			opts.Strip.KeepAbsoluteTime = stripKeepTime
		}
		if flags.Changed("out") {
			opts.OutDir = stripOutDir
		}
		if flags.Changed("suffix") {
			opts.Suffix = stripSuffix
		}
		if flags.Changed("overwrite") {
			opts.Overwrite = stripOverwrite
		}

		paths, err := util.GatherAllMidiPaths(args, stripMax)
		if err != nil {
			return err
		}
		rows := runStrip(paths, opts, logger)
		renderStripRows(cmd.OutOrStdout(), rows)
		for _, row := range rows {
			if row.Err != nil {
				return fmt.Errorf("%d of %d files failed", countFailed(rows), len(rows))
			}
		}
		return nil
	},
}

type stripRunOptions struct {
	Strip     strip.Options
	OutDir    string
	Suffix    string
	Overwrite bool
	DryRun    bool
}

type stripRow struct {
	Path   string
	Output string
	Result strip.Result
	Err    error
}

func runStrip(paths []string, opts stripRunOptions, log *zap.Logger) []stripRow {
	rows := make([]stripRow, 0, len(paths))
	for i, path := range paths {
		log.Debug("processing", zap.Int("n", i+1), zap.Int("of", len(paths)), zap.String("file", path))
		row := stripOne(path, opts)
		if row.Err != nil {
			log.Warn("skipping", zap.String("file", path), zap.Error(row.Err))
		} else {
			log.Info("stripped", zap.String("file", path), zap.String("output", row.Output),
				zap.Int("tracks", row.Result.Tracks), zap.Int("events", row.Result.Events))
		}
		rows = append(rows, row)
	}
	return rows
}

func stripOne(path string, opts stripRunOptions) stripRow {
	row := stripRow{Path: path}
	doc, err := midi.ReadMidiFile(path)
	if err != nil {
		row.Err = err
		return row
	}
	row.Result, err = strip.Apply(doc, opts.Strip)
	if err != nil {
		row.Err = err
		return row
	}
	if opts.DryRun || !row.Result.Changed() {
		return row
	}

	out := file.OutputPath(path, opts.OutDir, opts.Suffix)
	if err := midi.WriteMidiFile(out, doc, opts.Overwrite); err != nil {
		row.Err = err
		return row
	}
	row.Output = out
	return row
}

func countFailed(rows []stripRow) int {
	n := 0
	for _, row := range rows {
		if row.Err != nil {
			n++
		}
	}
	return n
}

func renderStripRows(w io.Writer, rows []stripRow) {
	tw := newTable(w, table.Row{"File", "Tracks removed", "CC/PC removed", "Output"}, 2, 3)
	tracks := make([]int, 0, len(rows))
	events := make([]int, 0, len(rows))
	for _, row := range rows {
		tracks = append(tracks, row.Result.Tracks)
		events = append(events, row.Result.Events)
		result := row.Output
		switch {
		case row.Err != nil:
			result = "error: " + row.Err.Error()
		case result == "" && row.Result.Changed():
			result = "(dry run)"
		case result == "":
			result = "unchanged"
		}
		tw.AppendRow(table.Row{row.Path, row.Result.Tracks, row.Result.Events, result})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d %s", len(rows), util.Pluralize(len(rows), "file", "files")),
		util.Sum(tracks),
		util.Sum(events),
		"",
	})
	tw.Render()
}
