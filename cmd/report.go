package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jsphweid/midistrip/midi"
	"github.com/jsphweid/midistrip/model"
	"github.com/jsphweid/midistrip/report"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tracksOutput string

func init() {
	tracksCmd.Flags().StringVarP(&tracksOutput, "output", "o", "table", "table, yaml or json")
	rootCmd.AddCommand(tracksCmd)
}

var tracksCmd = &cobra.Command{
	Use:   "tracks FILE",
	Short: "Lists the tracks of a MIDI file",
	Long:  `Lists every track with its name, event counts and whether strip would remove it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		return writeSummaries(cmd.OutOrStdout(), report.Summaries(doc), tracksOutput)
	},
}

func writeSummaries(w io.Writer, summaries []model.TrackSummary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(summaries)
	case "table":
		tw := newTable(w, table.Row{"#", "Name", "Events", "Note ons", "CC/PC", "Empty"}, 1, 3, 4, 5)
		for _, s := range summaries {
			empty := ""
			if s.Empty {
				empty = "yes"
			}
			tw.AppendRow(table.Row{s.Index, s.Name, s.Events, s.NoteOns, s.Unwanted, empty})
		}
		tw.Render()
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
