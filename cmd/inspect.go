package cmd

import (
	"fmt"

	"github.com/jsphweid/midistrip/midi"
	"github.com/jsphweid/midistrip/report"
	"github.com/spf13/cobra"
)

var inspectTrack int

func init() {
	inspectCmd.Flags().IntVarP(&inspectTrack, "track", "t", 0, "index of the track to dump")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Dumps the events of one track",
	Long:  `Prints the track list of FILE followed by every event of the selected track.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, label := range report.TrackList(doc) {
			fmt.Fprintln(out, label)
		}
		data, ok := report.TrackData(report.GetTrack(doc, inspectTrack))
		if !ok {
			return fmt.Errorf("no track %d in %s", inspectTrack, args[0])
		}
		fmt.Fprintf(out, "\n--- track %d ---\n%s", inspectTrack, data)
		return nil
	},
}
