// Debug program printing the tags tagedit reads from files, and the batch
// view it would reconcile from them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tagedit/internal/reconcile"
	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/tags"
)

var allFields = []tags.Field{
	tags.FieldTitle, tags.FieldArtist, tags.FieldAlbumArtist, tags.FieldAlbum,
	tags.FieldYear, tags.FieldTrackNumber, tags.FieldTotalTracks, tags.FieldGenre, tags.FieldComment,
}

func main() {
	var plainSort, verbose bool
	cmd := &cobra.Command{
		Use:   "tagdump PATH...",
		Short: "Print the tags tagedit reads from music files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			loader := &record.Loader{
				Store:       tags.NewFileStore(),
				NaturalSort: !plainSort,
				AudioInfo:   true,
				Log:         log,
			}
			records, err := load(loader, paths)
			if err != nil {
				return err
			}
			dump(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plainSort, "plain-sort", false, "order directory entries bytewise")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every skipped directory entry")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func load(loader *record.Loader, paths []string) ([]*record.Record, error) {
	var records []*record.Record
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			dir, err := loader.LoadDir(path)
			if err != nil {
				return nil, err
			}
			records = append(records, dir...)
			continue
		}
		records = append(records, loader.LoadPaths([]string{path})...)
	}
	return records, nil
}

func dump(w io.Writer, records []*record.Record) {
	for _, r := range records {
		format, _ := tags.Sniff(r.Path)
		fmt.Fprintf(w, "%s (%s, %s)\n", r.Path, format, humanize.Bytes(uint64(max(r.Size, 0))))
		if r.Info != nil {
			fmt.Fprintf(w, "  stream: %s %v %d Hz %d bit\n", r.Info.Format, r.Info.Duration, r.Info.SampleRate, r.Info.BitDepth)
		}
		for _, f := range allFields {
			fmt.Fprintf(w, "  %-13s %s\n", f.Label()+":", r.Fields.Display(f))
		}
	}

	if len(records) > 1 {
		view := reconcile.New(records)
		fmt.Fprintf(w, "\nBatch view over %d files:\n", len(records))
		for _, f := range reconcile.Shared {
			fmt.Fprintf(w, "  %-13s %s\n", f.Label()+":", view.Display(f))
		}
	}
}
