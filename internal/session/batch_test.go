package session_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagedit/internal/reconcile"
	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/tags"
	"github.com/llehouerou/tagedit/internal/ui/testutil"
)

func newBatch(t *testing.T, inputs []string, fields ...*tags.Fields) (*session.Batch, *testutil.Terminal, *tags.Mock, []*record.Record) {
	t.Helper()
	m := tags.NewMock()
	records := newRecords(t, m, fields...)
	term := testutil.NewTerminal(inputs...)
	return session.NewBatch(session.Env{Term: term, Store: m}, records), term, m, records
}

func withArtists(names ...string) []*tags.Fields {
	out := make([]*tags.Fields, len(names))
	for i, n := range names {
		out[i] = &tags.Fields{Artist: tags.Str(n), Album: tags.Str("Alb")}
	}
	return out
}

func countPrompts(term *testutil.Terminal, label string) int {
	n := 0
	for _, p := range term.Prompts {
		if p == label {
			n++
		}
	}
	return n
}

func TestBatch_SharedEditConverges(t *testing.T) {
	b, term, m, records := newBatch(t, []string{"1", "C", "9", "0"}, withArtists("A", "A", "B")...)
	require.Equal(t, reconcile.Differs, b.View().Text(tags.FieldArtist))

	assert.False(t, b.Run())
	assert.False(t, b.Dirty())
	for _, r := range records {
		assert.Equal(t, "C", *r.Fields.Artist)
		assert.Equal(t, "C", *m.Stored(r.Path).Artist)
	}
	assert.Equal(t, "C", b.View().Text(tags.FieldArtist))
	assert.Equal(t, reconcile.Text(records, tags.FieldArtist), b.View().Text(tags.FieldArtist))
	assert.Equal(t, []string{"Save Successful!"}, term.Statuses())
}

func TestBatch_EmptyAnswerBlanksDifferingValues(t *testing.T) {
	b, term, _, records := newBatch(t, []string{"1", "", "0", "y"}, withArtists("A", "B")...)

	assert.True(t, b.Run())
	for _, r := range records {
		require.NotNil(t, r.Fields.Artist)
		assert.Empty(t, *r.Fields.Artist)
	}
	assert.Equal(t, "", b.View().Text(tags.FieldArtist))
	assert.Contains(t, term.Prompts, confirmPrompt)
}

func TestBatch_EmptyAnswerOverAbsentIsNoop(t *testing.T) {
	b, term, _, records := newBatch(t, []string{"2", "", "0"}, withArtists("A", "B")...)

	assert.False(t, b.Run())
	for _, r := range records {
		assert.Nil(t, r.Fields.AlbumArtist)
	}
	assert.Equal(t, tags.NoneLabel, b.View().Text(tags.FieldAlbumArtist))
	assert.NotContains(t, term.Prompts, confirmPrompt)
}

func TestBatch_ReenteringValueIsNoop(t *testing.T) {
	b, term, m, _ := newBatch(t, []string{"3", "Alb", "0"}, withArtists("A", "B")...)

	assert.False(t, b.Run())
	assert.Empty(t, m.WriteCalls())
	assert.NotContains(t, term.Prompts, confirmPrompt)
}

func TestBatch_SharedNumber(t *testing.T) {
	b, _, _, records := newBatch(t, []string{"4", "1999", "0", "y"},
		&tags.Fields{Year: 2001}, &tags.Fields{Year: 2002})
	require.Equal(t, 0, b.View().Number(tags.FieldYear))

	assert.True(t, b.Run())
	for _, r := range records {
		assert.Equal(t, 1999, r.Fields.Year)
	}
	assert.Equal(t, 1999, b.View().Number(tags.FieldYear))
}

func TestBatch_ZeroAgainstSentinelIsNoop(t *testing.T) {
	b, _, _, records := newBatch(t, []string{"4", "0", "0"},
		&tags.Fields{Year: 2001}, &tags.Fields{Year: 2002})

	assert.False(t, b.Run())
	assert.Equal(t, 2001, records[0].Fields.Year)
	assert.Equal(t, 2002, records[1].Fields.Year)
}

func TestBatch_NumericParseFailure(t *testing.T) {
	b, term, _, records := newBatch(t, []string{"5", "abc", "0"},
		&tags.Fields{TotalTracks: 2}, &tags.Fields{TotalTracks: 2})

	assert.False(t, b.Run())
	assert.Equal(t, []string{"Error: Not a number"}, term.Statuses())
	assert.Equal(t, 2, records[0].Fields.TotalTracks)
}

func TestBatch_PartialSaveFailure(t *testing.T) {
	b, term, m, records := newBatch(t, []string{"1", "C", "9", "0", "y"}, withArtists("A", "A", "B")...)
	m.Remove(records[1].Path)

	assert.True(t, b.Run())
	assert.True(t, b.Dirty())
	assert.Len(t, m.WriteCalls(), 3)
	assert.Equal(t, "C", *m.Stored(records[0].Path).Artist)
	assert.Equal(t, "C", *m.Stored(records[2].Path).Artist)
	assert.Equal(t,
		[]string{"WARNING! Failed to write tag data for 1 of 3 files: 02.mp3. Check the files and save again."},
		term.Statuses())
}

func TestBatch_CalculateTotal(t *testing.T) {
	fields := []*tags.Fields{{}, {TotalTracks: 9}, {}, {}}
	b, term, _, records := newBatch(t, []string{"C", "y", "0", "y"}, fields...)

	assert.True(t, b.Run())
	for _, r := range records {
		assert.Equal(t, 4, r.Fields.TotalTracks)
	}
	assert.Equal(t, 4, b.View().Number(tags.FieldTotalTracks))
	assert.Contains(t, term.Lines, "Total tracks: 4")
	assert.Contains(t, term.Prompts, "Set this as the total track count? y/N ")
}

func TestBatch_CalculateTotalDeclined(t *testing.T) {
	b, _, _, records := newBatch(t, []string{"C", "", "0"}, &tags.Fields{}, &tags.Fields{})

	assert.False(t, b.Run())
	assert.Zero(t, records[0].Fields.TotalTracks)
}

func TestBatch_CalculateTotalUnchanged(t *testing.T) {
	b, term, _, _ := newBatch(t, []string{"C", "y", "0"},
		&tags.Fields{TotalTracks: 2}, &tags.Fields{TotalTracks: 2})

	assert.False(t, b.Run())
	assert.NotContains(t, term.Prompts, confirmPrompt)
}

func TestBatch_CountOverflow(t *testing.T) {
	records := make([]*record.Record, tags.MaxTrackCount+1)
	for i := range records {
		records[i] = &record.Record{Path: "/music/x.mp3", Fields: &tags.Fields{}}
	}
	term := testutil.NewTerminal("C", "S", "0")
	b := session.NewBatch(session.Env{Term: term, Store: tags.NewMock()}, records)

	assert.False(t, b.Run())
	assert.Equal(t, []string{"Error: Too many files", "Error: Too many files"}, term.Statuses())
	assert.Empty(t, term.Lines)
	assert.Zero(t, records[0].Fields.TotalTracks)
	assert.Zero(t, records[0].Fields.TrackNumber)
}

func TestBatch_SetTrackNumbers(t *testing.T) {
	b, _, _, records := newBatch(t, []string{"S", "y", "0", "y"}, &tags.Fields{}, &tags.Fields{TrackNumber: 2}, &tags.Fields{})

	assert.True(t, b.Run())
	for i, r := range records {
		assert.Equal(t, i+1, r.Fields.TrackNumber)
	}
}

func TestBatch_EditAllStopsWhenDeclined(t *testing.T) {
	inputs := []string{
		"E",
		"1", "T1", "9", "0", // first file: edit and save
		"", // continue
		"1", "T2", "0", "y", // second file: leave unsaved
		"n", // stop
		"0", "y",
	}
	b, term, m, records := newBatch(t, inputs, withArtists("A", "A", "A")...)

	assert.True(t, b.Run())
	assert.Equal(t, "T1", *records[0].Fields.Title)
	assert.Equal(t, "T1", *m.Stored(records[0].Path).Title)
	assert.Equal(t, "T2", *records[1].Fields.Title)
	assert.Nil(t, m.Stored(records[1].Path).Title)
	assert.Nil(t, records[2].Fields.Title)
	assert.Equal(t, 2, countPrompts(term, "Continue editing? Y/n "))
	assert.Empty(t, term.Remaining())
}

func TestBatch_EditAllVisitsEveryRecord(t *testing.T) {
	b, term, _, _ := newBatch(t, []string{"E", "0", "", "0", "0"}, withArtists("A", "A")...)

	assert.False(t, b.Run())
	assert.Equal(t, 1, countPrompts(term, "Continue editing? Y/n "))
	assert.Empty(t, term.Remaining())
}

func TestBatch_EditAllMergesView(t *testing.T) {
	b, _, _, _ := newBatch(t, []string{"E", "0", "", "2", "B", "9", "0", "0"}, withArtists("A", "A")...)

	assert.False(t, b.Run())
	assert.Equal(t, reconcile.Differs, b.View().Text(tags.FieldArtist))
	assert.Equal(t, "Alb", b.View().Text(tags.FieldAlbum))
}

func TestBatch_ViewSelect(t *testing.T) {
	inputs := []string{"V", "2", "4", "Solo", "9", "0", "0"}
	b, term, m, records := newBatch(t, inputs, withArtists("A", "A", "A")...)

	assert.False(t, b.Run())
	assert.Equal(t, "Solo", *m.Stored(records[1].Path).Album)
	assert.Equal(t, "Alb", *records[0].Fields.Album)
	assert.Equal(t, reconcile.Differs, b.View().Text(tags.FieldAlbum))

	var files session.Screen
	for _, s := range term.Screens {
		if s.Title == "Files" {
			files = s
		}
	}
	require.NotEmpty(t, files.Sections)
	labels := make([]string, 0, len(files.Sections[0].Items))
	for _, it := range files.Sections[0].Items {
		labels = append(labels, it.Key+") "+it.Label)
	}
	assert.Equal(t, "1) 01.mp3 2) 02.mp3 3) 03.mp3", strings.Join(labels, " "))
}

func TestBatch_ViewInvalidSelection(t *testing.T) {
	b, term, _, _ := newBatch(t, []string{"V", "7", "V", "abc", "V", "0", "V", "", "0"}, withArtists("A", "A")...)

	assert.False(t, b.Run())
	assert.Equal(t, []string{"Error: Invalid selection", "Error: Invalid selection"}, term.Statuses())
}

func TestBatch_InvalidOption(t *testing.T) {
	b, term, _, _ := newBatch(t, []string{"z", "6", "0"}, withArtists("A")...)

	assert.False(t, b.Run())
	assert.Equal(t, []string{"Error: Invalid option", "Error: Invalid option"}, term.Statuses())
}

func TestBatch_LowercaseCommands(t *testing.T) {
	b, _, _, records := newBatch(t, []string{"c", "y", "0", "y"}, &tags.Fields{}, &tags.Fields{})

	assert.True(t, b.Run())
	assert.Equal(t, 2, records[1].Fields.TotalTracks)
}

func TestBatch_ClosedInputExits(t *testing.T) {
	b, term, _, records := newBatch(t, []string{"1", "Z"}, withArtists("A", "B")...)

	assert.True(t, b.Run())
	assert.True(t, term.Closed())
	assert.Equal(t, "Z", *records[1].Fields.Artist)
}

func TestBatch_Screen(t *testing.T) {
	b, term, _, _ := newBatch(t, []string{"0"},
		&tags.Fields{Artist: tags.Str("A"), Year: 2001},
		&tags.Fields{Artist: tags.Str("B"), Year: 2001})

	assert.False(t, b.Run())
	assert.Equal(t, "Batch edit: 2 files", term.LastScreen().Title)
	assert.Equal(t, reconcile.Differs, term.Value("1"))
	assert.Equal(t, tags.NoneLabel, term.Value("2"))
	assert.Equal(t, "2001", term.Value("4"))
	assert.Equal(t, "0", term.Value("5"))
}
