package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/tags"
)

func TestSave_AllSucceed(t *testing.T) {
	m := tags.NewMock()
	records := newRecords(t, m, &tags.Fields{}, &tags.Fields{}, &tags.Fields{})
	records[2].Fields.Year = 2020

	report := session.Save(m, records)
	assert.True(t, report.OK())
	assert.NoError(t, report.Err())
	assert.Equal(t, 3, report.Saved)
	assert.Equal(t, 2020, m.Stored(records[2].Path).Year)
	assert.Equal(t, "3 saved, 0 failed", report.String())
}

func TestSave_ContinuesPastFailures(t *testing.T) {
	m := tags.NewMock()
	records := newRecords(t, m, &tags.Fields{}, &tags.Fields{}, &tags.Fields{})
	m.SetWriteError(records[0].Path, errors.New("read-only file system"))
	m.Remove(records[1].Path)

	report := session.Save(m, records)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Saved)
	assert.Equal(t, 3, report.Total)
	require.Len(t, report.Failed, 2)
	assert.Same(t, records[0], report.Failed[0].Record)
	assert.Same(t, records[1], report.Failed[1].Record)

	var writeErr *tags.WriteError
	require.ErrorAs(t, report.Err(), &writeErr)
	assert.Equal(t, records[0].Path, writeErr.Path)
	assert.Equal(t, []string{records[0].Path, records[1].Path, records[2].Path}, m.WriteCalls())
}

func TestSave_Empty(t *testing.T) {
	report := session.Save(tags.NewMock(), nil)
	assert.True(t, report.OK())
	assert.Zero(t, report.Saved)
}
