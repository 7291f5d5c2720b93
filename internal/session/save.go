package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/tagedit/internal/errmsg"
	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/tags"
)

// SaveFailure is one record whose write failed.
type SaveFailure struct {
	Record *record.Record
	Err    error
}

// SaveReport is the outcome of a save pass.
type SaveReport struct {
	Total  int
	Saved  int
	Failed []SaveFailure
}

// OK reports whether every write in the pass succeeded.
func (r SaveReport) OK() bool {
	return len(r.Failed) == 0
}

// Err joins the failures, or returns nil when the pass succeeded.
func (r SaveReport) Err() error {
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// Save writes every record through store. A failed write does not stop the
// pass and nothing is rolled back.
func Save(store tags.Store, records []*record.Record) SaveReport {
	report := SaveReport{Total: len(records)}
	for _, r := range records {
		if err := store.Write(r.Path, r.Fields); err != nil {
			report.Failed = append(report.Failed, SaveFailure{Record: r, Err: err})
			continue
		}
		report.Saved++
	}
	return report
}

// status returns the status line describing the report.
func (r SaveReport) status() Status {
	if r.OK() {
		return successStatus("Save Successful!")
	}
	if r.Total == 1 {
		f := r.Failed[0]
		return warningStatus("WARNING! " + errmsg.FormatWith(errmsg.OpTagsWrite, f.Record.Name(), f.Err) +
			". Check the file and save again.")
	}
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Record.Name()
	}
	return warningStatus("WARNING! " +
		errmsg.FormatCount(errmsg.OpTagsWrite, len(r.Failed), r.Total, errors.New(strings.Join(names, ", "))) +
		". Check the files and save again.")
}

// save runs a save pass and logs the outcome. It reports whether the pass
// succeeded, which is the only way a session's dirty flag is cleared.
func save(env Env, records []*record.Record) (bool, Status) {
	report := Save(env.Store, records)
	for _, f := range report.Failed {
		env.logger().WithError(f.Err).WithField("path", f.Record.Path).Error("save failed")
	}
	env.logger().WithField("files", report.Total).Info("save pass: " + report.String())
	return report.OK(), report.status()
}

// String summarizes the report for logs.
func (r SaveReport) String() string {
	return fmt.Sprintf("%d saved, %d failed", r.Saved, len(r.Failed))
}
