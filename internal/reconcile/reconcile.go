// Package reconcile summarizes fields across a set of records.
//
// A text field reconciles to the value every record shares, with absent
// values compared as tags.NoneLabel, or to Differs. A numeric field
// reconciles to the shared value or to 0, which also stands for unset.
package reconcile

import (
	"strconv"

	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/tags"
)

// Differs is the text sentinel for records that disagree.
const Differs = "<differs>"

// Shared lists the fields a batch reconciles and edits, in menu order.
var Shared = []tags.Field{
	tags.FieldArtist,
	tags.FieldAlbumArtist,
	tags.FieldAlbum,
	tags.FieldYear,
	tags.FieldTotalTracks,
}

func textOf(r *record.Record, f tags.Field) string {
	if v, ok := r.Fields.Text(f); ok {
		return v
	}
	return tags.NoneLabel
}

// Text reconciles a text field. Once collapsed to Differs the field is not
// examined further.
func Text(records []*record.Record, f tags.Field) string {
	if len(records) == 0 {
		return tags.NoneLabel
	}
	value := textOf(records[0], f)
	for _, r := range records[1:] {
		if textOf(r, f) != value {
			return Differs
		}
	}
	return value
}

// Number reconciles a numeric field. 0 is both unset and disagreement.
func Number(records []*record.Record, f tags.Field) int {
	if len(records) == 0 {
		return 0
	}
	value := records[0].Fields.Number(f)
	if value == 0 {
		return 0
	}
	for _, r := range records[1:] {
		if r.Fields.Number(f) != value {
			return 0
		}
	}
	return value
}

// View holds the reconciled value of every shared field.
type View struct {
	text   map[tags.Field]string
	number map[tags.Field]int
}

// New reconciles every shared field over records, in record order.
func New(records []*record.Record) *View {
	v := &View{
		text:   make(map[tags.Field]string),
		number: make(map[tags.Field]int),
	}
	for _, f := range Shared {
		if f.Numeric() {
			v.number[f] = Number(records, f)
		} else {
			v.text[f] = Text(records, f)
		}
	}
	return v
}

// Text returns the reconciled text of f: a value, tags.NoneLabel or Differs.
func (v *View) Text(f tags.Field) string {
	return v.text[f]
}

// Number returns the reconciled number of f, 0 when unknown.
func (v *View) Number(f tags.Field) int {
	return v.number[f]
}

// Display returns f as shown in the batch menu.
func (v *View) Display(f tags.Field) string {
	if f.Numeric() {
		return strconv.Itoa(v.number[f])
	}
	return v.text[f]
}

// IsSentinel reports whether f has no single value across the records.
func (v *View) IsSentinel(f tags.Field) bool {
	if f.Numeric() {
		return v.number[f] == 0
	}
	return v.text[f] == Differs
}

// SetText stores the value every record now holds for f. A nil value means
// absent.
func (v *View) SetText(f tags.Field, value *string) {
	if value == nil {
		v.text[f] = tags.NoneLabel
		return
	}
	v.text[f] = *value
}

// SetNumber stores the number every record now holds for f.
func (v *View) SetNumber(f tags.Field, n int) {
	v.number[f] = n
}

// Merge folds the edits made to changed into the view. A field that
// disagrees with changed collapses to the sentinel; a field that is
// already the sentinel is reconciled again over all records.
func (v *View) Merge(records []*record.Record, changed *record.Record) {
	for _, f := range Shared {
		switch {
		case v.IsSentinel(f) || len(records) == 1:
			v.reconcile(records, f)
		case f.Numeric():
			if changed.Fields.Number(f) != v.number[f] {
				v.number[f] = 0
			}
		default:
			if textOf(changed, f) != v.text[f] {
				v.text[f] = Differs
			}
		}
	}
}

func (v *View) reconcile(records []*record.Record, f tags.Field) {
	if f.Numeric() {
		v.number[f] = Number(records, f)
	} else {
		v.text[f] = Text(records, f)
	}
}
