package session

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tagedit/internal/errmsg"
	"github.com/llehouerou/tagedit/internal/reconcile"
	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/tags"
)

// Batch edits the shared fields of a record set. It owns the records for
// its lifetime; drill-downs address them by index.
type Batch struct {
	env     Env
	records []*record.Record
	view    *reconcile.View
	dirty   bool
	status  Status
}

// NewBatch creates a session over records and reconciles its view.
func NewBatch(env Env, records []*record.Record) *Batch {
	return &Batch{env: env, records: records, view: reconcile.New(records)}
}

// View returns the reconciled shared fields.
func (b *Batch) View() *reconcile.View {
	return b.view
}

// Dirty reports whether any record has unsaved changes.
func (b *Batch) Dirty() bool {
	return b.dirty
}

// Run shows the batch menu until the user exits. It reports whether
// unsaved changes remain.
func (b *Batch) Run() bool {
	for {
		b.env.Term.Render(b.screen())
		b.status = Status{}

		choice, ok := readChoice(b.env.Term)
		if !ok {
			b.env.logger().WithFields(logrus.Fields{"files": len(b.records), "unsaved": b.dirty}).Info("input closed, leaving batch")
			return b.dirty
		}

		switch choice {
		case "1", "2", "3", "4", "5":
			i, _ := strconv.Atoi(choice)
			b.editShared(reconcile.Shared[i-1])
		case "C":
			b.calculateTotal()
		case "S":
			b.numberTracks()
		case "E":
			b.editAll()
		case "V":
			b.viewFiles()
		case "9":
			var saved bool
			saved, b.status = save(b.env, b.records)
			if saved {
				b.dirty = false
			}
		case "0":
			if confirmExit(b.env.Term, b.dirty) {
				return b.dirty
			}
		default:
			b.status = errorStatus("Invalid option")
		}
	}
}

func (b *Batch) editShared(f tags.Field) {
	if f.Numeric() {
		b.editSharedNumber(f)
		return
	}

	group := b.view.Text(f)
	prefill := group
	if group == reconcile.Differs || group == tags.NoneLabel {
		prefill = ""
	}
	input := b.env.Term.PromptDefault(f.Label()+": ", prefill)
	// An empty answer over differing values blanks them all; over absent
	// values it changes nothing.
	if input == group || (input == "" && group == tags.NoneLabel) {
		return
	}
	for _, r := range b.records {
		r.Fields.SetText(f, input)
	}
	b.view.SetText(f, &input)
	b.dirty = true
}

func (b *Batch) editSharedNumber(f tags.Field) {
	current := b.view.Number(f)
	n, err := parseNumber(f, b.env.Term.PromptDefault(f.Label()+": ", strconv.Itoa(current)))
	if err != nil {
		b.status = statusFor(err)
		return
	}
	if n == current {
		return
	}
	b.setNumber(f, n)
	b.view.SetNumber(f, n)
}

// setNumber stores n in every record, marking the batch dirty if any
// record changed.
func (b *Batch) setNumber(f tags.Field, n int) {
	for _, r := range b.records {
		if r.Fields.Number(f) != n {
			r.Fields.SetNumber(f, n)
			b.dirty = true
		}
	}
}

// calculateTotal sets total tracks on every record to the record count.
func (b *Batch) calculateTotal() {
	n, err := trackCount(len(b.records))
	if err != nil {
		b.env.logger().Warn(errmsg.Format(errmsg.OpTrackTotal, err))
		b.status = statusFor(err)
		return
	}
	b.env.Term.Println("Total tracks: " + strconv.Itoa(n))
	if !confirm(b.env.Term, "Set this as the total track count? y/N", false) {
		return
	}
	b.setNumber(tags.FieldTotalTracks, n)
	b.view.SetNumber(tags.FieldTotalTracks, n)
	b.status = infoStatus("Total tracks set to " + strconv.Itoa(n))
}

// numberTracks sets track numbers 1..n in list order.
func (b *Batch) numberTracks() {
	n, err := trackCount(len(b.records))
	if err != nil {
		b.env.logger().Warn(errmsg.Format(errmsg.OpTrackNumbers, err))
		b.status = statusFor(err)
		return
	}
	b.env.Term.Println("Tracks will be numbered 1 to " + strconv.Itoa(n) + " in list order.")
	if !confirm(b.env.Term, "Set track numbers? y/N", false) {
		return
	}
	for i, r := range b.records {
		if r.Fields.TrackNumber != i+1 {
			r.Fields.TrackNumber = i + 1
			b.dirty = true
		}
	}
	b.status = infoStatus("Track numbers set")
}

// editAll runs the single-file editor over every record in order, asking
// before each next record.
func (b *Batch) editAll() {
	for i := range b.records {
		b.drillDown(i)
		if i == len(b.records)-1 || b.env.Term.Closed() {
			return
		}
		if !confirm(b.env.Term, "Continue editing? Y/n", true) {
			return
		}
	}
}

// viewFiles lists the records and drills into the chosen one.
func (b *Batch) viewFiles() {
	items := make([]Item, 0, len(b.records)+1)
	for i, r := range b.records {
		items = append(items, Item{
			Key:   strconv.Itoa(i + 1),
			Label: r.Name(),
			Value: humanize.Bytes(uint64(max(r.Size, 0))),
		})
	}
	b.env.Term.Render(Screen{
		Title:    "Files",
		Modified: b.dirty,
		Sections: []Section{{Items: items}, {Items: []Item{{Key: "0", Label: "Back"}}}},
	})

	choice := strings.TrimSpace(b.env.Term.Prompt("Select a file: "))
	if choice == "" || choice == "0" {
		return
	}
	i, err := strconv.Atoi(choice)
	if err != nil || i < 1 || i > len(b.records) {
		b.status = errorStatus("Invalid selection")
		return
	}
	b.drillDown(i - 1)
}

// drillDown edits record i on its own, then folds the result into the
// batch view and dirty flag.
func (b *Batch) drillDown(i int) {
	if NewSingle(b.env, b.records[i]).Run() {
		b.dirty = true
	}
	b.view.Merge(b.records, b.records[i])
}

func (b *Batch) screen() Screen {
	shared := make([]Item, len(reconcile.Shared))
	for i, f := range reconcile.Shared {
		shared[i] = Item{Key: strconv.Itoa(i + 1), Label: f.Label(), Value: b.view.Display(f)}
	}

	return Screen{
		Title:    "Batch edit: " + strconv.Itoa(len(b.records)) + " files",
		Modified: b.dirty,
		Sections: []Section{
			{Heading: "Shared fields", Items: shared},
			{Heading: "Actions", Items: []Item{
				{Key: "C", Label: "Calculate Total Tracks"},
				{Key: "S", Label: "Set Track Numbers"},
				{Key: "E", Label: "Edit All Sequentially"},
				{Key: "V", Label: "View All Files"},
				{Key: "9", Label: "Save"},
				{Key: "0", Label: "Exit"},
			}},
		},
		Status: b.status,
	}
}
