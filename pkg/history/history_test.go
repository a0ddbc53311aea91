package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

func snap(header string) Snapshot {
	return Snapshot{HeaderMarkup: header}
}

func TestUndoRedoLinear(t *testing.T) {
	log := New(snap("v0"), WithDebounce(0))

	for i := 1; i <= 3; i++ {
		log.Record(snap(fmt.Sprintf("v%d", i)))
	}
	if got := log.Depth(); got != 4 {
		t.Fatalf("Depth() = %d, want 4", got)
	}

	for want := 2; want >= 0; want-- {
		s, ok := log.Undo()
		if !ok {
			t.Fatalf("Undo() at v%d failed", want+1)
		}
		if s.HeaderMarkup != fmt.Sprintf("v%d", want) {
			t.Fatalf("Undo() = %q, want v%d", s.HeaderMarkup, want)
		}
	}
	if _, ok := log.Undo(); ok {
		t.Fatal("Undo() past oldest entry succeeded")
	}

	s, ok := log.Redo()
	if !ok || s.HeaderMarkup != "v1" {
		t.Fatalf("Redo() = %q/%v, want v1", s.HeaderMarkup, ok)
	}
}

func TestRecordDedupesIdenticalSnapshots(t *testing.T) {
	log := New(snap("same"), WithDebounce(0))
	log.Record(snap("same"))
	log.Record(snap("same"))

	if got := log.Depth(); got != 1 {
		t.Fatalf("Depth() = %d, want 1", got)
	}
	if log.CanUndo() {
		t.Fatal("CanUndo() = true with no real change")
	}
}

func TestBranchTruncation(t *testing.T) {
	log := New(snap("a"), WithDebounce(0))
	log.Record(snap("b"))
	log.Record(snap("c"))

	log.Undo()
	log.Record(snap("d"))

	if log.CanRedo() {
		t.Fatal("CanRedo() = true after diverging edit")
	}
	if _, ok := log.Redo(); ok {
		t.Fatal("Redo() succeeded into a discarded branch")
	}

	s, _ := log.Undo()
	if s.HeaderMarkup != "b" {
		t.Fatalf("Undo() = %q, want b", s.HeaderMarkup)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	log := New(snap("v0"), WithDebounce(0), WithCapacity(5))
	for i := 1; i <= 10; i++ {
		log.Record(snap(fmt.Sprintf("v%d", i)))
	}

	if got := log.Depth(); got != 5 {
		t.Fatalf("Depth() = %d, want 5", got)
	}

	// Walk all the way back: the oldest reachable state is v6.
	var last Snapshot
	for {
		s, ok := log.Undo()
		if !ok {
			break
		}
		last = s
	}
	if last.HeaderMarkup != "v6" {
		t.Fatalf("oldest entry = %q, want v6", last.HeaderMarkup)
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	log := New(snap("v0"), WithDebounce(20*time.Millisecond))

	log.Record(snap("b1"))
	log.Record(snap("b2"))
	log.Record(snap("b3"))
	time.Sleep(60 * time.Millisecond)

	if got := log.Depth(); got != 2 {
		t.Fatalf("Depth() = %d, want 2 (burst coalesced)", got)
	}
	if got := log.Current(); got.HeaderMarkup != "b3" {
		t.Fatalf("Current() = %q, want b3", got.HeaderMarkup)
	}
}

func TestUndoFlushesPendingEdit(t *testing.T) {
	log := New(snap("v0"), WithDebounce(time.Hour))
	log.Record(snap("v1"))

	s, ok := log.Undo()
	if !ok {
		t.Fatal("Undo() failed with a pending edit")
	}
	if s.HeaderMarkup != "v0" {
		t.Fatalf("Undo() = %q, want v0", s.HeaderMarkup)
	}
	if got := log.Depth(); got != 2 {
		t.Fatalf("Depth() = %d, want 2 (pending edit committed first)", got)
	}
}

func TestRedoFlushesPendingEdit(t *testing.T) {
	log := New(snap("a"), WithDebounce(time.Hour))
	log.Record(snap("b"))
	log.Flush()

	if _, ok := log.Undo(); !ok {
		t.Fatal("Undo() failed")
	}
	if !log.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}

	log.Record(snap("c"))

	if _, ok := log.Redo(); ok {
		t.Fatal("Redo() stepped forward over a pending edit")
	}
	if got := log.Current(); got.HeaderMarkup != "c" {
		t.Fatalf("Current() = %q, want c (pending edit committed)", got.HeaderMarkup)
	}
	if log.CanRedo() {
		t.Fatal("CanRedo() = true after the commit truncated the branch")
	}
}

func TestCloseDropsPending(t *testing.T) {
	log := New(snap("v0"), WithDebounce(10*time.Millisecond))
	log.Record(snap("v1"))
	log.Close()
	time.Sleep(30 * time.Millisecond)

	if got := log.Depth(); got != 1 {
		t.Fatalf("Depth() = %d, want 1 after Close", got)
	}
	log.Record(snap("v2"))
	if got := log.Depth(); got != 1 {
		t.Fatalf("Record after Close committed an entry")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tpl := model.Template{
		ID:           "tpl_1",
		Name:         "Branded",
		HeaderMarkup: "<h1>{{company.name}}</h1>",
		FooterMarkup: "<p>terms</p>",
		TableMarkup:  "<table>{{items_rows}}</table>",
		Styles:       model.DefaultStyleTokens(),
	}

	s := SnapshotOf(tpl)
	var restored model.Template
	s.Apply(&restored)

	// Identity fields stay out of history; everything editable round-trips.
	tpl.ID = ""
	tpl.Name = ""
	if diff := cmp.Diff(tpl, restored); diff != "" {
		t.Fatalf("snapshot round-trip mismatch (-want +got):\n%s", diff)
	}
}
