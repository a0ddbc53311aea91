package transform

import (
	"errors"
	"testing"
)

// fakeElement is an in-memory stand-in for a surface element. Width and
// height styles feed back into Bounds so resize math can be asserted.
type fakeElement struct {
	rect   Rect
	text   bool
	styles map[string]string
}

func newFakeElement(rect Rect) *fakeElement {
	return &fakeElement{rect: rect, styles: map[string]string{}}
}

func (f *fakeElement) Bounds() Rect {
	r := f.rect
	if w := parsePx(f.styles["width"]); w > 0 {
		r.Width = w
	}
	if h := parsePx(f.styles["height"]); h > 0 {
		r.Height = h
	}
	return r
}

func (f *fakeElement) IsText() bool { return f.text }

func (f *fakeElement) Style(property string) string { return f.styles[property] }

func (f *fakeElement) SetStyle(property, value string) { f.styles[property] = value }

func (f *fakeElement) RemoveStyle(property string) { delete(f.styles, property) }

func surface() func() Rect {
	return func() Rect { return Rect{Top: 100, Left: 50, Width: 800, Height: 600} }
}

func TestSelectDerivesDescriptor(t *testing.T) {
	el := newFakeElement(Rect{Width: 120, Height: 80})
	el.styles["position"] = "absolute"

	c := New(surface())
	desc := c.Select(el)

	if desc.Mode != PositionOverlay {
		t.Fatalf("Mode = %s, want overlay", desc.Mode)
	}
	if desc.Width != 120 || desc.Height != 80 {
		t.Fatalf("dims = %gx%g, want 120x80", desc.Width, desc.Height)
	}
	if c.State() != StateSelected {
		t.Fatalf("State() = %d, want Selected", c.State())
	}
}

func TestSelectionExclusive(t *testing.T) {
	first := newFakeElement(Rect{Width: 10, Height: 10})
	second := newFakeElement(Rect{Width: 20, Height: 20})

	c := New(surface())
	c.Select(first)
	c.Select(second)

	if c.Selected() != Element(second) {
		t.Fatal("second selection did not replace the first")
	}
}

func TestSelectionRectRelativeToSurface(t *testing.T) {
	el := newFakeElement(Rect{Top: 150, Left: 90, Width: 40, Height: 30})
	c := New(surface())
	c.Select(el)

	rect, ok := c.SelectionRect()
	if !ok {
		t.Fatal("SelectionRect() reported no selection")
	}
	want := Rect{Top: 50, Left: 40, Width: 40, Height: 30}
	if rect != want {
		t.Fatalf("SelectionRect() = %+v, want %+v", rect, want)
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	if err := c.StartResize(HandleBottomRight, Point{X: 500, Y: 500}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	c.PointerMove(Point{X: 300, Y: 300})
	c.EndGesture()

	if got := el.styles["width"]; got != "20px" {
		t.Fatalf("width = %q, want 20px", got)
	}
	if got := el.styles["height"]; got != "20px" {
		t.Fatalf("height = %q, want 20px", got)
	}
}

func TestResizeFromGestureStartDimensions(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	if err := c.StartResize(HandleBottomRight, Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	// Two moves to the same point must not double-apply the delta.
	c.PointerMove(Point{X: 30, Y: 10})
	c.PointerMove(Point{X: 30, Y: 10})

	if got := el.styles["width"]; got != "130px" {
		t.Fatalf("width = %q, want 130px", got)
	}
	if got := el.styles["height"]; got != "110px" {
		t.Fatalf("height = %q, want 110px", got)
	}
}

func TestResizeTopLeftHandleInverts(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	if err := c.StartResize(HandleTopLeft, Point{X: 0, Y: 0}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	c.PointerMove(Point{X: -25, Y: -15})

	if got := el.styles["width"]; got != "125px" {
		t.Fatalf("width = %q, want 125px", got)
	}
	if got := el.styles["height"]; got != "115px" {
		t.Fatalf("height = %q, want 115px", got)
	}
}

func TestDragRequiresOverlay(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	if err := c.StartDrag(Point{}); !errors.Is(err, ErrNotOverlay) {
		t.Fatalf("StartDrag err = %v, want ErrNotOverlay", err)
	}
}

func TestDragMovesFromGestureStart(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	el.styles["position"] = "absolute"
	el.styles["top"] = "50px"
	el.styles["left"] = "50px"

	c := New(surface())
	c.Select(el)

	if err := c.StartDrag(Point{X: 10, Y: 10}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	c.PointerMove(Point{X: 40, Y: 25})
	c.PointerMove(Point{X: 40, Y: 25})

	if got := el.styles["left"]; got != "80px" {
		t.Fatalf("left = %q, want 80px", got)
	}
	if got := el.styles["top"]; got != "65px" {
		t.Fatalf("top = %q, want 65px", got)
	}
}

func TestCommitFiresOncePerGesture(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	commits := 0
	c := New(surface(), WithCommit(func() { commits++ }))
	c.Select(el)

	c.StartResize(HandleBottomRight, Point{})
	c.PointerMove(Point{X: 10, Y: 10})
	c.PointerMove(Point{X: 20, Y: 20})
	c.EndGesture()
	c.EndGesture()

	if commits != 1 {
		t.Fatalf("commits = %d, want 1", commits)
	}
	if c.State() != StateSelected {
		t.Fatalf("State() = %d, want Selected after release", c.State())
	}
}

func TestGestureWithoutSelection(t *testing.T) {
	c := New(surface())
	if err := c.StartResize(HandleTopRight, Point{}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("StartResize err = %v, want ErrNoSelection", err)
	}
	if err := c.StartDrag(Point{}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("StartDrag err = %v, want ErrNoSelection", err)
	}
}

func TestSetPositionModeResetsConflicts(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	el.styles["position"] = "absolute"
	el.styles["z-index"] = "10"

	c := New(surface())
	c.Select(el)

	if err := c.SetPositionMode(PositionBreak); err != nil {
		t.Fatalf("SetPositionMode: %v", err)
	}

	for _, property := range []string{"position", "z-index", "float"} {
		if got := el.styles[property]; got != "" {
			t.Fatalf("%s = %q, want removed", property, got)
		}
	}
	if got := el.styles["display"]; got != "block" {
		t.Fatalf("display = %q, want block", got)
	}
}

func TestAlignmentResidueCleared(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	c.SetPositionMode(PositionBreak)
	c.SetAlignment(AlignRight)
	if got := el.styles["margin-left"]; got != "auto" {
		t.Fatalf("margin-left = %q, want auto", got)
	}

	c.SetAlignment(AlignLeft)
	if got := el.styles["margin-left"]; got != "" {
		t.Fatalf("margin-left = %q, want removed after realign", got)
	}
}

func TestOverlayModeSeedsPosition(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	if err := c.SetPositionMode(PositionOverlay); err != nil {
		t.Fatalf("SetPositionMode: %v", err)
	}

	if el.styles["position"] != "absolute" {
		t.Fatalf("position = %q, want absolute", el.styles["position"])
	}
	if el.styles["top"] == "" || el.styles["left"] == "" {
		t.Fatal("overlay switch left element without coordinates")
	}

	if err := c.StartDrag(Point{}); err != nil {
		t.Fatalf("StartDrag after overlay switch: %v", err)
	}
}

func TestBreakCenterAlignment(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)

	c.SetPositionMode(PositionBreak)
	c.SetAlignment(AlignCenter)

	if got := el.styles["margin"]; got != "0 auto" {
		t.Fatalf("margin = %q, want 0 auto", got)
	}
}

func TestDeselectClearsState(t *testing.T) {
	el := newFakeElement(Rect{Width: 100, Height: 100})
	c := New(surface())
	c.Select(el)
	c.StartResize(HandleBottomLeft, Point{})

	c.Deselect()

	if c.Selected() != nil || c.State() != StateUnselected {
		t.Fatal("Deselect left residue")
	}
	if _, ok := c.SelectionRect(); ok {
		t.Fatal("SelectionRect() after Deselect")
	}
}
