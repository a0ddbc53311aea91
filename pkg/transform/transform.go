// Package transform drives the resize and drag gestures on the currently
// selected inline element (image or text box) of the editing surface. The
// controller is a state machine (Unselected, Selected, Resizing, Dragging)
// operating against a host-supplied Element adapter rather than a live DOM,
// so gesture semantics are testable headlessly. All calls happen on the
// single UI event goroutine; the controller is not safe for concurrent use.
package transform

import (
	"errors"
	"strconv"
	"strings"
)

// MinSize is the smallest width or height a resize can produce. Deltas that
// would shrink below it are clamped, not rejected.
const MinSize = 20.0

// Point is a pointer position in surface-viewport coordinates.
type Point struct {
	X, Y float64
}

// Rect is an on-screen bounding box.
type Rect struct {
	Top, Left, Width, Height float64
}

// PositionMode describes how a selected element participates in layout.
type PositionMode string

const (
	// PositionInline flows with the surrounding text.
	PositionInline PositionMode = "inline"
	// PositionBreak forces the element onto its own line.
	PositionBreak PositionMode = "break"
	// PositionOverlay absolutely positions the element above flow content;
	// the only mode in which dragging is permitted.
	PositionOverlay PositionMode = "overlay"
)

// Alignment is the horizontal placement for inline and break modes.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Handle names one of the four corner resize handles.
type Handle string

const (
	HandleTopLeft     Handle = "top-left"
	HandleTopRight    Handle = "top-right"
	HandleBottomLeft  Handle = "bottom-left"
	HandleBottomRight Handle = "bottom-right"
)

// State is the controller's gesture state.
type State int

const (
	StateUnselected State = iota
	StateSelected
	StateResizing
	StateDragging
)

// Element is the host adapter for a selectable element. Style mutations take
// effect on the live surface immediately for responsiveness; the controller
// decides when a gesture is committed to history.
type Element interface {
	// Bounds returns the element's box in viewport coordinates.
	Bounds() Rect
	// IsText distinguishes text boxes from images.
	IsText() bool
	// Style returns the current inline value for a CSS property, "" if unset.
	Style(property string) string
	// SetStyle sets an inline CSS property.
	SetStyle(property, value string)
	// RemoveStyle clears an inline CSS property.
	RemoveStyle(property string)
}

// Descriptor is the transient description of the current selection. It is
// never persisted.
type Descriptor struct {
	Width, Height float64
	Align         Alignment
	Mode          PositionMode
	IsText        bool
}

// ErrNoSelection is returned by gesture starts without a selected element.
var ErrNoSelection = errors.New("transform: no element selected")

// ErrNotOverlay is returned when a drag is attempted on a non-overlay element.
var ErrNotOverlay = errors.New("transform: drag requires overlay positioning")

// Option customises a Controller.
type Option func(*Controller)

// WithCommit registers the callback fired once per completed gesture, on
// pointer release. The designer uses it to record a single history snapshot
// instead of one per intermediate frame.
func WithCommit(fn func()) Option {
	return func(c *Controller) {
		c.commit = fn
	}
}

type resizeGesture struct {
	start         Point
	width, height float64
	handle        Handle
}

type dragGesture struct {
	start     Point
	top, left float64
}

// Controller tracks the selected element and runs its gestures.
type Controller struct {
	surfaceBounds func() Rect
	selected      Element
	desc          Descriptor
	state         State
	resize        *resizeGesture
	drag          *dragGesture
	commit        func()
}

// New builds a controller. surfaceBounds reports the editing surface's
// viewport box so element rects can be expressed relative to it.
func New(surfaceBounds func() Rect, options ...Option) *Controller {
	c := &Controller{
		surfaceBounds: surfaceBounds,
		state:         StateUnselected,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Select makes el the current selection, replacing any previous one
// (selection is exclusive). The returned descriptor is derived from the
// element's current inline styles.
func (c *Controller) Select(el Element) Descriptor {
	c.abortGesture()
	c.selected = el
	c.state = StateSelected
	c.desc = describe(el)
	return c.desc
}

// Deselect clears the selection and any in-flight gesture.
func (c *Controller) Deselect() {
	c.abortGesture()
	c.selected = nil
	c.state = StateUnselected
	c.desc = Descriptor{}
}

// Selected returns the current element, nil when nothing is selected.
func (c *Controller) Selected() Element { return c.selected }

// State returns the gesture state.
func (c *Controller) State() State { return c.state }

// Descriptor returns the transient selection descriptor.
func (c *Controller) Descriptor() Descriptor { return c.desc }

// SelectionRect reports the selected element's bounding box relative to the
// editing surface, for positioning handles and outlines.
func (c *Controller) SelectionRect() (Rect, bool) {
	if c.selected == nil {
		return Rect{}, false
	}
	bounds := c.selected.Bounds()
	surface := c.surfaceBounds()
	return Rect{
		Top:    bounds.Top - surface.Top,
		Left:   bounds.Left - surface.Left,
		Width:  bounds.Width,
		Height: bounds.Height,
	}, true
}

// StartResize begins a corner-handle resize. Resizing is permitted in every
// position mode. Dimensions are captured at gesture start; every PointerMove
// computes against them, not the previous frame, so drift cannot accumulate.
func (c *Controller) StartResize(handle Handle, at Point) error {
	if c.selected == nil {
		return ErrNoSelection
	}
	bounds := c.selected.Bounds()
	c.resize = &resizeGesture{
		start:  at,
		width:  bounds.Width,
		height: bounds.Height,
		handle: handle,
	}
	c.drag = nil
	c.state = StateResizing
	return nil
}

// StartDrag begins moving an overlay element. Only overlay-positioned
// elements are draggable.
func (c *Controller) StartDrag(at Point) error {
	if c.selected == nil {
		return ErrNoSelection
	}
	if c.desc.Mode != PositionOverlay {
		return ErrNotOverlay
	}
	c.drag = &dragGesture{
		start: at,
		top:   parsePx(c.selected.Style("top")),
		left:  parsePx(c.selected.Style("left")),
	}
	c.resize = nil
	c.state = StateDragging
	return nil
}

// PointerMove advances the active gesture, mutating the live element
// directly. Moves outside a gesture are ignored.
func (c *Controller) PointerMove(at Point) {
	switch c.state {
	case StateResizing:
		c.applyResize(at)
	case StateDragging:
		c.applyDrag(at)
	}
}

// EndGesture finishes the active gesture on pointer release, returning the
// controller to Selected and firing the commit hook exactly once.
func (c *Controller) EndGesture() {
	if c.state != StateResizing && c.state != StateDragging {
		return
	}
	c.resize = nil
	c.drag = nil
	c.state = StateSelected
	if c.selected != nil {
		c.desc = describe(c.selected)
	}
	if c.commit != nil {
		c.commit()
	}
}

func (c *Controller) applyResize(at Point) {
	g := c.resize
	if g == nil || c.selected == nil {
		return
	}
	dx := at.X - g.start.X
	dy := at.Y - g.start.Y

	width := g.width
	height := g.height
	if strings.Contains(string(g.handle), "right") {
		width += dx
	}
	if strings.Contains(string(g.handle), "left") {
		width -= dx
	}
	if strings.Contains(string(g.handle), "bottom") {
		height += dy
	}
	if strings.Contains(string(g.handle), "top") {
		height -= dy
	}
	width = max(MinSize, width)
	height = max(MinSize, height)

	c.selected.SetStyle("width", px(width))
	c.selected.SetStyle("height", px(height))
	c.desc.Width = width
	c.desc.Height = height
}

func (c *Controller) applyDrag(at Point) {
	g := c.drag
	if g == nil || c.selected == nil {
		return
	}
	c.selected.SetStyle("left", px(g.left+(at.X-g.start.X)))
	c.selected.SetStyle("top", px(g.top+(at.Y-g.start.Y)))
	c.selected.SetStyle("position", "absolute")
}

// SetPositionMode switches the selected element's layout participation.
// Conflicting styles from the previous mode are reset first so residue never
// corrupts the new layout.
func (c *Controller) SetPositionMode(mode PositionMode) error {
	if c.selected == nil {
		return ErrNoSelection
	}
	c.desc.Mode = mode
	c.applyPlacement()
	return nil
}

// SetAlignment adjusts horizontal placement for inline and break modes.
// Overlay elements ignore alignment; position is absolute.
func (c *Controller) SetAlignment(align Alignment) error {
	if c.selected == nil {
		return ErrNoSelection
	}
	c.desc.Align = align
	c.applyPlacement()
	return nil
}

func (c *Controller) applyPlacement() {
	el := c.selected

	// Clear everything a previous mode may have set.
	for _, property := range []string{"position", "margin", "margin-left", "z-index", "float", "vertical-align"} {
		el.RemoveStyle(property)
	}
	el.SetStyle("display", "inline-block")

	switch c.desc.Mode {
	case PositionOverlay:
		el.SetStyle("position", "absolute")
		el.SetStyle("z-index", "10")
		el.SetStyle("display", "block")
		if el.Style("top") == "" {
			el.SetStyle("top", "10px")
		}
		if el.Style("left") == "" {
			el.SetStyle("left", "10px")
		}
	case PositionBreak:
		el.SetStyle("display", "block")
		switch c.desc.Align {
		case AlignCenter:
			el.SetStyle("margin", "0 auto")
		case AlignRight:
			el.SetStyle("margin-left", "auto")
		}
	default:
		el.SetStyle("vertical-align", "middle")
		switch c.desc.Align {
		case AlignCenter:
			el.SetStyle("display", "block")
			el.SetStyle("margin", "0 auto")
		case AlignRight:
			el.SetStyle("float", "right")
			el.SetStyle("margin", "0 0 10px 10px")
		}
	}
}

func (c *Controller) abortGesture() {
	c.resize = nil
	c.drag = nil
	if c.selected != nil {
		c.state = StateSelected
	} else {
		c.state = StateUnselected
	}
}

// describe derives the transient descriptor from an element's inline styles,
// mirroring how the designer classifies clicks on the surface.
func describe(el Element) Descriptor {
	bounds := el.Bounds()
	desc := Descriptor{
		Width:  bounds.Width,
		Height: bounds.Height,
		Align:  AlignLeft,
		Mode:   PositionInline,
		IsText: el.IsText(),
	}
	switch {
	case el.Style("position") == "absolute":
		desc.Mode = PositionOverlay
	case el.Style("display") == "block":
		desc.Mode = PositionBreak
	}
	margin := strings.TrimSpace(el.Style("margin"))
	switch {
	case margin == "0 auto" || margin == "0px auto":
		desc.Align = AlignCenter
	case el.Style("margin-left") == "auto":
		desc.Align = AlignRight
	}
	return desc
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func parsePx(raw string) float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "px")
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}
