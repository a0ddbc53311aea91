// Package designer coordinates interactive template editing. The in-memory
// markup strings of the three sections are the source of truth; any host
// editing surface is an adapter that mirrors them.
package designer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-invoicegen/internal/tokens"
	"github.com/goliatone/go-invoicegen/pkg/history"
	"github.com/goliatone/go-invoicegen/pkg/model"
	"github.com/goliatone/go-invoicegen/pkg/render"
	"github.com/goliatone/go-invoicegen/pkg/store"
	"github.com/goliatone/go-invoicegen/pkg/transform"
)

// Section identifies one of the editable template regions.
type Section string

const (
	SectionHeader Section = "header"
	SectionFooter Section = "footer"
	SectionTable  Section = "table"
)

// Command names a formatting operation the host surface understands.
type Command string

const (
	CmdBold          Command = "bold"
	CmdItalic        Command = "italic"
	CmdUnderline     Command = "underline"
	CmdJustifyLeft   Command = "justifyLeft"
	CmdJustifyCenter Command = "justifyCenter"
	CmdJustifyRight  Command = "justifyRight"
	CmdBulletList    Command = "insertUnorderedList"
	CmdNumberList    Command = "insertOrderedList"
	CmdFontName      Command = "fontName"
	CmdFontSize      Command = "fontSize"
	CmdFormatBlock   Command = "formatBlock"
	CmdForeColor     Command = "foreColor"
	CmdHiliteColor   Command = "hiliteColor"
)

// Surface adapts a host editing widget (a WYSIWYG pane, a TUI buffer). The
// designer pushes markup into it and pulls edits back out; it never touches a
// live DOM itself.
type Surface interface {
	// SetContent replaces the surface content for a section.
	SetContent(section Section, markup string)
	// Content returns the current surface markup for a section.
	Content(section Section) string
	// ApplyFormatting runs a formatting command against the current cursor
	// or selection.
	ApplyFormatting(cmd Command, value string) error
	// InsertHTML places a markup fragment at the cursor position.
	InsertHTML(section Section, markup string) error
	// SurfaceBounds reports the editable area in host coordinates.
	SurfaceBounds() transform.Rect
}

// ErrNoSurface reports an operation that needs a host editing surface.
var ErrNoSurface = errors.New("designer: no editing surface attached")

// ErrUnknownToken reports a variable insertion with a token outside the
// placeholder vocabulary.
var ErrUnknownToken = errors.New("designer: unknown placeholder token")

// Option configures a Designer.
type Option func(*Designer)

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Designer) {
		d.log = logger
	}
}

// WithStore wires the persistence backend used by Save.
func WithStore(s store.TemplateStore) Option {
	return func(d *Designer) {
		d.store = s
	}
}

// WithSurface attaches the host editing surface.
func WithSurface(s Surface) Option {
	return func(d *Designer) {
		d.surface = s
	}
}

// WithHistoryOptions forwards options to the undo/redo log.
func WithHistoryOptions(options ...history.Option) Option {
	return func(d *Designer) {
		d.historyOpts = options
	}
}

// Designer is the template editing orchestrator. It is not safe for
// concurrent use; drive it from the host's event loop.
type Designer struct {
	log     zerolog.Logger
	store   store.TemplateStore
	surface Surface

	tpl    model.Template
	active Section

	hist        *history.Log
	historyOpts []history.Option
	transformer *transform.Controller

	saved history.Snapshot
}

// New starts an editing session. An empty template is seeded with the
// built-in sections so the operator never faces a blank canvas.
func New(tpl model.Template, options ...Option) *Designer {
	d := &Designer{
		log:    zerolog.Nop(),
		tpl:    tpl,
		active: SectionHeader,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	if d.tpl.Name == "" {
		d.tpl.Name = "New Template"
	}
	if d.tpl.HeaderMarkup == "" && d.tpl.FooterMarkup == "" && d.tpl.TableMarkup == "" {
		d.tpl.HeaderMarkup = render.DefaultHeaderMarkup()
		d.tpl.FooterMarkup = render.DefaultFooterMarkup()
		d.tpl.TableMarkup = render.DefaultTableMarkup()
	}
	if d.tpl.Styles == (model.StyleTokens{}) {
		d.tpl.Styles = model.DefaultStyleTokens()
	}

	d.saved = history.SnapshotOf(d.tpl)
	d.hist = history.New(d.saved, d.historyOpts...)

	bounds := func() transform.Rect {
		if d.surface == nil {
			return transform.Rect{}
		}
		return d.surface.SurfaceBounds()
	}
	d.transformer = transform.New(bounds, transform.WithCommit(d.commitSurfaceEdit))

	if d.surface != nil {
		d.pushAllSections()
	}
	return d
}

// Template returns a copy of the current editing state.
func (d *Designer) Template() model.Template {
	return d.tpl
}

// Transform exposes the element transform controller bound to this session.
func (d *Designer) Transform() *transform.Controller {
	return d.transformer
}

// ActiveSection returns the section edits currently target.
func (d *Designer) ActiveSection() Section {
	return d.active
}

// SetActiveSection switches the editing target, pulling any pending surface
// edits out of the previous section first.
func (d *Designer) SetActiveSection(section Section) {
	if section == d.active {
		return
	}
	d.pullActiveSection()
	d.active = section
	if d.surface != nil {
		d.surface.SetContent(section, d.sectionMarkup(section))
	}
}

// SectionMarkup returns the markup string for a section.
func (d *Designer) SectionMarkup(section Section) string {
	return d.sectionMarkup(section)
}

// SetSectionMarkup replaces a section wholesale, as the raw HTML editing mode
// does, and records the change.
func (d *Designer) SetSectionMarkup(section Section, markup string) {
	*d.sectionPtr(section) = markup
	if d.surface != nil && section == d.active {
		d.surface.SetContent(section, markup)
	}
	d.record()
}

// SetName renames the template. Names do not participate in undo history.
func (d *Designer) SetName(name string) {
	d.tpl.Name = strings.TrimSpace(name)
}

// SetDefault marks the template as the issuing default. Exclusivity against
// other templates is enforced by the store on save.
func (d *Designer) SetDefault(isDefault bool) {
	d.tpl.IsDefault = isDefault
}

// SetStyles replaces the branding tokens and records the change.
func (d *Designer) SetStyles(styles model.StyleTokens) {
	d.tpl.Styles = styles
	d.record()
}

// ApplyFormatting delegates a formatting command to the surface and pulls the
// result back into the section markup.
func (d *Designer) ApplyFormatting(cmd Command, value string) error {
	if d.surface == nil {
		return ErrNoSurface
	}
	if err := d.surface.ApplyFormatting(cmd, value); err != nil {
		return fmt.Errorf("designer: apply %s: %w", cmd, err)
	}
	d.commitSurfaceEdit()
	return nil
}

// InsertVariable places a placeholder token at the cursor, or appends it to
// the section markup when no surface is attached. The token must belong to
// the placeholder vocabulary.
func (d *Designer) InsertVariable(token string) error {
	if !tokens.Known(token) {
		return fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	if d.surface == nil {
		*d.sectionPtr(d.active) += token
		d.record()
		return nil
	}
	if err := d.surface.InsertHTML(d.active, token); err != nil {
		return fmt.Errorf("designer: insert variable: %w", err)
	}
	d.commitSurfaceEdit()
	return nil
}

// InsertTextBox places a free-positioned text container that the transform
// controller can drag in overlay mode.
func (d *Designer) InsertTextBox() error {
	const markup = `<div class="gt-draggable" style="position: absolute; width: 250px; padding: 10px; background-color: #f8fafc; border: 1px solid #cbd5e1; border-radius: 4px; top: 50px; left: 50px; z-index: 10; display: block; box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.1);"><p style="margin:0;">Double click to edit Text Box</p></div>`
	return d.insertFragment(markup)
}

// InsertColumns places a flex row with count equal columns.
func (d *Designer) InsertColumns(count int) error {
	if count < 2 {
		return fmt.Errorf("designer: need at least 2 columns, got %d", count)
	}
	var b strings.Builder
	b.WriteString(`<div class="gt-columns" style="display: flex; gap: 1rem; margin-bottom: 1rem; width: 100%;">`)
	for i := 0; i < count; i++ {
		b.WriteString(`<div style="flex: 1; min-height: 40px; padding: 0.5rem;">Column</div>`)
	}
	b.WriteString(`</div><p><br></p>`)
	return d.insertFragment(b.String())
}

// InsertImage places an image by URL or data URI.
func (d *Designer) InsertImage(src string) error {
	src = strings.TrimSpace(src)
	if src == "" {
		return errors.New("designer: image source is required")
	}
	markup := `<img src="` + html.EscapeString(src) + `" style="max-width: 100%;">`
	return d.insertFragment(markup)
}

func (d *Designer) insertFragment(markup string) error {
	if d.surface == nil {
		return ErrNoSurface
	}
	if err := d.surface.InsertHTML(d.active, markup); err != nil {
		return fmt.Errorf("designer: insert fragment: %w", err)
	}
	d.commitSurfaceEdit()
	return nil
}

// Undo restores the previous snapshot. Returns false when at the oldest
// state.
func (d *Designer) Undo() bool {
	s, ok := d.hist.Undo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// Redo restores the next snapshot. Returns false when at the newest state.
func (d *Designer) Redo() bool {
	s, ok := d.hist.Redo()
	if !ok {
		return false
	}
	d.restore(s)
	return true
}

// CanUndo reports whether an older snapshot exists.
func (d *Designer) CanUndo() bool { return d.hist.CanUndo() }

// CanRedo reports whether a newer snapshot exists.
func (d *Designer) CanRedo() bool { return d.hist.CanRedo() }

// HasUnsavedChanges compares the current state against the last saved
// snapshot.
func (d *Designer) HasUnsavedChanges() bool {
	d.pullActiveSection()
	return history.SnapshotOf(d.tpl) != d.saved
}

// Save persists the template, creating it on first save. On failure the
// editing state is preserved so the operator can retry.
func (d *Designer) Save(ctx context.Context) error {
	if d.store == nil {
		return errors.New("designer: no template store configured")
	}
	d.pullActiveSection()
	d.hist.Flush()

	var (
		saved model.Template
		err   error
	)
	if d.tpl.ID == "" {
		saved, err = d.store.Create(ctx, d.tpl)
	} else {
		saved, err = d.store.Update(ctx, d.tpl)
	}
	if err != nil {
		d.log.Error().Err(err).Str("template", d.tpl.Name).Msg("template save failed")
		return fmt.Errorf("designer: save template: %w", err)
	}

	d.tpl = saved
	d.saved = history.SnapshotOf(d.tpl)
	d.log.Info().Str("id", saved.ID).Str("template", saved.Name).Msg("template saved")
	return nil
}

// Close releases the history log, dropping any pending snapshot.
func (d *Designer) Close() {
	d.hist.Close()
}

// commitSurfaceEdit pulls the active section from the surface and records a
// snapshot. The transform controller calls this once per released gesture.
func (d *Designer) commitSurfaceEdit() {
	d.pullActiveSection()
	d.record()
}

func (d *Designer) record() {
	d.hist.Record(history.SnapshotOf(d.tpl))
}

// restore overwrites all three sections and the styles wholesale, then
// mirrors them to the surface. Restoration never fails.
func (d *Designer) restore(s history.Snapshot) {
	s.Apply(&d.tpl)
	d.transformer.Deselect()
	d.pushAllSections()
}

func (d *Designer) pullActiveSection() {
	if d.surface == nil {
		return
	}
	*d.sectionPtr(d.active) = d.surface.Content(d.active)
}

func (d *Designer) pushAllSections() {
	if d.surface == nil {
		return
	}
	for _, section := range []Section{SectionHeader, SectionFooter, SectionTable} {
		d.surface.SetContent(section, d.sectionMarkup(section))
	}
}

func (d *Designer) sectionMarkup(section Section) string {
	return *d.sectionPtr(section)
}

func (d *Designer) sectionPtr(section Section) *string {
	switch section {
	case SectionFooter:
		return &d.tpl.FooterMarkup
	case SectionTable:
		return &d.tpl.TableMarkup
	default:
		return &d.tpl.HeaderMarkup
	}
}

// Variables lists the insertable placeholder tokens with operator-facing
// labels, in palette order.
func Variables() []Variable {
	return []Variable{
		{Token: tokens.CompanyName, Label: "Company Name"},
		{Token: tokens.CompanyAddress, Label: "Company Address"},
		{Token: tokens.CompanyPhone, Label: "Company Phone"},
		{Token: tokens.CompanyEmail, Label: "Company Email"},
		{Token: tokens.CustomerName, Label: "Customer Name"},
		{Token: tokens.CustomerEmail, Label: "Customer Email"},
		{Token: tokens.CustomerPhone, Label: "Customer Phone"},
		{Token: tokens.CustomerAddress, Label: "Customer Address"},
		{Token: tokens.DealName, Label: "Deal Name"},
		{Token: tokens.DealValue, Label: "Deal Value"},
		{Token: tokens.DealStage, Label: "Deal Stage"},
		{Token: tokens.DealCurrency, Label: "Deal Currency"},
		{Token: tokens.DealPONumber, Label: "PO Number"},
		{Token: tokens.InvoiceNumber, Label: "Invoice Number"},
		{Token: tokens.InvoiceIssueDate, Label: "Issue Date"},
		{Token: tokens.InvoiceDueDate, Label: "Due Date"},
		{Token: tokens.InvoiceSubtotal, Label: "Subtotal"},
		{Token: tokens.InvoiceTax, Label: "Tax Amount"},
		{Token: tokens.InvoiceDiscount, Label: "Discount"},
		{Token: tokens.InvoiceTotal, Label: "Grand Total"},
	}
}

// Variable pairs a placeholder token with its palette label.
type Variable struct {
	Token string
	Label string
}
