package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/top-internal/topctl/internal/api"
	"github.com/top-internal/topctl/internal/layout"
	"github.com/top-internal/topctl/internal/store"
)

type layoutMode int

const (
	layoutModeList layoutMode = iota
	layoutModeCreate
	layoutModeEdit
)

type layoutsLoadedMsg struct {
	kind    layout.EntityKind
	layouts []layout.Layout
	system  []layout.Field
	err     error
}

type layoutSavedMsg struct {
	kind   layout.EntityKind
	layout *layout.Layout
	create bool
	err    error
}

type layoutDeletedMsg struct {
	kind layout.EntityKind
	id   string
	err  error
}

type defaultSetMsg struct {
	kind    layout.EntityKind
	layouts []layout.Layout
	err     error
}

// fieldFormFocus enumerates the focusable parts of the add-field form.
type fieldFormFocus int

const (
	focusLabel fieldFormFocus = iota
	focusType
	focusRequired
	focusOptions
	focusPlaceholder
)

// fieldForm is the inline add-field sub-form. Only one can be open at a
// time; cancelling discards its inputs without touching the draft.
type fieldForm struct {
	label       textinput.Model
	options     textinput.Model
	placeholder textinput.Model
	typeIdx     int
	required    bool
	focus       fieldFormFocus
	errText     string
}

func newFieldForm() fieldForm {
	label := textinput.New()
	label.Placeholder = "Field label"
	label.CharLimit = 80
	label.Focus()

	options := textinput.New()
	options.Placeholder = "Options, comma separated"
	options.CharLimit = 200

	placeholder := textinput.New()
	placeholder.Placeholder = "Placeholder hint"
	placeholder.CharLimit = 120

	return fieldForm{label: label, options: options, placeholder: placeholder}
}

func (f fieldForm) fieldType() layout.FieldType {
	return layout.UserTypes()[f.typeIdx]
}

// LayoutsModel is the layout builder screen: per-kind template lists plus
// the create and edit forms built on the draft model.
type LayoutsModel struct {
	deps Deps

	kindIdx int
	stores  map[layout.EntityKind]*store.Layouts

	mode   layoutMode
	cursor int

	draft       *layout.Draft
	nameInput   textinput.Model
	fieldCursor int
	formErr     string

	addingField bool
	form        fieldForm

	spinner spinner.Model
	loading bool
	loadErr string
}

// NewLayoutsModel creates the layouts screen with empty stores for both
// entity kinds.
func NewLayoutsModel(deps Deps) LayoutsModel {
	stores := make(map[layout.EntityKind]*store.Layouts, len(layout.Kinds()))
	for _, kind := range layout.Kinds() {
		stores[kind] = store.NewLayouts(kind)
	}

	name := textinput.New()
	name.Placeholder = "Layout name"
	name.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return LayoutsModel{
		deps:      deps,
		stores:    stores,
		nameInput: name,
		spinner:   sp,
	}
}

func (m LayoutsModel) kind() layout.EntityKind {
	return layout.Kinds()[m.kindIdx]
}

func (m LayoutsModel) store() *store.Layouts {
	return m.stores[m.kind()]
}

// capturesInput reports whether a form owns the keyboard; tab and the other
// app navigation keys are suspended while it does.
func (m LayoutsModel) capturesInput() bool {
	return m.mode != layoutModeList
}

func (m LayoutsModel) Init() tea.Cmd {
	if m.store().Len() > 0 {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch(m.kind()))
}

func (m LayoutsModel) fetch(kind layout.EntityKind) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		layouts, system, err := deps.API.Layouts(kind).List(deps.Ctx)
		return layoutsLoadedMsg{kind: kind, layouts: layouts, system: system, err: err}
	}
}

func (m LayoutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, nil

	case layoutsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.stores[msg.kind].Set(msg.layouts, msg.system)
		m.clampCursor()
		return m, nil

	case layoutSavedMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Save layout: " + err.Error(), IsErr: true}
			}
		}
		m.stores[msg.kind].Upsert(*msg.layout)
		m.exitForm()
		verb := "updated"
		if msg.create {
			verb = "created"
		}
		name := msg.layout.Name
		return m, func() tea.Msg {
			return ToastMsg{Text: fmt.Sprintf("Layout %q %s", name, verb)}
		}

	case layoutDeletedMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Delete layout: " + err.Error(), IsErr: true}
			}
		}
		if err := m.stores[msg.kind].Remove(msg.id); err != nil {
			return m, m.fetch(msg.kind)
		}
		m.clampCursor()
		return m, func() tea.Msg {
			return ToastMsg{Text: "Layout deleted"}
		}

	case defaultSetMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Set default: " + err.Error(), IsErr: true}
			}
		}
		st := m.stores[msg.kind]
		st.Set(msg.layouts, st.SystemFields())
		return m, func() tea.Msg {
			return ToastMsg{Text: "Default layout changed"}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == layoutModeList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m LayoutsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.store()
	switch msg.String() {
	case "t":
		m.kindIdx = (m.kindIdx + 1) % len(layout.Kinds())
		m.cursor = 0
		if m.store().Len() == 0 {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch(m.kind()))
		}
		return m, nil

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetch(m.kind()))

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < st.Len()-1 {
			m.cursor++
		}
		return m, nil

	case "n":
		m.mode = layoutModeCreate
		m.draft = layout.NewDraft(st.SystemFields())
		m.enterForm("")
		return m, textinput.Blink

	case "e", "enter":
		l, ok := m.selectedLayout()
		if !ok {
			return m, nil
		}
		m.mode = layoutModeEdit
		m.draft = layout.DraftFrom(l)
		m.enterForm(l.Name)
		return m, textinput.Blink

	case "d":
		// Hidden and refused while only one layout exists.
		if !st.CanDelete() {
			return m, nil
		}
		l, ok := m.selectedLayout()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(l.ID)

	case "s":
		l, ok := m.selectedLayout()
		if !ok || l.IsDefault {
			return m, nil
		}
		return m, m.setDefaultCmd(l.ID)
	}
	return m, nil
}

func (m LayoutsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.addingField {
		return m.updateFieldForm(msg)
	}

	switch msg.String() {
	case "esc":
		m.exitForm()
		return m, nil

	case "ctrl+s":
		m.draft.Name = m.nameInput.Value()
		if err := m.draft.Validate(); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		return m, m.saveCmd()

	case "ctrl+d":
		m.draft.IsDefault = !m.draft.IsDefault
		return m, nil

	case "a":
		// Only one add-field form at a time; 'a' while typing the name is
		// still text when the name input has focus.
		if m.nameInput.Focused() {
			break
		}
		m.addingField = true
		m.form = newFieldForm()
		return m, textinput.Blink

	case "x":
		if m.nameInput.Focused() {
			break
		}
		fields := m.draft.CustomFields()
		if m.fieldCursor < len(fields) {
			if err := m.draft.RemoveField(fields[m.fieldCursor].Key); err == nil && m.fieldCursor > 0 {
				m.fieldCursor--
			}
		}
		return m, nil

	case "tab":
		if m.nameInput.Focused() {
			m.nameInput.Blur()
		} else {
			m.nameInput.Focus()
		}
		return m, textinput.Blink

	case "up", "k":
		if !m.nameInput.Focused() && m.fieldCursor > 0 {
			m.fieldCursor--
			return m, nil
		}

	case "down", "j":
		if !m.nameInput.Focused() && m.fieldCursor < len(m.draft.CustomFields())-1 {
			m.fieldCursor++
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m LayoutsModel) updateFieldForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.form
	switch msg.String() {
	case "esc":
		m.addingField = false
		m.form = fieldForm{}
		return m, nil

	case "enter":
		options := splitOptions(f.options.Value())
		_, err := m.draft.AddField(f.label.Value(), f.fieldType(), f.required, options, f.placeholder.Value())
		if err != nil {
			// Nothing was appended; the form stays open with the inputs
			// intact so the error can be fixed in place.
			f.errText = err.Error()
			return m, nil
		}
		m.addingField = false
		m.form = fieldForm{}
		m.fieldCursor = len(m.draft.CustomFields()) - 1
		return m, nil

	case "tab":
		m.cycleFieldFocus(1)
		return m, textinput.Blink

	case "shift+tab":
		m.cycleFieldFocus(-1)
		return m, textinput.Blink

	case "left":
		if f.focus == focusType {
			f.typeIdx = (f.typeIdx + len(layout.UserTypes()) - 1) % len(layout.UserTypes())
			return m, nil
		}

	case "right":
		if f.focus == focusType {
			f.typeIdx = (f.typeIdx + 1) % len(layout.UserTypes())
			return m, nil
		}

	case " ":
		if f.focus == focusRequired {
			f.required = !f.required
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusLabel:
		f.label, cmd = f.label.Update(msg)
	case focusOptions:
		f.options, cmd = f.options.Update(msg)
	case focusPlaceholder:
		f.placeholder, cmd = f.placeholder.Update(msg)
	}
	return m, cmd
}

// cycleFieldFocus advances the add-field focus, skipping the inputs the
// selected type does not carry.
func (m *LayoutsModel) cycleFieldFocus(dir int) {
	f := &m.form
	meta := f.fieldType().Meta()

	order := []fieldFormFocus{focusLabel, focusType, focusRequired}
	if meta.HasOptions {
		order = append(order, focusOptions)
	}
	if meta.HasPlaceholder {
		order = append(order, focusPlaceholder)
	}

	pos := 0
	for i, focus := range order {
		if focus == f.focus {
			pos = i
		}
	}
	f.focus = order[(pos+dir+len(order))%len(order)]

	f.label.Blur()
	f.options.Blur()
	f.placeholder.Blur()
	switch f.focus {
	case focusLabel:
		f.label.Focus()
	case focusOptions:
		f.options.Focus()
	case focusPlaceholder:
		f.placeholder.Focus()
	}
}

func (m *LayoutsModel) enterForm(name string) {
	m.nameInput.SetValue(name)
	m.nameInput.Focus()
	m.fieldCursor = 0
	m.formErr = ""
	m.addingField = false
}

func (m *LayoutsModel) exitForm() {
	m.mode = layoutModeList
	m.draft = nil
	m.addingField = false
	m.form = fieldForm{}
	m.formErr = ""
	m.nameInput.Blur()
	m.nameInput.SetValue("")
}

func (m *LayoutsModel) clampCursor() {
	if n := m.store().Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func (m LayoutsModel) selectedLayout() (layout.Layout, bool) {
	layouts := m.store().All()
	if m.cursor < 0 || m.cursor >= len(layouts) {
		return layout.Layout{}, false
	}
	return layouts[m.cursor], true
}

func (m LayoutsModel) saveCmd() tea.Cmd {
	deps := m.deps
	kind := m.kind()
	draft := m.draft
	name := draft.Name
	fields := draft.CustomFields()
	isDefault := draft.IsDefault
	id := draft.ID

	return func() tea.Msg {
		if id == "" {
			created, err := deps.API.Layouts(kind).Create(deps.Ctx, name, fields, isDefault)
			return layoutSavedMsg{kind: kind, layout: created, create: true, err: err}
		}
		updated, err := deps.API.Layouts(kind).Update(deps.Ctx, id, layoutFullPatch(name, fields, isDefault))
		return layoutSavedMsg{kind: kind, layout: updated, err: err}
	}
}

func (m LayoutsModel) deleteCmd(id string) tea.Cmd {
	deps := m.deps
	kind := m.kind()
	return func() tea.Msg {
		err := deps.API.Layouts(kind).Delete(deps.Ctx, id)
		return layoutDeletedMsg{kind: kind, id: id, err: err}
	}
}

func (m LayoutsModel) setDefaultCmd(id string) tea.Cmd {
	deps := m.deps
	kind := m.kind()
	return func() tea.Msg {
		layouts, err := deps.API.Layouts(kind).SetDefault(deps.Ctx, id)
		return defaultSetMsg{kind: kind, layouts: layouts, err: err}
	}
}

// splitOptions turns the comma-separated options input into a clean list:
// segments are trimmed and blanks dropped.
func splitOptions(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (m LayoutsModel) View() string {
	title := "Layouts · " + kindTitle(m.kind())
	view := TitleStyle.Render(title) + "\n"

	switch m.mode {
	case layoutModeList:
		return view + m.viewList()
	default:
		return view + m.viewForm()
	}
}

func (m LayoutsModel) viewList() string {
	if m.loading {
		return m.spinner.View() + " Loading..."
	}
	if m.loadErr != "" {
		return PanelStyle.Render(ErrorStyle.Render("Failed to load: " + m.loadErr))
	}

	st := m.store()
	layouts := st.All()
	out := ""
	if len(layouts) == 0 {
		out = DimStyle.Render("No layouts yet. Press n to create one.") + "\n"
	}
	for i, l := range layouts {
		line := l.Name
		if l.IsDefault {
			line = DefaultStarStyle.Render("★ ") + line
		} else {
			line = "  " + line
		}
		line += DimStyle.Render(fmt.Sprintf("  (%d system, %d custom)", len(l.SystemFields()), len(l.CustomFields())))
		if i == m.cursor {
			line = SelectedItemStyle.Render("> " + line)
		} else {
			line = NormalItemStyle.Render("  " + line)
		}
		out += line + "\n"
	}

	help := "t switch kind · n new · e edit · s set default · r refresh"
	if st.CanDelete() {
		help += " · d delete"
	}
	return out + "\n" + HelpStyle.Render(help)
}

func (m LayoutsModel) viewForm() string {
	mode := "Edit layout"
	if m.mode == layoutModeCreate {
		mode = "New layout"
	}
	out := lipgloss.NewStyle().Bold(true).Render(mode) + "\n\n"
	out += "Name: " + m.nameInput.View() + "\n"
	if m.draft.IsDefault {
		out += DefaultStarStyle.Render("★ default layout") + "\n"
	}
	out += "\n" + DimStyle.Render("System fields (locked)") + "\n"
	for _, f := range m.draft.SystemFields() {
		out += DimStyle.Render(fmt.Sprintf("  %s  %s", f.Label, typeBadge(f.Type))) + "\n"
	}

	out += "\nCustom fields\n"
	custom := m.draft.CustomFields()
	if len(custom) == 0 {
		out += DimStyle.Render("  none yet") + "\n"
	}
	for i, f := range custom {
		line := fmt.Sprintf("%s  %s", f.Label, typeBadge(f.Type))
		if f.Required {
			line += ErrorStyle.Render(" *")
		}
		if f.Type == layout.TypeSelect {
			line += DimStyle.Render("  [" + strings.Join(f.Options, ", ") + "]")
		}
		if i == m.fieldCursor && !m.nameInput.Focused() {
			line = SelectedItemStyle.Render("> " + line)
		} else {
			line = NormalItemStyle.Render("  " + line)
		}
		out += line + "\n"
	}

	if m.addingField {
		out += "\n" + m.viewFieldForm()
	}
	if m.formErr != "" {
		out += "\n" + ErrorStyle.Render(m.formErr)
	}

	help := "ctrl+s save · ctrl+d toggle default · tab focus · esc back"
	if !m.nameInput.Focused() && !m.addingField {
		help = "a add field · x remove field · " + help
	}
	return out + "\n" + HelpStyle.Render(help)
}

func (m LayoutsModel) viewFieldForm() string {
	f := m.form
	meta := f.fieldType().Meta()

	mark := func(focus fieldFormFocus, s string) string {
		if f.focus == focus {
			return SelectedItemStyle.Render(s)
		}
		return s
	}

	out := "Add field\n"
	out += mark(focusLabel, "Label: ") + f.label.View() + "\n"
	out += mark(focusType, "Type:  ") + typeBadge(f.fieldType()) + DimStyle.Render("  ←/→ to change") + "\n"
	req := "[ ]"
	if f.required {
		req = "[x]"
	}
	out += mark(focusRequired, "Required: ") + req + "\n"
	if meta.HasOptions {
		out += mark(focusOptions, "Options: ") + f.options.View() + "\n"
	}
	if meta.HasPlaceholder {
		out += mark(focusPlaceholder, "Placeholder: ") + f.placeholder.View() + "\n"
	}
	if f.errText != "" {
		out += ErrorStyle.Render(f.errText) + "\n"
	}
	return PanelStyle.Render(out + HelpStyle.Render("enter add · esc cancel"))
}

func kindTitle(kind layout.EntityKind) string {
	switch kind {
	case layout.KindJobs:
		return "Jobs"
	case layout.KindTasks:
		return "Tasks"
	}
	return string(kind)
}

func typeBadge(t layout.FieldType) string {
	meta := t.Meta()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Render(meta.Label)
}

// layoutFullPatch builds the full-replacement patch the edit form sends:
// name, the complete custom-field list, and the default flag.
func layoutFullPatch(name string, fields []layout.Field, isDefault bool) api.LayoutPatch {
	return api.LayoutPatch{Name: &name, CustomFields: &fields, IsDefault: &isDefault}
}
