package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/config"
	"taskdeck/internal/notify"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
	"taskdeck/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
)

// Transient message lifetimes, matching how long a user needs to read
// an error versus a confirmation.
const (
	errStatusTimeout  = 3500 * time.Millisecond
	infoStatusTimeout = 1800 * time.Millisecond
)

// autoLoadRows is how close to the bottom of the rendered window the
// cursor may get before the next batch is materialized.
const autoLoadRows = 5

type statusClearMsg struct{ seq int }

type searchApplyMsg struct{ seq int }

// eventBuffer collects store events raised during an Update call. It is
// shared by pointer so the sink survives bubbletea's model copying.
type eventBuffer struct {
	events []task.Event
}

func (b *eventBuffer) sink(ev task.Event) {
	b.events = append(b.events, ev)
}

func (b *eventBuffer) drain() []task.Event {
	evs := b.events
	b.events = nil
	return evs
}

type Model struct {
	store  *task.Store
	db     *storage.Store
	cfg    config.Config
	vw     *view.View
	events *eventBuffer

	theme  storage.Theme
	styles Styles

	mode         mode
	cursor       int
	input        textinput.Model
	form         *formState
	confirmDel   bool
	pendingDel   *task.Task
	confirmClear bool

	status    string
	statusErr bool
	celebrate bool
	statusSeq int
	searchSeq int
}

func Run(db *storage.Store, cfg config.Config) error {
	tasks, err := db.LoadTasks()
	if err != nil {
		return err
	}

	events := &eventBuffer{}
	store := task.NewStore(db, tasks, task.WithEventSink(events.sink))

	vw := view.New(cfg.RenderBatch)
	vw.Completion = startupCompletionFilter(cfg.DefaultFilter)
	vw.Recompute(store.Tasks())
	vw.Advance()

	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	theme := db.LoadTheme()

	m := Model{
		store:  store,
		db:     db,
		cfg:    cfg,
		vw:     vw,
		events: events,
		theme:  theme,
		styles: newStyles(theme),
		mode:   modeList,
		input:  ti,
		status: "Press 'a' to add, space to toggle, '/' to search.",
	}
	if msg, ok := notify.Upcoming(store.Tasks(), time.Now()); ok {
		m.status = msg
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func startupCompletionFilter(v string) view.CompletionFilter {
	switch strings.ToLower(v) {
	case "pending":
		return view.CompletionPending
	case "completed", "done":
		return view.CompletionCompleted
	default:
		return view.CompletionAll
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case searchApplyMsg:
		// A newer keystroke reschedules the debounce; stale ticks are
		// dropped.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.vw.Search = strings.TrimSpace(m.input.Value())
		m.refresh()
		return m, nil
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
			m.celebrate = false
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m.quit()
	case m.cfg.Keys.Down, "down":
		return m.moveCursor(1), nil
	case m.cfg.Keys.Up, "up":
		return m.moveCursor(-1), nil
	case m.cfg.Keys.Add:
		m.form = newAddForm()
		return m.openForm("Add task: Enter to advance, Esc to cancel")
	case m.cfg.Keys.Edit:
		window := m.vw.Window()
		if len(window) == 0 {
			return m.setInfo("No tasks to edit")
		}
		m.form = newEditForm(window[m.cursor])
		return m.openForm("Edit task: Enter to advance, Esc to cancel")
	case m.cfg.Keys.Toggle:
		return m.toggleCurrent()
	case m.cfg.Keys.Delete:
		window := m.vw.Window()
		if len(window) == 0 {
			return m, nil
		}
		t := window[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
		m.statusErr = false
		return m, nil
	case m.cfg.Keys.ClearAll:
		if m.store.Len() == 0 {
			return m, nil
		}
		m.confirmClear = true
		m.status = "Delete ALL tasks? y/n"
		m.statusErr = false
		return m, nil
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.vw.Search)
		m.input.Placeholder = "Search title or description"
		m.input.Focus()
		return m, nil
	case m.cfg.Keys.FilterPriority:
		m.vw.Priority = nextPriorityFilter(m.vw.Priority)
		m.refresh()
		return m.setInfo("Priority filter: " + string(m.vw.Priority))
	case m.cfg.Keys.FilterComplete:
		m.vw.Completion = nextCompletionFilter(m.vw.Completion)
		m.refresh()
		return m.setInfo("Showing: " + string(m.vw.Completion))
	case m.cfg.Keys.LoadMore:
		if !m.vw.HasMore() {
			return m.setInfo("All tasks rendered")
		}
		m.vw.Advance()
		return m, nil
	case m.cfg.Keys.Theme:
		return m.toggleTheme()
	}
	return m, nil
}

func (m Model) moveCursor(delta int) Model {
	window := m.vw.Window()
	if len(window) == 0 {
		return m
	}
	m.cursor = clampCursor(m.cursor+delta, len(window))
	// Nearing the bottom of the window pulls in the next batch, the
	// row-based version of scrolling near the end of the list.
	if m.vw.HasMore() && m.cursor >= m.vw.Rendered()-autoLoadRows {
		m.vw.Advance()
	}
	return m
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	window := m.vw.Window()
	if len(window) == 0 {
		return m, nil
	}
	id := window[m.cursor].ID
	if _, err := m.store.ToggleCompleted(id); err != nil {
		return m.setError(err.Error())
	}
	m.refresh()
	return m.consumeEvents("Toggled task")
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.confirmDel = false
		m.pendingDel = nil
		return m.setInfo("Delete cancelled")
	case "y", "Y":
		if m.pendingDel == nil {
			m.confirmDel = false
			return m.setInfo("Nothing to delete")
		}
		err := m.store.Delete(m.pendingDel.ID)
		m.confirmDel = false
		m.pendingDel = nil
		if err != nil {
			return m.setError(err.Error())
		}
		m.refresh()
		return m.consumeEvents("Task deleted")
	default:
		return m, nil
	}
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.confirmClear = false
		return m.setInfo("Clear cancelled")
	case "y", "Y":
		m.confirmClear = false
		m.store.ClearAll()
		m.refresh()
		return m.consumeEvents("All tasks deleted")
	default:
		return m, nil
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.vw.Search = ""
		m.refresh()
		return m.setInfo("Search cleared")
	case m.cfg.Keys.Confirm, "enter":
		m.mode = modeList
		m.input.Blur()
		m.vw.Search = strings.TrimSpace(m.input.Value())
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.searchSeq++
		seq := m.searchSeq
		debounce := time.Duration(m.cfg.SearchDebounceMS) * time.Millisecond
		tick := tea.Tick(debounce, func(time.Time) tea.Msg {
			return searchApplyMsg{seq: seq}
		})
		return m, tea.Batch(cmd, tick)
	}
}

func (m Model) openForm(status string) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = status
	m.statusErr = false
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		return m.setInfo("Cancelled")
	case "tab", "shift+tab":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		delta := 1
		if key == "shift+tab" {
			delta = -1
		}
		m.form.index = wrapIndex(m.form.index+delta, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		if m.form.index < len(formFields())-1 {
			m.form.index++
			m.input.SetValue(m.form.currentValue())
			m.input.Placeholder = m.form.currentLabel()
			return m, nil
		}
		return m.submitForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	fs := m.form
	if fs.taskID == 0 {
		t, err := m.store.Add(fs.title, fs.description, strings.TrimSpace(fs.due), fs.normalizedPriority())
		if err != nil {
			return m.setError(err.Error())
		}
		m.closeForm()
		m.refresh()
		m.cursor = 0
		if msg, ok := notify.ReminderForNew(t, time.Now()); ok {
			return m.consumeEvents(msg)
		}
		return m.consumeEvents("Task added")
	}

	title := fs.title
	desc := fs.description
	due := strings.TrimSpace(fs.due)
	prio := fs.normalizedPriority()
	_, err := m.store.Edit(fs.taskID, task.Update{
		Title:       &title,
		Description: &desc,
		DueDate:     &due,
		Priority:    &prio,
	})
	if err != nil {
		return m.setError(err.Error())
	}
	m.closeForm()
	m.refresh()
	return m.consumeEvents("Task updated")
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.theme == storage.ThemeDark {
		m.theme = storage.ThemeLight
	} else {
		m.theme = storage.ThemeDark
	}
	m.styles = newStyles(m.theme)
	if err := m.db.SaveTheme(m.theme); err != nil {
		return m.setError(fmt.Sprintf("theme save failed: %v", err))
	}
	return m.setInfo("Theme: " + string(m.theme))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// Final flush; every mutation already persisted, this covers the
	// edge where the last write failed transiently.
	if err := m.db.SaveTasks(m.store.Tasks()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
	return m, tea.Quit
}

// refresh re-derives the filtered sequence, materializes the first
// batch, and keeps the cursor inside the window.
func (m *Model) refresh() {
	m.vw.Recompute(m.store.Tasks())
	m.vw.Advance()
	m.cursor = clampCursor(m.cursor, m.vw.Rendered())
}

// consumeEvents turns buffered store events into status output. A
// celebration wins over the plain confirmation; a failed persist wins
// over everything.
func (m Model) consumeEvents(fallback string) (tea.Model, tea.Cmd) {
	celebrated := false
	for _, ev := range m.events.drain() {
		switch ev.Kind {
		case task.EventPersistFailed:
			return m.setError(fmt.Sprintf("save failed (changes kept in memory): %v", ev.Err))
		case task.EventCompleted:
			celebrated = true
		}
	}
	if celebrated {
		m.celebrate = true
		return m.setInfo("✦ Task completed — nice work! ✦")
	}
	return m.setInfo(fallback)
}

func (m Model) setInfo(msg string) (tea.Model, tea.Cmd) {
	return m.setStatus(msg, false, infoStatusTimeout)
}

func (m Model) setError(msg string) (tea.Model, tea.Cmd) {
	return m.setStatus(msg, true, errStatusTimeout)
}

func (m Model) setStatus(msg string, isErr bool, d time.Duration) (tea.Model, tea.Cmd) {
	m.status = msg
	m.statusErr = isErr
	if !isErr {
		// celebrate flag is set by consumeEvents before calling here;
		// any other status overwrites it.
		m.celebrate = m.celebrate && strings.Contains(msg, "completed")
	}
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func nextPriorityFilter(p view.PriorityFilter) view.PriorityFilter {
	switch p {
	case view.PriorityAll:
		return view.PriorityLow
	case view.PriorityLow:
		return view.PriorityMedium
	case view.PriorityMedium:
		return view.PriorityHigh
	default:
		return view.PriorityAll
	}
}

func nextCompletionFilter(c view.CompletionFilter) view.CompletionFilter {
	switch c {
	case view.CompletionAll:
		return view.CompletionPending
	case view.CompletionPending:
		return view.CompletionCompleted
	default:
		return view.CompletionAll
	}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
