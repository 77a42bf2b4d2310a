// Package tui is the blog page: a post list, an add/edit form and a detail
// pane over a remote posts collection.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusContent
)

// Model holds the page state. The post list is only ever replaced by a
// server response; mutations never edit it in place.
type Model struct {
	svc  PostService
	log  zerolog.Logger
	keys keyMap
	help help.Model

	posts  []model.Post
	cursor int

	selected *model.Post // copy of the post being viewed or edited
	editing  bool
	errors   model.Errors
	loading  bool // a create/update is in flight

	focus   focus
	title   textinput.Model
	content textarea.Model
	spinner spinner.Model

	width, height int
}

// New builds the page around svc. Nothing is fetched until Init runs.
func New(svc PostService, log zerolog.Logger) Model {
	t := ui.Current()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Post title..."
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Write something..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = t.Busy

	h := help.New()
	h.Styles.ShortKey = t.Accent
	h.Styles.ShortDesc = t.Help
	h.Styles.ShortSeparator = t.Help

	m := Model{
		svc:     svc,
		log:     log,
		keys:    newKeyMap(),
		help:    h,
		posts:   []model.Post{},
		errors:  model.Errors{},
		title:   ti,
		content: ta,
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

// Init fetches the post list on mount.
func (m Model) Init() tea.Cmd {
	return fetchPosts(m.svc)
}

// Draft returns the current form values.
func (m Model) Draft() model.Draft {
	return model.Draft{Title: m.title.Value(), Content: m.content.Value()}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case postsLoadedMsg:
		m.posts = msg.posts
		if m.posts == nil {
			m.posts = []model.Post{}
		}
		m.clampCursor()
		m.log.Info().Int("count", len(m.posts)).Msg("Posts fetched successfully")
		return m, nil

	case postsFailedMsg:
		m.log.Error().Err(msg.err).Msg("Error fetching posts")
		return m, nil

	case postSavedMsg:
		m.loading = false
		if msg.updated {
			m.log.Info().Str("id", msg.post.ID).Msg("Post updated successfully")
		} else {
			m.log.Info().Str("id", msg.post.ID).Msg("Post created successfully")
		}
		m.resetForm()
		return m, fetchPosts(m.svc)

	case saveFailedMsg:
		m.loading = false
		m.log.Error().Err(msg.err).Msg("Error saving post")
		return m, nil

	case postDeletedMsg:
		m.log.Info().Str("id", msg.id).Str("response", msg.message).Msg("Post deleted successfully")
		return m, fetchPosts(m.svc)

	case deleteFailedMsg:
		m.log.Error().Err(msg.err).Str("id", msg.id).Msg("Error deleting post")
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m.forwardToInput(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.View):
		if p, ok := m.current(); ok {
			m.viewPost(p)
		}
	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.current(); ok {
			return m, m.editPost(p)
		}
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.current(); ok {
			return m, deletePost(m.svc, p.ID)
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.focusField(focusTitle)
	case key.Matches(msg, m.keys.Refresh):
		return m, fetchPosts(m.svc)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Back):
		if m.editing {
			m.cancelEdit()
		} else {
			m.focusField(focusList)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		if m.focus == focusTitle {
			return m, m.focusField(focusContent)
		}
		return m, m.focusField(focusTitle)
	case key.Matches(msg, m.keys.PrevField):
		if m.focus == focusContent {
			return m, m.focusField(focusTitle)
		}
		return m, m.focusField(focusList)
	case m.focus == focusTitle && msg.Type == tea.KeyEnter:
		return m, m.focusField(focusContent)
	}
	return m.forwardToInput(msg)
}

func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// submit validates the draft and sends it. While a save is in flight further
// submits are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	draft := m.Draft()
	if errs := model.Validate(draft); len(errs) > 0 {
		m.errors = errs
		return m, nil
	}

	var id string
	if m.editing && m.selected != nil {
		id = m.selected.ID
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, savePost(m.svc, id, draft))
}

func (m *Model) viewPost(p model.Post) {
	m.selected = &p
	m.editing = false
}

func (m *Model) editPost(p model.Post) tea.Cmd {
	m.selected = &p
	m.editing = true
	d := model.DraftOf(p)
	m.title.SetValue(d.Title)
	m.title.CursorEnd()
	m.content.SetValue(d.Content)
	return m.focusField(focusTitle)
}

// cancelEdit drops the draft, the selection and any validation errors.
func (m *Model) cancelEdit() {
	m.resetForm()
}

func (m *Model) resetForm() {
	m.title.SetValue("")
	m.content.SetValue("")
	m.selected = nil
	m.editing = false
	m.errors = model.Errors{}
	m.focusField(focusList)
}

func (m *Model) focusField(f focus) tea.Cmd {
	m.focus = f
	m.keys.formFocused = f != focusList
	m.keys.editing = m.editing
	switch f {
	case focusTitle:
		m.content.Blur()
		return m.title.Focus()
	case focusContent:
		m.title.Blur()
		return m.content.Focus()
	}
	m.title.Blur()
	m.content.Blur()
	return nil
}

func (m Model) current() (model.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return model.Post{}, false
	}
	return m.posts[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.posts) {
		m.cursor = len(m.posts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) resize() {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	m.title.Width = w - len(m.title.Prompt)
	m.content.SetWidth(w)
	m.help.Width = m.width
}
