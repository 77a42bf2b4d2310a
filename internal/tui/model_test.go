package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/blog/internal/model"
)

type call struct {
	op    string
	id    string
	draft model.Draft
}

type fakeService struct {
	mu        sync.Mutex
	posts     []model.Post
	calls     []call
	nextID    int
	listErr   error
	saveErr   error
	deleteErr error
}

func (f *fakeService) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeService) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeService) List(ctx context.Context) ([]model.Post, error) {
	f.record(call{op: "list"})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Post(nil), f.posts...), nil
}

func (f *fakeService) Create(ctx context.Context, d model.Draft) (model.Post, error) {
	f.record(call{op: "create", draft: d})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return model.Post{}, f.saveErr
	}
	f.nextID++
	p := model.Post{ID: fmt.Sprintf("p%d", f.nextID), Title: d.Title, Content: d.Content}
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeService) Update(ctx context.Context, id string, d model.Draft) (model.Post, error) {
	f.record(call{op: "update", id: id, draft: d})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return model.Post{}, f.saveErr
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title, f.posts[i].Content = d.Title, d.Content
			return f.posts[i], nil
		}
	}
	return model.Post{}, errors.New("not found")
}

func (f *fakeService) Delete(ctx context.Context, id string) (string, error) {
	f.record(call{op: "delete", id: id})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return "Item deleted", nil
		}
	}
	return "", errors.New("not found")
}

// run executes cmd and flattens batches into the messages they produce.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds every message produced by cmd back into m, following the
// chain until no command is left. Spinner ticks are dropped.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatal("command chain did not settle")
		}
		var next []tea.Cmd
		for _, msg := range run(cmd) {
			if _, tick := msg.(spinner.TickMsg); tick {
				continue
			}
			updated, c := m.Update(msg)
			m = updated.(Model)
			if c != nil {
				next = append(next, c)
			}
		}
		cmd = nil
		if len(next) > 0 {
			cmd = tea.Batch(next...)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		m = updated.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func newLoaded(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(svc, zerolog.Nop())
	return settle(t, m, m.Init())
}

func seeded() *fakeService {
	return &fakeService{
		posts: []model.Post{
			{ID: "a1", Title: "First", Content: "Hello"},
			{ID: "b2", Title: "Second", Content: "World"},
		},
		nextID: 2,
	}
}

func TestInitFetchesPosts(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)

	if len(m.posts) != 2 || m.posts[0].Title != "First" {
		t.Fatalf("expected posts from service, got %+v", m.posts)
	}
	if !strings.Contains(m.View(), "Second") {
		t.Fatalf("expected rendered list to contain Second:\n%s", m.View())
	}
}

func TestFetchFailureKeepsPreviousList(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)

	svc.listErr = errors.New("network down")
	m, cmd := press(t, m, runes("r"))
	m = settle(t, m, cmd)

	if len(m.posts) != 2 {
		t.Fatalf("expected stale list to survive, got %+v", m.posts)
	}
}

func TestSubmitInvalidDraftShowsFieldErrors(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)
	before := len(svc.Calls())

	m, _ = press(t, m, runes("a"))
	m.content.SetValue("x")
	m, cmd := press(t, m, keySave)

	if cmd != nil {
		t.Fatal("invalid draft must not issue a request")
	}
	if len(m.errors) != 1 || m.errors[model.FieldTitle] != "Title is required" {
		t.Fatalf("unexpected errors %v", m.errors)
	}
	if len(svc.Calls()) != before {
		t.Fatalf("unexpected calls %+v", svc.Calls()[before:])
	}
	if !strings.Contains(m.View(), "Title is required") {
		t.Fatal("error not rendered inline")
	}
}

func TestSubmitWhitespaceOnlyDraft(t *testing.T) {
	m := newLoaded(t, seeded())
	m, _ = press(t, m, runes("a"))
	m.title.SetValue("   ")
	m.content.SetValue("\n\t")
	m, _ = press(t, m, keySave)

	if m.errors[model.FieldTitle] == "" || m.errors[model.FieldContent] == "" {
		t.Fatalf("expected both field errors, got %v", m.errors)
	}
}

func TestCreateResetsDraftAndRefreshes(t *testing.T) {
	svc := &fakeService{}
	m := newLoaded(t, svc)

	m, _ = press(t, m, runes("a"))
	m.title.SetValue("A")
	m.content.SetValue("B")
	m, cmd := press(t, m, keySave)
	if !m.loading {
		t.Fatal("expected loading while the save is in flight")
	}
	m = settle(t, m, cmd)

	var create *call
	lists := 0
	for _, c := range svc.Calls() {
		c := c
		switch c.op {
		case "create":
			create = &c
		case "list":
			lists++
		}
	}
	if create == nil || create.draft != (model.Draft{Title: "A", Content: "B"}) {
		t.Fatalf("expected create with {A B}, got %+v", svc.Calls())
	}
	if lists != 2 {
		t.Fatalf("expected initial fetch plus refresh, got %d lists", lists)
	}
	if m.loading || m.editing || m.selected != nil || len(m.errors) != 0 {
		t.Fatalf("expected idle state, got loading=%v editing=%v selected=%v errors=%v",
			m.loading, m.editing, m.selected, m.errors)
	}
	if d := m.Draft(); d != (model.Draft{}) {
		t.Fatalf("expected empty draft, got %+v", d)
	}
	if !strings.Contains(m.listView(), "A") {
		t.Fatalf("expected new post in list:\n%s", m.listView())
	}
}

func TestUpdateAddressesSelectedPost(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)

	m, _ = press(t, m, keyDown, runes("e"))
	if !m.editing || m.selected == nil || m.selected.ID != "b2" {
		t.Fatalf("expected editing b2, got editing=%v selected=%+v", m.editing, m.selected)
	}
	if d := m.Draft(); d != (model.Draft{Title: "Second", Content: "World"}) {
		t.Fatalf("draft not populated from post: %+v", d)
	}
	if !strings.Contains(m.View(), "Edit Post") || !strings.Contains(m.View(), "Update Post") {
		t.Fatal("expected edit heading and update button")
	}

	m.title.SetValue("Second v2")
	m, cmd := press(t, m, keySave)
	m = settle(t, m, cmd)

	var update *call
	for _, c := range svc.Calls() {
		c := c
		if c.op == "update" {
			update = &c
		}
	}
	if update == nil || update.id != "b2" || update.draft.Title != "Second v2" {
		t.Fatalf("expected update of b2, got %+v", svc.Calls())
	}
	if m.editing || m.selected != nil {
		t.Fatalf("expected edit state reset, got editing=%v selected=%+v", m.editing, m.selected)
	}
	if m.posts[1].Title != "Second v2" {
		t.Fatalf("expected refreshed list, got %+v", m.posts)
	}
}

func TestEditKeepsLongTitleIntact(t *testing.T) {
	long := strings.Repeat("t", 250)
	svc := &fakeService{posts: []model.Post{{ID: "a1", Title: long, Content: "body"}}}
	m := newLoaded(t, svc)

	m, _ = press(t, m, runes("e"))
	if got := m.Draft().Title; got != long {
		t.Fatalf("draft title has %d runes, want %d", len(got), len(long))
	}
	m, cmd := press(t, m, keySave)
	m = settle(t, m, cmd)

	var update *call
	for _, c := range svc.Calls() {
		c := c
		if c.op == "update" {
			update = &c
		}
	}
	if update == nil {
		t.Fatalf("expected an update call, got %+v", svc.Calls())
	}
	if update.draft != (model.Draft{Title: long, Content: "body"}) {
		t.Fatalf("update sent title of %d runes, want %d", len(update.draft.Title), len(long))
	}
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	svc := &fakeService{}
	m := newLoaded(t, svc)
	m, _ = press(t, m, runes("a"))
	m.title.SetValue("A")
	m.content.SetValue("B")

	m, first := press(t, m, keySave)
	m, second := press(t, m, keySave)
	if first == nil {
		t.Fatal("first submit should issue a request")
	}
	if second != nil {
		t.Fatal("second submit should be ignored while loading")
	}
	if !strings.Contains(m.formView(), "Saving...") || strings.Contains(m.formView(), "Add Post") {
		t.Fatalf("expected busy indicator instead of button:\n%s", m.formView())
	}
}

func TestSaveFailurePreservesForm(t *testing.T) {
	svc := &fakeService{saveErr: errors.New("boom")}
	m := newLoaded(t, svc)
	m, _ = press(t, m, runes("a"))
	m.title.SetValue("Keep")
	m.content.SetValue("Me")

	m, cmd := press(t, m, keySave)
	m = settle(t, m, cmd)

	if m.loading {
		t.Fatal("loading must be cleared after a failure")
	}
	if d := m.Draft(); d != (model.Draft{Title: "Keep", Content: "Me"}) {
		t.Fatalf("draft lost after failure: %+v", d)
	}
	if m.focus == focusList {
		t.Fatal("form should keep focus for a retry")
	}
}

func TestDeleteRefreshesRegardlessOfSelection(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)

	m, _ = press(t, m, runes("v"))
	if m.selected == nil || m.selected.ID != "a1" {
		t.Fatalf("expected a1 selected, got %+v", m.selected)
	}

	m, cmd := press(t, m, runes("d"))
	m = settle(t, m, cmd)

	if len(m.posts) != 1 || m.posts[0].ID != "b2" {
		t.Fatalf("expected refreshed list without a1, got %+v", m.posts)
	}
	calls := svc.Calls()
	if last := calls[len(calls)-1]; last.op != "list" {
		t.Fatalf("expected refresh after delete, got %+v", calls)
	}
}

func TestDeleteFailureDoesNotRefresh(t *testing.T) {
	svc := seeded()
	svc.deleteErr = errors.New("forbidden")
	m := newLoaded(t, svc)

	m, cmd := press(t, m, runes("d"))
	m = settle(t, m, cmd)

	calls := svc.Calls()
	if last := calls[len(calls)-1]; last.op != "delete" {
		t.Fatalf("expected no refresh after failed delete, got %+v", calls)
	}
	if len(m.posts) != 2 {
		t.Fatalf("list should be untouched, got %+v", m.posts)
	}
}

func TestCancelEditClearsStateWithoutNetwork(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)
	m, _ = press(t, m, runes("e"))
	m.title.SetValue("")
	m, _ = press(t, m, keySave)
	if len(m.errors) == 0 {
		t.Fatal("expected a validation error before cancelling")
	}
	before := len(svc.Calls())

	m, cmd := press(t, m, keyEsc)

	if cmd != nil {
		t.Fatal("cancel must not issue a command")
	}
	if len(svc.Calls()) != before {
		t.Fatalf("cancel made calls: %+v", svc.Calls()[before:])
	}
	if m.editing || m.selected != nil || len(m.errors) != 0 || m.Draft() != (model.Draft{}) {
		t.Fatalf("expected idle state, got editing=%v selected=%+v errors=%v draft=%+v",
			m.editing, m.selected, m.errors, m.Draft())
	}
}

func TestEscWhileAddingKeepsDraft(t *testing.T) {
	m := newLoaded(t, seeded())
	m, _ = press(t, m, runes("a"))
	m, _ = press(t, m, runes("h"), runes("i"))
	m, _ = press(t, m, keyEsc)

	if m.focus != focusList {
		t.Fatal("esc should return to the list")
	}
	if m.Draft().Title != "hi" {
		t.Fatalf("draft should survive leaving the form, got %+v", m.Draft())
	}
	if strings.Contains(m.View(), "[ Cancel ]") {
		t.Fatal("cancel is only offered while editing")
	}
}

func TestViewShowsDetailOnlyWhenNotEditing(t *testing.T) {
	body := strings.Repeat("lorem ipsum ", 10) + "TAIL"
	m := newLoaded(t, &fakeService{posts: []model.Post{{ID: "a1", Title: "First", Content: body}}})
	if strings.Contains(m.View(), "TAIL") {
		t.Fatal("list preview should not show the full content")
	}

	m, _ = press(t, m, runes("v"))
	if m.selected == nil || m.editing || !m.showDetail() {
		t.Fatalf("expected viewing state, got selected=%+v editing=%v", m.selected, m.editing)
	}
	if !strings.Contains(m.View(), "TAIL") {
		t.Fatal("detail view missing")
	}

	m, _ = press(t, m, runes("e"))
	if m.selected == nil || !m.editing {
		t.Fatal("expected editing state")
	}
	if m.showDetail() {
		t.Fatal("detail pane must hide while editing")
	}
}

func TestCursorClampedAfterRefresh(t *testing.T) {
	svc := seeded()
	m := newLoaded(t, svc)
	m, _ = press(t, m, keyDown)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}

	updated, _ := m.Update(postsLoadedMsg{posts: []model.Post{{ID: "a1", Title: "First", Content: "Hello"}}})
	m = updated.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor not clamped, got %d", m.cursor)
	}
}

func TestEmptyListView(t *testing.T) {
	m := newLoaded(t, &fakeService{})
	if !strings.Contains(m.View(), "No posts yet.") {
		t.Fatalf("expected empty state:\n%s", m.View())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newLoaded(t, seeded())
	m, _ = press(t, m, runes("a"))
	_, cmd := press(t, m, keyCtrlC)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestQuitKeyTypesIntoForm(t *testing.T) {
	m := newLoaded(t, seeded())
	m, _ = press(t, m, runes("a"))
	m, _ = press(t, m, runes("q"))
	if m.Draft().Title != "q" {
		t.Fatalf("q should be typed into the title, got %+v", m.Draft())
	}
}

func TestWindowSize(t *testing.T) {
	m := newLoaded(t, seeded())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", m.width, m.height)
	}
}
