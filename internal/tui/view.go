package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/ui"
)

func (m Model) View() string {
	sections := []string{
		m.headerView(),
		m.listView(),
		m.formView(),
	}
	if m.showDetail() {
		sections = append(sections, m.detailView(*m.selected))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// showDetail reports whether the selected post gets its own pane; the form
// takes over while editing.
func (m Model) showDetail() bool {
	return m.selected != nil && !m.editing
}

func (m Model) headerView() string {
	t := ui.Current()
	return fmt.Sprintf("%s   %s %d",
		t.Title.Render("Blog Posts"),
		t.Accent.Render("Total"), len(m.posts),
	)
}

func (m Model) listView() string {
	t := ui.Current()
	if len(m.posts) == 0 {
		return t.Muted.Render("No posts yet.")
	}

	previewWidth := m.width - 6
	var b strings.Builder
	for i, p := range m.posts {
		prefix := "  "
		title := t.Label.Render(p.Title)
		if i == m.cursor && m.focus == focusList {
			prefix = t.Selected.Render(t.Cursor)
		}
		if m.selected != nil && m.selected.ID == p.ID {
			title += " " + t.Accent.Render(t.Bullet)
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, title)
		fmt.Fprintf(&b, "  %s\n", t.Muted.Render(ui.Preview(p.Content+"...", previewWidth)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) formView() string {
	t := ui.Current()

	heading := "Add New Post"
	action := "Add Post"
	if m.editing {
		heading = "Edit Post"
		action = "Update Post"
	}

	lines := []string{
		t.Title.Render(heading),
		t.Label.Render("Title"),
		m.title.View(),
	}
	if msg, ok := m.errors[model.FieldTitle]; ok {
		lines = append(lines, t.Error.Render(msg))
	}
	lines = append(lines, t.Label.Render("Content"), m.content.View())
	if msg, ok := m.errors[model.FieldContent]; ok {
		lines = append(lines, t.Error.Render(msg))
	}

	button := t.Success.Render("[ " + action + " ]")
	if m.loading {
		button = m.spinner.View() + " " + t.Busy.Render("Saving...")
	}
	if m.editing {
		button += "  " + t.Muted.Render("[ Cancel ]")
	}
	lines = append(lines, "", button)

	return t.Box().Render(strings.Join(lines, "\n"))
}

func (m Model) detailView(p model.Post) string {
	t := ui.Current()
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width).Render(p.Content)
	return t.Box().Render(t.Title.Render(p.Title) + "\n\n" + body)
}
