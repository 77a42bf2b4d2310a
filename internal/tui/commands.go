package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/blog/internal/model"
)

// PostService is the remote collection the page mirrors.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, d model.Draft) (model.Post, error)
	Update(ctx context.Context, id string, d model.Draft) (model.Post, error)
	Delete(ctx context.Context, id string) (string, error)
}

// Results of the network commands. They are applied to whatever the model
// looks like when they arrive.
type (
	postsLoadedMsg struct{ posts []model.Post }
	postsFailedMsg struct{ err error }

	postSavedMsg struct {
		post    model.Post
		updated bool
	}
	saveFailedMsg struct{ err error }

	postDeletedMsg struct {
		id      string
		message string
	}
	deleteFailedMsg struct {
		id  string
		err error
	}
)

func fetchPosts(svc PostService) tea.Cmd {
	return func() tea.Msg {
		posts, err := svc.List(context.Background())
		if err != nil {
			return postsFailedMsg{err: err}
		}
		return postsLoadedMsg{posts: posts}
	}
}

// savePost updates when id is set, creates otherwise.
func savePost(svc PostService, id string, d model.Draft) tea.Cmd {
	return func() tea.Msg {
		var (
			p   model.Post
			err error
		)
		if id != "" {
			p, err = svc.Update(context.Background(), id, d)
		} else {
			p, err = svc.Create(context.Background(), d)
		}
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return postSavedMsg{post: p, updated: id != ""}
	}
}

func deletePost(svc PostService, id string) tea.Cmd {
	return func() tea.Msg {
		msg, err := svc.Delete(context.Background(), id)
		if err != nil {
			return deleteFailedMsg{id: id, err: err}
		}
		return postDeletedMsg{id: id, message: msg}
	}
}
