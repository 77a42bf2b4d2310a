package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/blog/internal/api"
	"github.com/idilsaglam/blog/internal/config"
	"github.com/idilsaglam/blog/internal/logger"
	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/server"
	"github.com/idilsaglam/blog/internal/store"
	"github.com/idilsaglam/blog/internal/store/jsonstore"
	"github.com/idilsaglam/blog/internal/store/sqlitestore"
	"github.com/idilsaglam/blog/internal/tui"
	"github.com/idilsaglam/blog/internal/ui"
)

// Options carry root flags; empty values leave the environment's setting.
type Options struct {
	APIURL   string
	LogLevel string
	Theme    string
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand the interactive page opens.
func Run(args []string, opt Options) int {
	if opt.Theme != "" {
		ui.SetTheme(opt.Theme)
	}
	cmd, a := "ui", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	if opt.APIURL != "" {
		cfg.APIURL = opt.APIURL
	}
	if opt.LogLevel != "" {
		cfg.LogLevel = opt.LogLevel
	}

	switch cmd {
	case "ui":
		return doPage(cfg)

	case "ls":
		return doList(cfg)

	case "show":
		if len(a) != 1 {
			ui.Fail("usage: blog show <id>")
			return 2
		}
		return doShow(cfg, a[0])

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: blog add <title> <content...>")
			return 2
		}
		return doSave(cfg, "", model.Draft{Title: a[0], Content: strings.Join(a[1:], " ")})

	case "edit":
		if len(a) < 3 {
			ui.Fail("usage: blog edit <id> <title> <content...>")
			return 2
		}
		return doSave(cfg, a[0], model.Draft{Title: a[1], Content: strings.Join(a[2:], " ")})

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: blog rm <id>")
			return 2
		}
		return doRemove(cfg, a[0])

	case "serve":
		return doServe(cfg, a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout, `blog - a terminal blog page

Usage:
  blog [flags] [subcommand] [args]

Subcommands:
  ui                              Open the interactive page (default)
  ls                              List posts
  show <id>                       Print one post in full
  add <title> <content...>        Create a post
  edit <id> <title> <content...>  Replace a post's title and content
  rm <id>                         Delete a post
  serve [-addr host:port]         Serve a local /items API for development

Flags:
  -api <url>        Collection endpoint (env BLOG_API_URL)
  -log-level <lvl>  debug, info, warn, error (env BLOG_LOG_LEVEL)
  -theme <name>     classic, neon or mono

Examples:
  blog
  blog add "Hello" "First post body"
  blog -api http://127.0.0.1:8080/items ls
  blog serve -addr :9000
`)
}

// ---------------------------------------------------
// Interactive page
// ---------------------------------------------------

func doPage(cfg config.Config) int {
	f, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer f.Close()
	log := logger.New(cfg.LogLevel, f)

	client, err := newClient(cfg, log)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	log.Info().Str("api", cfg.APIURL).Msg("page started")
	if err := tui.Run(client, log); err != nil {
		log.Error().Err(err).Msg("page stopped")
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// ---------------------------------------------------
// One-shot commands against the remote API
// ---------------------------------------------------

func newClient(cfg config.Config, log zerolog.Logger) (*api.Client, error) {
	return api.NewClient(cfg.APIURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(log))
}

func oneShot(cfg config.Config) (*api.Client, zerolog.Logger, int) {
	log := logger.New(cfg.LogLevel, os.Stderr)
	client, err := newClient(cfg, log)
	if err != nil {
		ui.Fail(err.Error())
		return nil, log, 1
	}
	return client, log, 0
}

func doList(cfg config.Config) int {
	client, _, code := oneShot(cfg)
	if code != 0 {
		return code
	}
	posts, err := client.List(context.Background())
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	t := ui.Current()
	if len(posts) == 0 {
		fmt.Fprintln(ui.Stdout, t.Muted.Render("no posts"))
		return 0
	}
	lines := []string{fmt.Sprintf("%s   %s %d", t.Title.Render("Blog Posts"), t.Accent.Render("Total"), len(posts))}
	for i, p := range posts {
		lines = append(lines,
			fmt.Sprintf("%2d. %s %s", i+1, t.Label.Render(p.Title), t.Muted.Render("("+p.ID+")")),
			"    "+t.Muted.Render(ui.Preview(p.Content+"...", 60)),
		)
	}
	ui.Panel(lines)
	return 0
}

func doShow(cfg config.Config, id string) int {
	client, _, code := oneShot(cfg)
	if code != 0 {
		return code
	}
	posts, err := client.List(context.Background())
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	for _, p := range posts {
		if p.ID == id {
			ui.Panel([]string{ui.Current().Title.Render(p.Title), "", p.Content})
			return 0
		}
	}
	ui.Fail("no post with id " + id)
	fmt.Fprintln(ui.Stderr, ui.Current().Muted.Render("Hint: run `blog ls` to see valid ids"))
	return 2
}

// doSave updates when id is set, creates otherwise.
func doSave(cfg config.Config, id string, d model.Draft) int {
	if errs := model.Validate(d); len(errs) > 0 {
		for _, field := range []string{model.FieldTitle, model.FieldContent} {
			if msg, ok := errs[field]; ok {
				ui.Fail(msg)
			}
		}
		return 2
	}
	client, _, code := oneShot(cfg)
	if code != 0 {
		return code
	}
	if id == "" {
		p, err := client.Create(context.Background(), d)
		if err != nil {
			ui.Fail(err.Error())
			return 1
		}
		ui.OK("created " + p.ID)
		return 0
	}
	if _, err := client.Update(context.Background(), id, d); err != nil {
		ui.Fail(err.Error())
		return 1
	}
	ui.OK("updated " + id)
	return 0
}

func doRemove(cfg config.Config, id string) int {
	client, _, code := oneShot(cfg)
	if code != 0 {
		return code
	}
	msg, err := client.Delete(context.Background(), id)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if msg == "" {
		msg = "deleted " + id
	}
	ui.OK(msg)
	return 0
}

// ---------------------------------------------------
// Development API
// ---------------------------------------------------

func openStore(sc config.ServeConfig) (store.Store, error) {
	switch sc.Store {
	case config.StoreSQLite:
		return sqlitestore.Open(sc.StorePathOrDefault())
	case config.StoreMemory:
		return jsonstore.Open("")
	default:
		return jsonstore.Open(sc.StorePathOrDefault())
	}
}

func doServe(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(ui.Stderr)
	addr := fs.String("addr", cfg.Serve.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.New(cfg.LogLevel, os.Stderr)
	st, err := openStore(cfg.Serve)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return 1
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", *addr).Str("store", cfg.Serve.Store).Msg("serving /items")
	if err := server.New(st, log).ListenAndServe(ctx, *addr); err != nil && !errors.Is(err, context.Canceled) {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}
