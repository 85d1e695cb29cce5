package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/bridge"
	"github.com/bnema/skiff/internal/contentview"
	"github.com/bnema/skiff/internal/logging"
	"github.com/bnema/skiff/internal/ui/controller"
)

// NewBrowseCmd creates the browse command: an interactive shell driving the
// full browsing stack against a headless content view. Useful for exercising
// navigation, the bridge and history recording without a display.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [url]",
		Short: "Open an interactive browsing shell",
		Long: `Open an interactive shell on the browsing stack. Free-form input is
resolved like the URL bar: URLs load directly, anything else becomes a web
search. Lines starting with ':' are commands (:help lists them).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowse,
	}
	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(app)
	ctx = app.Ctx()

	navigate := usecase.NewNavigateUseCase(ctx, app.HistoryRepo, func() string {
		return app.Config.Get().Settings().SearchTemplate
	})
	defer navigate.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl, err := controller.New(ctx, controller.Options{
		Tabs:        usecase.NewManageTabsUseCase(usecase.TimestampIDGenerator()),
		Navigate:    navigate,
		Config:      app.Config,
		ViewFactory: func() port.ContentView { return contentview.NewHeadless() },
		Notifier:    stderrNotifier{},
		Observers: controller.Observers{
			URLText: func(text string) { fmt.Printf("url: %s\n", text) },
			Title:   func(title string) { fmt.Printf("title: %s\n", title) },
			Quit:    cancel,
		},
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	publisher := bridge.NewPublisher()
	publisher.Subscribe(ctrl)

	if err := ctrl.Start(); err != nil {
		return fmt.Errorf("failed to open initial tab: %w", err)
	}

	// The responder targets the initial tab's view; Start must run first.
	handler := bridge.NewHandler(
		app.Config,
		app.History,
		navigate,
		app.Bookmarks,
		app.Downloads,
		bridge.NewScriptResponder(ctrl.ActiveView()),
	)
	handler.SetNavigator(ctrl)

	// Pick up config file edits while the shell runs.
	app.Config.Watch(ctx)

	if len(args) > 0 {
		if err := ctrl.NavigateInput(ctx, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "navigation failed:", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readInput(gctx, ctrl, handler, publisher, cancel)
	})
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readInput runs the shell loop until EOF, :quit or context cancellation.
func readInput(ctx context.Context, ctrl *controller.Controller, handler *bridge.Handler, publisher *bridge.Publisher, quit func()) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("skiff shell - :help for commands")

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if done := runShellCommand(ctx, line, ctrl, handler, publisher, quit); done {
				return nil
			}
			continue
		}

		if err := ctrl.NavigateInput(ctx, line); err != nil {
			fmt.Fprintln(os.Stderr, "navigation failed:", err)
		}
	}

	quit()
	return scanner.Err()
}

// runShellCommand executes one ':' command. Returns true when the shell
// should exit.
func runShellCommand(ctx context.Context, line string, ctrl *controller.Controller, handler *bridge.Handler, publisher *bridge.Publisher, quit func()) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	log := logging.FromContext(ctx)

	var err error
	switch name {
	case "q", "quit":
		publisher.RequestQuit()
		quit()
		return true
	case "back":
		err = ctrl.GoBack()
	case "forward":
		err = ctrl.GoForward()
	case "reload":
		err = ctrl.Reload()
	case "stop":
		err = ctrl.Stop()
	case "tab":
		_, err = ctrl.NewTab(arg)
	case "close":
		err = ctrl.CloseActiveTab()
	case "next":
		err = ctrl.NextTab(1)
	case "prev":
		err = ctrl.NextTab(-1)
	case "tabs":
		printTabs(ctrl)
	case "find":
		found, findErr := ctrl.FindInPage(arg, port.FindOptions{})
		err = findErr
		if findErr == nil {
			fmt.Println("found:", found)
		}
	case "bridge":
		// Raw bridge message, as the page scripts would send it.
		handler.Handle(ctx, arg)
	case "shortcut":
		publisher.BrowserShortcut(arg)
	case "help":
		fmt.Println("commands: :back :forward :reload :stop :tab [url] :close :next :prev :tabs :find <text> :bridge <json> :shortcut <action> :quit")
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", name)
	}

	if err != nil {
		log.Warn().Err(err).Str("command", name).Msg("shell command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return false
}

func printTabs(ctrl *controller.Controller) {
	tabs := ctrl.Tabs()
	for i, tab := range tabs.Tabs {
		marker := " "
		if tab.ID == tabs.ActiveTabID {
			marker = "*"
		}
		fmt.Printf("%s %d. %s\n", marker, i+1, tab.DisplayTitle())
	}
}

// stderrNotifier surfaces notifications on stderr.
type stderrNotifier struct{}

func (stderrNotifier) Notify(level port.NotifyLevel, text string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, text)
}
