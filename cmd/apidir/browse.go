package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"apidir/internal/domain"
	"apidir/internal/infra/render"
	"apidir/internal/ui"
	"apidir/internal/ui/events"
)

const browseHelp = `commands:
  toggle              open or close the provider drawer
  select <id|n>       expand or collapse a provider
  outside             click outside the drawer
  open <id|n>         open the details of the expanded provider
  explore             leave the details screen
  link <kind>         open the swagger, contact or email link
  go <path|link>      navigate to a path or apidir:// link
  back                go back
  show                redraw the screen
  quit                exit`

func newBrowseCmd(opts *cliOptions) *cobra.Command {
	var emitEvents bool
	cmd := &cobra.Command{
		Use:   "browse [path-or-link]",
		Short: "Browse the directory interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := ui.HomeRoute()
			if len(args) == 1 {
				route, err := ui.ParseRoute(args[0])
				if err != nil {
					return asExitError(err)
				}
				initial = route
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()
			opts.app.WatchConfig(ctx)

			var sink events.Sink
			if emitEvents {
				sink = jsonEventSink(cmd.ErrOrStderr())
			}
			b := &browseSession{
				opts:    opts,
				session: opts.app.NewSession(sink, nil),
				out:     cmd.OutOrStdout(),
				prompt:  isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
			}
			b.session.Start(ctx, initial)
			defer b.session.Close()
			return b.run(ctx, cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&emitEvents, "events", false, "write view events to stderr as JSON lines")
	return cmd
}

func jsonEventSink(w io.Writer) events.Sink {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	return events.SinkFunc(func(name string, payload any) {
		mu.Lock()
		defer mu.Unlock()
		_ = enc.Encode(events.Event{Name: name, Payload: payload})
	})
}

type browseSession struct {
	opts    *cliOptions
	session *ui.Session
	out     io.Writer
	prompt  bool
}

func (b *browseSession) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	b.session.Wait()
	b.render()
	for {
		if b.prompt {
			fmt.Fprint(b.out, "> ")
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := b.exec(line)
			if err != nil {
				fmt.Fprintf(b.out, "error: %s\n", ui.MapDomainError(err).Reason())
			}
			if quit {
				return nil
			}
		}
	}
}

func (b *browseSession) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	command, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	listing := b.session.Listing()
	detail := b.session.Detail()

	switch command {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "show":
	case "toggle":
		if listing == nil {
			return false, notOnScreen(command, ui.RouteHome)
		}
		listing.ToggleDrawer()
	case "select":
		if listing == nil {
			return false, notOnScreen(command, ui.RouteHome)
		}
		id, err := b.providerArg(listing, arg)
		if err != nil {
			return false, err
		}
		listing.SelectProvider(id)
	case "outside":
		if listing == nil {
			return false, notOnScreen(command, ui.RouteHome)
		}
		listing.OutsideClick()
	case "open":
		if listing == nil {
			return false, notOnScreen(command, ui.RouteHome)
		}
		id, err := b.providerArg(listing, arg)
		if err != nil {
			return false, err
		}
		if err := listing.Navigate(id); err != nil {
			return false, err
		}
	case "explore":
		if detail == nil {
			return false, notOnScreen(command, ui.RouteDetail)
		}
		detail.ExploreMore()
	case "link":
		if detail == nil {
			return false, notOnScreen(command, ui.RouteDetail)
		}
		model, ok := detail.State().Model()
		if !ok {
			return false, domain.InvalidArgumentError("link", "details are not loaded")
		}
		link, err := detailLink(model, arg)
		if err != nil {
			return false, err
		}
		if err := b.opts.linkOpener().Open(link); err != nil {
			return false, err
		}
		fmt.Fprintf(b.out, "opened %s\n", link)
		return false, nil
	case "go":
		route, err := ui.ParseRoute(arg)
		if err != nil {
			return false, err
		}
		b.session.Navigator().Push(route, nil)
	case "back":
		if !b.session.Navigator().Back() {
			return false, domain.InvalidArgumentError("back", "no earlier screen")
		}
	default:
		return false, domain.InvalidArgumentError("browse", fmt.Sprintf("unknown command %q (try help)", command))
	}

	b.session.Wait()
	b.render()
	return false, nil
}

// providerArg accepts a provider id or its 1-based position in the drawer.
// A listed id wins over a position.
func (b *browseSession) providerArg(listing *ui.ListingView, arg string) (domain.ProviderID, error) {
	if arg == "" {
		return "", domain.InvalidArgumentError("browse", "provider id or number is required")
	}
	providers := listing.Snapshot().Providers
	if slices.Contains(providers, domain.ProviderID(arg)) {
		return domain.ProviderID(arg), nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(providers) {
			return "", domain.InvalidArgumentError("browse", fmt.Sprintf("no provider number %d", n))
		}
		return providers[n-1], nil
	}
	id := domain.ProviderID(arg)
	return id, id.Validate()
}

func (b *browseSession) render() {
	if detail := b.session.Detail(); detail != nil {
		_ = render.RenderDetail(b.out, detail.State())
		return
	}
	if listing := b.session.Listing(); listing != nil {
		_ = render.RenderHome(b.out, listing.Snapshot())
	}
}

func notOnScreen(command string, screen ui.RouteName) error {
	return domain.InvalidArgumentError(command, fmt.Sprintf("only available on the %s screen", screen))
}
