package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"apidir/internal/domain"
	"apidir/internal/infra/render"
	"apidir/internal/ui"
)

const (
	openSwagger = "swagger"
	openContact = "contact"
	openEmail   = "email"
)

type showOutput struct {
	Provider domain.ProviderID `json:"provider" yaml:"provider" toml:"provider"`
	Status   ui.DetailStatus   `json:"status" yaml:"status" toml:"status"`
	Key      string            `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Fallback bool              `json:"fallback" yaml:"fallback" toml:"fallback"`
	Detail   *ui.DetailModel   `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
	Error    *ui.UIError       `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

func newShowCmd(opts *cliOptions) *cobra.Command {
	var open string
	cmd := &cobra.Command{
		Use:   "show <provider>",
		Short: "Show the API details of one provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ProviderID(strings.TrimSpace(args[0]))
			if err := id.Validate(); err != nil {
				return asExitError(err)
			}

			session := opts.app.NewSession(nil, nil)
			session.Start(cmd.Context(), ui.DetailRoute(id))
			defer session.Close()
			session.Wait()

			state := session.Detail().State()
			if err := writeDetail(cmd.OutOrStdout(), opts.format, state); err != nil {
				return err
			}
			if state.Status == ui.DetailError {
				return exitSilent(detailExitCode(state.Error))
			}
			if open == "" {
				return nil
			}
			model, _ := state.Model()
			link, err := detailLink(model, open)
			if err != nil {
				return asExitError(err)
			}
			return asExitError(opts.linkOpener().Open(link))
		},
	}
	cmd.Flags().StringVar(&open, "open", "", "open a link of the loaded provider: swagger, contact or email")
	return cmd
}

func writeDetail(w io.Writer, format render.Format, state ui.DetailState) error {
	out := showOutput{
		Provider: state.Provider,
		Status:   state.Status,
		Key:      state.Key,
		Fallback: state.Fallback,
		Error:    state.Error,
	}
	if model, ok := state.Model(); ok {
		out.Detail = &model
	}
	return writeOutput(w, format, out, func(w io.Writer) error {
		return render.RenderDetail(w, state)
	})
}

func detailLink(model ui.DetailModel, target string) (string, error) {
	var link string
	switch strings.ToLower(strings.TrimSpace(target)) {
	case openSwagger:
		link = model.SwaggerURL
	case openContact:
		link = model.ContactURL
	case openEmail:
		link = model.MailtoURL
	default:
		return "", domain.InvalidArgumentError("open", fmt.Sprintf("unknown link %q (want swagger, contact or email)", target))
	}
	if link == "" {
		return "", domain.NotFoundError("open", "provider has no "+target+" link")
	}
	return link, nil
}

func detailExitCode(err *ui.UIError) int {
	if err == nil {
		return exitFailure
	}
	switch err.Code {
	case ui.ErrCodeNetwork, ui.ErrCodeTimeout:
		return exitUnavailable
	case ui.ErrCodeNotFound:
		return exitNotFound
	case ui.ErrCodeInvalidRequest:
		return exitUsage
	default:
		return exitFailure
	}
}
