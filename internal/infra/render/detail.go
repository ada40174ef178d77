package render

import (
	"bufio"
	"fmt"
	"io"

	"apidir/internal/ui"
)

const (
	LoadingText       = "Loading..."
	NoDetailsText     = "No API details available"
	ExploreMoreButton = "[ Explore more APIs ]"
)

// RenderDetail draws exactly one of the loading, error and loaded screens.
func RenderDetail(w io.Writer, state ui.DetailState) error {
	bw := bufio.NewWriter(w)
	switch state.Status {
	case ui.DetailLoading, "":
		fmt.Fprintln(bw, LoadingText)
		return bw.Flush()
	case ui.DetailError:
		reason := "unknown error"
		if state.Error != nil {
			reason = state.Error.Reason()
		}
		fmt.Fprintf(bw, "Error: %s\n", reason)
		return bw.Flush()
	}

	model, ok := state.Model()
	if !ok {
		fmt.Fprintln(bw, NoDetailsText)
		return bw.Flush()
	}
	writeDetailModel(bw, model)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, ExploreMoreButton)
	return bw.Flush()
}

func writeDetailModel(w io.Writer, model ui.DetailModel) {
	fmt.Fprintln(w, model.Title)
	if model.LogoURL != "" {
		fmt.Fprintf(w, "logo: %s\n", model.LogoURL)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Description")
	fmt.Fprintf(w, "  %s\n", model.Description)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Swagger")
	fmt.Fprintf(w, "  %s\n", model.SwaggerURL)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Contact")
	email := model.ContactEmail
	if model.MailtoURL != "" {
		email = fmt.Sprintf("%s <%s>", model.ContactEmail, model.MailtoURL)
	}
	fmt.Fprintf(w, "  Email: %s\n", email)
	fmt.Fprintf(w, "  Name: %s\n", model.ContactName)
	fmt.Fprintf(w, "  URL: %s\n", model.ContactURL)
}
