package main

import (
	"io"

	"apidir/internal/infra/render"
)

// writeOutput renders payload in the selected format. Text output goes
// through text instead of the payload's default formatting.
func writeOutput(w io.Writer, format render.Format, payload any, text func(io.Writer) error) error {
	if (format == render.FormatText || format == "") && text != nil {
		return text(w)
	}
	return render.Encode(w, format, payload)
}
