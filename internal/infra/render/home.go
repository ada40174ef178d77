package render

import (
	"bufio"
	"fmt"
	"io"

	"apidir/internal/infra/directory"
	"apidir/internal/ui"
)

const (
	ExploreButton   = "[ Explore web APIs ]"
	DrawerHeading   = "Select Provider"
	NoProviders     = "No providers available"
	MarkerCollapsed = "▼"
	MarkerExpanded  = "▲"
)

// RenderHome draws the listing: the explore button and, when open, the
// drawer with one line per provider.
func RenderHome(w io.Writer, snapshot ui.ListingSnapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ExploreButton)
	if !snapshot.Selection.DrawerOpen {
		return bw.Flush()
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%s  [X]\n", DrawerHeading)
	switch {
	case snapshot.Loading && len(snapshot.Providers) == 0:
		fmt.Fprintln(bw, "  Loading...")
	case len(snapshot.Providers) == 0:
		fmt.Fprintf(bw, "  %s\n", NoProviders)
	}
	for i, id := range snapshot.Providers {
		expanded := snapshot.Selection.State == ui.StateExpanded && snapshot.Selection.Expanded == id
		marker := MarkerCollapsed
		if expanded {
			marker = MarkerExpanded
		}
		fmt.Fprintf(bw, "  %3d. %s %s\n", i+1, id, marker)
		if !expanded {
			continue
		}
		summary := snapshot.Selection.Summary
		if summary.Logo != "" {
			fmt.Fprintf(bw, "       logo: %s\n", summary.Logo)
		}
		if summary.Title != "" {
			fmt.Fprintf(bw, "       > %s\n", summary.Title)
		}
	}
	return bw.Flush()
}

// RenderListings writes the providers command output, one provider per line
// with its title when a summary was fetched.
func RenderListings(w io.Writer, listings []directory.ProviderListing) error {
	bw := bufio.NewWriter(w)
	if len(listings) == 0 {
		fmt.Fprintln(bw, NoProviders)
		return bw.Flush()
	}
	for _, listing := range listings {
		if listing.Summary.Title == "" {
			fmt.Fprintln(bw, listing.ID)
			continue
		}
		fmt.Fprintf(bw, "%s\t%s\n", listing.ID, listing.Summary.Title)
	}
	return bw.Flush()
}
