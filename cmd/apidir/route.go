package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"apidir/internal/ui"
)

type routeOutput struct {
	Route    ui.Route `json:"route" yaml:"route" toml:"route"`
	Path     string   `json:"path" yaml:"path" toml:"path"`
	DeepLink string   `json:"deepLink" yaml:"deepLink" toml:"deepLink"`
}

func newRouteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path-or-link>",
		Short: "Resolve a path or apidir:// link to a screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := ui.ParseRoute(args[0])
			if err != nil {
				return asExitError(err)
			}
			out := routeOutput{Route: route, Path: route.Path(), DeepLink: route.DeepLink()}
			return writeOutput(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				if route.Name == ui.RouteDetail {
					_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", route.Name, route.Provider, out.Path)
					return err
				}
				_, err := fmt.Fprintf(w, "%s\t%s\n", route.Name, out.Path)
				return err
			})
		},
	}
}
