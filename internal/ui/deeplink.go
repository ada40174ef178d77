package ui

import (
	"fmt"
	"net/url"
	"strings"

	"apidir/internal/domain"
)

// RouteName names one of the two screens.
type RouteName string

const (
	RouteHome   RouteName = "home"
	RouteDetail RouteName = "detail"
)

const detailPrefix = "/details/"

// Route is a parsed location in the application.
type Route struct {
	Name     RouteName         `json:"name" yaml:"name" toml:"name"`
	Provider domain.ProviderID `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty"`
}

func HomeRoute() Route {
	return Route{Name: RouteHome}
}

func DetailRoute(id domain.ProviderID) Route {
	return Route{Name: RouteDetail, Provider: id}
}

// Path renders the route as a URL path.
func (r Route) Path() string {
	if r.Name == RouteDetail {
		return detailPrefix + url.PathEscape(string(r.Provider))
	}
	return "/"
}

// DeepLink renders the route as an apidir:// URL.
func (r Route) DeepLink() string {
	return domain.DeepLinkScheme + ":/" + r.Path()
}

// ParseRoute parses a URL path ("/", "/details/{provider}") or an
// apidir:// deep link into a Route.
func ParseRoute(raw string) (Route, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return HomeRoute(), nil
	}

	path := value
	if strings.Contains(value, "://") {
		parsed, err := url.Parse(value)
		if err != nil {
			return Route{}, domain.E(domain.CodeInvalidArgument, "parse route", "invalid URL", err)
		}
		if parsed.Scheme != domain.DeepLinkScheme {
			return Route{}, domain.InvalidArgumentError("parse route", fmt.Sprintf("invalid scheme: expected %s, got %s", domain.DeepLinkScheme, parsed.Scheme))
		}
		// apidir://details/x -> host "details", path "/x"
		parts := []string{}
		if parsed.Host != "" {
			parts = append(parts, parsed.Host)
		}
		if trimmed := strings.Trim(parsed.EscapedPath(), "/"); trimmed != "" {
			parts = append(parts, trimmed)
		}
		path = "/" + strings.Join(parts, "/")
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	if path == "/" {
		return HomeRoute(), nil
	}
	if !strings.HasPrefix(path, detailPrefix) {
		return Route{}, domain.NotFoundError("parse route", "no route for "+path)
	}
	segment := strings.TrimSuffix(strings.TrimPrefix(path, detailPrefix), "/")
	if segment == "" || strings.Contains(segment, "/") {
		return Route{}, domain.NotFoundError("parse route", "no route for "+path)
	}
	provider, err := url.PathUnescape(segment)
	if err != nil {
		return Route{}, domain.E(domain.CodeInvalidArgument, "parse route", "invalid provider segment", err)
	}
	id := domain.ProviderID(provider)
	if err := id.Validate(); err != nil {
		return Route{}, domain.Wrap(domain.CodeInvalidArgument, "parse route", err)
	}
	return DetailRoute(id), nil
}
