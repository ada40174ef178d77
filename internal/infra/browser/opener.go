package browser

import (
	"io"
	"net/url"
	"strings"

	pkgbrowser "github.com/pkg/browser"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
)

// Opener hands a link to the desktop's default handler.
type Opener interface {
	Open(link string) error
}

// OpenFunc adapts a function to Opener.
type OpenFunc func(link string) error

func (f OpenFunc) Open(link string) error {
	return f(link)
}

// SystemOpener opens links with the platform browser. Only http, https and
// mailto links are accepted.
type SystemOpener struct {
	logger *zap.Logger
	open   func(string) error
}

// NewSystemOpener returns an opener whose helper processes write to out.
func NewSystemOpener(logger *zap.Logger, out io.Writer) *SystemOpener {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out != nil {
		pkgbrowser.Stdout = out
		pkgbrowser.Stderr = out
	}
	return &SystemOpener{logger: logger.Named("browser"), open: pkgbrowser.OpenURL}
}

func (o *SystemOpener) Open(link string) error {
	normalized, err := ValidateLink(link)
	if err != nil {
		return err
	}
	o.logger.Debug("opening link", telemetry.URLField(normalized))
	if err := o.open(normalized); err != nil {
		return domain.E(domain.CodeInternal, "open link", "", err)
	}
	return nil
}

// ValidateLink returns link when it is an absolute http(s) URL with a host or
// a mailto link with an address.
func ValidateLink(link string) (string, error) {
	value := strings.TrimSpace(link)
	if value == "" {
		return "", domain.InvalidArgumentError("open link", "link is empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", domain.E(domain.CodeInvalidArgument, "open link", "invalid link", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if parsed.Host == "" {
			return "", domain.InvalidArgumentError("open link", "link has no host: "+value)
		}
	case "mailto":
		if parsed.Opaque == "" {
			return "", domain.InvalidArgumentError("open link", "mailto link has no address")
		}
	default:
		return "", domain.InvalidArgumentError("open link", "unsupported link scheme: "+parsed.Scheme)
	}
	return value, nil
}
