package domain

import (
	"strings"
)

// ProviderID identifies a provider in the directory. It doubles as the URL
// path segment of the provider document and of the detail route.
type ProviderID string

func (id ProviderID) String() string {
	return string(id)
}

// Validate rejects ids that cannot be used as a single path segment.
func (id ProviderID) Validate() error {
	value := string(id)
	if strings.TrimSpace(value) == "" {
		return InvalidArgumentError("provider id", "provider id is required")
	}
	if strings.Contains(value, "/") {
		return InvalidArgumentError("provider id", "provider id must not contain '/'")
	}
	return nil
}

// ProviderIDs converts raw strings to provider ids, keeping order.
func ProviderIDs(raw []string) []ProviderID {
	ids := make([]ProviderID, 0, len(raw))
	for _, value := range raw {
		ids = append(ids, ProviderID(value))
	}
	return ids
}

// DirectoryDocument is the body of GET {baseUrl}/providers.json.
type DirectoryDocument struct {
	Data []string `json:"data"`
}

// ProviderDocument is the body of GET {baseUrl}/{id}.json.
type ProviderDocument struct {
	APIs DescriptorSet `json:"apis"`
}

type Contact struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
}

// IsEmpty reports whether no contact field is set.
func (c Contact) IsEmpty() bool {
	return c.Email == "" && c.Name == "" && c.URL == ""
}

type Logo struct {
	URL             string `json:"url" yaml:"url" toml:"url"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty" toml:"backgroundColor,omitempty"`
}

type Info struct {
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Contact     *Contact `json:"contact,omitempty" yaml:"contact,omitempty" toml:"contact,omitempty"`
	Logo        *Logo    `json:"x-logo,omitempty" yaml:"x-logo,omitempty" toml:"x-logo,omitempty"`
}

// LogoURL returns the x-logo url or "" when the descriptor has no logo.
func (i Info) LogoURL() string {
	if i.Logo == nil {
		return ""
	}
	return i.Logo.URL
}

// ContactOrZero returns the contact block, or a zero value when absent.
func (i Info) ContactOrZero() Contact {
	if i.Contact == nil {
		return Contact{}
	}
	return *i.Contact
}

// APIDescriptor is one entry of a provider document's apis map.
type APIDescriptor struct {
	Added          string `json:"added,omitempty" yaml:"added,omitempty" toml:"added,omitempty"`
	Updated        string `json:"updated,omitempty" yaml:"updated,omitempty" toml:"updated,omitempty"`
	Info           Info   `json:"info" yaml:"info" toml:"info"`
	SwaggerURL     string `json:"swaggerUrl" yaml:"swaggerUrl" toml:"swaggerUrl"`
	SwaggerYAMLURL string `json:"swaggerYamlUrl,omitempty" yaml:"swaggerYamlUrl,omitempty" toml:"swaggerYamlUrl,omitempty"`
	OpenAPIVersion string `json:"openapiVer,omitempty" yaml:"openapiVer,omitempty" toml:"openapiVer,omitempty"`
	Link           string `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty"`
}

// ProviderSummary is the lossy projection shown under an expanded provider.
type ProviderSummary struct {
	Logo  string `json:"logo,omitempty" yaml:"logo,omitempty" toml:"logo,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty"`
}

func (s ProviderSummary) IsEmpty() bool {
	return s.Logo == "" && s.Title == "" && s.Link == ""
}

// SummarizeDescriptor projects a descriptor onto the drawer summary.
func SummarizeDescriptor(d APIDescriptor) ProviderSummary {
	return ProviderSummary{
		Logo:  d.Info.LogoURL(),
		Title: d.Info.Title,
		Link:  d.Link,
	}
}
