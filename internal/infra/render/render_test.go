package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apidir/internal/domain"
	"apidir/internal/infra/directory"
	"apidir/internal/ui"
)

func TestRenderHomeClosed(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderHome(&buf, ui.ListingSnapshot{Selection: ui.SelectionSnapshot{State: ui.StateClosed}}))

	assert.Equal(t, ExploreButton+"\n", buf.String())
}

func TestRenderHomeEmptyList(t *testing.T) {
	var buf bytes.Buffer
	snapshot := ui.ListingSnapshot{Selection: ui.SelectionSnapshot{DrawerOpen: true, State: ui.StateCollapsed}}

	require.NoError(t, RenderHome(&buf, snapshot))

	out := buf.String()
	assert.Contains(t, out, DrawerHeading)
	assert.Contains(t, out, NoProviders)
}

func TestRenderHomeLoading(t *testing.T) {
	var buf bytes.Buffer
	snapshot := ui.ListingSnapshot{
		Selection: ui.SelectionSnapshot{DrawerOpen: true, State: ui.StateCollapsed},
		Loading:   true,
	}

	require.NoError(t, RenderHome(&buf, snapshot))

	assert.Contains(t, buf.String(), "Loading...")
	assert.NotContains(t, buf.String(), NoProviders)
}

func TestRenderHomeExpanded(t *testing.T) {
	var buf bytes.Buffer
	snapshot := ui.ListingSnapshot{
		Selection: ui.SelectionSnapshot{
			DrawerOpen: true,
			State:      ui.StateExpanded,
			Expanded:   "b.com",
			Summary:    domain.ProviderSummary{Title: "B API", Logo: "https://logo/b.png"},
		},
		Providers: []domain.ProviderID{"a.com", "b.com"},
	}

	require.NoError(t, RenderHome(&buf, snapshot))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		ExploreButton,
		"",
		"Select Provider  [X]",
		"    1. a.com ▼",
		"    2. b.com ▲",
		"       logo: https://logo/b.png",
		"       > B API",
	}, lines)
}

func TestRenderDetailStates(t *testing.T) {
	tests := []struct {
		name  string
		state ui.DetailState
		want  string
	}{
		{name: "loading", state: ui.DetailState{Status: ui.DetailLoading}, want: "Loading...\n"},
		{
			name:  "error",
			state: ui.DetailState{Status: ui.DetailError, Error: ui.NewUIErrorWithDetails(ui.ErrCodeNetwork, "Network error", "connection refused")},
			want:  "Error: Network error: connection refused\n",
		},
		{name: "loaded without descriptor", state: ui.DetailState{Status: ui.DetailLoaded}, want: NoDetailsText + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderDetail(&buf, tt.state))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderDetailLoaded(t *testing.T) {
	descriptor := domain.APIDescriptor{
		Info: domain.Info{
			Title:       "Petstore",
			Description: "Pets as a service",
			Contact:     &domain.Contact{Email: "pets@example.com", Name: "Pet team"},
			Logo:        &domain.Logo{URL: "https://logo/pets.png"},
		},
		SwaggerURL: "https://api/pets/swagger.json",
	}
	var buf bytes.Buffer

	require.NoError(t, RenderDetail(&buf, ui.DetailState{Status: ui.DetailLoaded, Descriptor: &descriptor}))

	out := buf.String()
	for _, want := range []string{
		"Petstore\n",
		"logo: https://logo/pets.png\n",
		"Description\n  Pets as a service\n",
		"Swagger\n  https://api/pets/swagger.json\n",
		"  Email: pets@example.com <mailto:pets@example.com>\n",
		"  Name: Pet team\n",
		"  URL: \n",
		ExploreMoreButton,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Loading...")
	assert.NotContains(t, out, "Error:")
}

func TestRenderListings(t *testing.T) {
	var buf bytes.Buffer
	listings := []directory.ProviderListing{
		{ID: "a.com", Summary: domain.ProviderSummary{Title: "A"}},
		{ID: "b.com"},
	}

	require.NoError(t, RenderListings(&buf, listings))
	assert.Equal(t, "a.com\tA\nb.com\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderListings(&buf, nil))
	assert.Equal(t, NoProviders+"\n", buf.String())
}
