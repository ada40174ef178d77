package ui

import (
	"context"
	"sync"

	"apidir/internal/domain"
)

type providersReply struct {
	ids []domain.ProviderID
	err error
}

type descriptorReply struct {
	res domain.Resolution
	err error
}

// fakeDirectory answers immediately unless a gate is installed for the call,
// in which case the call blocks until the test releases it.
type fakeDirectory struct {
	mu          sync.Mutex
	providers   providersReply
	descriptors map[domain.ProviderID]descriptorReply
	gates       map[string]chan struct{}
	calls       []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		descriptors: make(map[domain.ProviderID]descriptorReply),
		gates:       make(map[string]chan struct{}),
	}
}

func (f *fakeDirectory) setProviders(ids []domain.ProviderID, err error) {
	f.mu.Lock()
	f.providers = providersReply{ids: ids, err: err}
	f.mu.Unlock()
}

func (f *fakeDirectory) setDescriptor(id domain.ProviderID, d domain.APIDescriptor) {
	f.mu.Lock()
	f.descriptors[id] = descriptorReply{res: domain.Resolution{Key: "api", Descriptor: d}}
	f.mu.Unlock()
}

func (f *fakeDirectory) setDescriptorError(id domain.ProviderID, err error) {
	f.mu.Lock()
	f.descriptors[id] = descriptorReply{err: err}
	f.mu.Unlock()
}

// hold makes the next calls for key block until the returned func is called.
// key is "providers" or a provider id.
func (f *fakeDirectory) hold(key string) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = gate
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (f *fakeDirectory) wait(ctx context.Context, key string) {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	gate := f.gates[key]
	delete(f.gates, key)
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeDirectory) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if call == key {
			count++
		}
	}
	return count
}

func (f *fakeDirectory) ListProviders(ctx context.Context) ([]domain.ProviderID, error) {
	f.wait(ctx, "providers")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.providers.ids, f.providers.err
}

func (f *fakeDirectory) FetchDescriptor(ctx context.Context, id domain.ProviderID) (domain.Resolution, error) {
	f.wait(ctx, string(id))
	f.mu.Lock()
	defer f.mu.Unlock()
	reply, ok := f.descriptors[id]
	if !ok {
		return domain.Resolution{}, domain.NotFoundError("fetch descriptor", "no descriptors for "+string(id))
	}
	return reply.res, reply.err
}

func testDescriptor(title, email string) domain.APIDescriptor {
	d := domain.APIDescriptor{
		Info: domain.Info{
			Title:       title,
			Description: title + " description",
			Logo:        &domain.Logo{URL: "https://logo.example/" + title + ".png"},
		},
		SwaggerURL: "https://api.example/" + title + "/swagger.json",
	}
	if email != "" {
		d.Info.Contact = &domain.Contact{Email: email, Name: title + " team", URL: "https://" + title + ".example"}
	}
	return d
}
