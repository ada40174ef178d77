package domain

// Resolution is the outcome of resolving a provider id against a descriptor set.
type Resolution struct {
	Key        string        `json:"key" yaml:"key" toml:"key"`
	Descriptor APIDescriptor `json:"descriptor" yaml:"descriptor" toml:"descriptor"`
	// Fallback is true when the requested id was missing and the first entry
	// in document order was returned instead.
	Fallback bool `json:"fallback" yaml:"fallback" toml:"fallback"`
}

// ResolveDescriptor picks the descriptor for id: the exact key when present,
// otherwise the first entry of the document. An empty set is NotFound.
func ResolveDescriptor(set DescriptorSet, id ProviderID) (Resolution, error) {
	if descriptor, ok := set.Get(string(id)); ok {
		return Resolution{Key: string(id), Descriptor: descriptor}, nil
	}
	first, ok := set.First()
	if !ok {
		return Resolution{}, NotFoundError("resolve descriptor", "no descriptors for provider "+string(id))
	}
	return Resolution{Key: first.Key, Descriptor: first.Descriptor, Fallback: true}, nil
}
