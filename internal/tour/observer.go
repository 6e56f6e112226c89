package tour

// Observer receives counters from the client and the caching cores.
type Observer interface {
	UpstreamCall(operation, outcome string)
	CacheLookup(namespace string, hit bool)
	PresetServed(namespace string)
}

type noopObserver struct{}

func (noopObserver) UpstreamCall(string, string) {}
func (noopObserver) CacheLookup(string, bool)    {}
func (noopObserver) PresetServed(string)         {}
