package nonce

import "sync"

// registry holds every initialized factory, keyed by name. A
// sync.Map gives lock-free, safe-for-concurrent-use Load/Store without
// a package-level mutex guarding the hot generation path.
var registry sync.Map // name string -> *State

func publish(s *State) {
	registry.Store(s.name, s)
}

func lookup(name string) (*State, error) {
	v, ok := registry.Load(name)
	if !ok {
		return nil, ErrFactoryNotInitialized
	}
	return v.(*State), nil
}

// Names returns every currently initialized factory name. Order is
// unspecified.
func Names() []string {
	var names []string
	registry.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	return names
}

// Lookup returns identity information for an initialized factory.
func Lookup(name string) (Info, error) {
	s, err := lookup(name)
	if err != nil {
		return Info{}, err
	}
	return s.info(), nil
}

// Stats returns an operational snapshot of a factory's raw counter
// state, for metrics or diagnostics.
func Stats(name string) (FactoryStats, error) {
	s, err := lookup(name)
	if err != nil {
		return FactoryStats{}, err
	}
	return s.stats(), nil
}

// reset removes a factory from the registry. Unexported: it exists so
// tests can re-initialize the same name across cases without leaking
// state between them; production callers have no supported way to
// tear down a live factory.
func reset(name string) {
	registry.Delete(name)
}
