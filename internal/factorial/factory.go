package factorial

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory provides named access to the registered engines.
// The factory decouples callers (CLI flags, HTTP parameters) from concrete
// engine types.
type CalculatorFactory interface {
	// Get returns the calculator registered under key.
	Get(key string) (Calculator, error)
	// GetAll returns every registered calculator, ordered by key.
	GetAll() []Calculator
	// List returns the sorted registration keys.
	List() []string
}

// defaultCores holds the algorithm registrations. Build-tagged engines add
// themselves from init.
var (
	coresMu      sync.Mutex
	defaultCores = map[string]coreCalculator{
		"iterative":    IterativeCalculator{},
		"product-tree": ProductTreeCalculator{},
	}
)

// registerCore adds a core algorithm under key. Called from init by
// build-tagged engines.
func registerCore(key string, core coreCalculator) {
	coresMu.Lock()
	defer coresMu.Unlock()
	defaultCores[key] = core
}

// DefaultFactory is the standard CalculatorFactory backed by the registered
// engine set. Each factory instance owns its calculators, so memo state is
// never shared between independent factories.
type DefaultFactory struct {
	calculators map[string]Calculator
}

// NewDefaultFactory creates a factory with every registered engine wrapped
// in a fresh Engine.
func NewDefaultFactory() *DefaultFactory {
	coresMu.Lock()
	defer coresMu.Unlock()

	calculators := make(map[string]Calculator, len(defaultCores))
	for key, core := range defaultCores {
		calculators[key] = NewCalculator(core)
	}
	return &DefaultFactory{calculators: calculators}
}

// Get returns the calculator registered under key.
func (f *DefaultFactory) Get(key string) (Calculator, error) {
	calc, ok := f.calculators[key]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q (available: %v)", key, f.List())
	}
	return calc, nil
}

// GetAll returns every registered calculator, ordered by key.
func (f *DefaultFactory) GetAll() []Calculator {
	keys := f.List()
	all := make([]Calculator, 0, len(keys))
	for _, key := range keys {
		all = append(all, f.calculators[key])
	}
	return all
}

// List returns the sorted registration keys.
func (f *DefaultFactory) List() []string {
	keys := make([]string, 0, len(f.calculators))
	for key := range f.calculators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
