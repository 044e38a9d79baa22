package llm

import "fmt"

// ProviderFactory builds a configured Provider. Implementations live in
// subpackages and self-register from their init functions, so importing
// a provider package is all it takes to make it selectable by name.
type ProviderFactory func() (Provider, error)

var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a factory selectable under the given name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider instantiates the provider registered under name, matching
// the AI_PROVIDER configuration value.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}
