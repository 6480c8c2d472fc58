package organize

import "comicsort/internal/config"

// OrganizerFactory is a function that creates an Organizer from configuration
// This allows for dependency injection in tests
type OrganizerFactory func(cfg *config.Config) (Organizer, error)

// DefaultOrganizerFactory builds a real engine
var DefaultOrganizerFactory OrganizerFactory = func(cfg *config.Config) (Organizer, error) {
	e, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CurrentOrganizerFactory is the currently active factory
// This can be swapped in tests
var CurrentOrganizerFactory = DefaultOrganizerFactory

// SetOrganizerFactory sets a custom organizer factory for dependency injection
func SetOrganizerFactory(factory OrganizerFactory) {
	CurrentOrganizerFactory = factory
}

// ResetOrganizerFactory resets to the default organizer factory
func ResetOrganizerFactory() {
	CurrentOrganizerFactory = DefaultOrganizerFactory
}
