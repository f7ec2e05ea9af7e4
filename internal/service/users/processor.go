package users

import (
	"context"

	"beexpress/internal/domain"
)

// Processor processes identity-provider user events
type Processor struct {
	registry RegistryPort
	factory  *actionFactory
}

// NewProcessor creates a new users.Processor
func NewProcessor(registry RegistryPort) *Processor {
	p := &Processor{registry: registry}
	p.factory = newActionFactory(p.onCreated)
	return p
}

// Handle processes a single users.Event. Event types the registry does
// not care about are acknowledged and dropped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Type)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	return p.registry.Register(ctx, e.UserID, domain.Role(e.Role), e.PhoneNumber)
}
