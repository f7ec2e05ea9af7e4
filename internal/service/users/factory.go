package users

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onCreated actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			"user.created": onCreated,
			// user.updated / user.deleted намеренно не обрабатываем:
			// роль назначается один раз и не меняется
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	fn, ok := f.byType[eventType]
	return fn, ok
}
