package poll

import (
	"context"
	"fmt"
)

// CheckStatus reports the capability check result used as the initial status.
func CheckStatus() Status {
	return StatusActivated
}

// DefaultItems is the fixed item list served by StaticLister when none is given.
func DefaultItems() []Item {
	return []Item{1, 2, 3, 4}
}

// StaticLister always lists the same items.
type StaticLister struct {
	Items []Item
}

func (l StaticLister) ListItems(_ context.Context) ([]Item, error) {
	if l.Items == nil {
		return DefaultItems(), nil
	}
	out := make([]Item, len(l.Items))
	copy(out, l.Items)
	return out, nil
}

// DummyProcessor formats a message for the item and has no other effect.
type DummyProcessor struct{}

func (DummyProcessor) Process(_ context.Context, item Item) (string, error) {
	return fmt.Sprintf("Calling Dummy Function (%d)", item), nil
}
