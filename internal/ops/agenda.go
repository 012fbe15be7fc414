package ops

import (
	"context"
	"sort"

	"github.com/aide-app/aide/internal/agent"
)

// AgendaOutput contains the merged agenda view.
type AgendaOutput struct {
	Connected bool          `json:"connected"`
	Items     []agent.Entry `json:"items"`
}

// Agenda returns the merged event and task view, gated per capability and
// sorted by time-of-day string (untimed entries first). When no account is
// connected it returns an empty view rather than an error, so surfaces can
// render their "connect your account" state.
func Agenda(ctx context.Context, deps *Deps) (*AgendaOutput, error) {
	state, err := loadState(deps.DB)
	if err != nil {
		return nil, err
	}
	if !state.Connected {
		return &AgendaOutput{Connected: false, Items: []agent.Entry{}}, nil
	}

	events, todos, _ := visibleData(ctx, deps, state)

	items := make([]agent.Entry, 0, len(events)+len(todos))
	items = append(items, events...)
	items = append(items, todos...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})

	return &AgendaOutput{Connected: true, Items: items}, nil
}
