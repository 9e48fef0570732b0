package outline

import (
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

// MergeResult carries the merged draft plus the update ids that matched no
// existing module. Callers surface IgnoredUpdates instead of silently
// dropping them.
type MergeResult struct {
	Draft          *store.DraftState
	IgnoredUpdates []uuid.UUID
}

// Merge applies a ChangeSet to a draft and returns the new canonical state.
// Structural edits run first in fixed order (add, remove, update), then
// scalar overwrites. The input draft is mutated and returned.
func Merge(original *store.DraftState, changes *store.ChangeSet) MergeResult {
	result := MergeResult{Draft: original}
	if changes == nil {
		return result
	}

	if mc := changes.ModuleChanges; mc != nil {
		applyAdds(original, mc.Add)
		applyRemoves(original, mc.Remove)
		result.IgnoredUpdates = applyUpdates(original, mc.Update)
	}

	if changes.Title != nil {
		original.Title = *changes.Title
	}
	if changes.Objectives != nil {
		original.Objectives = *changes.Objectives
	}
	if changes.Duration != nil {
		original.Duration = *changes.Duration
	}
	if changes.Summary != nil {
		original.Summary = *changes.Summary
	}

	return result
}

func applyAdds(draft *store.DraftState, adds []store.ModuleInput) {
	for _, input := range adds {
		m := store.DraftModule{Order: len(draft.Modules)}
		applyInput(&m, input)
		if m.Uuid == uuid.Nil {
			m.Uuid = uuid.New()
		}
		draft.Modules = append(draft.Modules, m)
	}
}

func applyRemoves(draft *store.DraftState, removes []uuid.UUID) {
	if len(removes) == 0 {
		return
	}
	doomed := make(map[uuid.UUID]struct{}, len(removes))
	for _, id := range removes {
		doomed[id] = struct{}{}
	}
	// In-place filter, survivors keep their relative order.
	kept := draft.Modules[:0]
	for _, m := range draft.Modules {
		if _, ok := doomed[m.Uuid]; !ok {
			kept = append(kept, m)
		}
	}
	draft.Modules = kept
}

func applyUpdates(draft *store.DraftState, updates []store.ModuleInput) []uuid.UUID {
	if len(updates) == 0 {
		return nil
	}
	index := make(map[uuid.UUID]int, len(draft.Modules))
	for i, m := range draft.Modules {
		index[m.Uuid] = i
	}

	var ignored []uuid.UUID
	for _, input := range updates {
		if input.Uuid == nil {
			continue
		}
		i, ok := index[*input.Uuid]
		if !ok {
			ignored = append(ignored, *input.Uuid)
			continue
		}
		applyInput(&draft.Modules[i], input)
	}
	return ignored
}

func applyInput(m *store.DraftModule, input store.ModuleInput) {
	if input.Uuid != nil {
		m.Uuid = *input.Uuid
	}
	if input.Name != nil {
		m.Name = *input.Name
	}
	if input.Duration != nil {
		m.Duration = *input.Duration
	}
	if input.Subtopics != nil {
		m.Subtopics = *input.Subtopics
	}
	if input.Features != nil {
		m.Features = *input.Features
	}
	if input.Content != nil {
		m.Content = *input.Content
	}
}
