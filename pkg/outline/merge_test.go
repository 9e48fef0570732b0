package outline

import (
	"testing"

	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func slicePtr(s []string) *[]string { return &s }

func sampleDraft() (*store.DraftState, []uuid.UUID) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	return &store.DraftState{
		Uuid:       uuid.New(),
		Title:      "Customer Service 101",
		Objectives: []string{"listen", "resolve"},
		Duration:   "2h",
		Summary:    "The basics",
		Status:     store.StatusDraft,
		Modules: []store.DraftModule{
			{Uuid: ids[0], Name: "Intro", Order: 0, Content: "intro text"},
			{Uuid: ids[1], Name: "Handling Complaints", Order: 1},
			{Uuid: ids[2], Name: "Wrap Up", Order: 2},
		},
	}, ids
}

func TestMergeScalarsOnly(t *testing.T) {
	draft, ids := sampleDraft()

	result := Merge(draft, &store.ChangeSet{
		Title:   strPtr("Customer Service Mastery"),
		Summary: strPtr("Now with examples"),
	})

	if result.Draft.Title != "Customer Service Mastery" {
		t.Errorf("Title = %q, want overwrite", result.Draft.Title)
	}
	if result.Draft.Summary != "Now with examples" {
		t.Errorf("Summary = %q, want overwrite", result.Draft.Summary)
	}
	// Unspecified keys stay untouched.
	if result.Draft.Duration != "2h" {
		t.Errorf("Duration = %q, want \"2h\"", result.Draft.Duration)
	}
	if len(result.Draft.Objectives) != 2 || result.Draft.Objectives[0] != "listen" {
		t.Errorf("Objectives mutated: %v", result.Draft.Objectives)
	}
	if len(result.Draft.Modules) != 3 || result.Draft.Modules[0].Uuid != ids[0] {
		t.Errorf("Modules mutated by scalar-only merge")
	}
	if len(result.IgnoredUpdates) != 0 {
		t.Errorf("IgnoredUpdates = %v, want none", result.IgnoredUpdates)
	}
}

func TestMergeNilChangeSet(t *testing.T) {
	draft, _ := sampleDraft()
	result := Merge(draft, nil)
	if result.Draft != draft {
		t.Fatal("expected the same draft back")
	}
}

func TestMergeAddAppendsInOrder(t *testing.T) {
	draft, _ := sampleDraft()
	newID := uuid.New()

	result := Merge(draft, &store.ChangeSet{
		ModuleChanges: &store.ModuleChanges{
			Add: []store.ModuleInput{
				{Uuid: &newID, Name: strPtr("Escalation")},
				{Name: strPtr("Feedback"), Subtopics: slicePtr([]string{"surveys"})},
			},
		},
	})

	modules := result.Draft.Modules
	if len(modules) != 5 {
		t.Fatalf("len(modules) = %d, want 5", len(modules))
	}
	if modules[3].Uuid != newID || modules[3].Name != "Escalation" {
		t.Errorf("modules[3] = %+v, want first added entry", modules[3])
	}
	if modules[4].Name != "Feedback" {
		t.Errorf("modules[4] = %+v, want second added entry", modules[4])
	}
	// Adds without an id get one assigned.
	if modules[4].Uuid == uuid.Nil {
		t.Error("added module missing generated uuid")
	}
}

func TestMergeRemovePreservesRelativeOrder(t *testing.T) {
	draft, ids := sampleDraft()

	result := Merge(draft, &store.ChangeSet{
		ModuleChanges: &store.ModuleChanges{
			Remove: []uuid.UUID{ids[1]},
		},
	})

	modules := result.Draft.Modules
	if len(modules) != 2 {
		t.Fatalf("len(modules) = %d, want 2", len(modules))
	}
	if modules[0].Uuid != ids[0] || modules[1].Uuid != ids[2] {
		t.Errorf("survivors out of order: %v then %v", modules[0].Uuid, modules[1].Uuid)
	}
	for _, m := range modules {
		if m.Uuid == ids[1] {
			t.Error("removed module survived")
		}
	}
}

func TestMergeUpdateInPlace(t *testing.T) {
	draft, ids := sampleDraft()

	result := Merge(draft, &store.ChangeSet{
		ModuleChanges: &store.ModuleChanges{
			Update: []store.ModuleInput{
				{Uuid: &ids[1], Name: strPtr("Complaints Deep Dive"), Duration: strPtr("30m")},
			},
		},
	})

	m := result.Draft.Modules[1]
	if m.Uuid != ids[1] {
		t.Fatalf("update moved the module: position 1 holds %v", m.Uuid)
	}
	if m.Name != "Complaints Deep Dive" || m.Duration != "30m" {
		t.Errorf("update not applied: %+v", m)
	}
	// Fields absent from the input keep their value.
	if result.Draft.Modules[0].Content != "intro text" {
		t.Errorf("sibling module mutated: %+v", result.Draft.Modules[0])
	}
}

func TestMergeUpdateUnknownIdIsReported(t *testing.T) {
	draft, _ := sampleDraft()
	ghost := uuid.New()

	result := Merge(draft, &store.ChangeSet{
		ModuleChanges: &store.ModuleChanges{
			Update: []store.ModuleInput{{Uuid: &ghost, Name: strPtr("nope")}},
		},
	})

	if len(result.Draft.Modules) != 3 {
		t.Errorf("unknown update changed module count: %d", len(result.Draft.Modules))
	}
	if len(result.IgnoredUpdates) != 1 || result.IgnoredUpdates[0] != ghost {
		t.Errorf("IgnoredUpdates = %v, want [%v]", result.IgnoredUpdates, ghost)
	}
}

func TestMergeStructuralOrderAddRemoveUpdate(t *testing.T) {
	// An entry added and removed in the same ChangeSet must not survive,
	// and an update can target a module added in the same ChangeSet.
	draft, _ := sampleDraft()
	addedID := uuid.New()
	doomedID := uuid.New()

	result := Merge(draft, &store.ChangeSet{
		ModuleChanges: &store.ModuleChanges{
			Add: []store.ModuleInput{
				{Uuid: &doomedID, Name: strPtr("Ephemeral")},
				{Uuid: &addedID, Name: strPtr("Fresh")},
			},
			Remove: []uuid.UUID{doomedID},
			Update: []store.ModuleInput{
				{Uuid: &addedID, Duration: strPtr("15m")},
			},
		},
	})

	modules := result.Draft.Modules
	if len(modules) != 4 {
		t.Fatalf("len(modules) = %d, want 4", len(modules))
	}
	last := modules[len(modules)-1]
	if last.Uuid != addedID || last.Duration != "15m" {
		t.Errorf("add-then-update entry = %+v", last)
	}
	if len(result.IgnoredUpdates) != 0 {
		t.Errorf("IgnoredUpdates = %v, want none", result.IgnoredUpdates)
	}
}

func TestMergeEmptyStringOverwrites(t *testing.T) {
	// Present-but-empty is a real overwrite, distinct from absent.
	draft, _ := sampleDraft()

	result := Merge(draft, &store.ChangeSet{Summary: strPtr("")})

	if result.Draft.Summary != "" {
		t.Errorf("Summary = %q, want empty overwrite", result.Draft.Summary)
	}
	if result.Draft.Title != "Customer Service 101" {
		t.Errorf("Title mutated: %q", result.Draft.Title)
	}
}
