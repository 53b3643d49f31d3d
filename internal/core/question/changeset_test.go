package question

import (
	"sync"
	"testing"
)

func TestChangeset_SetSlugClearsPushedErrors(t *testing.T) {
	cs := NewChangeset(Blank())
	cs.SetSlug("color")
	cs.PushErrors(FieldSlug, "already taken")

	if got := cs.Errors(FieldSlug); len(got) != 1 || got[0] != "already taken" {
		t.Fatalf("Errors(slug) = %v", got)
	}

	cs.SetSlug("colour")
	if got := cs.Errors(FieldSlug); len(got) != 0 {
		t.Errorf("expected slug errors cleared, got %v", got)
	}
}

func TestChangeset_SetRunsLocalGuard(t *testing.T) {
	cs := NewChangeset(Blank())
	cs.SetSlug("Not A Slug")
	if got := cs.Errors(FieldSlug); len(got) != 1 {
		t.Fatalf("expected one slug error, got %v", got)
	}

	cs.SetLabel("")
	if cs.IsValid() {
		t.Error("expected changeset to be invalid")
	}
	if fields := cs.ErrorFields(); len(fields) != 2 || fields[0] != FieldLabel || fields[1] != FieldSlug {
		t.Errorf("ErrorFields() = %v", fields)
	}
}

func TestChangeset_SnapshotIsACopy(t *testing.T) {
	cs := NewChangeset(Question{Kind: CheckboxQuestion, Options: []Option{{Slug: "red", Label: "Red"}}})

	snap := cs.Snapshot()
	snap.Options[0].Label = "Blue"

	if cs.Snapshot().Options[0].Label != "Red" {
		t.Error("mutating a snapshot must not change the changeset")
	}
}

func TestChangeset_SetKindDropsPayloadErrors(t *testing.T) {
	cs := NewChangeset(Question{Kind: RadioQuestion})
	cs.Update(func(q *Question) { q.Options = nil })
	if len(cs.Errors(FieldOptions)) == 0 {
		t.Fatal("expected options error for radio without options")
	}

	cs.SetKind(TextQuestion)
	if len(cs.Errors(FieldOptions)) != 0 {
		t.Error("expected options error dropped after switching kind")
	}
	if cs.Snapshot().Kind != TextQuestion {
		t.Error("expected kind to be TextQuestion")
	}
}

func TestChangeset_ConcurrentPushErrors(t *testing.T) {
	cs := NewChangeset(Blank())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cs.PushErrors(FieldSlug, "taken")
			cs.SetLabel("Label")
		}()
	}
	wg.Wait()

	if got := len(cs.Errors(FieldSlug)); got != 20 {
		t.Errorf("expected 20 slug errors, got %d", got)
	}
}

func TestChangeset_ValidateKeepsPushedErrors(t *testing.T) {
	cs := NewChangeset(Question{Kind: TextQuestion, Label: "Color", Slug: "color"})
	if !cs.Validate() {
		t.Fatalf("expected valid changeset, got %v", cs.AllErrors())
	}

	cs.PushErrors(FieldSlug, "already taken")
	if cs.Validate() {
		t.Fatal("expected pushed error to keep the changeset invalid")
	}
	if got := cs.Errors(FieldSlug); len(got) != 1 || got[0] != "already taken" {
		t.Errorf("Errors(slug) = %v", got)
	}
}

func TestChangeset_ValidateReportsAllGuards(t *testing.T) {
	cs := NewChangeset(Blank())
	if cs.Validate() {
		t.Fatal("expected blank changeset to be invalid")
	}
	if fields := cs.ErrorFields(); len(fields) != 2 || fields[0] != FieldLabel || fields[1] != FieldSlug {
		t.Errorf("ErrorFields() = %v", fields)
	}
}

func TestChangeset_StoredSlugIsAccepted(t *testing.T) {
	cs := NewChangeset(Question{Kind: TextQuestion, Label: "Legacy", Slug: "Legacy_Slug"})

	if !cs.Validate() {
		t.Fatalf("expected the loaded slug to pass, got %v", cs.AllErrors())
	}

	cs.SetSlug("Other_Slug")
	if got := cs.Errors(FieldSlug); len(got) != 1 {
		t.Fatalf("expected a changed slug to be guarded, got %v", got)
	}

	cs.SetSlug("Legacy_Slug")
	if got := cs.Errors(FieldSlug); len(got) != 0 {
		t.Errorf("expected the loaded slug to pass again, got %v", got)
	}

	cs.SetSlug("")
	if cs.Validate() {
		t.Error("expected a blank slug to fail")
	}
}

func TestChangeset_NewQuestionSlugIsGuarded(t *testing.T) {
	cs := NewChangeset(Question{Kind: TextQuestion, Label: "Name"})
	cs.SetSlug("Legacy_Slug")

	if cs.Validate() {
		t.Error("expected a malformed slug on a new question to fail")
	}
}
