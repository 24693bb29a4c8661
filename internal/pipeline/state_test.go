package pipeline_test

import (
	"errors"
	"testing"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/pipeline"
	"github.com/agentia/vendormail/internal/vendors"
)

func boolRef(v bool) *bool    { return &v }
func strRef(v string) *string { return &v }

func TestStateApply(t *testing.T) {
	t.Run("scalars overwrite", func(t *testing.T) {
		s := pipeline.NewState(pipeline.Email{ID: "m1"})

		s.Apply(pipeline.Patch{
			Authorized:       boolRef(true),
			StructuredResult: strRef("first"),
		})
		s.Apply(pipeline.Patch{StructuredResult: strRef("second")})

		if !s.Authorized {
			t.Error("expected authorized true")
		}
		if s.StructuredResult != "second" {
			t.Errorf("StructuredResult = %q, want %q", s.StructuredResult, "second")
		}
	})

	t.Run("nil fields leave state untouched", func(t *testing.T) {
		s := pipeline.NewState(pipeline.Email{})
		s.Apply(pipeline.Patch{
			Authorized: boolRef(true),
			Identity:   &vendors.Vendor{Name: "Acme"},
			Reply:      strRef("hello"),
		})

		s.Apply(pipeline.Patch{})

		if !s.Authorized || s.Identity == nil || s.Reply != "hello" {
			t.Error("empty patch must not clear previously merged fields")
		}
	})

	t.Run("history and audit append", func(t *testing.T) {
		s := pipeline.NewState(pipeline.Email{})

		s.Apply(pipeline.Patch{
			History: []completion.Message{{Role: completion.RoleUser, Content: "one"}},
			Audit:   []string{"a"},
		})
		s.Apply(pipeline.Patch{
			History: []completion.Message{{Role: completion.RoleAssistant, Content: "two"}},
			Audit:   []string{"b", "c"},
		})

		if len(s.History) != 2 || s.History[0].Content != "one" || s.History[1].Content != "two" {
			t.Errorf("history = %v, want append-only ordering", s.History)
		}
		if len(s.AuditTrail) != 3 || s.AuditTrail[2] != "c" {
			t.Errorf("audit = %v, want [a b c]", s.AuditTrail)
		}
	})

	t.Run("failure records once set", func(t *testing.T) {
		s := pipeline.NewState(pipeline.Email{})
		failure := errors.New("boom")

		s.Apply(pipeline.Patch{Failure: failure})
		s.Apply(pipeline.Patch{Reply: strRef("late reply")})

		if !errors.Is(s.Failure, failure) {
			t.Error("failure must survive later patches")
		}
		if s.Reply != "late reply" {
			t.Error("later patches must still merge")
		}
	})
}

func TestStateResponse(t *testing.T) {
	s := pipeline.NewState(pipeline.Email{})
	s.Apply(pipeline.Patch{
		Authorized: boolRef(true),
		Reply:      strRef("drafted"),
		Audit:      []string{"Drafted Response", "Conversation Saved"},
	})

	resp := s.Response()
	if resp.Reply != "drafted" || !resp.Authorized || resp.Action != "Conversation Saved" {
		t.Errorf("Response() = %+v", resp)
	}
}
