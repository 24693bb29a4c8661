// Package pipeline implements the workflow engine that routes an inbound
// vendor email through identity verification, context loading, intent
// classification, executors, drafting, and persistence. Each stage reads the
// shared state and returns a patch; the orchestrator merges patches and asks
// the router for the next stage until the run terminates.
package pipeline

import (
	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/vendors"
)

// Email is the immutable inbound payload. Set once at the start of a run.
type Email struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// State is the record threaded through every stage of one run. It is owned
// exclusively by a single in-flight request and never shared.
type State struct {
	Input            Email
	Authorized       bool
	Identity         *vendors.Vendor
	History          []completion.Message
	Intent           Intent
	StructuredResult string
	RetrievedContext string
	Reply            string
	AuditTrail       []string
	Failure          error
}

// Patch is the sparse set of field updates a stage returns. Nil pointer
// fields leave the state untouched; History and Audit entries append.
type Patch struct {
	Authorized       *bool
	Identity         *vendors.Vendor
	History          []completion.Message
	Intent           *Intent
	StructuredResult *string
	RetrievedContext *string
	Reply            *string
	Audit            []string
	Failure          error
}

// NewState constructs the state for one inbound email.
func NewState(input Email) *State {
	return &State{Input: input}
}

// Apply merges a patch into the state. The merge is total: by the time Apply
// returns, every field the patch carries is visible, so the router always
// observes fully merged state.
func (s *State) Apply(p Patch) {
	if p.Authorized != nil {
		s.Authorized = *p.Authorized
	}
	if p.Identity != nil {
		s.Identity = p.Identity
	}
	if len(p.History) > 0 {
		s.History = append(s.History, p.History...)
	}
	if p.Intent != nil {
		s.Intent = *p.Intent
	}
	if p.StructuredResult != nil {
		s.StructuredResult = *p.StructuredResult
	}
	if p.RetrievedContext != nil {
		s.RetrievedContext = *p.RetrievedContext
	}
	if p.Reply != nil {
		s.Reply = *p.Reply
	}
	if len(p.Audit) > 0 {
		s.AuditTrail = append(s.AuditTrail, p.Audit...)
	}
	if p.Failure != nil {
		s.Failure = p.Failure
	}
}

// Response is the externally observable outcome of a run.
type Response struct {
	Reply      string `json:"reply"`
	Action     string `json:"action"`
	Authorized bool   `json:"authorized"`
}

// Response summarizes the final state for the boundary. Action is the most
// recent audit label.
func (s *State) Response() Response {
	action := ""
	if len(s.AuditTrail) > 0 {
		action = s.AuditTrail[len(s.AuditTrail)-1]
	}

	return Response{
		Reply:      s.Reply,
		Action:     action,
		Authorized: s.Authorized,
	}
}
