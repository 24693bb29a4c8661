package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/internal/completion"
	"github.com/agentia/vendormail/internal/conversations"
	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/knowledge"
	"github.com/agentia/vendormail/internal/pipeline"
	"github.com/agentia/vendormail/internal/vendors"
)

type contactUpdate struct {
	Field string
	Value string
}

type fakeVendors struct {
	vendor  *vendors.Vendor
	findErr error

	updateErr error
	updates   []contactUpdate
}

func (f *fakeVendors) FindByEmail(_ context.Context, email string) (*vendors.Vendor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.vendor, nil
}

func (f *fakeVendors) UpdateContact(_ context.Context, _ uuid.UUID, field, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, contactUpdate{Field: field, Value: value})
	return nil
}

type fakeHistory struct {
	recent    []conversations.Turn
	recentErr error

	appendErr error
	appends   []conversations.Turn
}

func (f *fakeHistory) Recent(_ context.Context, _ string, limit int) ([]conversations.Turn, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeHistory) Append(_ context.Context, threadID, role, content string) (*conversations.Turn, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	turn := conversations.Turn{ThreadID: threadID, Role: role, Content: content}
	f.appends = append(f.appends, turn)
	return &turn, nil
}

type fakeInvoices struct {
	invoice *invoices.Invoice
	pending []invoices.Invoice

	lookups int
}

func (f *fakeInvoices) FindByNumber(_ context.Context, number string, _ uuid.UUID) (*invoices.Invoice, error) {
	f.lookups++
	if f.invoice != nil && f.invoice.InvoiceNumber == number {
		return f.invoice, nil
	}
	return nil, invoices.ErrNotFound
}

func (f *fakeInvoices) Pending(_ context.Context, _ uuid.UUID) ([]invoices.Invoice, error) {
	f.lookups++
	return f.pending, nil
}

type fakeKnowledge struct {
	count    int
	excerpts []knowledge.Excerpt

	searches int
}

func (f *fakeKnowledge) Count(_ context.Context) (int, error) {
	return f.count, nil
}

func (f *fakeKnowledge) Search(_ context.Context, _ string, _ int) ([]knowledge.Excerpt, error) {
	f.searches++
	return f.excerpts, nil
}

// fakeCompleter returns a scripted reply and records every call's history.
type fakeCompleter struct {
	reply string
	err   error

	prompts   []string
	histories [][]completion.Message
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt string, history []completion.Message) (string, error) {
	f.prompts = append(f.prompts, systemPrompt)
	f.histories = append(f.histories, append([]completion.Message(nil), history...))
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeExporter struct {
	err   error
	calls int
}

func (f *fakeExporter) Export(_ context.Context) error {
	f.calls++
	return f.err
}

// harness bundles the fakes behind a ready-to-run orchestrator.
type harness struct {
	vendors    *fakeVendors
	history    *fakeHistory
	invoices   *fakeInvoices
	knowledge  *fakeKnowledge
	classifier *fakeCompleter
	extractor  *fakeCompleter
	drafter    *fakeCompleter
	exporter   *fakeExporter

	orch *pipeline.Orchestrator
}

func newHarness(cfg pipeline.Config) *harness {
	h := &harness{
		vendors: &fakeVendors{vendor: &vendors.Vendor{
			ID:          uuid.New(),
			VendorRef:   "V7755",
			Name:        "Acme Corp",
			ContactName: "Jordan Miles",
			Email:       "billing@acme.example",
			Phone:       "5550001111",
			Address:     "1 Industrial Way",
			Category:    "Logistics",
		}},
		history:    &fakeHistory{},
		invoices:   &fakeInvoices{},
		knowledge:  &fakeKnowledge{},
		classifier: &fakeCompleter{reply: "UNRELATED"},
		extractor:  &fakeCompleter{reply: "NOT_FOUND"},
		drafter:    &fakeCompleter{reply: "Dear Acme Corp,\n\nThanks for reaching out."},
		exporter:   &fakeExporter{},
	}

	h.orch = pipeline.New(pipeline.Collaborators{
		Vendors:    h.vendors,
		History:    h.history,
		Invoices:   h.invoices,
		Knowledge:  h.knowledge,
		Classifier: h.classifier,
		Extractor:  h.extractor,
		Drafter:    h.drafter,
		Ledger:     h.exporter,
	}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return h
}

func inbound(body string) pipeline.Email {
	return pipeline.Email{
		ID:       "msg_test_01",
		ThreadID: "thread_test_01",
		Sender:   "billing@acme.example",
		Subject:  "Inquiry",
		Body:     body,
	}
}

func TestRunUnauthorizedSender(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.vendors.findErr = vendors.ErrNotFound

	state, err := h.orch.Run(context.Background(), inbound("What is the status of INV-100?"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if state.Authorized {
		t.Error("expected unauthorized state")
	}
	if state.Reply != pipeline.TestRejectionReply {
		t.Errorf("reply = %q, want the fixed rejection", state.Reply)
	}
	if len(h.classifier.prompts) != 0 {
		t.Error("classifier must not be called for unverified senders")
	}
	if len(h.drafter.prompts) != 0 {
		t.Error("drafter must not be called for unverified senders")
	}
	if h.invoices.lookups != 0 || h.knowledge.searches != 0 {
		t.Error("executors must not run for unverified senders")
	}
	if got := len(h.history.appends); got != 2 {
		t.Fatalf("persisted %d turns, want 2", got)
	}
	if h.history.appends[0].Role != conversations.RoleVendor {
		t.Error("first persisted turn must be the vendor email")
	}
	if h.history.appends[1].Content != pipeline.TestRejectionReply {
		t.Error("second persisted turn must be the rejection reply")
	}
	if last := state.AuditTrail[len(state.AuditTrail)-1]; last != "Conversation Saved" {
		t.Errorf("audit must end with persistence, got %q", last)
	}
}

func TestRunStatusLookup(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.reply = "STATUS"
	h.extractor.reply = "INV-100"

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	h.invoices.invoice = &invoices.Invoice{
		InvoiceNumber: "INV-100",
		Amount:        1200.50,
		Currency:      "USD",
		Status:        invoices.StatusPending,
		DueDate:       &due,
	}

	state, err := h.orch.Run(context.Background(), inbound("Status of INV-100 please"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if state.Intent != pipeline.IntentStatus {
		t.Errorf("intent = %v, want STATUS", state.Intent)
	}
	for _, want := range []string{"INV-100", "1200.50 USD", "Pending", "2026-09-15", "Acme Corp", "V7755"} {
		if !strings.Contains(state.StructuredResult, want) {
			t.Errorf("structured result missing %q:\n%s", want, state.StructuredResult)
		}
	}
	if got := len(h.drafter.prompts); got != 1 {
		t.Fatalf("drafter called %d times, want exactly once", got)
	}
	if state.Reply != h.drafter.reply {
		t.Errorf("reply = %q, want drafter output", state.Reply)
	}
	if got := len(h.history.appends); got != 2 {
		t.Errorf("persisted %d turns, want 2", got)
	}

	wantAudit := []string{
		"Security Check Passed",
		"Context Loaded",
		"Classified as STATUS",
		"Checked Status for INV-100",
		"Drafted Response",
		"Conversation Saved",
	}
	if fmt.Sprint(state.AuditTrail) != fmt.Sprint(wantAudit) {
		t.Errorf("audit = %v, want %v", state.AuditTrail, wantAudit)
	}
}

func TestRunStatusFallsBackToPending(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.reply = "STATUS"
	h.extractor.reply = "NOT_FOUND"

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	h.invoices.pending = []invoices.Invoice{
		{InvoiceNumber: "INV-200", Amount: 99.99, Currency: "USD", Status: invoices.StatusPending, DueDate: &due},
	}

	state, err := h.orch.Run(context.Background(), inbound("What do I owe you?"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "Here are your pending invoices:\n- INV-200: 99.99 USD (Due: 2026-10-01)"
	if state.StructuredResult != want {
		t.Errorf("structured result = %q, want %q", state.StructuredResult, want)
	}
	if !contains(state.AuditTrail, "Checked Pending Invoices") {
		t.Errorf("audit missing pending check: %v", state.AuditTrail)
	}
}

func TestRunStatusRegexFallback(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.reply = "STATUS"
	h.extractor.reply = "NOT_FOUND"
	h.invoices.invoice = &invoices.Invoice{
		InvoiceNumber: "INV-301",
		Amount:        10,
		Currency:      "USD",
		Status:        invoices.StatusPending,
	}

	state, err := h.orch.Run(context.Background(), inbound("Checking on inv-301 again"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.Contains(state.StructuredResult, "INV-301") {
		t.Errorf("pattern fallback did not resolve the invoice:\n%s", state.StructuredResult)
	}
	if !contains(state.AuditTrail, "Checked Status for INV-301") {
		t.Errorf("audit = %v", state.AuditTrail)
	}
}

func TestRunUnrelatedBypassesExecutors(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.reply = "BANANA"

	state, err := h.orch.Run(context.Background(), inbound("Do you like the weather?"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if state.Intent != pipeline.IntentUnrelated {
		t.Errorf("intent = %v, want coercion to UNRELATED", state.Intent)
	}
	if h.invoices.lookups != 0 || h.knowledge.searches != 0 || len(h.vendors.updates) != 0 {
		t.Error("no executor may run for an unrelated intent")
	}
	if len(h.extractor.prompts) != 0 {
		t.Error("extractor must not be called for an unrelated intent")
	}
	if got := len(h.drafter.prompts); got != 1 {
		t.Errorf("drafter called %d times, want exactly once", got)
	}
}

func TestRunHistoryOrdering(t *testing.T) {
	h := newHarness(pipeline.Config{HistoryLimit: 5})
	h.history.recent = []conversations.Turn{
		{Role: conversations.RoleAssistant, Content: "second"},
		{Role: conversations.RoleVendor, Content: "first"},
	}

	if _, err := h.orch.Run(context.Background(), inbound("third")); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(h.classifier.histories) != 1 {
		t.Fatal("classifier should be called once")
	}

	got := h.classifier.histories[0]
	want := []completion.Message{
		{Role: completion.RoleUser, Content: "first"},
		{Role: completion.RoleAssistant, Content: "second"},
		{Role: completion.RoleUser, Content: "third"},
	}
	if len(got) != len(want) {
		t.Fatalf("history length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunHistoryLoadFailureDegrades(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.history.recentErr = errors.New("connection refused")

	state, err := h.orch.Run(context.Background(), inbound("hello"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(h.classifier.histories) != 1 || len(h.classifier.histories[0]) != 1 {
		t.Fatal("classifier should still receive the current email alone")
	}
	if state.Reply == "" {
		t.Error("run must still produce a reply")
	}
}

func TestRunUpdate(t *testing.T) {
	t.Run("phone normalizes before write", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "UPDATE"
		h.extractor.reply = "phone:(555) 123-4567"

		state, err := h.orch.Run(context.Background(), inbound("Please update my phone"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if len(h.vendors.updates) != 1 {
			t.Fatalf("updates = %v, want one", h.vendors.updates)
		}
		if got := h.vendors.updates[0]; got.Field != "phone" || got.Value != "5551234567" {
			t.Errorf("update = %+v, want phone=5551234567", got)
		}
		if state.StructuredResult != "Successfully updated phone to 5551234567." {
			t.Errorf("structured result = %q", state.StructuredResult)
		}
		if h.exporter.calls != 1 {
			t.Errorf("export calls = %d, want 1 after a successful update", h.exporter.calls)
		}
	})

	t.Run("invalid phone is rejected", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "UPDATE"
		h.extractor.reply = "phone:123"

		state, err := h.orch.Run(context.Background(), inbound("Please update my phone"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if len(h.vendors.updates) != 0 {
			t.Error("invalid phone must not reach the store")
		}
		if state.StructuredResult != "Update Rejected: Phone number '123' invalid." {
			t.Errorf("structured result = %q", state.StructuredResult)
		}
		if h.exporter.calls != 0 {
			t.Error("no export on a rejected update")
		}
	})

	t.Run("name and category accept plain values", func(t *testing.T) {
		for _, tt := range []struct {
			field string
			value string
		}{
			{"name", "Acme Industrial Ltd"},
			{"category", "Electronics"},
		} {
			h := newHarness(pipeline.Config{})
			h.classifier.reply = "UPDATE"
			h.extractor.reply = tt.field + ":" + tt.value

			state, err := h.orch.Run(context.Background(), inbound("Please update our "+tt.field))
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}

			if len(h.vendors.updates) != 1 {
				t.Fatalf("updates = %v, want one write for %s", h.vendors.updates, tt.field)
			}
			if got := h.vendors.updates[0]; got.Field != tt.field || got.Value != tt.value {
				t.Errorf("update = %+v, want %s=%s", got, tt.field, tt.value)
			}
			want := "Successfully updated " + tt.field + " to " + tt.value + "."
			if state.StructuredResult != want {
				t.Errorf("structured result = %q, want %q", state.StructuredResult, want)
			}
			if h.exporter.calls != 1 {
				t.Errorf("export calls = %d, want 1 after updating %s", h.exporter.calls, tt.field)
			}
		}
	})

	t.Run("disallowed field is rejected", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "UPDATE"
		h.extractor.reply = "vendor_id:V-9999"

		state, err := h.orch.Run(context.Background(), inbound("Change my vendor id"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if len(h.vendors.updates) != 0 {
			t.Error("disallowed field must not reach the store")
		}
		if state.StructuredResult != "Update Rejected: Field 'vendor_id' cannot be modified." {
			t.Errorf("structured result = %q", state.StructuredResult)
		}
	})

	t.Run("unparseable instruction asks for clarification", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "UPDATE"
		h.extractor.reply = "no idea"

		state, err := h.orch.Run(context.Background(), inbound("Update something"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		want := "I could not clarify what you want to update. Please specify Field and Value."
		if state.StructuredResult != want {
			t.Errorf("structured result = %q", state.StructuredResult)
		}
	})

	t.Run("export failure stays internal", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "UPDATE"
		h.extractor.reply = "address:2 Harbor Road"
		h.exporter.err = errors.New("blob unavailable")

		state, err := h.orch.Run(context.Background(), inbound("New address"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if state.StructuredResult != "Successfully updated address to 2 Harbor Road." {
			t.Errorf("structured result = %q", state.StructuredResult)
		}
	})
}

func TestRunKnowledgeRetrieval(t *testing.T) {
	t.Run("formats ranked excerpts", func(t *testing.T) {
		h := newHarness(pipeline.Config{RetrievalK: 3})
		h.classifier.reply = "POLICY"
		h.knowledge.count = 12
		h.knowledge.excerpts = []knowledge.Excerpt{
			{Content: "Payment terms are\nnet 30 days.", SourceLabel: "policy_document", PageNumber: 3},
			{Content: "Late fees accrue monthly.", SourceLabel: "policy_document", PageNumber: 4},
		}

		state, err := h.orch.Run(context.Background(), inbound("What are your payment terms?"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		want := "[Excerpt 1 from policy_document (Page 3)]:\nPayment terms are net 30 days.\n\n" +
			"[Excerpt 2 from policy_document (Page 4)]:\nLate fees accrue monthly."
		if state.RetrievedContext != want {
			t.Errorf("retrieved context = %q, want %q", state.RetrievedContext, want)
		}
		if !contains(state.AuditTrail, "Retrieved Policy Context") {
			t.Errorf("audit = %v", state.AuditTrail)
		}
	})

	t.Run("empty index short-circuits", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "POLICY"
		h.knowledge.count = 0

		state, err := h.orch.Run(context.Background(), inbound("What are your payment terms?"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if state.RetrievedContext != "Policy index is currently empty. Cannot retrieve information." {
			t.Errorf("retrieved context = %q", state.RetrievedContext)
		}
		if h.knowledge.searches != 0 {
			t.Error("no search against an empty index")
		}
	})

	t.Run("no matches degrade to a fixed string", func(t *testing.T) {
		h := newHarness(pipeline.Config{})
		h.classifier.reply = "POLICY"
		h.knowledge.count = 5

		state, err := h.orch.Run(context.Background(), inbound("Totally novel question"))
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		if state.RetrievedContext != "No relevant policy documents found." {
			t.Errorf("retrieved context = %q", state.RetrievedContext)
		}
	})
}

func TestRunDraftFailure(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.reply = "STATUS"
	h.drafter.err = errors.New("model unavailable")

	state, err := h.orch.Run(context.Background(), inbound("Status of INV-100?"))
	if err == nil {
		t.Fatal("Run must report the drafting failure")
	}

	if state.Reply != pipeline.TestSystemErrorReply {
		t.Errorf("reply = %q, want the system error reply", state.Reply)
	}
	if got := len(h.history.appends); got != 2 {
		t.Fatalf("persisted %d turns, want 2 even on failure", got)
	}
	if h.history.appends[1].Content != pipeline.TestSystemErrorReply {
		t.Error("the system error reply must be persisted as the assistant turn")
	}
	if !contains(state.AuditTrail, "Draft Failed") {
		t.Errorf("audit = %v", state.AuditTrail)
	}
	if last := state.AuditTrail[len(state.AuditTrail)-1]; last != "Conversation Saved" {
		t.Errorf("audit must still end with persistence, got %q", last)
	}
}

func TestRunClassifierFailureDefaultsToUnrelated(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.classifier.err = errors.New("timeout")

	state, err := h.orch.Run(context.Background(), inbound("hello?"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if state.Intent != pipeline.IntentUnrelated {
		t.Errorf("intent = %v, want UNRELATED on classifier failure", state.Intent)
	}
	if state.Reply == "" {
		t.Error("run must still draft a reply")
	}
}

func TestRunPersistsExactlyTwoTurnsPerRun(t *testing.T) {
	h := newHarness(pipeline.Config{})

	for run := 1; run <= 2; run++ {
		if _, err := h.orch.Run(context.Background(), inbound("hello")); err != nil {
			t.Fatalf("run %d returned error: %v", run, err)
		}
		if got, want := len(h.history.appends), run*2; got != want {
			t.Fatalf("after run %d: persisted %d turns, want %d", run, got, want)
		}
	}

	for i, turn := range h.history.appends {
		wantRole := conversations.RoleVendor
		if i%2 == 1 {
			wantRole = conversations.RoleAssistant
		}
		if turn.Role != wantRole {
			t.Errorf("turn %d role = %q, want %q", i, turn.Role, wantRole)
		}
	}
}

func TestRunPersistFailureStillReplies(t *testing.T) {
	h := newHarness(pipeline.Config{})
	h.history.appendErr = errors.New("disk full")

	state, err := h.orch.Run(context.Background(), inbound("hello"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if state.Reply == "" {
		t.Error("persistence failure must not suppress the reply")
	}
	if last := state.AuditTrail[len(state.AuditTrail)-1]; last != "Conversation Saved" {
		t.Errorf("audit = %v", state.AuditTrail)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
