package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/knowledge"
	"github.com/agentia/vendormail/internal/vendors"
	"github.com/agentia/vendormail/pkg/pagination"
)

type fakeVendorSystem struct {
	upserts []vendors.CreateCommand
	ids     map[string]uuid.UUID
}

func (f *fakeVendorSystem) Handler() *vendors.Handler { return nil }

func (f *fakeVendorSystem) List(
	_ context.Context, _ pagination.PageRequest, _ vendors.Filters,
) (*pagination.PageResult[vendors.Vendor], error) {
	return nil, nil
}

func (f *fakeVendorSystem) Find(_ context.Context, _ uuid.UUID) (*vendors.Vendor, error) {
	return nil, vendors.ErrNotFound
}

func (f *fakeVendorSystem) FindByEmail(_ context.Context, _ string) (*vendors.Vendor, error) {
	return nil, vendors.ErrNotFound
}

func (f *fakeVendorSystem) Upsert(_ context.Context, cmd vendors.CreateCommand) (*vendors.Vendor, error) {
	f.upserts = append(f.upserts, cmd)

	if f.ids == nil {
		f.ids = make(map[string]uuid.UUID)
	}
	id, ok := f.ids[cmd.VendorRef]
	if !ok {
		id = uuid.New()
		f.ids[cmd.VendorRef] = id
	}

	return &vendors.Vendor{ID: id, VendorRef: cmd.VendorRef, Name: cmd.Name}, nil
}

func (f *fakeVendorSystem) UpdateContact(_ context.Context, _ uuid.UUID, _, _ string) error {
	return nil
}

type fakeInvoiceSystem struct {
	upserts []invoices.CreateCommand
}

func (f *fakeInvoiceSystem) Handler() *invoices.Handler { return nil }

func (f *fakeInvoiceSystem) List(
	_ context.Context, _ pagination.PageRequest, _ invoices.Filters,
) (*pagination.PageResult[invoices.Invoice], error) {
	return nil, nil
}

func (f *fakeInvoiceSystem) FindByNumber(_ context.Context, _ string, _ uuid.UUID) (*invoices.Invoice, error) {
	return nil, invoices.ErrNotFound
}

func (f *fakeInvoiceSystem) Pending(_ context.Context, _ uuid.UUID) ([]invoices.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceSystem) Upsert(_ context.Context, cmd invoices.CreateCommand) (*invoices.Invoice, error) {
	f.upserts = append(f.upserts, cmd)
	return &invoices.Invoice{VendorID: cmd.VendorID, InvoiceNumber: cmd.InvoiceNumber}, nil
}

type fakeKnowledgeSystem struct {
	batches [][]knowledge.AddCommand
}

func (f *fakeKnowledgeSystem) Handler() *knowledge.Handler { return nil }

func (f *fakeKnowledgeSystem) Search(_ context.Context, _ string, _ int) ([]knowledge.Excerpt, error) {
	return nil, nil
}

func (f *fakeKnowledgeSystem) Count(_ context.Context) (int, error) {
	return 0, nil
}

func (f *fakeKnowledgeSystem) AddBatch(_ context.Context, cmds []knowledge.AddCommand) (int, error) {
	f.batches = append(f.batches, cmds)

	stored := 0
	for _, cmd := range cmds {
		if strings.TrimSpace(cmd.Content) != "" {
			stored++
		}
	}
	if stored == 0 {
		return 0, knowledge.ErrEmptyContent
	}
	return stored, nil
}

func newTestService(t *testing.T) (*Service, *fakeVendorSystem, *fakeInvoiceSystem, *fakeKnowledgeSystem, string) {
	t.Helper()

	dataDir := t.TempDir()
	v := &fakeVendorSystem{}
	i := &fakeInvoiceSystem{}
	k := &fakeKnowledgeSystem{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(nil, v, i, k, nil, logger, dataDir), v, i, k, dataDir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIngestLedger(t *testing.T) {
	t.Run("upserts vendors and invoices per row", func(t *testing.T) {
		s, v, i, _, dir := newTestService(t)
		writeFile(t, dir, LedgerFile,
			"vendor_id,company,name,email,phone,address,role,invoice_id,amount,status,invoice_date,due_date\n"+
				"V7755,Acme Corp,Jordan Miles,billing@acme.example,5550001111,1 Industrial Way,Logistics,INV-100,1200.50,Pending,2026-07-01,2026-09-15\n"+
				"V7755,Acme Corp,Jordan Miles,billing@acme.example,5550001111,1 Industrial Way,Logistics,INV-101,80.00,Paid,2026-06-01,2026-07-01\n")

		if err := s.ingestLedger(context.Background()); err != nil {
			t.Fatalf("ingestLedger: %v", err)
		}

		if len(v.upserts) != 2 {
			t.Fatalf("vendor upserts = %d, want 2", len(v.upserts))
		}
		if got := v.upserts[0]; got.VendorRef != "V7755" || got.Name != "Acme Corp" || got.Category != "Logistics" {
			t.Errorf("vendor upsert = %+v", got)
		}

		if len(i.upserts) != 2 {
			t.Fatalf("invoice upserts = %d, want 2", len(i.upserts))
		}
		inv := i.upserts[0]
		if inv.InvoiceNumber != "INV-100" || inv.Amount != 1200.50 || inv.Currency != "USD" {
			t.Errorf("invoice upsert = %+v", inv)
		}
		if inv.DueDate == nil || inv.DueDate.Format("2006-01-02") != "2026-09-15" {
			t.Errorf("due date = %v", inv.DueDate)
		}
		if inv.VendorID != v.ids["V7755"] {
			t.Error("invoice must reference the upserted vendor")
		}
	})

	t.Run("skips rows with unparseable amounts", func(t *testing.T) {
		s, _, i, _, dir := newTestService(t)
		writeFile(t, dir, LedgerFile,
			"vendor_id,company,name,email,phone,address,role,invoice_id,amount,status,invoice_date,due_date\n"+
				"V1,A,B,a@b.c,5550001111,Addr,Role,INV-1,not-a-number,Pending,2026-01-01,2026-02-01\n"+
				"V1,A,B,a@b.c,5550001111,Addr,Role,INV-2,10.00,Pending,2026-01-01,2026-02-01\n")

		if err := s.ingestLedger(context.Background()); err != nil {
			t.Fatalf("ingestLedger: %v", err)
		}

		if len(i.upserts) != 1 || i.upserts[0].InvoiceNumber != "INV-2" {
			t.Errorf("invoice upserts = %+v, want only INV-2", i.upserts)
		}
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		s, v, _, _, _ := newTestService(t)

		if err := s.ingestLedger(context.Background()); err != nil {
			t.Fatalf("ingestLedger: %v", err)
		}
		if len(v.upserts) != 0 {
			t.Error("no upserts expected without a ledger file")
		}
	})

	t.Run("missing column fails the load", func(t *testing.T) {
		s, _, _, _, dir := newTestService(t)
		writeFile(t, dir, LedgerFile, "vendor_id,company\nV1,A\n")

		err := s.ingestLedger(context.Background())
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("err = %v, want ErrMissingColumn", err)
		}
	})
}

func TestIngestLibrary(t *testing.T) {
	s, _, _, k, dir := newTestService(t)
	writeFile(t, dir, LibraryFile,
		"vendor_id,invoice_id,category,subject,item_name,summary,body,reply_text\n"+
			"V1,INV-1,billing,Late payment,Widget,Asked about fees,Full body,We replied\n")

	if err := s.ingestLibrary(context.Background()); err != nil {
		t.Fatalf("ingestLibrary: %v", err)
	}

	if len(k.batches) != 1 || len(k.batches[0]) != 1 {
		t.Fatalf("batches = %+v, want one batch of one chunk", k.batches)
	}

	chunk := k.batches[0][0]
	if chunk.SourceLabel != SourceEmailArchive {
		t.Errorf("source = %q, want %q", chunk.SourceLabel, SourceEmailArchive)
	}
	want := "Subject: Late payment\nItem: Widget (billing)\nSummary: Asked about fees\nBody: Full body\nReply: We replied"
	if chunk.Content != want {
		t.Errorf("content = %q, want %q", chunk.Content, want)
	}
}

func TestReadCSV(t *testing.T) {
	t.Run("keys rows by header and trims whitespace", func(t *testing.T) {
		records, err := readCSV(strings.NewReader("a,b\n 1 , 2 \n3,4\n"), "a", "b")
		if err != nil {
			t.Fatalf("readCSV: %v", err)
		}
		if len(records) != 2 || records[0]["a"] != "1" || records[1]["b"] != "4" {
			t.Errorf("records = %+v", records)
		}
	})

	t.Run("rejects missing required columns", func(t *testing.T) {
		_, err := readCSV(strings.NewReader("a\n1\n"), "a", "b")
		if !errors.Is(err, ErrMissingColumn) {
			t.Errorf("err = %v, want ErrMissingColumn", err)
		}
	})
}

func TestParseDate(t *testing.T) {
	if got := parseDate("2026-09-15"); got == nil || got.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("parseDate = %v", got)
	}
	if parseDate("") != nil {
		t.Error("empty string must parse to nil")
	}
	if parseDate("15/09/2026") != nil {
		t.Error("unknown layout must parse to nil")
	}
}

func TestPageNumberFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"policy_page_3.txt", 3},
		{"Content_page_12.txt", 12},
		{"notes.txt", 0},
		{"page_4.json", 0},
	}

	for _, tt := range tests {
		if got := pageNumberFromName(tt.name); got != tt.want {
			t.Errorf("pageNumberFromName(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
