package ledger

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/agentia/vendormail/internal/invoices"
	"github.com/agentia/vendormail/internal/knowledge"
	"github.com/agentia/vendormail/internal/vendors"
	"github.com/agentia/vendormail/pkg/storage"
)

// System defines the public contract for ledger data exchange.
type System interface {
	Handler() *Handler

	// IngestAll loads the ledger CSV, then indexes the email archive and
	// policy document concurrently. Missing files are logged and skipped.
	IngestAll(ctx context.Context) error

	// Export rebuilds the ledger CSV from the database, rewrites the local
	// file, and archives a timestamped copy to blob storage.
	Export(ctx context.Context) error
}

// Service implements System over the domain systems and blob storage.
type Service struct {
	db        *sql.DB
	vendors   vendors.System
	invoices  invoices.System
	knowledge knowledge.System
	blobs     storage.System
	logger    *slog.Logger
	dataDir   string
}

// New creates a ledger service rooted at dataDir.
func New(
	db *sql.DB,
	v vendors.System,
	i invoices.System,
	k knowledge.System,
	blobs storage.System,
	logger *slog.Logger,
	dataDir string,
) *Service {
	return &Service{
		db:        db,
		vendors:   v,
		invoices:  i,
		knowledge: k,
		blobs:     blobs,
		logger:    logger.With("system", "ledger"),
		dataDir:   dataDir,
	}
}

func (s *Service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *Service) IngestAll(ctx context.Context) error {
	if err := s.ingestLedger(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.ingestLibrary(gctx) })
	g.Go(func() error { return s.ingestPolicy(gctx) })

	return g.Wait()
}

// ingestLedger upserts one vendor and one invoice per CSV row. Rows that
// fail to parse are logged and skipped so a single bad line does not abort
// the load.
func (s *Service) ingestLedger(ctx context.Context) error {
	path := filepath.Join(s.dataDir, LedgerFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("ledger file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	records, err := readCSV(f, "vendor_id", "company", "name", "email",
		"phone", "address", "role", "invoice_id", "amount", "status",
		"invoice_date", "due_date")
	if err != nil {
		return fmt.Errorf("read ledger file: %w", err)
	}

	loaded := 0
	for n, rec := range records {
		vendor, err := s.vendors.Upsert(ctx, vendors.CreateCommand{
			VendorRef:   rec["vendor_id"],
			Name:        rec["company"],
			ContactName: rec["name"],
			Email:       rec["email"],
			Phone:       rec["phone"],
			Address:     rec["address"],
			Category:    rec["role"],
		})
		if err != nil {
			s.logger.Warn("skipping ledger row", "line", n+2, "error", err)
			continue
		}

		amount, err := strconv.ParseFloat(rec["amount"], 64)
		if err != nil {
			s.logger.Warn("skipping ledger row", "line", n+2, "error", err)
			continue
		}

		_, err = s.invoices.Upsert(ctx, invoices.CreateCommand{
			VendorID:      vendor.ID,
			InvoiceNumber: rec["invoice_id"],
			Amount:        amount,
			Currency:      defaultCurrency,
			Status:        rec["status"],
			IssueDate:     parseDate(rec["invoice_date"]),
			DueDate:       parseDate(rec["due_date"]),
		})
		if err != nil {
			s.logger.Warn("skipping ledger row", "line", n+2, "error", err)
			continue
		}

		loaded++
	}

	s.logger.Info("ledger data loaded", "rows", loaded)
	return nil
}

// ingestLibrary indexes archived email exchanges as knowledge chunks.
func (s *Service) ingestLibrary(ctx context.Context) error {
	path := filepath.Join(s.dataDir, LibraryFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("library file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("open library file: %w", err)
	}
	defer f.Close()

	records, err := readCSV(f, "vendor_id", "invoice_id", "category",
		"subject", "item_name", "summary", "body", "reply_text")
	if err != nil {
		return fmt.Errorf("read library file: %w", err)
	}

	cmds := make([]knowledge.AddCommand, 0, len(records))
	for _, rec := range records {
		cmds = append(cmds, knowledge.AddCommand{
			SourceLabel: SourceEmailArchive,
			Content: fmt.Sprintf(
				"Subject: %s\nItem: %s (%s)\nSummary: %s\nBody: %s\nReply: %s",
				rec["subject"], rec["item_name"], rec["category"],
				rec["summary"], rec["body"], rec["reply_text"],
			),
		})
	}

	indexed, err := s.knowledge.AddBatch(ctx, cmds)
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyContent) {
			s.logger.Warn("library file has no usable rows", "path", path)
			return nil
		}
		return fmt.Errorf("index email archive: %w", err)
	}

	s.logger.Info("email archive indexed", "chunks", indexed)
	return nil
}

// ingestPolicy validates the policy PDF and indexes one knowledge chunk per
// page. Page text is extracted to a scratch directory and read back, since
// the extractor works file to file.
func (s *Service) ingestPolicy(ctx context.Context) error {
	path := filepath.Join(s.dataDir, PolicyFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("policy file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read policy file: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("invalid policy pdf: %w", err)
	}

	outDir, err := os.MkdirTemp("", "vendormail-policy-")
	if err != nil {
		return fmt.Errorf("create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, nil); err != nil {
		return fmt.Errorf("extract policy content: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return fmt.Errorf("read extraction dir: %w", err)
	}

	cmds := make([]knowledge.AddCommand, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping policy page", "file", entry.Name(), "error", err)
			continue
		}

		cmds = append(cmds, knowledge.AddCommand{
			SourceLabel: SourcePolicy,
			PageNumber:  pageNumberFromName(entry.Name()),
			Content:     string(content),
		})
	}

	indexed, err := s.knowledge.AddBatch(ctx, cmds)
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyContent) {
			s.logger.Warn("policy document yielded no text", "path", path)
			return nil
		}
		return fmt.Errorf("index policy document: %w", err)
	}

	s.logger.Info("policy document indexed", "pages", pages, "chunks", indexed)
	return nil
}

func (s *Service) Export(ctx context.Context) error {
	rows, err := exportRows(ctx, s.db)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptyExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.VendorRef,
			r.ContactName,
			r.Email,
			r.Phone,
			r.Address,
			r.Company,
			r.Role,
			r.InvoiceNumber,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Status,
			r.DueDate,
			r.InvoiceDate,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	path := filepath.Join(s.dataDir, LedgerFile)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}

	key := fmt.Sprintf("exports/ledger_data_%s.csv",
		time.Now().UTC().Format("20060102T150405Z"))

	if err := s.blobs.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv"); err != nil {
		return fmt.Errorf("archive export: %w", err)
	}

	s.logger.Info("ledger exported", "rows", len(rows), "archive", key)
	return nil
}

// readCSV reads all records keyed by header name, verifying that every
// required column is present.
func readCSV(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var records []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		records = append(records, row)
	}

	return records, nil
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

var pageNumberPattern = regexp.MustCompile(`(\d+)\.txt$`)

func pageNumberFromName(name string) int {
	m := pageNumberPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
