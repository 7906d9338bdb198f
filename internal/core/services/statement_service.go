package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/core/reporting"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

const statementDateLayout = "2006-01-02"

type statementService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	divisionRepo portsrepo.DivisionRepository
	categoryRepo portsrepo.CategoryRepository
	personRepo   portsrepo.PersonRepository
	groupRepo    portsrepo.GroupRepository

	chapterName string
	logoURL     string

	now       func() time.Time
	fetchLogo func(context.Context, string) utils.LogoResult

	// Build bookkeeping: a report is cached as the user's latest only if no
	// newer build started while it was being computed, and a failed build
	// never evicts the previous successful one.
	mu          sync.Mutex
	buildSeq    map[string]uint64
	lastReports map[string]*reporting.Report

	logoOnce sync.Once
	logo     utils.LogoResult
}

// StatementServiceOption configures optional statement service dependencies.
type StatementServiceOption func(*statementService)

// WithStatementClock overrides the time source.
func WithStatementClock(now func() time.Time) StatementServiceOption {
	return func(s *statementService) { s.now = now }
}

// WithLogoFetcher overrides the logo fetcher.
func WithLogoFetcher(fetch func(context.Context, string) utils.LogoResult) StatementServiceOption {
	return func(s *statementService) { s.fetchLogo = fetch }
}

// NewStatementService creates the statement reporting service.
func NewStatementService(repos *portsrepo.RepositoryProvider, chapterName, logoURL string, opts ...StatementServiceOption) portssvc.StatementSvcFacade {
	s := &statementService{
		txnRepo:      repos.TransactionRepo,
		divisionRepo: repos.DivisionRepo,
		categoryRepo: repos.CategoryRepo,
		personRepo:   repos.PersonRepo,
		groupRepo:    repos.GroupRepo,
		chapterName:  chapterName,
		logoURL:      logoURL,
		now:          time.Now,
		fetchLogo:    utils.FetchLogo,
		buildSeq:     make(map[string]uint64),
		lastReports:  make(map[string]*reporting.Report),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// BuildStatement queries the ledger and computes the full report. Reference
// lookups degrade to empty sets so a reference-store hiccup renders
// placeholder names instead of failing the statement; a ledger query failure
// is fatal and surfaces as ErrQueryFailed.
func (s *statementService) BuildStatement(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) (*reporting.Report, error) {
	s.mu.Lock()
	s.buildSeq[userID]++
	mySeq := s.buildSeq[userID]
	s.mu.Unlock()

	filter = filter.Normalize()

	divisions, err := s.divisionRepo.ListDivisions(ctx)
	if err != nil {
		s.LogWarn(ctx, "Division lookup failed, rendering placeholders", "error", err.Error())
		divisions = nil
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogWarn(ctx, "Category lookup failed, rendering placeholders", "error", err.Error())
		categories = nil
	}
	persons, err := s.personRepo.ListPersons(ctx)
	if err != nil {
		s.LogWarn(ctx, "Person lookup failed, rendering placeholders", "error", err.Error())
		persons = nil
	}
	groups, err := s.groupRepo.ListGroups(ctx)
	if err != nil {
		s.LogWarn(ctx, "Group lookup failed, rendering placeholders", "error", err.Error())
		groups = nil
	}

	query := reporting.TranslateFilter(filter, divisions)
	txns, err := s.txnRepo.QueryTransactions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Statement query failed", "user_id", userID)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}

	refs := reporting.NewReferenceSet(divisions, categories, persons, groups)
	rep := reporting.BuildReport(txns, refs, filter, opts, s.now())

	s.mu.Lock()
	// A build that finished after a newer one started is stale: hand it to
	// its caller but do not cache it as the latest.
	if s.buildSeq[userID] == mySeq {
		s.lastReports[userID] = rep
	}
	s.mu.Unlock()

	s.LogInfo(ctx, "Statement built",
		"user_id", userID,
		"rows", len(rep.Rows),
		"data_warnings", rep.DataWarnings,
	)
	return rep, nil
}

// LastStatement returns the user's most recent successfully built report.
func (s *statementService) LastStatement(_ context.Context, userID string) *reporting.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReports[userID]
}

// StatementCSV builds the statement and serializes it as CSV.
func (s *statementService) StatementCSV(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error) {
	rep, err := s.BuildStatement(ctx, userID, filter, opts)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := reporting.WriteCSV(&buf, rep); err != nil {
		s.LogError(ctx, err, "CSV serialization failed", "user_id", userID)
		return nil, "", err
	}
	return buf.Bytes(), statementFilename(rep.Filter, "csv"), nil
}

// StatementPDF builds the statement and renders the paginated document.
func (s *statementService) StatementPDF(ctx context.Context, userID string, filter domain.StatementFilter, opts domain.DisplayOptions) ([]byte, string, error) {
	rep, err := s.BuildStatement(ctx, userID, filter, opts)
	if err != nil {
		return nil, "", err
	}

	logo := s.chapterLogo(ctx)
	meta := reporting.DocumentMeta{
		ChapterName: s.chapterName,
		FilterChips: filterChips(rep.Filter),
		GeneratedAt: rep.GeneratedAt,
	}
	if logo.OK {
		meta.Logo = logo.Data
		meta.LogoFormat = logo.Format
	}

	payload, err := reporting.GeneratePDF(rep, meta)
	if err != nil {
		s.LogError(ctx, err, "PDF generation failed", "user_id", userID)
		return nil, "", err
	}
	return payload, statementFilename(rep.Filter, "pdf"), nil
}

// chapterLogo fetches the branding logo at most once. Failure is swallowed;
// documents render without a logo.
func (s *statementService) chapterLogo(ctx context.Context) utils.LogoResult {
	s.logoOnce.Do(func() {
		s.logo = s.fetchLogo(ctx, s.logoURL)
		if !s.logo.OK && s.logoURL != "" {
			s.LogWarn(ctx, "Chapter logo fetch failed, documents render without it", "logo_url", s.logoURL)
		}
	})
	return s.logo
}

func statementFilename(f domain.StatementFilter, ext string) string {
	return fmt.Sprintf("statement_%s_to_%s.%s", f.DateFrom.Format(statementDateLayout), f.DateTo.Format(statementDateLayout), ext)
}

// filterChips summarizes the active filter for the document header.
func filterChips(f domain.StatementFilter) []string {
	chips := []string{
		fmt.Sprintf("Period %s to %s", f.DateFrom.Format(statementDateLayout), f.DateTo.Format(statementDateLayout)),
	}
	if f.Kind != domain.KindAll && f.Kind != "" {
		chips = append(chips, "Kind: "+string(f.Kind))
	}
	if n := len(f.DivisionIDs); n > 0 {
		chips = append(chips, fmt.Sprintf("Divisions: %d selected", n))
	}
	if len(f.Areas) > 0 {
		chips = append(chips, "Areas: "+strings.Join(f.Areas, ", "))
	}
	if n := len(f.PersonIDs); n > 0 {
		chips = append(chips, fmt.Sprintf("Persons: %d selected", n))
	}
	if n := len(f.GroupIDs); n > 0 {
		chips = append(chips, fmt.Sprintf("Groups: %d selected", n))
	}
	if n := len(f.CategoryIDs); n > 0 {
		chips = append(chips, fmt.Sprintf("Categories: %d selected", n))
	}
	return chips
}
