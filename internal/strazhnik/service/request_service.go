package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

var (
	ErrNotOfficer       = errors.New("only security officers may submit requests")
	ErrInvalidRequestID = errors.New("invalid request id")
	ErrRequestNotFound  = errors.New("request not found")
)

const defaultVisitorAgeYears = 30

type RequestService struct {
	requests store.RequestStore
	catalog  Catalog
	logger   *log.Logger
	now      func() time.Time
}

func NewRequestService(rs store.RequestStore, catalog Catalog, logger *log.Logger) *RequestService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RequestService{requests: rs, catalog: catalog, logger: logger, now: time.Now}
}

// WithClock replaces the time source used for validation windows,
// created_at and request IDs.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

func (s *RequestService) Catalog() Catalog { return s.catalog }

func (s *RequestService) Validate(form types.RequestForm) error {
	return ValidateForm(form, types.DateOf(s.now()), s.catalog)
}

// Submit validates form and persists it as a new request attributed to p.
// The returned ID is derived from the submission time.
func (s *RequestService) Submit(ctx context.Context, p types.Principal, form types.RequestForm) (string, error) {
	if p.Role != types.RoleSecurityOfficer {
		return "", ErrNotOfficer
	}

	now := s.now()
	if err := ValidateForm(form, types.DateOf(now), s.catalog); err != nil {
		return "", err
	}

	rec := types.VisitorPassRequest{
		Type:      types.RequestTypeIndividual,
		Dates:     form.Dates,
		Purpose:   form.Purpose,
		Host:      form.Host,
		Visitor:   form.Visitor,
		Documents: form.Documents,
		CreatedAt: types.NewTimestamp(now),
		CreatedBy: p.DisplayName,
	}
	if !types.IsDocumentSelected(rec.Documents.Photo) {
		rec.Documents.Photo = ""
	}

	id := types.RequestID(now)
	if err := s.requests.Save(ctx, id, rec); err != nil {
		return "", fmt.Errorf("save %s: %w", id, err)
	}

	s.logger.Printf("request stored id=%s created_by=%q visitor=%q", id, p.DisplayName, form.Visitor.LastName)
	return id, nil
}

// Defaults is DefaultForm at the current time for this service's catalog.
func (s *RequestService) Defaults() types.RequestForm {
	return DefaultForm(s.now(), s.catalog)
}

// DefaultForm is the blank form shown before entry and after every
// successful submit. The host preselects the first department and employee
// of catalog.
func DefaultForm(now time.Time, catalog Catalog) types.RequestForm {
	today := types.DateOf(now)
	form := types.RequestForm{
		Dates: types.Validity{
			Start: today.AddDays(1),
			End:   today.AddDays(2),
		},
		Visitor: types.Visitor{
			BirthDate: today.AddYears(-defaultVisitorAgeYears),
		},
		Documents: types.Documents{
			PassportScan: types.NotSelected,
		},
	}
	if len(catalog.Departments) > 0 {
		form.Host.Department = catalog.Departments[0]
	}
	if len(catalog.Employees) > 0 {
		form.Host.Employee = catalog.Employees[0]
	}
	return form
}

func (s *RequestService) Get(ctx context.Context, id string) (types.VisitorPassRequest, error) {
	if !types.ValidRequestID(id) {
		return types.VisitorPassRequest{}, fmt.Errorf("%w: %q", ErrInvalidRequestID, id)
	}
	rec, err := s.requests.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return types.VisitorPassRequest{}, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	if err != nil {
		return types.VisitorPassRequest{}, fmt.Errorf("load %s: %w", id, err)
	}
	return rec, nil
}

func (s *RequestService) List(ctx context.Context) ([]string, error) {
	ids, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return ids, nil
}
