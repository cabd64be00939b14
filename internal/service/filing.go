package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"lexapi/internal/model"
	"lexapi/internal/repository"
	"lexapi/internal/storage"
)

// FilingInput carries the metadata fields of a procedural filing.
type FilingInput struct {
	NomePeca    string
	Categoria   string
	Localizacao string
	URL         string
}

// FilingService manages procedural filings (pecas processuais):
// metadata rows grouped by category plus their physical files, which are
// stored under the category folder rather than a client folder.
type FilingService interface {
	Create(ctx context.Context, in FilingInput) (*model.Filing, error)
	Update(ctx context.Context, id int64, in FilingInput) (*model.Filing, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Filing, error)
	List(ctx context.Context) ([]model.Filing, error)

	Upload(ctx context.Context, r io.Reader, backend storage.Backend, categoria, filename string) (*storage.StoredFile, error)
	ReplaceFile(ctx context.Context, r io.Reader, backendNew, backendOld storage.Backend, categoria, oldFilename, newFilename string) (*storage.StoredFile, error)
	RemoveFile(ctx context.Context, backend storage.Backend, categoria, filename string) error
}

type filingService struct {
	filings repository.FilingRepository
	files   storage.FileStore
}

// NewFilingService constructs a FilingService.
func NewFilingService(filings repository.FilingRepository, files storage.FileStore) FilingService {
	return &filingService{filings: filings, files: files}
}

func validateFilingInput(in FilingInput) error {
	if in.NomePeca == "" || in.Categoria == "" {
		return ErrMissingParams
	}
	if in.Localizacao == "" && in.URL == "" {
		return fmt.Errorf("%w: either documento_localizacao or documento_url is required", ErrMissingParams)
	}
	return nil
}

func (s *filingService) Create(ctx context.Context, in FilingInput) (*model.Filing, error) {
	if err := validateFilingInput(in); err != nil {
		return nil, err
	}
	f, err := s.filings.Create(ctx, &model.Filing{
		NomePeca:    in.NomePeca,
		Categoria:   in.Categoria,
		Localizacao: in.Localizacao,
		URL:         in.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("create filing: %w", err)
	}
	return f, nil
}

func (s *filingService) Update(ctx context.Context, id int64, in FilingInput) (*model.Filing, error) {
	if err := validateFilingInput(in); err != nil {
		return nil, err
	}
	f, err := s.filings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.NomePeca = in.NomePeca
	f.Categoria = in.Categoria
	f.Localizacao = in.Localizacao
	f.URL = in.URL
	if err := s.filings.Update(ctx, f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update filing: %w", err)
	}
	return f, nil
}

func (s *filingService) Delete(ctx context.Context, id int64) error {
	if err := s.filings.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *filingService) Get(ctx context.Context, id int64) (*model.Filing, error) {
	f, err := s.filings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *filingService) List(ctx context.Context) ([]model.Filing, error) {
	return s.filings.List(ctx)
}

func (s *filingService) Upload(ctx context.Context, r io.Reader, backend storage.Backend, categoria, filename string) (*storage.StoredFile, error) {
	if categoria == "" {
		return nil, ErrMissingParams
	}
	return s.files.Upload(ctx, r, backend, storage.SanitizeFilename(categoria), filename)
}

func (s *filingService) ReplaceFile(ctx context.Context, r io.Reader, backendNew, backendOld storage.Backend, categoria, oldFilename, newFilename string) (*storage.StoredFile, error) {
	if categoria == "" {
		return nil, ErrMissingParams
	}
	return s.files.Replace(ctx, r, backendNew, backendOld, storage.SanitizeFilename(categoria), oldFilename, newFilename)
}

func (s *filingService) RemoveFile(ctx context.Context, backend storage.Backend, categoria, filename string) error {
	if categoria == "" {
		return ErrMissingParams
	}
	return s.files.Delete(ctx, backend, storage.SanitizeFilename(categoria), filename)
}
