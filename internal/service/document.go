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

// DocumentInput carries the metadata fields of a document row. Exactly
// one of Localizacao and URL must be set: a document lives either on the
// local tree or on the remote share, never both.
type DocumentInput struct {
	Nome        string
	Localizacao string
	URL         string
	ClienteID   int64
	ConsultaID  *int64
}

// DocumentService manages document metadata and composes the metadata
// store with the physical file store. The metadata row and the physical
// file are separate resources; the composition methods (FileDocument,
// Refile) are what keep them consistent.
type DocumentService interface {
	Create(ctx context.Context, in DocumentInput) (*model.Document, error)
	Update(ctx context.Context, id int64, in DocumentInput) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Document, error)
	List(ctx context.Context) ([]model.Document, error)

	// Upload stores the physical file under the client's folder and
	// returns where it landed. No metadata row is touched.
	Upload(ctx context.Context, r io.Reader, backend storage.Backend, clienteNome, filename string) (*storage.StoredFile, error)

	// FileDocument persists a metadata row whose location fields come
	// from an upload result.
	FileDocument(ctx context.Context, in DocumentInput, stored *storage.StoredFile) (*model.Document, error)

	// Refile replaces the document's physical file (possibly moving it to
	// the other backend) and updates the row's location to match. The new
	// file keeps its own name; validation runs against it, not against
	// the name being replaced. When the physical replace fails the row is
	// left untouched and the failure is surfaced.
	Refile(ctx context.Context, id int64, r io.Reader, backendNew, backendOld storage.Backend, oldFilename, newFilename string) (*model.Document, error)

	// RemoveFile deletes a physical file only; metadata is the caller's
	// concern.
	RemoveFile(ctx context.Context, backend storage.Backend, clienteNome, filename string) error
}

type documentService struct {
	docs    repository.DocumentRepository
	clients repository.ClientRepository
	files   storage.FileStore
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(docs repository.DocumentRepository, clients repository.ClientRepository, files storage.FileStore) DocumentService {
	return &documentService{docs: docs, clients: clients, files: files}
}

func validateDocumentInput(in DocumentInput) error {
	if in.Nome == "" || in.ClienteID == 0 {
		return ErrMissingParams
	}
	if in.Localizacao == "" && in.URL == "" {
		return fmt.Errorf("%w: either documento_localizacao or documento_url is required", ErrMissingParams)
	}
	if in.Localizacao != "" && in.URL != "" {
		return fmt.Errorf("%w: documento_localizacao and documento_url are mutually exclusive", ErrValidation)
	}
	return nil
}

func (s *documentService) Create(ctx context.Context, in DocumentInput) (*model.Document, error) {
	if err := validateDocumentInput(in); err != nil {
		return nil, err
	}
	doc, err := s.docs.Create(ctx, &model.Document{
		Nome:        in.Nome,
		Localizacao: in.Localizacao,
		URL:         in.URL,
		ClienteID:   in.ClienteID,
		ConsultaID:  in.ConsultaID,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id int64, in DocumentInput) (*model.Document, error) {
	if err := validateDocumentInput(in); err != nil {
		return nil, err
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc.Nome = in.Nome
	doc.Localizacao = in.Localizacao
	doc.URL = in.URL
	doc.ClienteID = in.ClienteID
	doc.ConsultaID = in.ConsultaID
	if err := s.docs.Update(ctx, doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.docs.List(ctx)
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, backend storage.Backend, clienteNome, filename string) (*storage.StoredFile, error) {
	if clienteNome == "" {
		return nil, ErrMissingParams
	}
	bucket := storage.SanitizeFilename(clienteNome)
	return s.files.Upload(ctx, r, backend, bucket, filename)
}

func (s *documentService) FileDocument(ctx context.Context, in DocumentInput, stored *storage.StoredFile) (*model.Document, error) {
	if stored == nil {
		return nil, ErrMissingParams
	}
	in.Localizacao = stored.Localizacao
	in.URL = stored.URL
	return s.Create(ctx, in)
}

func (s *documentService) Refile(ctx context.Context, id int64, r io.Reader, backendNew, backendOld storage.Backend, oldFilename, newFilename string) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, doc.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("load owning client: %w", err)
	}
	bucket := storage.SanitizeFilename(client.NomeCliente)

	stored, err := s.files.Replace(ctx, r, backendNew, backendOld, bucket, oldFilename, newFilename)
	if err != nil {
		// Physical replace failed: the metadata row stays as it was.
		return nil, err
	}

	doc.Localizacao = stored.Localizacao
	doc.URL = stored.URL
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document location: %w", err)
	}
	return doc, nil
}

func (s *documentService) RemoveFile(ctx context.Context, backend storage.Backend, clienteNome, filename string) error {
	if clienteNome == "" {
		return ErrMissingParams
	}
	return s.files.Delete(ctx, backend, storage.SanitizeFilename(clienteNome), filename)
}
