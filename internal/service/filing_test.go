package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexapi/internal/model"
	repoMocks "lexapi/internal/repository/mocks"
	"lexapi/internal/storage"
	storeMocks "lexapi/internal/storage/mocks"
)

func TestValidateFilingInput(t *testing.T) {
	tests := []struct {
		name    string
		in      FilingInput
		wantErr error
	}{
		{"missing name", FilingInput{Categoria: "peticoes", Localizacao: "/x"}, ErrMissingParams},
		{"missing category", FilingInput{NomePeca: "inicial", Localizacao: "/x"}, ErrMissingParams},
		{"no location", FilingInput{NomePeca: "inicial", Categoria: "peticoes"}, ErrMissingParams},
		{"valid", FilingInput{NomePeca: "inicial", Categoria: "peticoes", URL: "smb://x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFilingInput(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilingService_Create(t *testing.T) {
	ctx := context.Background()

	filings := new(repoMocks.MockFilingRepository)
	filings.On("Create", ctx, mock.MatchedBy(func(f *model.Filing) bool {
		return f.NomePeca == "inicial" && f.Categoria == "peticoes"
	})).Return(&model.Filing{ID: 1, NomePeca: "inicial", Categoria: "peticoes"}, nil).Once()

	svc := NewFilingService(filings, new(storeMocks.MockFileStore))

	created, err := svc.Create(ctx, FilingInput{NomePeca: "inicial", Categoria: "peticoes", Localizacao: "/x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	filings.AssertExpectations(t)
}

func TestFilingService_FileOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("upload uses the sanitized category as bucket", func(t *testing.T) {
		files := new(storeMocks.MockFileStore)
		r := strings.NewReader("peca")
		files.On("Upload", ctx, r, storage.BackendSamba, "peticoes_iniciais", "inicial.pdf").
			Return(&storage.StoredFile{Filename: "inicial.pdf", URL: "smb://share/peticoes_iniciais/inicial.pdf"}, nil).Once()

		svc := NewFilingService(new(repoMocks.MockFilingRepository), files)

		stored, err := svc.Upload(ctx, r, storage.BackendSamba, "peticoes iniciais", "inicial.pdf")
		require.NoError(t, err)
		assert.Equal(t, "inicial.pdf", stored.Filename)
		files.AssertExpectations(t)
	})

	t.Run("replace surfaces a failed delete without uploading", func(t *testing.T) {
		files := new(storeMocks.MockFileStore)
		r := strings.NewReader("peca")
		files.On("Replace", ctx, r, storage.BackendLocal, storage.BackendLocal, "peticoes", "antiga.pdf", "nova.pdf").
			Return(nil, storage.ErrFileNotFound).Once()

		svc := NewFilingService(new(repoMocks.MockFilingRepository), files)

		_, err := svc.ReplaceFile(ctx, r, storage.BackendLocal, storage.BackendLocal, "peticoes", "antiga.pdf", "nova.pdf")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
		files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing category", func(t *testing.T) {
		svc := NewFilingService(new(repoMocks.MockFilingRepository), new(storeMocks.MockFileStore))

		err := svc.RemoveFile(ctx, storage.BackendLocal, "", "inicial.pdf")
		assert.ErrorIs(t, err, ErrMissingParams)
	})
}
