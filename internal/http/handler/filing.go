package handler

import (
	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
	"lexapi/internal/storage"
)

const filingNotFoundMsg = "Peça processual não encontrada"

type filingCreateRequest struct {
	NomePeca    string `json:"nome_peca"`
	Categoria   string `json:"categoria"`
	Localizacao string `json:"documento_localizacao"`
	URL         string `json:"documento_url"`
}

type filingUpdateRequest struct {
	ID int64 `json:"id"`
	filingCreateRequest
}

func (r filingCreateRequest) toInput() service.FilingInput {
	return service.FilingInput{
		NomePeca:    r.NomePeca,
		Categoria:   r.Categoria,
		Localizacao: r.Localizacao,
		URL:         r.URL,
	}
}

// CreateFiling persists a procedural filing metadata row.
func CreateFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req filingCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		peca, err := svc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return c.Status(fiber.StatusCreated).JSON(peca)
	}
}

// UpdateFiling replaces a filing's metadata fields.
func UpdateFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req filingUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		if req.ID <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'id' não fornecido")
		}
		peca, err := svc.Update(c.UserContext(), req.ID, req.toInput())
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return c.JSON(peca)
	}
}

// DeleteFiling removes a filing metadata row.
func DeleteFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("peca_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'peca_id' não fornecido")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Peça processual excluída")
	}
}

// GetFiling returns one filing by id.
func GetFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("peca_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'peca_id' não fornecido")
		}
		peca, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return c.JSON(peca)
	}
}

// ListFilings returns all filings.
func ListFilings(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pecas, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		if len(pecas) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhuma peça processual encontrada")
		}
		return c.JSON(pecas)
	}
}

// UploadFiling stores a physical file under the category folder on the
// chosen backend.
func UploadFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backendLabel := c.FormValue("local_ou_samba")
		categoria := c.FormValue("categoria")
		if backendLabel == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'local_ou_samba' não fornecido")
		}
		if categoria == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'categoria' não fornecido")
		}
		backend, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}

		f, fh, err := openFormFile(c, "documento")
		if err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
		}
		defer f.Close()

		stored, err := svc.Upload(c.UserContext(), f, backend, categoria, fh.Filename)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return c.JSON(fiber.Map{
			"filename":              stored.Filename,
			"documento_localizacao": stored.Localizacao,
			"documento_url":         stored.URL,
		})
	}
}

// ReplaceStoredFiling swaps a filing's physical file: the old one is
// deleted first, and the upload only proceeds after a successful delete.
func ReplaceStoredFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backendLabel := c.FormValue("local_ou_samba")
		categoria := c.FormValue("categoria")
		filenameAntigo := c.FormValue("filename_antigo")
		if backendLabel == "" || categoria == "" || filenameAntigo == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetros obrigatórios não fornecidos")
		}

		backendNew, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		backendOld := backendNew
		if label := c.FormValue("local_ou_samba_antigo"); label != "" {
			if backendOld, err = storage.ParseBackend(label); err != nil {
				return writeServiceError(c, err, filingNotFoundMsg)
			}
		}

		f, fh, err := openFormFile(c, "documento")
		if err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
		}
		defer f.Close()

		stored, err := svc.ReplaceFile(c.UserContext(), f, backendNew, backendOld, categoria, filenameAntigo, fh.Filename)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return c.JSON(fiber.Map{
			"filename":              stored.Filename,
			"documento_localizacao": stored.Localizacao,
			"documento_url":         stored.URL,
		})
	}
}

// DeleteStoredFiling removes a physical file from the category folder.
func DeleteStoredFiling(svc service.FilingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backendLabel := c.Query("local_ou_samba")
		categoria := c.Query("categoria")
		filename := c.Query("filename")
		if backendLabel == "" || categoria == "" || filename == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetros obrigatórios não fornecidos")
		}
		backend, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		if err := svc.RemoveFile(c.UserContext(), backend, categoria, filename); err != nil {
			return writeServiceError(c, err, filingNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Peça processual excluída do armazenamento")
	}
}
