package handler

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
	"lexapi/internal/storage"
)

const documentNotFoundMsg = "Documento não encontrado"

type documentCreateRequest struct {
	Nome        string `json:"documento_nome"`
	Localizacao string `json:"documento_localizacao"`
	URL         string `json:"documento_url"`
	ClienteID   int64  `json:"cliente_id"`
	ConsultaID  *int64 `json:"consulta_id"`
}

type documentUpdateRequest struct {
	ID int64 `json:"id"`
	documentCreateRequest
}

func (r documentCreateRequest) toInput() service.DocumentInput {
	return service.DocumentInput{
		Nome:        r.Nome,
		Localizacao: r.Localizacao,
		URL:         r.URL,
		ClienteID:   r.ClienteID,
		ConsultaID:  r.ConsultaID,
	}
}

// openFormFile pulls the named multipart file from the request. A nil
// header means the field was absent.
func openFormFile(c *fiber.Ctx, field string) (multipart.File, *multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return f, fh, nil
}

// CreateDocument persists a document metadata row.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		doc, err := svc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// UpdateDocument replaces a document's metadata fields.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		if req.ID <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'id' não fornecido")
		}
		doc, err := svc.Update(c.UserContext(), req.ID, req.toInput())
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a metadata row; the physical file is untouched.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("documento_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'documento_id' não fornecido")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Documento excluído")
	}
}

// GetDocument returns one document by id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("documento_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'documento_id' não fornecido")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return c.JSON(doc)
	}
}

// ListDocuments returns all documents.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		if len(docs) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhum documento encontrado")
		}
		return c.JSON(docs)
	}
}

// UploadDocument stores a physical file under the client's folder on the
// chosen backend. When cliente_id is also supplied the metadata row is
// created in the same request from the upload result.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backendLabel := c.FormValue("local_ou_samba")
		nomeCliente := c.FormValue("nome_cliente")
		if backendLabel == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'local_ou_samba' não fornecido")
		}
		if nomeCliente == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'nome_cliente' não fornecido")
		}
		backend, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}

		f, fh, err := openFormFile(c, "documento")
		if err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
		}
		defer f.Close()

		stored, err := svc.Upload(c.UserContext(), f, backend, nomeCliente, fh.Filename)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}

		if clienteID, _ := strconv.ParseInt(c.FormValue("cliente_id"), 10, 64); clienteID > 0 {
			nome := c.FormValue("documento_nome")
			if nome == "" {
				nome = stored.Filename
			}
			doc, err := svc.FileDocument(c.UserContext(), service.DocumentInput{
				Nome:      nome,
				ClienteID: clienteID,
			}, stored)
			if err != nil {
				return writeServiceError(c, err, documentNotFoundMsg)
			}
			return c.Status(fiber.StatusCreated).JSON(doc)
		}

		return c.JSON(fiber.Map{
			"filename":              stored.Filename,
			"documento_localizacao": stored.Localizacao,
			"documento_url":         stored.URL,
		})
	}
}

// ReplaceStoredDocument replaces a document's physical file and updates
// the metadata row's location to match. The old file must be deleted
// before the new one is written.
func ReplaceStoredDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := strconv.ParseInt(c.FormValue("documento_id"), 10, 64)
		backendLabel := c.FormValue("local_ou_samba")
		filenameAntigo := c.FormValue("filename_antigo")
		if id <= 0 || backendLabel == "" || filenameAntigo == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetros obrigatórios não fornecidos")
		}

		backendNew, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		backendOld := backendNew
		if label := c.FormValue("local_ou_samba_antigo"); label != "" {
			if backendOld, err = storage.ParseBackend(label); err != nil {
				return writeServiceError(c, err, documentNotFoundMsg)
			}
		}

		f, fh, err := openFormFile(c, "documento")
		if err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
		}
		defer f.Close()

		doc, err := svc.Refile(c.UserContext(), id, f, backendNew, backendOld, filenameAntigo, fh.Filename)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return c.JSON(doc)
	}
}

// DeleteStoredDocument removes a physical file from the chosen backend.
func DeleteStoredDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backendLabel := c.Query("local_ou_samba")
		nomeCliente := c.Query("nome_cliente")
		filename := c.Query("filename")
		if backendLabel == "" || nomeCliente == "" || filename == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetros obrigatórios não fornecidos")
		}
		backend, err := storage.ParseBackend(backendLabel)
		if err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		if err := svc.RemoveFile(c.UserContext(), backend, nomeCliente, filename); err != nil {
			return writeServiceError(c, err, documentNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Documento excluído do armazenamento")
	}
}
