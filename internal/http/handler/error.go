package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
	"lexapi/internal/storage"
)

// messagePayload is the error/confirmation envelope used across the API.
type messagePayload struct {
	Mensagem string `json:"mensagem"`
}

func writeMessage(c *fiber.Ctx, status int, mensagem string) error {
	return c.Status(status).JSON(messagePayload{Mensagem: mensagem})
}

// writeServiceError translates the service and storage error taxonomy
// into HTTP statuses. notFoundMsg names the missing resource; everything
// else has one fixed message per sentinel.
func writeServiceError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var storErr *storage.StorageError

	switch {
	case errors.Is(err, service.ErrMissingParams):
		return writeMessage(c, fiber.StatusBadRequest, "Faltam parâmetros para realizar a operação")
	case errors.Is(err, service.ErrValidation):
		return writeMessage(c, fiber.StatusUnprocessableEntity, "Dados informados inválidos ou com erro")
	case errors.Is(err, service.ErrDayConflict):
		return writeMessage(c, fiber.StatusConflict, "Já existe uma consulta agendada para este CPF nesta data")
	case errors.Is(err, service.ErrPeriodConflict):
		return writeMessage(c, fiber.StatusConflict, "Já existe uma consulta agendada para este CPF neste período")
	case errors.Is(err, service.ErrDuplicateCPF):
		return writeMessage(c, fiber.StatusConflict, "Já existe um cliente cadastrado com este CPF")
	case errors.Is(err, service.ErrUsernameTaken):
		return writeMessage(c, fiber.StatusConflict, "Nome de usuário já está em uso")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeMessage(c, fiber.StatusUnauthorized, "Dados de usuário ou senha inválidos")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return writeMessage(c, fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrInvalidBackend):
		return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'local_ou_samba' inválido")
	case errors.Is(err, storage.ErrNoFile), errors.Is(err, storage.ErrEmptyFilename):
		return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
	case errors.Is(err, storage.ErrExtNotAllowed):
		return writeMessage(c, fiber.StatusBadRequest, "Tipo de arquivo não permitido")
	case errors.Is(err, storage.ErrFileNotFound):
		return writeMessage(c, fiber.StatusNotFound, "Arquivo não encontrado no armazenamento")
	case errors.As(err, &storErr):
		return writeMessage(c, fiber.StatusInternalServerError, "Erro no armazenamento: "+storErr.Err.Error())
	default:
		return writeMessage(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}
}

// ErrorHandler returns the Fiber global error handler, covering errors
// that never reach a route handler (404s, method mismatches, panics).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeMessage(c, status, "Requisição inválida")
		case fiber.StatusNotFound:
			return writeMessage(c, status, "Recurso não encontrado")
		case fiber.StatusMethodNotAllowed:
			return writeMessage(c, status, "Método não permitido")
		default:
			return writeMessage(c, status, "Erro interno do servidor")
		}
	}
}
