package handler

import (
	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
)

const clientNotFoundMsg = "Cliente não encontrado"

type clientCreateRequest struct {
	NomeCliente string `json:"nome_cliente"`
	CPFCliente  string `json:"cpf_cliente"`
}

type clientUpdateRequest struct {
	ClienteID   int64  `json:"cliente_id"`
	NomeCliente string `json:"nome_cliente"`
	CPFCliente  string `json:"cpf_cliente"`
}

// CreateClient registers a client.
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req clientCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		cliente, err := svc.Create(c.UserContext(), req.NomeCliente, req.CPFCliente)
		if err != nil {
			return writeServiceError(c, err, clientNotFoundMsg)
		}
		return c.Status(fiber.StatusCreated).JSON(cliente)
	}
}

// UpdateClient changes a client's name and CPF, refreshing the
// denormalized copies on their consultations.
func UpdateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req clientUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		if req.ClienteID <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'cliente_id' não fornecido")
		}
		cliente, err := svc.Update(c.UserContext(), req.ClienteID, req.NomeCliente, req.CPFCliente)
		if err != nil {
			return writeServiceError(c, err, clientNotFoundMsg)
		}
		return c.JSON(cliente)
	}
}

// DeleteClient removes a client; consultations and documents cascade.
func DeleteClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("cliente_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'cliente_id' não fornecido")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, clientNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Cliente excluído")
	}
}

// GetClient returns one client by id.
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("cliente_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'cliente_id' não fornecido")
		}
		cliente, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, clientNotFoundMsg)
		}
		return c.JSON(cliente)
	}
}

// ListClients lists clients, optionally filtered by name substring or
// exact CPF.
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientes, err := svc.List(c.UserContext(), c.Query("nome"), c.Query("cpf"))
		if err != nil {
			return writeServiceError(c, err, clientNotFoundMsg)
		}
		if len(clientes) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhum cliente encontrado para os parâmetros informados")
		}
		return c.JSON(clientes)
	}
}
