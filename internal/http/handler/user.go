package handler

import (
	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
)

const userNotFoundMsg = "Usuário não encontrado"

type userCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

type userUpdateRequest struct {
	ID int64 `json:"id"`
	userCreateRequest
}

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser registers a staff account.
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req userCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		user, err := svc.Create(c.UserContext(), service.UserInput{
			Username: req.Username,
			Password: req.Password,
			Name:     req.Name,
			Image:    req.Image,
		})
		if err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// AuthenticateUser checks credentials and issues a signed token.
func AuthenticateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req authenticateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		res, err := svc.Authenticate(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		return c.JSON(res)
	}
}

// UpdateUser applies a partial account update.
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req userUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		if req.ID <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'id' não fornecido")
		}
		user, err := svc.Update(c.UserContext(), req.ID, service.UserInput{
			Username: req.Username,
			Password: req.Password,
			Name:     req.Name,
			Image:    req.Image,
		})
		if err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		return c.JSON(user)
	}
}

// DeleteUser removes a staff account.
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'id' não fornecido")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Usuário excluído")
	}
}

// GetUser returns one staff account by id.
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'id' não fornecido")
		}
		user, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		return c.JSON(user)
	}
}

// ListUsers returns all staff accounts.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, userNotFoundMsg)
		}
		if len(users) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhum usuário encontrado")
		}
		return c.JSON(users)
	}
}
