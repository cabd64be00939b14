package handler

import (
	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
)

const consultationNotFoundMsg = "Consulta Jurídica não encontrada"

type consultationCreateRequest struct {
	NomeCliente      string `json:"nome_cliente"`
	CPFCliente       string `json:"cpf_cliente"`
	DataConsulta     string `json:"data_consulta"`
	HorarioConsulta  string `json:"horario_consulta"`
	DetalhesConsulta string `json:"detalhes_consulta"`
}

type consultationUpdateRequest struct {
	ConsultaID       int64   `json:"consulta_id"`
	NomeCliente      *string `json:"nome_cliente"`
	CPFCliente       *string `json:"cpf_cliente"`
	DataConsulta     *string `json:"data_consulta"`
	HorarioConsulta  *string `json:"horario_consulta"`
	DetalhesConsulta *string `json:"detalhes_consulta"`
}

// CreateConsultation books a consultation after the conflict checks pass.
func CreateConsultation(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req consultationCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}

		consulta, err := svc.Schedule(c.UserContext(), service.ScheduleInput{
			NomeCliente: req.NomeCliente,
			CPFCliente:  req.CPFCliente,
			Data:        req.DataConsulta,
			Horario:     req.HorarioConsulta,
			Detalhes:    req.DetalhesConsulta,
		})
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		return c.Status(fiber.StatusCreated).JSON(consulta)
	}
}

// UpdateConsultation applies a partial update; unset fields keep their
// current values.
func UpdateConsultation(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req consultationUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Dados informados inválidos ou com erro")
		}
		if req.ConsultaID <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'consulta_id' não fornecido")
		}

		consulta, err := svc.Reschedule(c.UserContext(), req.ConsultaID, service.RescheduleInput{
			NomeCliente: req.NomeCliente,
			CPFCliente:  req.CPFCliente,
			Data:        req.DataConsulta,
			Horario:     req.HorarioConsulta,
			Detalhes:    req.DetalhesConsulta,
		})
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		return c.JSON(consulta)
	}
}

// DeleteConsultation cancels a booking by id.
func DeleteConsultation(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("consulta_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'consulta_id' não fornecido")
		}
		if err := svc.Cancel(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		return writeMessage(c, fiber.StatusOK, "Consulta Jurídica excluída")
	}
}

// GetConsultation returns one consultation by id.
func GetConsultation(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := int64(c.QueryInt("consulta_id"))
		if id <= 0 {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'consulta_id' não fornecido")
		}
		consulta, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		return c.JSON(consulta)
	}
}

// ListConsultations lists consultations, optionally filtered by date,
// client name or CPF (one filter at a time).
func ListConsultations(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consultas, err := svc.Find(c.UserContext(), service.FindFilter{
			Data:        c.Query("data_consulta"),
			NomeCliente: c.Query("nome_cliente"),
			CPFCliente:  c.Query("cpf"),
		})
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		if len(consultas) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhuma consulta encontrada para os parâmetros informados")
		}
		return c.JSON(consultas)
	}
}

// ListConsultationsToday lists consultations for today in the office
// timezone.
func ListConsultationsToday(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consultas, err := svc.FindToday(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		if len(consultas) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhuma consulta encontrada para hoje")
		}
		return c.JSON(consultas)
	}
}

// ListConsultationsBySlot lists consultations at an exact date and time.
func ListConsultationsBySlot(svc service.ConsultationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := c.Query("data_consulta")
		horario := c.Query("horario_consulta")
		if data == "" || horario == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Os parâmetros data e horário são obrigatórios")
		}
		consultas, err := svc.FindBySlot(c.UserContext(), data, horario)
		if err != nil {
			return writeServiceError(c, err, consultationNotFoundMsg)
		}
		if len(consultas) == 0 {
			return writeMessage(c, fiber.StatusNotFound, "Nenhuma consulta encontrada para a data e horário informados")
		}
		return c.JSON(consultas)
	}
}
