package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexapi/internal/model"
	"lexapi/internal/service"
	serviceMocks "lexapi/internal/service/mocks"
	"lexapi/internal/storage"
)

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body messagePayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Mensagem
}

func jsonRequest(method, target string, payload any) *http.Request {
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sampleConsultation() *model.Consultation {
	return &model.Consultation{
		ID:              1,
		NomeCliente:     "Maria Silva",
		CPFCliente:      "12345678901",
		DataConsulta:    model.Date{Time: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		HorarioConsulta: model.TimeOfDay{Time: time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC)},
		ClienteID:       7,
	}
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateConsultation(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsultationService)
	app := fiber.New()
	app.Post("/consulta", CreateConsultation(mockSvc))

	payload := map[string]string{
		"nome_cliente":     "Maria Silva",
		"cpf_cliente":      "12345678901",
		"data_consulta":    "15/09/2026",
		"horario_consulta": "10:00",
	}

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Schedule", mock.Anything, service.ScheduleInput{
			NomeCliente: "Maria Silva",
			CPFCliente:  "12345678901",
			Data:        "15/09/2026",
			Horario:     "10:00",
		}).Return(sampleConsultation(), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/consulta", payload))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Consultation
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(1), result.ID)
		assert.Equal(t, "15/09/2026", result.DataConsulta.String())
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing params", func(t *testing.T) {
		mockSvc.On("Schedule", mock.Anything, mock.Anything).Return(nil, service.ErrMissingParams).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/consulta", map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Faltam parâmetros para realizar a operação", decodeMessage(t, resp))
	})

	t.Run("invalid data", func(t *testing.T) {
		mockSvc.On("Schedule", mock.Anything, mock.Anything).Return(nil, service.ErrValidation).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/consulta", payload))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "Dados informados inválidos ou com erro", decodeMessage(t, resp))
	})

	t.Run("day conflict", func(t *testing.T) {
		mockSvc.On("Schedule", mock.Anything, mock.Anything).Return(nil, service.ErrDayConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/consulta", payload))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Já existe uma consulta agendada para este CPF nesta data", decodeMessage(t, resp))
	})

	t.Run("period conflict", func(t *testing.T) {
		mockSvc.On("Schedule", mock.Anything, mock.Anything).Return(nil, service.ErrPeriodConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/consulta", payload))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Já existe uma consulta agendada para este CPF neste período", decodeMessage(t, resp))
	})
}

func TestUpdateConsultation(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsultationService)
	app := fiber.New()
	app.Put("/consulta", UpdateConsultation(mockSvc))

	t.Run("partial update", func(t *testing.T) {
		mockSvc.On("Reschedule", mock.Anything, int64(1), mock.MatchedBy(func(in service.RescheduleInput) bool {
			return in.Horario != nil && *in.Horario == "14:00" && in.NomeCliente == nil
		})).Return(sampleConsultation(), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/consulta", map[string]any{
			"consulta_id":      1,
			"horario_consulta": "14:00",
		}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/consulta", map[string]any{"horario_consulta": "14:00"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Parâmetro 'consulta_id' não fornecido", decodeMessage(t, resp))
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Reschedule", mock.Anything, int64(99), mock.Anything).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/consulta", map[string]any{"consulta_id": 99}))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Consulta Jurídica não encontrada", decodeMessage(t, resp))
	})
}

func TestDeleteConsultation(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsultationService)
	app := fiber.New()
	app.Delete("/consulta", DeleteConsultation(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Cancel", mock.Anything, int64(5)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/consulta?consulta_id=5", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Consulta Jurídica excluída", decodeMessage(t, resp))
	})

	t.Run("missing id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/consulta", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Cancel", mock.Anything, int64(99)).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/consulta?consulta_id=99", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListConsultations(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsultationService)
	app := fiber.New()
	app.Get("/consultas", ListConsultations(mockSvc))

	t.Run("filtered by date", func(t *testing.T) {
		mockSvc.On("Find", mock.Anything, service.FindFilter{Data: "15/09/2026"}).
			Return([]model.Consultation{*sampleConsultation()}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/consultas?data_consulta=15%2F09%2F2026", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Consultation
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty result is 404", func(t *testing.T) {
		mockSvc.On("Find", mock.Anything, mock.Anything).Return([]model.Consultation{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/consultas?cpf=00000000000", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Nenhuma consulta encontrada para os parâmetros informados", decodeMessage(t, resp))
	})
}

func TestListConsultationsBySlot(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsultationService)
	app := fiber.New()
	app.Get("/consultas/horario", ListConsultationsBySlot(mockSvc))

	t.Run("both params required", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/consultas/horario?data_consulta=15%2F09%2F2026", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Os parâmetros data e horário são obrigatórios", decodeMessage(t, resp))
	})

	t.Run("success", func(t *testing.T) {
		mockSvc.On("FindBySlot", mock.Anything, "15/09/2026", "10:00").
			Return([]model.Consultation{*sampleConsultation()}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/consultas/horario?data_consulta=15%2F09%2F2026&horario_consulta=10%3A00", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateClient(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Post("/cliente", CreateClient(mockSvc))

	t.Run("created", func(t *testing.T) {
		cliente := &model.Client{ID: 7, NomeCliente: "Maria Silva", CPFCliente: "12345678901"}
		mockSvc.On("Create", mock.Anything, "Maria Silva", "12345678901").Return(cliente, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/cliente", map[string]string{
			"nome_cliente": "Maria Silva",
			"cpf_cliente":  "12345678901",
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate cpf", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrDuplicateCPF).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/cliente", map[string]string{
			"nome_cliente": "Maria Silva",
			"cpf_cliente":  "12345678901",
		}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Já existe um cliente cadastrado com este CPF", decodeMessage(t, resp))
	})
}

func TestListClients(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Get("/clientes", ListClients(mockSvc))

	t.Run("empty result is 404", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "Zé", "").Return([]model.Client{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/clientes?nome=Z%C3%A9", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Nenhum cliente encontrado para os parâmetros informados", decodeMessage(t, resp))
	})
}

func multipartForm(t *testing.T, fileField, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		part.Write([]byte("conteudo do arquivo"))
	}
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documento/upload", UploadDocument(mockSvc))

	t.Run("stores the file", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"local_ou_samba": "local",
			"nome_cliente":   "Maria Silva",
		})

		stored := &storage.StoredFile{Filename: "contrato.pdf", Localizacao: "/data/Maria_Silva/contrato.pdf"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, storage.BackendLocal, "Maria Silva", "contrato.pdf").
			Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "contrato.pdf", result["filename"])
		assert.Equal(t, "/data/Maria_Silva/contrato.pdf", result["documento_localizacao"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("creates metadata when cliente_id is given", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"local_ou_samba": "samba",
			"nome_cliente":   "Maria Silva",
			"cliente_id":     "7",
			"documento_nome": "Contrato de honorários",
		})

		stored := &storage.StoredFile{Filename: "contrato.pdf", URL: "smb://servidor/documentos/Maria_Silva/contrato.pdf"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, storage.BackendSamba, "Maria Silva", "contrato.pdf").
			Return(stored, nil).Once()
		mockSvc.On("FileDocument", mock.Anything, service.DocumentInput{
			Nome:      "Contrato de honorários",
			ClienteID: 7,
		}, stored).Return(&model.Document{ID: 11, Nome: "Contrato de honorários"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing backend", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{"nome_cliente": "Maria Silva"})

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Parâmetro 'local_ou_samba' não fornecido", decodeMessage(t, resp))
	})

	t.Run("invalid backend", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"local_ou_samba": "ftp",
			"nome_cliente":   "Maria Silva",
		})

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Parâmetro 'local_ou_samba' inválido", decodeMessage(t, resp))
	})

	t.Run("no file", func(t *testing.T) {
		body, ct := multipartForm(t, "", "", map[string]string{
			"local_ou_samba": "local",
			"nome_cliente":   "Maria Silva",
		})

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Nenhum arquivo foi enviado", decodeMessage(t, resp))
	})

	t.Run("disallowed extension", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "script.exe", map[string]string{
			"local_ou_samba": "local",
			"nome_cliente":   "Maria Silva",
		})

		mockSvc.On("Upload", mock.Anything, mock.Anything, storage.BackendLocal, "Maria Silva", "script.exe").
			Return(nil, storage.ErrExtNotAllowed).Once()

		req := httptest.NewRequest(http.MethodPost, "/documento/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Tipo de arquivo não permitido", decodeMessage(t, resp))
	})
}

func TestReplaceStoredDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Put("/documento/armazenamento", ReplaceStoredDocument(mockSvc))

	t.Run("replaces across backends", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"documento_id":          "11",
			"local_ou_samba":        "samba",
			"local_ou_samba_antigo": "local",
			"filename_antigo":       "contrato.pdf",
		})

		mockSvc.On("Refile", mock.Anything, int64(11), mock.Anything, storage.BackendSamba, storage.BackendLocal, "contrato.pdf", "contrato.pdf").
			Return(&model.Document{ID: 11}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/documento/armazenamento", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("old backend defaults to the new one", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"documento_id":    "11",
			"local_ou_samba":  "local",
			"filename_antigo": "contrato.pdf",
		})

		mockSvc.On("Refile", mock.Anything, int64(11), mock.Anything, storage.BackendLocal, storage.BackendLocal, "contrato.pdf", "contrato.pdf").
			Return(&model.Document{ID: 11}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/documento/armazenamento", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("replacement keeps its own filename", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato_v2.docx", map[string]string{
			"documento_id":    "11",
			"local_ou_samba":  "local",
			"filename_antigo": "contrato.pdf",
		})

		mockSvc.On("Refile", mock.Anything, int64(11), mock.Anything, storage.BackendLocal, storage.BackendLocal, "contrato.pdf", "contrato_v2.docx").
			Return(&model.Document{ID: 11}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/documento/armazenamento", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("old file missing", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"documento_id":    "11",
			"local_ou_samba":  "local",
			"filename_antigo": "sumiu.pdf",
		})

		mockSvc.On("Refile", mock.Anything, int64(11), mock.Anything, storage.BackendLocal, storage.BackendLocal, "sumiu.pdf", "contrato.pdf").
			Return(nil, storage.ErrFileNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/documento/armazenamento", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Arquivo não encontrado no armazenamento", decodeMessage(t, resp))
	})

	t.Run("missing required field", func(t *testing.T) {
		body, ct := multipartForm(t, "documento", "contrato.pdf", map[string]string{
			"local_ou_samba": "local",
		})

		req := httptest.NewRequest(http.MethodPut, "/documento/armazenamento", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteStoredDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documento/armazenamento", DeleteStoredDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("RemoveFile", mock.Anything, storage.BackendLocal, "Maria Silva", "contrato.pdf").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete,
			"/documento/armazenamento?local_ou_samba=local&nome_cliente=Maria+Silva&filename=contrato.pdf", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Documento excluído do armazenamento", decodeMessage(t, resp))
	})

	t.Run("storage fault", func(t *testing.T) {
		stErr := &storage.StorageError{Op: "delete", Backend: storage.BackendSamba, Err: errors.New("share unreachable")}
		mockSvc.On("RemoveFile", mock.Anything, storage.BackendSamba, "Maria Silva", "contrato.pdf").Return(stErr).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete,
			"/documento/armazenamento?local_ou_samba=samba&nome_cliente=Maria+Silva&filename=contrato.pdf", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Erro no armazenamento: share unreachable", decodeMessage(t, resp))
	})
}

func TestCreateUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/user/create", CreateUser(mockSvc))

	t.Run("created without password in response", func(t *testing.T) {
		user := &model.User{ID: 42, Username: "ana", Name: "Ana", PasswordHash: "never-leaks"}
		mockSvc.On("Create", mock.Anything, service.UserInput{Username: "ana", Password: "s3nha", Name: "Ana"}).
			Return(user, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/user/create", map[string]string{
			"username": "ana",
			"password": "s3nha",
			"name":     "Ana",
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ana", result["username"])
		assert.NotContains(t, result, "password_hash")
		mockSvc.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrUsernameTaken).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/user/create", map[string]string{
			"username": "ana",
			"password": "s3nha",
		}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Nome de usuário já está em uso", decodeMessage(t, resp))
	})
}

func TestAuthenticateUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/user/authenticate", AuthenticateUser(mockSvc))

	t.Run("issues a token", func(t *testing.T) {
		mockSvc.On("Authenticate", mock.Anything, "ana", "s3nha").
			Return(&service.AuthResult{UserID: 42, Token: "signed.jwt.token"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/user/authenticate", map[string]string{
			"username": "ana",
			"password": "s3nha",
		}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.AuthResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(42), result.UserID)
		assert.Equal(t, "signed.jwt.token", result.Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockSvc.On("Authenticate", mock.Anything, "ana", "errada").
			Return(nil, service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/user/authenticate", map[string]string{
			"username": "ana",
			"password": "errada",
		}))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Dados de usuário ou senha inválidos", decodeMessage(t, resp))
	})
}

func TestUploadImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockImageService)
	app := fiber.New()
	app.Post("/upload/image", UploadImage(mockSvc))

	t.Run("returns the public url", func(t *testing.T) {
		body, ct := multipartForm(t, "image", "perfil.png", nil)

		mockSvc.On("Upload", mock.Anything, mock.Anything, "perfil.png", mock.Anything, mock.Anything).
			Return("http://cdn.local/images/perfil.png", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload/image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "http://cdn.local/images/perfil.png", result["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/upload/image", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockImageService)
	app := fiber.New()
	app.Get("/uploads/images/:filename", DownloadImage(mockSvc))

	t.Run("streams the object", func(t *testing.T) {
		content := "fake image bytes"
		rc := io.NopCloser(strings.NewReader(content))
		info := storage.ObjectInfo{Key: "images/perfil.png", Size: int64(len(content)), ContentType: "image/png"}
		mockSvc.On("Download", mock.Anything, "images/perfil.png").Return(rc, info, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/images/perfil.png", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(data))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "images/sumiu.png").
			Return(nil, storage.ObjectInfo{}, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/images/sumiu.png", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Consultations: new(serviceMocks.MockConsultationService),
		Clients:       new(serviceMocks.MockClientService),
		Documents:     new(serviceMocks.MockDocumentService),
		Filings:       new(serviceMocks.MockFilingService),
		Users:         new(serviceMocks.MockUserService),
		Images:        new(serviceMocks.MockImageService),
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nao-existe", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Recurso não encontrado", decodeMessage(t, resp))
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPatch, "/consulta", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "Método não permitido", decodeMessage(t, resp))
	})
}
