package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
)

// Services groups everything the routes need.
type Services struct {
	Consultations service.ConsultationService
	Clients       service.ClientService
	Documents     service.DocumentService
	Filings       service.FilingService
	Users         service.UserService
	Images        service.ImageService
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/consulta", CreateConsultation(svcs.Consultations))
	app.Put("/consulta", UpdateConsultation(svcs.Consultations))
	app.Delete("/consulta", DeleteConsultation(svcs.Consultations))
	app.Get("/consulta", GetConsultation(svcs.Consultations))
	app.Get("/consultas", ListConsultations(svcs.Consultations))
	app.Get("/consultas/hoje", ListConsultationsToday(svcs.Consultations))
	app.Get("/consultas/horario", ListConsultationsBySlot(svcs.Consultations))

	app.Post("/cliente", CreateClient(svcs.Clients))
	app.Put("/cliente", UpdateClient(svcs.Clients))
	app.Delete("/cliente", DeleteClient(svcs.Clients))
	app.Get("/cliente", GetClient(svcs.Clients))
	app.Get("/clientes", ListClients(svcs.Clients))

	app.Post("/documento", CreateDocument(svcs.Documents))
	app.Put("/documento", UpdateDocument(svcs.Documents))
	app.Delete("/documento", DeleteDocument(svcs.Documents))
	app.Get("/documento", GetDocument(svcs.Documents))
	app.Get("/documentos", ListDocuments(svcs.Documents))
	app.Post("/documento/upload", UploadDocument(svcs.Documents))
	app.Put("/documento/armazenamento", ReplaceStoredDocument(svcs.Documents))
	app.Delete("/documento/armazenamento", DeleteStoredDocument(svcs.Documents))

	app.Post("/peca", CreateFiling(svcs.Filings))
	app.Put("/peca", UpdateFiling(svcs.Filings))
	app.Delete("/peca", DeleteFiling(svcs.Filings))
	app.Get("/peca", GetFiling(svcs.Filings))
	app.Get("/pecas", ListFilings(svcs.Filings))
	app.Post("/peca/upload", UploadFiling(svcs.Filings))
	app.Put("/peca/armazenamento", ReplaceStoredFiling(svcs.Filings))
	app.Delete("/peca/armazenamento", DeleteStoredFiling(svcs.Filings))

	app.Post("/user/create", CreateUser(svcs.Users))
	app.Post("/user/authenticate", AuthenticateUser(svcs.Users))
	app.Put("/user", UpdateUser(svcs.Users))
	app.Delete("/user", DeleteUser(svcs.Users))
	app.Get("/user", GetUser(svcs.Users))
	app.Get("/users", ListUsers(svcs.Users))

	app.Post("/upload/image", UploadImage(svcs.Images))
	app.Get("/uploads/images/:filename", DownloadImage(svcs.Images))
}
