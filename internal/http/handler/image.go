package handler

import (
	"github.com/gofiber/fiber/v2"

	"lexapi/internal/service"
)

// UploadImage stores an image in the object store and returns a
// downloadable URL for it.
func UploadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, fh, err := openFormFile(c, "image")
		if err != nil {
			return writeMessage(c, fiber.StatusBadRequest, "Nenhum arquivo foi enviado")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		url, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err, "Imagem não encontrada")
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DownloadImage streams a stored image back to the caller.
func DownloadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")
		if filename == "" {
			return writeMessage(c, fiber.StatusBadRequest, "Parâmetro 'filename' não fornecido")
		}

		rc, info, err := svc.Download(c.UserContext(), "images/"+filename)
		if err != nil {
			return writeServiceError(c, err, "Imagem não encontrada")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(rc, int(info.Size))
	}
}
