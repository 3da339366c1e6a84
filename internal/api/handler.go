// Package api exposes the conversion pipeline over HTTP.
package api

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/export"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/pipeline"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/version"
)

// ConvertResponse is the JSON response from /api/convert.
type ConvertResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Template  string            `json:"template,omitempty"`
	Order     *models.Order     `json:"order,omitempty"`
	ItemCount int               `json:"itemCount"`
	Warnings  []models.LineItem `json:"warnings,omitempty"`
	Duplicate bool              `json:"duplicate,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	Processor *pipeline.Processor
	Writer    *export.Writer
	Registry  pipeline.DuplicateRegistry
	Logger    *slog.Logger
}

func NewServer(proc *pipeline.Processor, writer *export.Writer, registry pipeline.DuplicateRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Processor: proc, Writer: writer, Registry: registry, Logger: logger}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	app.Get("/api/health", s.HandleHealth)
	app.Post("/api/convert", s.HandleConvert)
	app.Post("/api/export", s.HandleExport)
	return app
}

func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version.Version,
	})
}

// HandleConvert accepts a multipart PDF upload (form field "file") and
// returns the parsed, resolved and normalized order. An optional "template"
// field forces a template instead of auto-detecting; an optional
// "extractedText" field supplies client-side extracted text and skips
// server-side PDF extraction.
func (s *Server) HandleConvert(c *fiber.Ctx) error {
	force, err := templateParam(c.FormValue("template"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	filename := "upload.pdf"
	text := strings.TrimSpace(c.FormValue("extractedText"))

	if text == "" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
		}
		filename = fileHeader.Filename

		tmp, err := os.CreateTemp("", "order-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()

		src, err := fileHeader.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Failed to read uploaded file.")
		}
		defer src.Close()
		if _, err := io.Copy(tmp, src); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}
		tmp.Close()

		order, err := s.Processor.ProcessFile(c.UserContext(), tmp.Name(), force)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
		}
		order.SourceFilename = filename
		return s.respondOrder(c, order)
	}

	order, err := s.Processor.ProcessText(c.UserContext(), text, filename, force)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}
	return s.respondOrder(c, order)
}

func (s *Server) respondOrder(c *fiber.Ctx, order *models.Order) error {
	resp := ConvertResponse{
		Success:   true,
		Template:  string(order.TemplateType),
		Order:     order,
		ItemCount: len(order.LineItems),
		Warnings:  order.Warnings(),
		Version:   version.Version,
	}
	if s.Registry != nil && order.PurchaseOrderNumber != "" {
		seen, err := s.Registry.Has(c.UserContext(), order.PurchaseOrderNumber)
		if err == nil && seen {
			resp.Duplicate = true
		}
	}
	return c.JSON(resp)
}

// HandleExport accepts assembled orders as JSON and returns the XLSX import
// workbook. Pre-flight issues block the export with a 422 unless the
// "force" query parameter is set.
func (s *Server) HandleExport(c *fiber.Ctx) error {
	var orders []*models.Order
	if err := c.BodyParser(&orders); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid orders payload: %v", err))
	}

	ctx := c.UserContext()
	if c.Query("force") != "true" {
		issues, err := s.Writer.Preflight(ctx, orders)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		if len(issues) > 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   "pre-flight validation failed",
				"issues":  issues,
			})
		}
	}

	data, err := s.Writer.WriteXLSX(ctx, orders)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("XLSX generation failed: %v", err))
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	return c.Send(data)
}

func templateParam(raw string) (models.TemplateType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "standard":
		return models.TemplateStandard, nil
	case "consolidated":
		return models.TemplateConsolidated, nil
	case "pickingnote", "picking-note", "picking":
		return models.TemplatePickingNote, nil
	default:
		return "", fmt.Errorf("unknown template %q; use standard, consolidated, or pickingnote", raw)
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
