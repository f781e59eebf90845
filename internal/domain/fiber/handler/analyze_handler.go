package handler

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pratham08dixit/resume/internal/document"
	"github.com/Pratham08dixit/resume/internal/dto"
	"github.com/Pratham08dixit/resume/internal/middleware"
	"github.com/Pratham08dixit/resume/internal/model"
	"github.com/Pratham08dixit/resume/internal/usecase"
	"github.com/Pratham08dixit/resume/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

const maxResumeSize = 5 * 1024 * 1024

// uploadError carries the status and user message for a rejected upload so
// the handler writes the response exactly once.
type uploadError struct {
	code    int
	message string
	cause   error
}

func (e *uploadError) Error() string {
	return e.message
}

func (e *uploadError) Unwrap() error {
	return e.cause
}

type AnalyzeHandler struct {
	uc *usecase.AnalysisUsecase
}

func NewAnalyzeHandler(uc *usecase.AnalysisUsecase) *AnalyzeHandler {
	return &AnalyzeHandler{uc: uc}
}

func (h *AnalyzeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/analyze", middleware.RateLimiter(1, 4*time.Second), h.Analyze)
	app.Post("/download", h.Download)
	app.Get("/test", h.Test)
}

func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	resumeText, err := h.processFile(c, "resume")
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    ue.code,
				Message: ue.message,
			}, ue.cause)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "could not read resume upload",
		}, err)
	}

	analysis, err := h.uc.Run(c.Context(), resumeText)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "could not analyze resume",
		}, err)
	}

	data := dto.AnalysisDTO{
		ID:              analysis.ID,
		Feedback:        analysis.Feedback.Feedback,
		FeedbackWarning: analysis.Feedback.Warning,
		ImprovedResume:  analysis.ImprovedResume.Value(),
		Guidance:        analysis.Guidance.Value(),
	}
	if !analysis.Feedback.Parsed {
		data.FeedbackRaw = analysis.Feedback.Raw
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze resume",
		Data:    data,
		Meta:    h.displayMetrics(analysis.Feedback),
	})
}

// displayMetrics renders the headline numbers from the feedback, preferring
// the parsed record. Best effort on the raw fallback: an unparseable body
// just yields "N/A" and zero.
func (h *AnalyzeHandler) displayMetrics(result model.FeedbackResult) dto.AnalysisMetaDTO {
	if result.Parsed {
		return dto.AnalysisMetaDTO{
			QualityScore:     result.Feedback.QualityScoreDisplay(),
			SectionsDetected: int64(len(result.Feedback.SectionsDetected)),
		}
	}

	normalized := util.NormalizeModelJSON(result.Raw)

	quality := "N/A"
	if score := gjson.Get(normalized, "quality_score"); score.Exists() {
		quality = fmt.Sprintf("%g/100", score.Float())
	}

	return dto.AnalysisMetaDTO{
		QualityScore:     quality,
		SectionsDetected: gjson.Get(normalized, "sections_detected.#").Int(),
	}
}

func (h *AnalyzeHandler) Download(c *fiber.Ctx) error {
	var req dto.DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	docxBytes, err := document.Write(req.Text)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "could not build document",
		}, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="improved_resume.docx"`)
	return c.Send(docxBytes)
}

func (h *AnalyzeHandler) processFile(c *fiber.Ctx, fieldName string) (string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return "", &uploadError{
			code:    fiber.StatusBadRequest,
			message: fmt.Sprintf("%s file is required", fieldName),
			cause:   err,
		}
	}

	if file.Size > maxResumeSize {
		return "", &uploadError{
			code:    fiber.StatusRequestEntityTooLarge,
			message: fmt.Sprintf("%s file size is too large (max 5MB)", fieldName),
		}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return "", &uploadError{
			code:    fiber.StatusUnsupportedMediaType,
			message: fmt.Sprintf("unsupported %s file type", fieldName),
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", &uploadError{
			code:    fiber.StatusInternalServerError,
			message: fmt.Sprintf("cannot open %s file", fieldName),
			cause:   err,
		}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", &uploadError{
			code:    fiber.StatusInternalServerError,
			message: fmt.Sprintf("cannot read %s file", fieldName),
			cause:   err,
		}
	}

	content, err := util.ExtractResumeText(file.Filename, data)
	if err != nil {
		return "", &uploadError{
			code:    fiber.StatusUnprocessableEntity,
			message: fmt.Sprintf("failed to extract %s text", fieldName),
			cause:   err,
		}
	}

	if strings.TrimSpace(content) == "" {
		return "", &uploadError{
			code:    fiber.StatusUnprocessableEntity,
			message: fmt.Sprintf("could not extract text from %s", fieldName),
		}
	}

	return content, nil
}

func (h *AnalyzeHandler) Test(c *fiber.Ctx) error {
	text, err := h.uc.Test(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to test generator",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success test",
		Data:    text,
	})
}
