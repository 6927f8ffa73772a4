package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/models"
	"github.com/khabaroff/missing-persons-portal/src/screens"
)

// maxPhotoBytes caps the size of an uploaded photo
const maxPhotoBytes = 10 << 20

// ReportHandler serves the report submission screen
type ReportHandler struct {
	registry *screens.Registry
}

// NewReportHandler creates a new report handler
func NewReportHandler(registry *screens.Registry) *ReportHandler {
	return &ReportHandler{registry: registry}
}

// HandleSubmit handles POST /registration-details (multipart form)
func (h *ReportHandler) HandleSubmit(c *gin.Context) {
	var sub models.ReportSubmission
	if err := c.ShouldBind(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	photo, err := readPhoto(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub.Photo = photo

	view, err := screensOf(c, h.registry).Submission.Submit(c.Request.Context(), sub)
	if err != nil {
		respondError(c, "report", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// readPhoto returns the optional "photo" part, or nil when none was sent
func readPhoto(c *gin.Context) (*models.Upload, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid photo upload")
	}
	if header.Size > maxPhotoBytes {
		return nil, fmt.Errorf("photo must be at most %d MB", maxPhotoBytes>>20)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("invalid photo upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("invalid photo upload")
	}

	return &models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
