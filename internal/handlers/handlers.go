package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/doodle-api/internal/metrics"
	"github.com/Brownie44l1/doodle-api/internal/model"
)

const StatusMessage = "Doodle Recognition API is running"

// Form fields checked for the uploaded image, in order.
var uploadFields = []string{"file", "image"}

type Handler struct {
	models         *model.Holder
	metrics        *metrics.Collector
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewHandler(models *model.Holder, collector *metrics.Collector, logger *zap.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		models:         models,
		metrics:        collector,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": StatusMessage})
}

type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Classes     int    `json:"classes,omitempty"`
	LoadError   string `json:"load_error,omitempty"`
}

// Health handles GET /health. A service without a model is degraded.
func (h *Handler) Health(c *gin.Context) {
	classifier, err := h.models.Classifier()
	if err != nil {
		status := HealthStatus{Status: "degraded"}
		if loadErr := h.models.LoadError(); loadErr != nil {
			status.LoadError = loadErr.Error()
		}
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, HealthStatus{
		Status:      "healthy",
		ModelLoaded: true,
		Classes:     len(classifier.Metadata.Classes),
	})
}

// Predict handles POST /predict/ with a multipart image upload.
func (h *Handler) Predict(c *gin.Context) {
	classifier, err := h.models.Classifier()
	if err != nil {
		h.fail(c, err)
		return
	}

	if c.Request.ContentLength > h.maxUploadBytes {
		h.tooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := formFile(c)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.tooLarge(c)
			return
		}
		h.fail(c, &model.InputError{Reason: "No file uploaded. Use 'file' as the form field name"})
		return
	}

	if !isImageContentType(header.Header.Get("Content-Type")) {
		h.fail(c, &model.InputError{Reason: "File must be an image"})
		return
	}

	data, err := readUpload(header)
	if err != nil {
		h.fail(c, &model.ProcessingError{Stage: "upload", Err: err})
		return
	}
	h.metrics.ObserveUpload(len(data))

	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		h.logger.Debug("Rejected non-image upload",
			zap.String("filename", header.Filename),
			zap.String("detected", mt.String()))
		h.fail(c, &model.InputError{Reason: "File must be an image"})
		return
	}

	h.logger.Debug("Received file",
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(data)))

	ranked, err := classifier.Classify(c.Request.Context(), data)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.succeed(c, ranked)
}

type PredictionRequest struct {
	Image []float32 `json:"image" binding:"required"`
}

// PredictTensor handles POST /predict/tensor with an already preprocessed
// row-major tensor.
func (h *Handler) PredictTensor(c *gin.Context) {
	classifier, err := h.models.Classifier()
	if err != nil {
		h.fail(c, err)
		return
	}

	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, &model.InputError{Reason: "Invalid JSON"})
		return
	}

	ranked, err := classifier.Predict(c.Request.Context(), req.Image)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.succeed(c, ranked)
}

func (h *Handler) succeed(c *gin.Context, ranked []model.Prediction) {
	resp := model.NewPredictionResponse(ranked)
	h.metrics.RecordPrediction(metrics.OutcomeSuccess)
	h.metrics.RecordTopClass(resp.Prediction)

	h.logger.Info("Prediction",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("class", resp.Prediction),
		zap.Float64("confidence", resp.Confidence))

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, err error) {
	apiErr := MapError(err)
	h.metrics.RecordPrediction(apiErr.Outcome)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("Prediction failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}

	respondError(c, apiErr.StatusCode, apiErr.Detail)
}

func (h *Handler) tooLarge(c *gin.Context) {
	h.metrics.RecordPrediction(metrics.OutcomeInvalidInput)
	respondError(c, http.StatusRequestEntityTooLarge, "File too large")
}

func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	var err error
	for _, field := range uploadFields {
		var header *multipart.FileHeader
		header, err = c.FormFile(field)
		if err == nil {
			return header, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, err
}

// isImageContentType accepts image/* and the generic types clients send when
// they do not know the file type; the bytes are sniffed afterwards.
func isImageContentType(contentType string) bool {
	switch {
	case contentType == "", contentType == "application/octet-stream":
		return true
	default:
		return strings.HasPrefix(contentType, "image/")
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
