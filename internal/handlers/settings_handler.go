package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/services"
	"github.com/graficaflow/grafica-api/internal/storage"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// @Summary Get Settings
// @Description Get the company identity used on generated documents
// @Tags Settings
// @Produce json
// @Success 200 {object} models.SystemSettings
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Update Settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.SystemSettings true "Settings Data"
// @Success 200 {object} models.SystemSettings
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var input models.SystemSettings
	if err := BindNestedOrFlat(c, "settings", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Upload Logo
// @Description Store the company logo used on PDFs
// @Tags Settings
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "Logo image (PNG/JPEG)"
// @Success 200 {object} models.SystemSettings
// @Security BearerAuth
// @Router /settings/logo [post]
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo de logo é obrigatório"})
		return
	}
	defer file.Close()

	if header.Size > storage.MaxFileSize() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Arquivo excede o tamanho máximo de 5MB"})
		return
	}
	if !storage.IsValidImageType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Apenas imagens PNG ou JPEG são aceitas"})
		return
	}

	settings, err := h.settingsService.UploadLogo(c.Request.Context(), file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Get Logo
// @Description Serve the stored company logo
// @Tags Settings
// @Produce png
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /settings/logo [get]
func (h *SettingsHandler) ServeLogo(c *gin.Context) {
	path := h.settingsService.LogoPath(c.Request.Context())
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Logo não cadastrada"})
		return
	}
	c.File(path)
}
