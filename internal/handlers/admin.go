package handlers

import (
	"io"
	"net/http"

	"tintaku/internal/services"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps import payloads at 16 MiB.
const maxImportBytes = 16 << 20

type AdminHandler struct {
	cerpen *services.CerpenService
}

func NewAdminHandler(cerpen *services.CerpenService) *AdminHandler {
	return &AdminHandler{cerpen: cerpen}
}

func (h *AdminHandler) Create(c *gin.Context) {
	var in services.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "judul dan isi cerpen wajib diisi")
		return
	}

	item, err := h.cerpen.Create(c.Request.Context(), in)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete removes a story permanently. Unknown ids are a no-op, so the
// endpoint is idempotent.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.cerpen.Delete(c.Request.Context(), c.Param("id")); err != nil {
		JSONError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export serves the whole collection as a downloadable JSON backup.
func (h *AdminHandler) Export(c *gin.Context) {
	data, err := h.cerpen.Export(c.Request.Context())
	if err != nil {
		JSONError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cerpen-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import upserts a JSON array of stories. A malformed payload is rejected
// before any record is written.
func (h *AdminHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		BadRequest(c, "gagal membaca berkas import")
		return
	}

	count, err := h.cerpen.Import(c.Request.Context(), data)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}
