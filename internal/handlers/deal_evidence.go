package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mutual/internal/escrow"
	"mutual/internal/models"
	"mutual/internal/services/storage"
)

const maxEvidenceSize = 10 << 20

var evidenceTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".txt":  "text/plain; charset=utf-8",
}

var evidenceStatuses = map[models.DealStatus]bool{
	models.DealStatusAccepted:         true,
	models.DealStatusPartialCompleted: true,
	models.DealStatusDisputed:         true,
}

// UploadDealEvidence godoc
// @Summary Загрузить доказательство по сделке
// @Description Владелец проекта или KOL прикладывает файл (jpg, png, pdf, txt до 10 МБ) к принятой или оспариваемой сделке.
// @Tags deals
// @Security Signature
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID сделки"
// @Param file formData file true "файл"
// @Success 201 {object} models.DealEvidence
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /deals/{id}/evidence [post]
func UploadDealEvidence(db *gorm.DB, engine *escrow.Engine, st storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, ok := requireSigner(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		cfg, err := engine.Config(ctx)
		if err != nil {
			writeError(c, err)
			return
		}
		d, err := engine.Deal(ctx, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		if !engine.Authorizer().IsAuthorized(signer, escrow.RoleOwnerOrKol, d, cfg) {
			writeError(c, escrow.ErrUnauthorizedSigner)
			return
		}
		if !evidenceStatuses[d.Status] {
			writeError(c, escrow.ErrInvalidDealStatus)
			return
		}
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
			return
		}
		if file.Size <= 0 || file.Size > maxEvidenceSize {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file too large"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
			return
		}
		defer f.Close()
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		mimeType := http.DetectContentType(buf[:n])
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if evidenceTypes[ext] != mimeType {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file type"})
			return
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "file error"})
			return
		}
		key, err := storage.EvidenceKey(d.ID, file.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "id error"})
			return
		}
		if _, err := st.Upload(ctx, key, f, file.Size, mimeType); err != nil {
			log.Errorf("uploading evidence for deal %s: %s", d.ID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "storage error"})
			return
		}
		ev := models.DealEvidence{
			DealID:      d.ID,
			Uploader:    signer,
			FileName:    filepath.Base(file.Filename),
			ObjectKey:   key,
			ContentType: mimeType,
			Size:        file.Size,
		}
		if err := db.Create(&ev).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		if url, err := st.GetURL(ctx, key, time.Hour); err == nil {
			ev.URL = url
		}
		c.JSON(http.StatusCreated, ev)
	}
}

// ListDealEvidence godoc
// @Summary Доказательства по сделке
// @Description Стороны сделки и админ получают список файлов с временными ссылками на час.
// @Tags deals
// @Security Signature
// @Produce json
// @Param id path string true "ID сделки"
// @Success 200 {array} models.DealEvidence
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /deals/{id}/evidence [get]
func ListDealEvidence(db *gorm.DB, engine *escrow.Engine, st storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := loadViewableDeal(c, engine)
		if !ok {
			return
		}
		var list []models.DealEvidence
		if err := db.Where("deal_id = ?", d.ID).Order("created_at asc").Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "db error"})
			return
		}
		for i := range list {
			url, err := st.GetURL(c.Request.Context(), list[i].ObjectKey, time.Hour)
			if err != nil {
				log.Warnf("presigning %s: %s", list[i].ObjectKey, err)
				continue
			}
			list[i].URL = url
		}
		c.JSON(http.StatusOK, list)
	}
}
