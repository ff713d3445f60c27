package controllers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"slidecraft/internal/logger"
	"slidecraft/services"

	"github.com/gin-gonic/gin"
)

type ImageSaver interface {
	SaveImage(ctx context.Context, fh *multipart.FileHeader) (*services.UploadedImage, error)
}

type UploadController struct {
	uploads ImageSaver
	log     *logger.Logger
}

func NewUploadController(uploads ImageSaver, log *logger.Logger) *UploadController {
	return &UploadController{uploads: uploads, log: log}
}

func (u *UploadController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "No image uploaded")
		return
	}
	img, err := u.uploads.SaveImage(c.Request.Context(), fh)
	if err != nil {
		respondError(c, u.log, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (u *UploadController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "Invalid multipart form")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		badRequest(c, "No images uploaded")
		return
	}
	if len(files) > services.MaxUploadFiles {
		badRequest(c, fmt.Sprintf("At most %d images per request", services.MaxUploadFiles))
		return
	}

	images := make([]*services.UploadedImage, 0, len(files))
	for _, fh := range files {
		img, err := u.uploads.SaveImage(c.Request.Context(), fh)
		if err != nil {
			respondError(c, u.log, err)
			return
		}
		images = append(images, img)
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}
