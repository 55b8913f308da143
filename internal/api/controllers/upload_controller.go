package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type UploadController struct {
	uploadService services.UploadServiceInterface
}

func NewUploadController(uploadService services.UploadServiceInterface) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// Upload godoc
// @Summary Upload a licence, contract or certificate scan
// @Description PDF, PNG or JPEG only. Returns the URL to store on the account or certificate.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /uploads [post]
// @Router /auth/register/document [post]
func (u *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", "file is required",
			[]utils.FieldError{{Field: "file", Rule: "required"}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read upload")
		return
	}
	defer f.Close()

	res, err := u.uploadService.Save(c.Request.Context(), fh.Size, f)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, res, "File uploaded")
}

// Serve godoc
// @Summary Download an uploaded file
// @Tags Uploads
// @Param name path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /uploads/{name} [get]
func (u *UploadController) Serve(c *gin.Context) {
	path, err := u.uploadService.Resolve(c.Param("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Header("X-Content-Type-Options", "nosniff")
	c.File(path)
}
