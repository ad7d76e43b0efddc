package controllers

import (
	"io"
	"mime/multipart"
	"strings"

	"checkin/dto"
	"checkin/response"
	"checkin/services"
	"checkin/services/logger"
	"checkin/validator"

	"github.com/gin-gonic/gin"
)

// User facing messages
const (
	MsgUploadFailed = "Erro ao salvar imagem"
	MsgCreateFailed = "Erro ao salvar check-in"
	MsgListFailed   = "Erro ao buscar check-ins"
	MsgDeleteFailed = "Erro ao deletar check-in"
	MsgDeleted      = "Check-in removido com sucesso"
)

// Multipart field names
const (
	FieldUploadFile  = "foto"
	FieldCheckinFile = "fotos"
)

type CheckinController struct {
	svc    *services.CheckinService
	logger logger.Logger
}

func NewCheckinController(svc *services.CheckinService, log logger.Logger) *CheckinController {
	return &CheckinController{svc: svc, logger: log}
}

// Upload handles POST /upload with a single multipart file "foto"
func (cc *CheckinController) Upload(c *gin.Context) {
	file, err := c.FormFile(FieldUploadFile)
	if err != nil {
		cc.log(c).Warn("upload without %q file: %v", FieldUploadFile, err)
		response.ServerError(c, MsgUploadFailed)
		return
	}

	src, err := file.Open()
	if err != nil {
		cc.log(c).Error("open uploaded file %s: %v", file.Filename, err)
		response.ServerError(c, MsgUploadFailed)
		return
	}
	defer src.Close()

	res, err := cc.svc.Upload(c.Request.Context(), src, file.Filename)
	if err != nil {
		response.ServerError(c, MsgUploadFailed)
		return
	}

	response.Success(c, dto.UploadResponse{URL: res.URL})
}

// CreateCheckin handles POST /checkin. A JSON body is saved as is; a
// multipart body may carry files under "fotos" that are uploaded first.
func (cc *CheckinController) CreateCheckin(c *gin.Context) {
	var request dto.CreateCheckinRequest
	var photos []services.Photo

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&request); err != nil {
			cc.log(c).Warn("bind multipart check-in: %v", err)
			response.ServerError(c, MsgCreateFailed)
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			cc.log(c).Warn("read multipart form: %v", err)
			response.ServerError(c, MsgCreateFailed)
			return
		}
		photos = photosFromForm(form)
	} else if err := c.ShouldBindJSON(&request); err != nil {
		cc.log(c).Warn("bind json check-in: %v", err)
		response.ServerError(c, MsgCreateFailed)
		return
	}

	if err := validator.ValidateCheckin(&request); err != nil {
		cc.log(c).Warn("%v", err)
		response.ServerError(c, MsgCreateFailed)
		return
	}

	created, err := cc.svc.Create(c.Request.Context(), request.ToRecord(), photos)
	if err != nil {
		response.ServerError(c, MsgCreateFailed)
		return
	}

	response.Created(c, created)
}

// GetCheckins handles GET /checkins
func (cc *CheckinController) GetCheckins(c *gin.Context) {
	records, err := cc.svc.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, MsgListFailed)
		return
	}
	response.Success(c, records)
}

// DeleteCheckin handles DELETE /checkin/:id
func (cc *CheckinController) DeleteCheckin(c *gin.Context) {
	if err := cc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ServerError(c, MsgDeleteFailed)
		return
	}
	response.Message(c, MsgDeleted)
}

// log returns the request-scoped logger set by the request id middleware
func (cc *CheckinController) log(c *gin.Context) logger.Logger {
	return logger.FromContext(c.Request.Context(), cc.logger)
}

func photosFromForm(form *multipart.Form) []services.Photo {
	var files []*multipart.FileHeader
	files = append(files, form.File[FieldCheckinFile]...)
	files = append(files, form.File[FieldUploadFile]...)

	photos := make([]services.Photo, 0, len(files))
	for _, fh := range files {
		photos = append(photos, services.Photo{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return photos
}
