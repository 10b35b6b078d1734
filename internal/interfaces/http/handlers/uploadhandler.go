package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/application/upload/usecases"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

const uploadFormField = "file"

type UploadHandler struct {
	uploadUseCase usecases.UploadImagesExecutor
	logger        logger.Interface
}

func NewUploadHandler(uploadUC usecases.UploadImagesExecutor, logger logger.Interface) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUC,
		logger:        logger,
	}
}

// UploadImages handles POST /api/upload (multipart, field "file" repeated)
func (h *UploadHandler) UploadImages(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var files []usecases.UploadFile
	if form, err := c.MultipartForm(); err != nil {
		h.logger.Debugw("request carried no multipart form", "error", err)
	} else {
		files = toUploadFiles(form.File[uploadFormField])
	}

	result, err := h.uploadUseCase.Execute(c.Request.Context(), usecases.UploadImagesCommand{
		UserID: session.UserID,
		Files:  files,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func toUploadFiles(headers []*multipart.FileHeader) []usecases.UploadFile {
	files := make([]usecases.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, usecases.UploadFile{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return files
}
