package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/fadilmartias/design-evaluator/internal/service"
	"github.com/fadilmartias/design-evaluator/internal/util"
	"github.com/gofiber/fiber/v2"
)

const uploadField = "file"

// readUpload pulls the plan set from the multipart form. Validation problems
// are returned as *util.FormError.
func readUpload(c *fiber.Ctx, maxBytes int64) (model.UploadedFile, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return model.UploadedFile{}, util.NewFormError("file is required",
			map[string]string{uploadField: "file is required"}, err)
	}

	if err := service.ValidateUpload(fh.Filename, fh.Size, maxBytes); err != nil {
		return model.UploadedFile{}, util.NewFormError("invalid file",
			map[string]string{uploadField: err.Error()}, err)
	}

	f, err := fh.Open()
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("cannot open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("cannot read uploaded file: %w", err)
	}

	return model.UploadedFile{
		Name:       fh.Filename,
		Size:       fh.Size,
		Type:       fh.Header.Get("Content-Type"),
		Data:       data,
		SelectedAt: time.Now(),
	}, nil
}
