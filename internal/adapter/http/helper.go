package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/blob"
	domainEvent "vms-backend/internal/domain/event"
)

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid body")
	}
	if err := c.Validate(req); err != nil {
		return &validationError{fields: ToFieldErrors(err)}
	}
	return nil
}

func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid "+name, name)
	}
	return id, nil
}

func paramKind(c echo.Context) (domainEvent.Kind, error) {
	k := domainEvent.Kind(strings.ToLower(c.Param("kind")))
	if !k.Valid() {
		return "", apperr.NotFound("unknown event type")
	}
	return k, nil
}

// kindAndID reads the :kind and :id style pair used by most event routes.
func kindAndID(c echo.Context, idName string) (domainEvent.Kind, uint64, error) {
	k, err := paramKind(c)
	if err != nil {
		return "", 0, err
	}
	id, err := paramID(c, idName)
	if err != nil {
		return "", 0, err
	}
	return k, id, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formFile opens one uploaded file. A missing part yields nil.
func formFile(c echo.Context, name string) (*blob.File, io.Closer, error) {
	fh, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperr.Validation("invalid upload", name)
	}
	return openPart(fh, name)
}

func openPart(fh *multipart.FileHeader, name string) (*blob.File, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperr.Validation("invalid upload", name)
	}
	return &blob.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func formInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(c.FormValue(name)))
	return n
}

func formFloat(c echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue(name)), 64)
	return f
}

// formList accepts a JSON array in one field or the field repeated.
func formList(c echo.Context, name string) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	vals := form.Value[name]
	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
		var out []string
		if json.Unmarshal([]byte(vals[0]), &out) == nil {
			return out
		}
	}
	return vals
}

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		if c != nil {
			_ = c.Close()
		}
	}
}
