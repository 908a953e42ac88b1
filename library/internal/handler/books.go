package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/pkg/storage"
)

const coverField = "cover"

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if isMultipart(c) {
		if err := bindCreateBookForm(c, &req); err != nil {
			return err
		}
	} else if err := bindValid(c, &req); err != nil {
		return err
	}
	cover, err := h.uploadCover(c)
	if err != nil {
		return err
	}
	req.CoverURL = cover

	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		h.dropCover(c, cover)
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ListBooks(c echo.Context) error {
	req := model.SearchBooksRequest{Page: 1, Limit: model.DefaultLimit}
	if err := bindValid(c, &req); err != nil {
		return err
	}
	books, err := h.librarySvc.ListBooks(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if isMultipart(c) {
		if err := bindUpdateBookForm(c, &req); err != nil {
			return err
		}
	} else if err := bindValid(c, &req); err != nil {
		return err
	}
	cover, err := h.uploadCover(c)
	if err != nil {
		return err
	}
	req.CoverURL = cover

	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		h.dropCover(c, cover)
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// uploadCover stores the optional cover of a multipart request and returns its path.
func (h *Handler) uploadCover(c echo.Context) (*string, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(coverField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	defer f.Close()

	path, err := h.covers.Upload(c.Request().Context(), fh.Filename, f)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cover must be an image")
	case errors.Is(err, storage.ErrTooLarge):
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "cover is too large")
	case err != nil:
		h.log.Error("upload cover", zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return &path, nil
}

func (h *Handler) dropCover(c echo.Context, cover *string) {
	if cover == nil {
		return
	}
	if err := h.covers.Remove(c.Request().Context(), *cover); err != nil {
		h.log.Warn("remove cover", zap.String("path", *cover), zap.Error(err))
	}
}

func formParams(c echo.Context) (url.Values, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	return params, nil
}

func bindCreateBookForm(c echo.Context, req *model.CreateBookRequest) error {
	params, err := formParams(c)
	if err != nil {
		return err
	}
	req.Title = params.Get("title")
	req.Author = params.Get("author")
	req.ISBN = params.Get("isbn")

	if req.PublicationYear, err = formInt(params, "publicationYear"); err != nil {
		return err
	}
	if req.TotalQuantity, err = formInt(params, "totalQuantity"); err != nil {
		return err
	}
	if req.AvailableQuantity, err = formOptionalInt(params, "availableQuantity"); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func bindUpdateBookForm(c echo.Context, req *model.UpdateBookRequest) error {
	params, err := formParams(c)
	if err != nil {
		return err
	}
	req.Title = formOptionalString(params, "title")
	req.Author = formOptionalString(params, "author")
	req.ISBN = formOptionalString(params, "isbn")

	if req.PublicationYear, err = formOptionalInt(params, "publicationYear"); err != nil {
		return err
	}
	if req.TotalQuantity, err = formOptionalInt(params, "totalQuantity"); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func formInt(params url.Values, name string) (int, error) {
	v, err := formOptionalInt(params, name)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func formOptionalInt(params url.Values, name string) (*int, error) {
	param := strings.TrimSpace(params.Get(name))
	if param == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(param)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return &v, nil
}

func formOptionalString(params url.Values, name string) *string {
	if !params.Has(name) {
		return nil
	}
	v := params.Get(name)
	return &v
}
