// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// createdEnvelope is the insert response: the book plus any authors that
// could not be linked.
type createdEnvelope struct {
	Result        *Book    `json:"result"`
	FailedAuthors []string `json:"failed_authors,omitempty"`
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/isbn/{isbn}", handler.getByISBN)
	router.Get("/title/{title}", handler.findByTitle)
	router.Get("/author/{author}", handler.findByAuthor)
	router.Get("/rating", handler.findByRating)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createBook)
		authRoute.Put("/isbn/{isbn}/ratings", handler.updateRatings)
		authRoute.Delete("/isbn/{isbn}", handler.deleteByISBN)
		authRoute.Delete("/title/{title}", handler.deleteByTitle)
		authRoute.Delete("/author/{author}", handler.deleteByAuthor)
	})
}

// # Reads

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, meta, err := handler.service.ListPage(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Page(writer, books, meta)
}

func (handler *Handler) getByISBN(writer http.ResponseWriter, request *http.Request) {
	isbn, err := requestutil.Int64Param(request, "isbn", FieldISBN13)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetByISBN(request.Context(), isbn)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Result(writer, book)
}

func (handler *Handler) findByTitle(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.FindByTitle(request.Context(), requestutil.Param(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Results(writer, books)
}

func (handler *Handler) findByAuthor(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.FindByAuthor(request.Context(), requestutil.Param(request, "author"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Results(writer, books)
}

func (handler *Handler) findByRating(writer http.ResponseWriter, request *http.Request) {
	rng, err := parseRatingRange(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.FindByRating(request.Context(), rng)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Results(writer, books)
}

// # Writes

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input CreateBookInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateBook(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, createdEnvelope{
		Result:        result.Book,
		FailedAuthors: result.Report.FailedNames(),
	})
}

func (handler *Handler) updateRatings(writer http.ResponseWriter, request *http.Request) {
	isbn, err := requestutil.Int64Param(request, "isbn", FieldISBN13)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RatingsInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.UpdateRatings(request.Context(), isbn, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Result(writer, book)
}

func (handler *Handler) deleteByISBN(writer http.ResponseWriter, request *http.Request) {
	isbn, err := requestutil.Int64Param(request, "isbn", FieldISBN13)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.DeleteByISBN(request.Context(), isbn)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Result(writer, book)
}

func (handler *Handler) deleteByTitle(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.DeleteByTitle(request.Context(), requestutil.Param(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Results(writer, books)
}

func (handler *Handler) deleteByAuthor(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.DeleteByAuthor(request.Context(), requestutil.Param(request, "author"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Results(writer, books)
}

// parseRatingRange reads ?min=&max=&order= from the query string.
func parseRatingRange(request *http.Request) (RatingRange, error) {
	query := request.URL.Query()

	minValue, err := strconv.ParseFloat(query.Get(FieldMin), 64)
	if err != nil {
		return RatingRange{}, apperr.ValidationError("min must be a number")
	}
	maxValue, err := strconv.ParseFloat(query.Get(FieldMax), 64)
	if err != nil {
		return RatingRange{}, apperr.ValidationError("max must be a number")
	}

	order, err := ParseOrder(query.Get(FieldOrder))
	if err != nil {
		return RatingRange{}, err
	}

	return RatingRange{Min: minValue, Max: maxValue, Order: order}, nil
}
