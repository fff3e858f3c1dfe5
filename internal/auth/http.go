// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
	"github.com/taibuivan/bookshelf/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
)

// Handler serves the account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler] around service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the account sub-router.
//
// # Endpoints
//   - POST /register : Creates an account.
//   - POST /login    : Exchanges credentials for an access token.
//   - GET  /me       : Returns the caller's account (bearer required).
//
// The parent router must install [middleware.Authenticate] for /me to see
// the caller's claims.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(private chi.Router) {
		private.Use(middleware.RequireAuth)
		private.Get("/me", handler.me)
	})

	return router
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login answers with the bare token object rather than a result envelope.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.Claims(request.Context())

	account, err := handler.service.Account(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Result(writer, account)
}
