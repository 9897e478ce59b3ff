package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

type CORSMiddleware struct {
	cors func(http.Handler) http.Handler
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{
		cors: handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			handlers.ExposedHeaders([]string{"X-Cache", "Content-Disposition"}),
		),
	}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return m.cors(next)
}
