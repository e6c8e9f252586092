// Package controller holds what the HTTP handlers share.
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"unable to load news at this time"`
}

// Error logs err and writes it as an ErrorResponse with status.
func Error(ctx *fiber.Ctx, status int, err error) error {
	log.Debug().Err(err).Int("status", status).Str("path", ctx.Path()).Msg("request failed")

	return ctx.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
