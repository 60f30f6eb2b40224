package handler

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("bad"), fiber.StatusBadRequest},
		{"conflict", apperr.Conflict("dup"), fiber.StatusBadRequest},
		{"not found", apperr.NotFound("gone"), fiber.StatusNotFound},
		{"authorization", apperr.Authorization("no"), fiber.StatusUnauthorized},
		{"unavailable", apperr.Unavailable("down", nil), fiber.StatusServiceUnavailable},
		{"internal", apperr.Internal("boom", nil), fiber.StatusInternalServerError},
		{"plain error", errors.New("anything"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, statusOf(tc.err))
		})
	}
}
