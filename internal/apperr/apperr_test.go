package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("forbidden")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindInternal, KindOf(Internal("db down", errors.New("boom"))))
	assert.Equal(t, KindUnavailable, KindOf(Unavailable("upstream down", nil)))

	// Unclassified errors count as internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Trip does not exist"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "Trip does not exist", Message(err))
}

func TestMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to load trip", cause)
	assert.Equal(t, "failed to load trip: connection refused", err.Error())
	assert.Equal(t, "failed to load trip", Message(err))
	assert.ErrorIs(t, err, cause)
}
