package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errThing = NotFound("thing_not_found", "Thing not found")

func TestIs_MatchesOnKindAndCode(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", errThing.Wrap(errors.New("no rows")))

	assert.True(t, errors.Is(wrapped, errThing))
	assert.False(t, errors.Is(wrapped, NotFound("other", "Other")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad", "bad"), http.StatusBadRequest},
		{Unauthorized("nope", "nope"), http.StatusUnauthorized},
		{Forbidden("admin", "admin"), http.StatusForbidden},
		{errThing, http.StatusNotFound},
		{Conflict("stale", "stale"), http.StatusConflict},
		{Unavailable(errors.New("timeout")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("x: %w", Forbidden("f", "f")), http.StatusForbidden},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestAs_UnknownErrorBecomesInternal(t *testing.T) {
	appErr := As(errors.New("disk on fire"))

	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "Server error. Please try again later.", appErr.Message)
	assert.Nil(t, As(nil))
}

func TestWithMessage_KeepsIdentity(t *testing.T) {
	err := errThing.WithMessage("Thing %s not found", "42")

	assert.Equal(t, "Thing 42 not found", err.Error())
	assert.True(t, errors.Is(err, errThing))
}
