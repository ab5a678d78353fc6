package serrors_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"chatbackend/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "message only",
			err:  serrors.With(serrors.ErrBadRequest, "bad payload"),
			want: "bad payload",
		},
		{
			name: "message and cause",
			err:  serrors.Wrap(serrors.ErrInternal, cause, "completion failed"),
			want: "completion failed: boom",
		},
		{
			name: "formatted message",
			err:  serrors.With(serrors.ErrNotFound, "no route %q", "/nope"),
			want: `no route "/nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsMatchesKindAndCause(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := serrors.Wrap(serrors.ErrBadRequest, cause, "could not decode body")

	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrInternal)

	// wrapping with fmt keeps both matches working
	wrapped := fmt.Errorf("handler: %w", err)
	require.ErrorIs(t, wrapped, serrors.ErrBadRequest)
	require.ErrorIs(t, wrapped, cause)
}

func TestAs(t *testing.T) {
	err := serrors.Wrap(serrors.ErrUnavailable, errors.New("down"), "agent not ready")

	var sErr *serrors.Error
	require.ErrorAs(t, fmt.Errorf("wrap: %w", err), &sErr)
	require.Equal(t, serrors.ErrUnavailable, sErr.Kind())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "bad request", err: serrors.With(serrors.ErrBadRequest, "x"), want: http.StatusBadRequest},
		{name: "not found", err: serrors.With(serrors.ErrNotFound, "x"), want: http.StatusNotFound},
		{name: "timeout", err: serrors.With(serrors.ErrTimeout, "x"), want: http.StatusGatewayTimeout},
		{name: "unavailable", err: serrors.With(serrors.ErrUnavailable, "x"), want: http.StatusServiceUnavailable},
		{name: "internal", err: serrors.With(serrors.ErrInternal, "x"), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "kind survives fmt wrapping",
			err:  fmt.Errorf("outer: %w", serrors.With(serrors.ErrTimeout, "slow")),
			want: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.HTTPStatus(tt.err))
		})
	}
}
