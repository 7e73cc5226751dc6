package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/utils/apperr"
)

func TestHandle(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		level string
	}{
		{name: "unexpected error", err: goerr.New("decoder broke"), level: "ERROR"},
		{name: "upstream failure", err: goerr.New("timeout", goerr.T(model.TagNetworkFailure)), level: "WARN"},
		{name: "cancelled", err: goerr.Wrap(context.Canceled, "fetch aborted"), level: "DEBUG"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := ctxlog.With(context.Background(), logger)

			apperr.Handle(ctx, tc.err)
			gt.S(t, buf.String()).Contains("level=" + tc.level)
		})
	}

	t.Run("nil error is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
		apperr.Handle(ctx, nil)
		gt.Equal(t, 0, buf.Len())
	})
}
