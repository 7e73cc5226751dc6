package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// Handle logs an error that reached a boundary. Cancelled requests are not
// failures of the service and upstream failures are logged as warnings.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Debug("request cancelled", "error", err)
	case goerr.HasTag(err, model.TagNetworkFailure):
		logger.Warn("upstream failure", "error", err)
	default:
		logger.Error("application error", "error", err)
	}
}
