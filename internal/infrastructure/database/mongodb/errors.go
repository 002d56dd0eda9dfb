package mongodb

import (
	"context"
	"errors"

	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors to domain errors; notFound is returned for missing documents
func translate(err error, notFound *apperrors.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return apperrors.Unavailable(err)
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(err)
}
