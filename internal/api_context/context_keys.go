package api_context

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
)

type ctxKey string

const (
	IDKey            ctxKey = "id"
	AuthFacultyIDKey ctxKey = "authFacultyID"
)

func IDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(IDKey).(db.UUID)
	return id, ok
}

func AuthFacultyIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AuthFacultyIDKey).(int64)
	return id, ok
}
