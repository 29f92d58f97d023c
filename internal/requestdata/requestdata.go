package requestdata

import (
	"context"

	"github.com/harshastride/interview-coach/internal/curriculum"
)

type ctxKey struct{}

var requestDataKey ctxKey

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData is the request-scoped identity resolved by the auth middleware.
// Handlers and services read it from the context instead of any ambient state.
type RequestData struct {
	SessionToken string
	UserID       int64
	Email        string
	Name         string
	AvatarURL    string
	Role         curriculum.Role
	IsAllowed    bool
}
