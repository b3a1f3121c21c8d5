package api

import (
	"context"

	"flatdb/service"
)

const contextServicerKey = "3f2cbe9e-3c35-4bd2-9f0c-4f19fdbd8d65"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, contextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(contextServicerKey).(service.Servicer)
}
