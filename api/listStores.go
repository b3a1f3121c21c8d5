package api

import (
	"context"

	"flatdb/service"
)

func listStores(ctx context.Context) ([]*service.StoreInfo, error) {
	s := GetServicer(ctx)
	return s.ListStores()
}
