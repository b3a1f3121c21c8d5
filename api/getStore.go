package api

import (
	"context"

	"github.com/fulldump/box"

	"flatdb/service"
)

func getStore(ctx context.Context) (*service.StoreInfo, error) {
	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")
	return s.GetStore(storeName)
}
