package api

import (
	"context"

	"github.com/fulldump/box"
)

func dropStore(ctx context.Context) error {
	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")
	return s.DropStore(storeName)
}
