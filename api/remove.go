package api

import (
	"context"

	"github.com/fulldump/box"
)

type removeRequest struct {
	Key string `json:"key"`
}

// remove tombstones every entry of the key, duplicates included.
func remove(ctx context.Context, input *removeRequest) (*countResponse, error) {

	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")

	count, err := s.Delete(storeName, input.Key)
	if err != nil {
		return nil, err
	}

	return &countResponse{Count: count}, nil
}
