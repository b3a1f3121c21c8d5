package api

import (
	"context"

	"github.com/fulldump/box"
)

type updateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// update rewrites every entry of the key, inserting it when absent (upsert).
func update(ctx context.Context, input *updateRequest) (*countResponse, error) {

	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")

	count, err := s.Update(storeName, input.Key, input.Value)
	if err != nil {
		return nil, err
	}

	return &countResponse{Count: count}, nil
}
