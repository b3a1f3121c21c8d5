package api

import (
	"context"

	"github.com/fulldump/box"
)

type getRequest struct {
	Key string `json:"key"`
}

type getResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func get(ctx context.Context, input *getRequest) (*getResponse, error) {

	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")

	value, err := s.Get(storeName, input.Key)
	if err != nil {
		return nil, err
	}

	return &getResponse{Key: input.Key, Value: value}, nil
}
