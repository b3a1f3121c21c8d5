package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

type insertRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type countResponse struct {
	Count int `json:"count"`
}

func insert(ctx context.Context, w http.ResponseWriter, input *insertRequest) (*countResponse, error) {

	s := GetServicer(ctx)
	storeName := box.GetUrlParameter(ctx, "storeName")

	count, err := s.Insert(storeName, input.Key, input.Value)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &countResponse{Count: count}, nil
}
