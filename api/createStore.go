package api

import (
	"context"
	"net/http"

	"flatdb/service"
)

type createStoreRequest struct {
	Name       string `json:"name"`
	KeyType    string `json:"keyType"`
	KeySize    int    `json:"keySize"`
	ValueSize  int    `json:"valueSize"`
	BufferRows int    `json:"bufferRows"`
	Backend    string `json:"backend"`
}

func createStore(ctx context.Context, w http.ResponseWriter, input *createStoreRequest) (*service.StoreInfo, error) {

	s := GetServicer(ctx)

	info, err := s.CreateStore(input.Name, service.CreateStoreOptions{
		KeyType:    input.KeyType,
		KeySize:    input.KeySize,
		ValueSize:  input.ValueSize,
		BufferRows: input.BufferRows,
		Backend:    input.Backend,
	})
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return info, nil
}
