package service

import "errors"

var (
	ErrorStoreNotFound      = errors.New("store not found")
	ErrorStoreAlreadyExists = errors.New("store already exists")
	ErrorKeyNotFound        = errors.New("key not found")
)

// Servicer is the operation surface the API works against. Keys and values
// travel as strings and are fitted to the store geometry, see Service.
type Servicer interface {
	CreateStore(name string, options CreateStoreOptions) (*StoreInfo, error)
	GetStore(name string) (*StoreInfo, error)
	ListStores() ([]*StoreInfo, error)
	DropStore(name string) error

	Insert(storeName, key, value string) (int, error)
	Get(storeName, key string) (string, error)
	Update(storeName, key, value string) (int, error)
	Delete(storeName, key string) (int, error)
}
