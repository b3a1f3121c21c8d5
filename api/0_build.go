package api

import (
	"context"

	"github.com/fulldump/box"

	"flatdb/service"
)

// Build mounts the HTTP surface: store management under /v1/stores and the
// CRUD operations as box actions on each store resource.
func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1").
		WithInterceptors(
			injectServicer(s),
		)

	v1.Resource("/stores").
		WithActions(
			box.Get(listStores),
			box.Post(createStore),
		)

	v1.Resource("/stores/{storeName}").
		WithActions(
			box.Get(getStore),
			box.ActionPost(insert),
			box.ActionPost(get),
			box.ActionPost(update),
			box.ActionPost(remove),
			box.ActionPost(dropStore),
		)

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(SetServicer(ctx, s))
		}
	}
}
