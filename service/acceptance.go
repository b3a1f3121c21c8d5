package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// Acceptance runs the whole HTTP contract against an already built API. It
// lives here so alternative transports can replay the same flow.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create store", func(a *biff.A) {
		resp := apiRequest("POST", "/stores").
			WithBodyJson(JSON{
				"name":       "my-store",
				"keySize":    8,
				"valueSize":  16,
				"bufferRows": 2,
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedInfo := JSON{
			"name":       "my-store",
			"keyType":    "bytes",
			"keySize":    8,
			"valueSize":  16,
			"bufferRows": 2,
			"backend":    "flatfile",
			"rows":       0,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedInfo)

		a.Alternative("Retrieve store", func(a *biff.A) {
			resp := apiRequest("GET", "/stores/my-store").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedInfo)
		})

		a.Alternative("List stores", func(a *biff.A) {
			resp := apiRequest("GET", "/stores").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedInfo})
		})

		a.Alternative("Create store again", func(a *biff.A) {
			resp := apiRequest("POST", "/stores").
				WithBodyJson(JSON{
					"name":      "my-store",
					"keySize":   8,
					"valueSize": 16,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Drop store", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:dropStore").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Retrieve dropped store", func(a *biff.A) {
				resp := apiRequest("GET", "/stores/my-store").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Get missing key", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:get").
				WithBodyJson(JSON{"key": "nobody"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Update missing key", func(a *biff.A) {
			// Upsert, the key is created instead of failing
			resp := apiRequest("POST", "/stores/my-store:update").
				WithBodyJson(JSON{"key": "alice", "value": "madrid"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"count": 1})

			a.Alternative("Get upserted key", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:get").
					WithBodyJson(JSON{"key": "alice"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": "alice", "value": "madrid"})
			})
		})

		a.Alternative("Insert", func(a *biff.A) {
			resp := apiRequest("POST", "/stores/my-store:insert").
				WithBodyJson(JSON{"key": "alice", "value": "madrid"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"count": 1})

			a.Alternative("Get", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:get").
					WithBodyJson(JSON{"key": "alice"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": "alice", "value": "madrid"})
			})

			a.Alternative("Update", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:update").
					WithBodyJson(JSON{"key": "alice", "value": "bilbao"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"count": 1})
			})

			a.Alternative("Insert duplicate key", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:insert").
					WithBodyJson(JSON{"key": "alice", "value": "bilbao"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Remove duplicates", func(a *biff.A) {
					resp := apiRequest("POST", "/stores/my-store:remove").
						WithBodyJson(JSON{"key": "alice"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"count": 2})
				})
			})

			a.Alternative("Remove", func(a *biff.A) {
				resp := apiRequest("POST", "/stores/my-store:remove").
					WithBodyJson(JSON{"key": "alice"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"count": 1})

				a.Alternative("Get removed key", func(a *biff.A) {
					resp := apiRequest("POST", "/stores/my-store:get").
						WithBodyJson(JSON{"key": "alice"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})

				a.Alternative("Remove again", func(a *biff.A) {
					resp := apiRequest("POST", "/stores/my-store:remove").
						WithBodyJson(JSON{"key": "alice"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})

			a.Alternative("Store info counts the row", func(a *biff.A) {
				resp := apiRequest("GET", "/stores/my-store").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				info := resp.BodyJson().(map[string]interface{})
				biff.AssertEqual(info["rows"], float64(1))
			})
		})
	})

	a.Alternative("Retrieve missing store", func(a *biff.A) {
		resp := apiRequest("GET", "/stores/my-store").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Insert into missing store", func(a *biff.A) {
		resp := apiRequest("POST", "/stores/my-store:insert").
			WithBodyJson(JSON{"key": "alice", "value": "madrid"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}
