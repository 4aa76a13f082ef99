package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/trademarks/internal/adapters/registry"
	service "github.com/okian/trademarks/internal/app"
	"github.com/okian/trademarks/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeRegistry answers every call with one canned response.
func fakeRegistry(status int, body string, seen *http.Header) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		if seen != nil {
			*seen = r.Header.Clone()
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func gatewayFor(srv *httptest.Server) http.Handler {
	client, err := registry.New(srv.URL, registry.Credentials{APIKey: "key", APISecret: "secret"},
		registry.WithHTTPClient(srv.Client()))
	So(err, ShouldBeNil)
	return newRouter(service.New(client))
}

func TestEndToEnd_Create(t *testing.T) {
	Convey("Given a gateway in front of a registry stub", t, func() {
		var seen http.Header
		srv := fakeRegistry(http.StatusOK, `{"id":"tm-1","name":"Acme","owner":"Acme Corp","classes":[9,42],"countryCodes":["US","EU"]}`, &seen)
		defer srv.Close()
		h := gatewayFor(srv)

		Convey("When a trademark is created", func() {
			before := time.Now()
			w := do(h, http.MethodPost, "/trademarks", `{"name":"Acme","owner":"Acme Corp","classes":[9,42],"countryCodes":["US","EU"]}`)
			after := time.Now()

			Convey("Then it should be pending with computed dates", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var tm model.Trademark
				So(json.NewDecoder(w.Body).Decode(&tm), ShouldBeNil)
				So(tm.ID, ShouldEqual, "tm-1")
				So(tm.Status, ShouldEqual, model.StatusPending)
				So(tm.RegistrationDate, ShouldHappenOnOrBetween, before.Add(-time.Second), after.Add(time.Second))
				So(tm.ExpirationDate.Sub(tm.RegistrationDate), ShouldEqual, 3650*24*time.Hour)
				So(tm.Classes, ShouldResemble, []int{9, 42})
				So(tm.CountryCodes, ShouldResemble, []string{"US", "EU"})
			})

			Convey("Then the registry should see credentials and the request id", func() {
				So(seen.Get(registry.HeaderAPIKey), ShouldEqual, "key")
				So(seen.Get(registry.HeaderAPISecret), ShouldEqual, "secret")
				So(seen.Get(registry.HeaderRequestID), ShouldEqual, w.Header().Get("X-Request-ID"))
			})
		})
	})
}

func TestEndToEnd_RegistryFailures(t *testing.T) {
	Convey("Given a registry that answers 500 to everything", t, func() {
		srv := fakeRegistry(http.StatusInternalServerError, `{"error":"boom"}`, nil)
		defer srv.Close()
		h := gatewayFor(srv)

		cases := []struct {
			method, target, body string
			status               int
			opName               string
		}{
			{http.MethodPost, "/trademarks", `{"name":"A","owner":"B","classes":[1],"countryCodes":["US"]}`, http.StatusBadRequest, "create trademark"},
			{http.MethodGet, "/trademarks/tm-1", "", http.StatusNotFound, "get trademark"},
			{http.MethodGet, "/trademarks/search?query=a", "", http.StatusBadRequest, "search trademarks"},
			{http.MethodPut, "/trademarks/tm-1", `{"name":"X"}`, http.StatusBadRequest, "update trademark"},
			{http.MethodDelete, "/trademarks/tm-1", "", http.StatusBadRequest, "delete trademark"},
		}

		Convey("Then each operation should map to its fixed status and name itself", func() {
			for _, tc := range cases {
				w := do(h, tc.method, tc.target, tc.body)
				So(w.Code, ShouldEqual, tc.status)
				So(decodeError(w)["detail"], ShouldContainSubstring, tc.opName)
			}
		})
	})

	Convey("Given a registry that emits timestamps without a zone offset", t, func() {
		srv := fakeRegistry(http.StatusOK, `{"id":"tm-1","name":"Acme","registrationDate":"2020-01-01T00:00:00","status":"registered","owner":"O","classes":[1],"countryCodes":["US"]}`, nil)
		defer srv.Close()
		h := gatewayFor(srv)

		w := do(h, http.MethodGet, "/trademarks/tm-1", "")

		Convey("Then get should succeed with the date read as UTC", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			var tm model.Trademark
			So(json.NewDecoder(w.Body).Decode(&tm), ShouldBeNil)
			So(tm.RegistrationDate.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})
	})

	Convey("Given a registry whose get response lacks status", t, func() {
		srv := fakeRegistry(http.StatusOK, `{"id":"tm-1","name":"Acme","registrationDate":"2020-01-01T00:00:00Z","owner":"O","classes":[1],"countryCodes":["US"]}`, nil)
		defer srv.Close()
		h := gatewayFor(srv)

		w := do(h, http.MethodGet, "/trademarks/tm-1", "")

		Convey("Then the parse error should surface as 404", func() {
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["detail"], ShouldContainSubstring, "status")
		})
	})
}
