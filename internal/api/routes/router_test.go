package routes_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/adapters/memory"
	"github.com/homestay-platform/backend/internal/api/handlers"
	"github.com/homestay-platform/backend/internal/api/routes"
	"github.com/homestay-platform/backend/internal/application/services"
	"github.com/homestay-platform/backend/internal/auth"
)

type apiTest struct {
	handler http.Handler
	facade  *services.Facade
}

func newAPITest() *apiTest {
	amenityStore := memory.NewAmenityStore()
	tokens := auth.NewTokenManager("test-secret", "test", time.Hour)
	facade := services.NewFacade(
		memory.NewUserStore(),
		memory.NewPlaceStore(amenityStore),
		memory.NewReviewStore(),
		amenityStore,
		tokens,
	)

	router := routes.NewRouter(
		handlers.NewAuthHandler(facade),
		handlers.NewUserHandler(facade),
		handlers.NewPlaceHandler(facade),
		handlers.NewReviewHandler(facade),
		handlers.NewAmenityHandler(facade),
		tokens,
		nil,
	)
	return &apiTest{handler: router.SetupRoutes(), facade: facade}
}

func (a *apiTest) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// register creates an account over HTTP and returns (userID, token).
func (a *apiTest) register(t *testing.T, email string) (string, string) {
	t.Helper()
	body := fmt.Sprintf(`{"first_name":"Test","last_name":"User","email":%q,"password":"password123"}`, email)
	w, created := a.do(t, "POST", "/api/v1/users", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, login := a.do(t, "POST", "/api/v1/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"password123"}`, email))
	require.Equal(t, http.StatusOK, w.Code)
	return created["id"].(string), login["access_token"].(string)
}

// registerAdmin seeds an admin through the facade (the public endpoint never
// grants the flag) and logs in over HTTP.
func (a *apiTest) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	_, err := a.facade.RegisterUser(t.Context(), "Root", "Admin", email, "password123", true)
	require.NoError(t, err)
	w, login := a.do(t, "POST", "/api/v1/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"password123"}`, email))
	require.Equal(t, http.StatusOK, w.Code)
	return login["access_token"].(string)
}

func TestAPI_Health(t *testing.T) {
	api := newAPITest()
	w, _ := api.do(t, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	api := newAPITest()

	w, body := api.do(t, "POST", "/api/v1/users", "",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["id"])
	assert.Nil(t, body["password_hash"], "hashes must never serialize")

	// duplicate email
	w, _ = api.do(t, "POST", "/api/v1/users", "",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// malformed body
	w, _ = api.do(t, "POST", "/api/v1/users", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad validation
	w, _ = api.do(t, "POST", "/api/v1/users", "",
		`{"first_name":"Ada","last_name":"Lovelace","email":"bad-email","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, login := api.do(t, "POST", "/api/v1/auth/login", "",
		`{"email":"ada@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, login["access_token"])
	assert.Equal(t, "Bearer", login["token_type"])

	w, _ = api.do(t, "POST", "/api/v1/auth/login", "",
		`{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_UserEndpointsRequireAuth(t *testing.T) {
	api := newAPITest()
	_, token := api.register(t, "ada@example.com")

	w, _ := api.do(t, "GET", "/api/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := api.do(t, "GET", "/api/v1/users", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
}

func TestAPI_UpdateUserAuthorization(t *testing.T) {
	api := newAPITest()
	adaID, adaToken := api.register(t, "ada@example.com")
	_, bobToken := api.register(t, "bob@example.com")

	w, _ := api.do(t, "PUT", "/api/v1/users/"+adaID, bobToken, `{"first_name":"Hacked"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := api.do(t, "PUT", "/api/v1/users/"+adaID, adaToken, `{"first_name":"Renamed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", body["first_name"])
}

func TestAPI_PasswordChange(t *testing.T) {
	api := newAPITest()
	adaID, adaToken := api.register(t, "ada@example.com")

	w, _ := api.do(t, "PUT", "/api/v1/users/"+adaID, adaToken, `{"password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, "PUT", "/api/v1/users/"+adaID, adaToken, `{"password":"newpassword999"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// the old credential is gone, the new one logs in
	w, _ = api.do(t, "POST", "/api/v1/auth/login", "",
		`{"email":"ada@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, login := api.do(t, "POST", "/api/v1/auth/login", "",
		`{"email":"ada@example.com","password":"newpassword999"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, login["access_token"])
}

func TestAPI_DeleteUserIsAdminOnly(t *testing.T) {
	api := newAPITest()
	adaID, adaToken := api.register(t, "ada@example.com")
	adminToken := api.registerAdmin(t, "root@example.com")

	w, _ := api.do(t, "DELETE", "/api/v1/users/"+adaID, adaToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(t, "DELETE", "/api/v1/users/"+adaID, adminToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = api.do(t, "DELETE", "/api/v1/users/"+adaID, adminToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_PlaceLifecycle(t *testing.T) {
	api := newAPITest()
	_, ownerToken := api.register(t, "owner@example.com")
	_, guestToken := api.register(t, "guest@example.com")
	adminToken := api.registerAdmin(t, "root@example.com")

	// places are created by authenticated users only
	w, _ := api.do(t, "POST", "/api/v1/places", "",
		`{"title":"Loft","description":"Nice","price":80,"latitude":10,"longitude":20}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, amenity := api.do(t, "POST", "/api/v1/amenities", adminToken, `{"name":"Wi-Fi"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	amenityID := amenity["id"].(string)

	w, place := api.do(t, "POST", "/api/v1/places", ownerToken,
		fmt.Sprintf(`{"title":"Loft","description":"Nice","price":80,"latitude":10,"longitude":20,"amenities":[%q]}`, amenityID))
	require.Equal(t, http.StatusCreated, w.Code)
	placeID := place["id"].(string)

	// public composite read
	w, details := api.do(t, "GET", "/api/v1/places/"+placeID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, details["owner"])
	assert.Len(t, details["amenities"], 1)

	// a stranger cannot update, the owner can
	w, _ = api.do(t, "PUT", "/api/v1/places/"+placeID, guestToken, `{"title":"Mine now"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, updated := api.do(t, "PUT", "/api/v1/places/"+placeID, ownerToken, `{"title":"Remodeled"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Remodeled", updated["title"])

	// out-of-range coordinates are a validation failure
	w, _ = api.do(t, "PUT", "/api/v1/places/"+placeID, ownerToken, `{"latitude":91}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, "GET", "/api/v1/places/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, "DELETE", "/api/v1/places/"+placeID, ownerToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_ReviewRules(t *testing.T) {
	api := newAPITest()
	_, ownerToken := api.register(t, "owner@example.com")
	_, guestToken := api.register(t, "guest@example.com")

	w, place := api.do(t, "POST", "/api/v1/places", ownerToken,
		`{"title":"Loft","description":"Nice","price":80,"latitude":10,"longitude":20}`)
	require.Equal(t, http.StatusCreated, w.Code)
	placeID := place["id"].(string)

	// owners cannot review their own place
	w, _ = api.do(t, "POST", "/api/v1/reviews", ownerToken,
		fmt.Sprintf(`{"text":"Great","rating":5,"place_id":%q}`, placeID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, review := api.do(t, "POST", "/api/v1/reviews", guestToken,
		fmt.Sprintf(`{"text":"Great","rating":5,"place_id":%q}`, placeID))
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := review["id"].(string)

	// second review for the same place conflicts
	w, _ = api.do(t, "POST", "/api/v1/reviews", guestToken,
		fmt.Sprintf(`{"text":"Again","rating":4,"place_id":%q}`, placeID))
	assert.Equal(t, http.StatusConflict, w.Code)

	// reviews of a place are public
	w, listed := api.do(t, "GET", "/api/v1/places/"+placeID+"/reviews", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, listed["count"])

	// only the author (or an admin) may edit
	w, _ = api.do(t, "PUT", "/api/v1/reviews/"+reviewID, ownerToken, `{"rating":1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = api.do(t, "PUT", "/api/v1/reviews/"+reviewID, guestToken, `{"rating":3}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, "DELETE", "/api/v1/reviews/"+reviewID, guestToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAPI_AmenityWritesAreAdminOnly(t *testing.T) {
	api := newAPITest()
	_, userToken := api.register(t, "user@example.com")
	adminToken := api.registerAdmin(t, "root@example.com")

	w, _ := api.do(t, "POST", "/api/v1/amenities", userToken, `{"name":"Pool"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, created := api.do(t, "POST", "/api/v1/amenities", adminToken, `{"name":"Pool"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	amenityID := created["id"].(string)

	w, _ = api.do(t, "POST", "/api/v1/amenities", adminToken, `{"name":"Pool"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// reads are public
	w, listed := api.do(t, "GET", "/api/v1/amenities", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, listed["count"])

	w, _ = api.do(t, "PUT", "/api/v1/amenities/"+amenityID, adminToken, `{"name":"Heated Pool"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, "DELETE", "/api/v1/amenities/"+amenityID, userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = api.do(t, "DELETE", "/api/v1/amenities/"+amenityID, adminToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
