package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doUpdateRequest(t *testing.T, h *handler, membershipID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPut, "/api/member/"+membershipID+"/custom_fields", strings.NewReader(body))
	r.SetPathValue("member_id", membershipID)
	rec := httptest.NewRecorder()

	h.UpdateCustomFields(rec, r)
	return rec
}

func TestUpdateCustomFields(t *testing.T) {
	var providerBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/memberships/m-1/custom_fields", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		providerBody = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"updated": 2}`))
	})

	h := newTestHandler(t, mux)
	rec := doUpdateRequest(t, h, "m-1", `{"nachsendeadresse": "", "fix_desk": true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fields": [{"id": 25146, "value": ""}, {"id": 25148, "value": "true"}]}`, providerBody)
	assert.JSONEq(t, `{"success": true, "data": {"updated": 2}}`, rec.Body.String())
}

func TestUpdateCustomFieldsExplicitFalse(t *testing.T) {
	var providerBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/memberships/m-1/custom_fields", func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		providerBody = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"updated": 1}`))
	})

	h := newTestHandler(t, mux)
	rec := doUpdateRequest(t, h, "m-1", `{"zugang_24_stunden": false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fields": [{"id": 25145, "value": "false"}]}`, providerBody)
}

func TestUpdateCustomFieldsUnknownOnly(t *testing.T) {
	var called bool
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := doUpdateRequest(t, h, "m-1", `{"made_up_field": "value", "another": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success": false, "error": "request contains no known custom fields"}`, rec.Body.String())
	assert.False(t, called, "unknown fields must be rejected before anything goes upstream")
}

func TestUpdateCustomFieldsEmptyObject(t *testing.T) {
	var called bool
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := doUpdateRequest(t, h, "m-1", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestUpdateCustomFieldsMalformedJSON(t *testing.T) {
	var called bool
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := doUpdateRequest(t, h, "m-1", `{"fix_desk":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.False(t, called)
}

func TestUpdateCustomFieldsProviderError(t *testing.T) {
	h := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Validation failed: value does not match", http.StatusUnprocessableEntity)
	}))

	rec := doUpdateRequest(t, h, "m-1", `{"fix_desk": true}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "422")
	assert.Contains(t, rec.Body.String(), "Validation failed")
}
