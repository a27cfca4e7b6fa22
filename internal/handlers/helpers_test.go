package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"go_4_elearning/internal/middleware"
	"go_4_elearning/internal/model"
)

var (
	studentIdentity    = &model.Identity{ID: 7, Email: "student@example.com", Role: model.RoleStudent}
	instructorIdentity = &model.Identity{ID: 1, Email: "instructor@example.com", Role: model.RoleInstructor}
)

// withIdentity は JWT 検証を通ったものとして Identity をコンテキストに入れる
func withIdentity(identity *model.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}
}

// newAuthedRouter は identity 付きのテスト用ルーターを返す。identity が nil なら未認証
func newAuthedRouter(identity *model.Identity) *chi.Mux {
	r := chi.NewRouter()
	if identity != nil {
		r.Use(withIdentity(identity))
	}
	return r
}

// sendRequest は body を JSON にして (string ならそのまま) リクエストを実行する
func sendRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeError はエラーレスポンスの error オブジェクトを取り出す
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), "body: %s", rr.Body.String())
}

func intPtr(v int) *int {
	return &v
}
