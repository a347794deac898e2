package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/interfaces/http/dto"
	"github.com/homefinder/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func agentSession() identity.Session {
	return identity.Session{
		UserID: uuid.New(),
		Email:  "agent@example.com",
		Roles:  []string{identity.RoleBasic, identity.RoleAgent},
	}
}

// newRouter returns an engine that authenticates every request as session.
// A zero session leaves the request anonymous.
func newRouter(session identity.Session) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if session.UserID != uuid.Nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.JWTSessionKey, session)
			c.Set(middleware.JWTUserIDKey, session.UserID.String())
			c.Next()
		})
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// decodeData re-decodes the data member of the envelope into dest
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}
