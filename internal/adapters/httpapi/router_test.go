package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	commentapp "postboard/internal/core/comment/service"
	postapp "postboard/internal/core/post/service"
	userapp "postboard/internal/core/user/service"
	"postboard/internal/ports/mock"
)

const prefix = "/api/v1"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	cache := mock.NewNameCache()
	logger := zap.NewNop()

	userSvc := userapp.NewUserService(store.Users(), cache, logger)
	postSvc := postapp.NewPostService(store.Posts(), store.Users(), logger)
	commentSvc := commentapp.NewCommentService(store.Comments(), store.Posts(), store.Users(), cache, logger)

	return SetupRoutes(prefix, logger, userSvc, postSvc, commentSvc), store
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createUser(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, prefix+"/users", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func createPost(t *testing.T, r *gin.Engine, userID string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, prefix+"/posts", gin.H{"title": "t", "content": "c", "user_id": userID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCommentsScenario(t *testing.T) {
	r, _ := setupRouter(t)

	u1 := createUser(t, r, "alice")
	p1 := createPost(t, r, u1)

	w := do(t, r, http.MethodPost, prefix+"/posts/"+p1+"/comments", gin.H{"content": "hi", "user_id": u1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c1 := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodGet, prefix+"/posts/"+p1+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`[{"id":"`+c1+`","user_id":"`+u1+`","post_id":"`+p1+`","content":"hi","user_name":"alice"}]`,
		w.Body.String())
}

func TestUserRoutes(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("empty list is an array", func(t *testing.T) {
		w := do(t, r, http.MethodGet, prefix+"/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("create without body uses default name", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/users", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "default_name", body["name"])
		assert.NotEmpty(t, body["id"])
		assert.Contains(t, body, "created_at")
		assert.Contains(t, body, "updated_at")
	})

	t.Run("name too long", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/users", gin.H{"name": "abcdefghijklmnopqrstuvwxyz"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "invalid input", body["error"])
		assert.Equal(t, []interface{}{"name: max"}, body["details"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/users", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid input"}`, w.Body.String())
	})

	t.Run("get missing", func(t *testing.T) {
		w := do(t, r, http.MethodGet, prefix+"/users/doesnotexist", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	id := createUser(t, r, "alice")

	t.Run("patch name", func(t *testing.T) {
		w := do(t, r, http.MethodPatch, prefix+"/users/"+id, gin.H{"name": "alicia"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alicia", decode(t, w)["name"])
	})

	t.Run("patch missing", func(t *testing.T) {
		w := do(t, r, http.MethodPatch, prefix+"/users/nope", gin.H{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("posts of user", func(t *testing.T) {
		createPost(t, r, id)
		w := do(t, r, http.MethodGet, prefix+"/users/"+id+"/posts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)

		w = do(t, r, http.MethodGet, prefix+"/users/nope/posts", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete then get", func(t *testing.T) {
		other := createUser(t, r, "bob")
		w := do(t, r, http.MethodDelete, prefix+"/users/"+other, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", decode(t, w)["name"])

		w = do(t, r, http.MethodGet, prefix+"/users/"+other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, r, http.MethodDelete, prefix+"/users/"+other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostRoutes(t *testing.T) {
	r, store := setupRouter(t)
	u1 := createUser(t, r, "alice")

	t.Run("missing user persists nothing", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/posts", gin.H{"title": "t", "content": "c", "user_id": "ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
		_, posts, _ := store.Counts()
		assert.Zero(t, posts)
	})

	t.Run("validation", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/posts", gin.H{"content": "c", "user_id": u1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []interface{}{"title: required"}, decode(t, w)["details"])
	})

	p1 := createPost(t, r, u1)

	t.Run("patch replaces", func(t *testing.T) {
		w := do(t, r, http.MethodPatch, prefix+"/posts/"+p1, gin.H{"title": "t2", "content": "c2", "user_id": u1})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "t2", body["title"])
		assert.Equal(t, "c2", body["content"])
	})

	t.Run("get and list", func(t *testing.T) {
		w := do(t, r, http.MethodGet, prefix+"/posts/"+p1, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "t2", decode(t, w)["title"])

		w = do(t, r, http.MethodGet, prefix+"/posts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)
	})

	t.Run("comments of missing post", func(t *testing.T) {
		w := do(t, r, http.MethodGet, prefix+"/posts/ghost/comments", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())

		w = do(t, r, http.MethodPost, prefix+"/posts/ghost/comments", gin.H{"content": "hi", "user_id": u1})
		assert.Equal(t, http.StatusNotFound, w.Code)
		_, _, comments := store.Counts()
		assert.Zero(t, comments)
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, prefix+"/posts/"+p1, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, p1, decode(t, w)["id"])

		w = do(t, r, http.MethodGet, prefix+"/posts/"+p1, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentRoutes(t *testing.T) {
	r, _ := setupRouter(t)
	u1 := createUser(t, r, "alice")
	p1 := createPost(t, r, u1)

	w := do(t, r, http.MethodPost, prefix+"/posts/"+p1+"/comments", gin.H{"content": "hi", "user_id": u1})
	require.Equal(t, http.StatusCreated, w.Code)
	c1 := decode(t, w)["id"].(string)

	t.Run("patch content only", func(t *testing.T) {
		w := do(t, r, http.MethodPatch, prefix+"/comments/"+c1, gin.H{"content": "edited"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "edited", body["content"])
		assert.Equal(t, u1, body["user_id"])
		assert.Equal(t, p1, body["post_id"])
	})

	t.Run("patch empty content rejected", func(t *testing.T) {
		w := do(t, r, http.MethodPatch, prefix+"/comments/"+c1, gin.H{"content": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown commenter", func(t *testing.T) {
		w := do(t, r, http.MethodPost, prefix+"/posts/"+p1+"/comments", gin.H{"content": "hi", "user_id": "ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, prefix+"/comments/"+c1, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, r, http.MethodPatch, prefix+"/comments/"+c1, gin.H{"content": "again"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Comment not found"}`, w.Body.String())
	})
}

func TestStoreFailureIs500(t *testing.T) {
	r, store := setupRouter(t)
	store.Err = errors.New("db down")

	w := do(t, r, http.MethodGet, prefix+"/posts", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = do(t, r, http.MethodPost, prefix+"/users", gin.H{"name": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User could not be created"}`, w.Body.String())
}

func TestSetupRoutes_EmptyPrefix(t *testing.T) {
	store := mock.NewStore()
	logger := zap.NewNop()
	r := SetupRoutes("", logger,
		userapp.NewUserService(store.Users(), nil, logger),
		postapp.NewPostService(store.Posts(), store.Users(), logger),
		commentapp.NewCommentService(store.Comments(), store.Posts(), store.Users(), nil, logger),
	)

	w := do(t, r, http.MethodPost, "/users", gin.H{"name": "alice"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
