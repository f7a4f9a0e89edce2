package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aduvert/recettes/config"
	"github.com/aduvert/recettes/internal/api"
	"github.com/aduvert/recettes/internal/database"
	"github.com/aduvert/recettes/internal/model"
	"github.com/aduvert/recettes/internal/router"
	"github.com/aduvert/recettes/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	images *service.LocalImageStore
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db, zerolog.Nop()))

	images, err := service.NewLocalImageStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	recipes := service.NewRecipeService(db, zerolog.Nop())
	cfg := &config.Config{
		Server: config.ServerConfig{WebDir: t.TempDir()},
	}
	engine := router.Setup(cfg,
		api.NewRecipeHandler(recipes, images, zerolog.Nop()),
		api.NewImageHandler(images, zerolog.Nop()),
		images, zerolog.Nop())

	return &testServer{engine: engine, db: db, images: images}
}

func (ts *testServer) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) uploadImage(t *testing.T, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createRecipe(t *testing.T, ts *testServer, in service.RecipeInput) uint {
	t.Helper()
	w := ts.doJSON(t, http.MethodPost, "/api/recipes", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func tarteInput() service.RecipeInput {
	return service.RecipeInput{
		Title:        "Tarte",
		Category:     model.CategoryCuisine,
		Ingredients:  []string{"farine"},
		Instructions: []string{"cuire"},
	}
}
