package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest points the global DB at a throwaway sqlite file and clears the
// provider/platform env so each test opts in to exactly what it needs.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir banco de teste: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Setting{}, &models.Deposit{}, &models.Withdrawal{}); err != nil {
		t.Fatalf("migrar banco de teste: %v", err)
	}
	database.DB = db

	t.Setenv("PLATFORM_DEPIX_ADDRESS", "")
	t.Setenv("EULEN_API_TOKEN", "")
	t.Setenv("EULEN_BASE_URL", "")
	t.Setenv("DEFAULT_COMMISSION_BPS", "")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, depixAddress string) models.User {
	t.Helper()
	u := models.User{Email: email, PasswordHash: "x", Role: "user"}
	if depixAddress != "" {
		u.DepixAddress = &depixAddress
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("criar usuário: %v", err)
	}
	return u
}

func authedRequest(t *testing.T, uid uint, method, target, body string) *http.Request {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(r.Context(), utils.UserIDKey, uid)
	ctx = context.WithValue(ctx, utils.UserRoleKey, "user")
	return r.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta não é JSON: %v\n%s", err, rec.Body.String())
	}
	return resp
}
