package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainauth "aquasight-server-go/internal/domain/auth"
	"aquasight-server-go/internal/platform/config"
	"aquasight-server-go/internal/utils"
)

func testLogger(t *testing.T) *utils.Logger {
	t.Helper()

	logger, err := utils.NewLogger(&utils.LogCfg{
		LogLevel: "error",
		LogDir:   t.TempDir(),
		LogFile:  "test.log",
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestBuild_SecuredAliasesAPIWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router, err := Build(Options{Config: config.DefaultConfig(), Logger: testLogger(t)})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if router.Secured != router.API {
		t.Error("expected Secured to alias API when no auth middleware is set")
	}
}

func TestBuild_AuthMiddlewareGatesSecuredGroupOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := testLogger(t)
	token := domainauth.NewAuthToken("router-secret")

	router, err := Build(Options{
		Config:         config.DefaultConfig(),
		Logger:         logger,
		AuthMiddleware: BearerAuth(token, logger),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if router.Secured == router.API {
		t.Fatal("expected a dedicated Secured group when auth middleware is set")
	}

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.API.GET("/open", ok)
	router.Secured.GET("/locked", ok)

	get := func(path, authorization string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		router.Engine.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get("/api/open", ""); code != http.StatusOK {
		t.Errorf("open route: status = %d, want 200", code)
	}
	if code := get("/api/locked", ""); code != http.StatusUnauthorized {
		t.Errorf("locked route without token: status = %d, want 401", code)
	}
	if code := get("/api/locked", "Bearer garbage"); code != http.StatusUnauthorized {
		t.Errorf("locked route with bad token: status = %d, want 401", code)
	}

	valid, err := token.GenerateToken("client-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if code := get("/api/locked", "Bearer "+valid); code != http.StatusOK {
		t.Errorf("locked route with valid token: status = %d, want 200", code)
	}
}
