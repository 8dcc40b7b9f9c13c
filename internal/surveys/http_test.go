package surveys

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethical-careers/ethical-careers-backend/internal/auth"
)

func setupSurveyRouter(store *fakeStore, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxFirebaseUID, "test-uid")
		c.Next()
	})
	NewHandler(newTestService(store, now)).Register(r)
	return r
}

func TestStatusEndpoint(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{snapshot: &Snapshot{SubmittedInitialSurvey: true}}
	router := setupSurveyRouter(store, now)

	req := httptest.NewRequest("GET", "/surveys/status?company=acme", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"preSurveyRequired":true`)
	assert.Contains(t, rr.Body.String(), `"initialSurveyRequired":false`)
}

func TestSubmitPreEndpoint(t *testing.T) {
	store := &fakeStore{}
	router := setupSurveyRouter(store, time.Now())

	body := `{"companySlug":"acme","companyName":"Acme","overallEthical":"4","considerWorking":"Yes"}`
	req := httptest.NewRequest("POST", "/surveys/pre", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, store.savedPre)
	// The string "4" decoded to the integer rating.
	assert.Equal(t, Likert(4), store.savedPre.OverallEthical)
}

func TestSubmitPreEndpointValidationError(t *testing.T) {
	store := &fakeStore{}
	router := setupSurveyRouter(store, time.Now())

	body := `{"companySlug":"acme","overallEthical":9,"considerWorking":"Yes"}`
	req := httptest.NewRequest("POST", "/surveys/pre", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, store.savedPre)
}

func TestSubmitPostWithoutPreSurvey(t *testing.T) {
	store := &fakeStore{saveErr: ErrPreSurveyRequired}
	router := setupSurveyRouter(store, time.Now())

	body := `{"companySlug":"acme","summary":"s","overallEthical":3,"considerWorking":"No",
		"workersCommunities":3,"environmentalImpact":3,"transparency":3,
		"trustStatements":3,"ethicalConcerns":3,"lookedUpEthics":"No"}`
	req := httptest.NewRequest("POST", "/surveys/post", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}
