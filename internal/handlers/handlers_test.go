package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bizdel/internal/middleware"
	"bizdel/internal/models"
	"bizdel/internal/repositories"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handlers-test-secret"

// newTestServer wires the full route table over a fresh in-memory store,
// mirroring the production setup minus Redis and MinIO.
func newTestServer(t *testing.T) (*echo.Echo, *repositories.Store) {
	store := repositories.NewMemoryStore()
	assert.NoError(t, repositories.SeedSchemes(context.Background(), store.Schemes))

	authSvc := services.NewAuthService(store.Users, store.Profiles, testJWTSecret)
	profileSvc := services.NewProfileService(store.Profiles)
	applicationSvc := services.NewApplicationService(store.Applications, store.Notifications)
	complianceSvc := services.NewComplianceService(store.Compliance)
	documentSvc := services.NewDocumentService(store.Documents, nil, "")
	schemeSvc := services.NewSchemeService(store.Schemes, nil)
	notificationSvc := services.NewNotificationService(store.Notifications)
	assistantSvc := services.NewAssistantService()

	authHandlers := NewAuthHandlers(authSvc)
	profileHandlers := NewProfileHandlers(profileSvc)
	applicationHandlers := NewApplicationHandlers(applicationSvc)
	complianceHandlers := NewComplianceHandlers(complianceSvc)
	documentHandlers := NewDocumentHandlers(documentSvc)
	schemeHandlers := NewSchemeHandlers(schemeSvc)
	notificationHandlers := NewNotificationHandlers(notificationSvc)
	assistantHandlers := NewAssistantHandlers(assistantSvc)

	e := echo.New()
	api := e.Group("/api")
	api.POST("/auth/register", authHandlers.Register)
	api.POST("/auth/login", authHandlers.Login)
	api.POST("/ai/chat", assistantHandlers.Chat)

	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(testJWTSecret))
	protected.GET("/profile/:userId", profileHandlers.GetProfile)
	protected.POST("/profile", profileHandlers.CreateProfile)
	protected.PUT("/profile/:userId", profileHandlers.UpdateProfile)
	protected.GET("/applications/:userId", applicationHandlers.ListApplications)
	protected.POST("/applications", applicationHandlers.CreateApplication)
	protected.PUT("/applications/:id", applicationHandlers.UpdateApplication)
	protected.GET("/compliance/:userId", complianceHandlers.ListComplianceItems)
	protected.POST("/compliance", complianceHandlers.CreateComplianceItem)
	protected.POST("/compliance/:id/filed", complianceHandlers.MarkFiled)
	protected.GET("/documents/:userId", documentHandlers.ListDocuments)
	protected.POST("/documents", documentHandlers.CreateDocument)
	protected.DELETE("/documents/:id", documentHandlers.DeleteDocument)
	protected.GET("/schemes", schemeHandlers.ListSchemes)
	protected.GET("/notifications/:userId", notificationHandlers.ListNotifications)
	protected.PUT("/notifications/:id/read", notificationHandlers.MarkNotificationRead)

	return e, store
}

type HandlersTestSuite struct {
	suite.Suite
	e     *echo.Echo
	store *repositories.Store
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.e, suite.store = newTestServer(suite.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(suite.T(), err)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlersTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), out))
}

// registerAndLogin returns the new user's id and a valid session token.
func (suite *HandlersTestSuite) registerAndLogin(username string) (string, string) {
	rec := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var result struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	suite.decode(rec, &result)
	assert.NotEmpty(suite.T(), result.Token)
	return result.User.ID, result.Token
}

func (suite *HandlersTestSuite) TestRegister_DoesNotLeakPasswordHash() {
	rec := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ramesh",
		"password": "secret123",
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.NotContains(suite.T(), rec.Body.String(), "password")
	assert.NotContains(suite.T(), rec.Body.String(), "$2a$")
}

func (suite *HandlersTestSuite) TestRegister_DuplicateUsername() {
	suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ramesh",
		"password": "another1",
	})
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *HandlersTestSuite) TestLogin_WrongPassword() {
	suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ramesh",
		"password": "wrongpass",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *HandlersTestSuite) TestProtectedRoutes_RequireToken() {
	rec := suite.request(http.MethodGet, "/api/schemes", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	rec = suite.request(http.MethodGet, "/api/schemes", "not-a-token", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *HandlersTestSuite) TestProfileLifecycle() {
	userID, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodGet, "/api/profile/"+userID, token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	rec = suite.request(http.MethodPost, "/api/profile", token, map[string]any{
		"userId":          userID,
		"businessName":    "Sharma Traders",
		"businessType":    "retail",
		"businessAddress": "Karol Bagh, Delhi",
		"contactEmail":    "ramesh@example.com",
		"contactPhone":    "9810000000",
		"gstin":           "07ABCDEFGHIJ1Z5",
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var created models.BusinessProfile
	suite.decode(rec, &created)
	assert.False(suite.T(), created.IsVerified)

	rec = suite.request(http.MethodPut, "/api/profile/"+userID, token, map[string]string{
		"businessName": "Sharma & Sons",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var updated models.BusinessProfile
	suite.decode(rec, &updated)
	assert.Equal(suite.T(), "Sharma & Sons", updated.BusinessName)
	assert.Equal(suite.T(), "retail", updated.BusinessType)
}

func (suite *HandlersTestSuite) TestProfileCreate_InvalidGSTIN() {
	userID, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPost, "/api/profile", token, map[string]any{
		"userId":          userID,
		"businessName":    "Sharma Traders",
		"businessType":    "retail",
		"businessAddress": "Karol Bagh, Delhi",
		"contactEmail":    "ramesh@example.com",
		"contactPhone":    "9810000000",
		"gstin":           "bad-gstin",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "gstin")
}

func (suite *HandlersTestSuite) TestApplicationLifecycle() {
	userID, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodGet, "/api/applications/"+userID, token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "[]", strings.TrimSpace(rec.Body.String()), "empty list is an array, not null")

	rec = suite.request(http.MethodPost, "/api/applications", token, map[string]any{
		"userId":      userID,
		"licenseType": "Shop & Establishment",
		"formData":    map[string]any{"shopName": "Sharma Traders"},
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var app models.Application
	suite.decode(rec, &app)
	assert.Equal(suite.T(), "BIZDEL001", app.DisplayID)
	assert.Equal(suite.T(), models.ApplicationStatusPending, app.Status)
	assert.Equal(suite.T(), app.SubmittedDate.AddDate(0, 0, 15).Unix(), app.ExpectedCompletion.Unix())

	// submission drops a notification into the feed
	rec = suite.request(http.MethodGet, "/api/notifications/"+userID, token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var notifications []models.Notification
	suite.decode(rec, &notifications)
	assert.Len(suite.T(), notifications, 1)
	assert.Equal(suite.T(), "Application Submitted", notifications[0].Title)

	status := models.ApplicationStatusApproved
	rec = suite.request(http.MethodPut, "/api/applications/"+app.ID.String(), token, map[string]any{
		"status": status,
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var updated models.Application
	suite.decode(rec, &updated)
	assert.Equal(suite.T(), status, updated.Status)
}

func (suite *HandlersTestSuite) TestApplicationUpdate_UnknownID() {
	_, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPut, "/api/applications/00000000-0000-0000-0000-000000000001", token, map[string]string{
		"status": "approved",
	})
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *HandlersTestSuite) TestComplianceMarkFiled() {
	userID, token := suite.registerAndLogin("ramesh")

	due := time.Now().AddDate(0, 0, 10).UTC().Truncate(time.Second)
	rec := suite.request(http.MethodPost, "/api/compliance", token, map[string]any{
		"userId":    userID,
		"itemName":  "GSTR-3B",
		"itemType":  "gst",
		"frequency": "monthly",
		"nextDue":   due.Format(time.RFC3339),
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	var item models.ComplianceItem
	suite.decode(rec, &item)

	rec = suite.request(http.MethodPost, fmt.Sprintf("/api/compliance/%s/filed", item.ID), token, map[string]any{})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var result struct {
		Filed models.ComplianceItem `json:"filed"`
		Next  models.ComplianceItem `json:"next"`
	}
	suite.decode(rec, &result)
	assert.Equal(suite.T(), models.ComplianceStatusFiled, result.Filed.Status)
	assert.Equal(suite.T(), due.AddDate(0, 1, 0).Unix(), result.Next.NextDue.Unix())

	// second filing of the same item conflicts
	rec = suite.request(http.MethodPost, fmt.Sprintf("/api/compliance/%s/filed", item.ID), token, map[string]any{})
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *HandlersTestSuite) TestDocumentMetadataLifecycle() {
	userID, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPost, "/api/documents", token, map[string]any{
		"userId":   userID,
		"fileName": "pan.pdf",
		"fileType": "application/pdf",
		"fileSize": 2048,
		"category": "identity",
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	var doc models.Document
	suite.decode(rec, &doc)

	rec = suite.request(http.MethodDelete, "/api/documents/"+doc.ID.String(), token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"success":true`)

	rec = suite.request(http.MethodDelete, "/api/documents/"+doc.ID.String(), token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"Document not found"`)
}

func (suite *HandlersTestSuite) TestDocumentCreate_BadCategory() {
	userID, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodPost, "/api/documents", token, map[string]any{
		"userId":   userID,
		"fileName": "pan.pdf",
		"fileType": "application/pdf",
		"fileSize": 2048,
		"category": "passport",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestSchemes_TypeFilter() {
	_, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodGet, "/api/schemes", token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var all []models.Scheme
	suite.decode(rec, &all)
	assert.Len(suite.T(), all, len(repositories.DefaultSchemes()))

	rec = suite.request(http.MethodGet, "/api/schemes?type=financial", token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var financial []models.Scheme
	suite.decode(rec, &financial)
	assert.NotEmpty(suite.T(), financial)
	for _, s := range financial {
		assert.Equal(suite.T(), "financial", s.SchemeType)
	}
}

func (suite *HandlersTestSuite) TestNotificationMarkRead() {
	userID, token := suite.registerAndLogin("ramesh")

	// creating an application seeds one notification
	rec := suite.request(http.MethodPost, "/api/applications", token, map[string]any{
		"userId":      userID,
		"licenseType": "Trade License",
	})
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.request(http.MethodGet, "/api/notifications/"+userID, token, nil)
	var notifications []models.Notification
	suite.decode(rec, &notifications)
	assert.Len(suite.T(), notifications, 1)

	rec = suite.request(http.MethodPut, fmt.Sprintf("/api/notifications/%s/read", notifications[0].ID), token, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"success":true`)

	rec = suite.request(http.MethodPut, "/api/notifications/00000000-0000-0000-0000-000000000001/read", token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"Notification not found"`)
}

func (suite *HandlersTestSuite) TestChat_PublicEndpoint() {
	rec := suite.request(http.MethodPost, "/api/ai/chat", "", map[string]string{
		"message": "help me with gst filing",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var reply map[string]string
	suite.decode(rec, &reply)
	assert.Contains(suite.T(), reply["response"], "GSTR-3B")

	rec = suite.request(http.MethodPost, "/api/ai/chat", "", map[string]string{
		"message": "tell me about bananas",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.decode(rec, &reply)
	assert.Contains(suite.T(), reply["response"], "business licensing and compliance")

	rec = suite.request(http.MethodPost, "/api/ai/chat", "", map[string]string{})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestInvalidPathParam() {
	_, token := suite.registerAndLogin("ramesh")

	rec := suite.request(http.MethodGet, "/api/applications/not-a-uuid", token, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}
