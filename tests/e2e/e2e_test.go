package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atithi/internal/database"
	"atithi/internal/domain"
	"atithi/internal/middleware"
	"atithi/internal/modules/activity"
	"atithi/internal/modules/auth"
	"atithi/internal/modules/booking"
	"atithi/internal/modules/folio"
	"atithi/internal/modules/frontdesk"
	"atithi/internal/modules/guest"
	"atithi/internal/modules/housekeeping"
	"atithi/internal/modules/room"
	jwtsvc "atithi/internal/pkg/jwt"
	"atithi/internal/repository"
)

type Suite struct {
	router *gin.Engine
	db     *gorm.DB
}

type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *Suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// A :memory: database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	folioRepo := repository.NewFolioRepository(db)
	taskRepo := repository.NewHousekeepingRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	activityService := activity.NewService(activityRepo)
	housekeepingService := housekeeping.NewService(taskRepo, roomRepo, activityService)
	roomService := room.NewService(roomRepo, housekeepingService, activityService, nil)
	folioService := folio.NewService(folioRepo, bookingRepo, activityService)
	bookingService := booking.NewService(bookingRepo, roomRepo, guestRepo, activityService)
	guestService := guest.NewService(guestRepo, bookingRepo, folioRepo, activityService)
	deskService := frontdesk.NewService(db, folioService, housekeepingService, activityService, nil)
	authService := auth.NewService(userRepo, jwtService, activityService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	auth.NewHandler(authService).RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		auth.NewHandler(authService).RegisterProtectedRoutes(protected, middleware.RequireRole(domain.RoleOwner))
		room.NewHandler(roomService).RegisterRoutes(protected)
		booking.NewHandler(bookingService).RegisterRoutes(protected)
		folio.NewHandler(folioService).RegisterRoutes(protected)
		frontdesk.NewHandler(deskService).RegisterRoutes(protected)
		guest.NewHandler(guestService).RegisterRoutes(protected)
		housekeeping.NewHandler(housekeepingService).RegisterRoutes(protected)
		activity.NewHandler(activityService).RegisterRoutes(protected)
	}

	seedUser(t, db, "owner@test.in", "owner123", domain.RoleOwner)
	seedUser(t, db, "desk@test.in", "desk123", domain.RoleReceptionist)
	seedUser(t, db, "manager@test.in", "manager123", domain.RoleManager)

	return &Suite{router: r, db: db}
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, role domain.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         string(role),
		Role:         role,
		IsActive:     true,
	}).Error)
}

func (s *Suite) request(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, *Response) {
	t.Helper()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"unparseable response, status %d: %s", w.Code, w.Body.String())
	return w, &resp
}

func (s *Suite) login(t *testing.T, email, password string) string {
	t.Helper()
	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func id(t *testing.T, data map[string]interface{}, keys ...string) int64 {
	t.Helper()
	m := data
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]interface{})
		require.True(t, ok, "missing object %q in %v", k, m)
		m = next
	}
	v, ok := m[keys[len(keys)-1]].(float64)
	require.True(t, ok, "missing id %q in %v", keys[len(keys)-1], m)
	return int64(v)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := setupSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "desk@test.in", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupSuite(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/rooms", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffCreationIsOwnerOnly(t *testing.T) {
	s := setupSuite(t)
	deskToken := s.login(t, "desk@test.in", "desk123")
	ownerToken := s.login(t, "owner@test.in", "owner123")

	payload := map[string]interface{}{
		"email": "new@test.in", "password": "longenough", "name": "New Staff", "role": "RECEPTIONIST",
	}
	w, _ := s.request(t, http.MethodPost, "/api/v1/auth/staff", payload, deskToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.request(t, http.MethodPost, "/api/v1/auth/staff", payload, ownerToken)
	assert.Equal(t, http.StatusCreated, w.Code)
}

// Drives a whole stay through the HTTP surface: register the room and
// guest, book, check in, post folio entries, and check out.
func TestFullStayFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "desk@test.in", "desk123")

	w, resp := s.request(t, http.MethodPost, "/api/v1/rooms", map[string]interface{}{
		"room_number": "101", "room_type": "DELUXE", "price_per_night": "1200",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := id(t, resp.Data, "id")

	w, resp = s.request(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"guest": map[string]string{
			"full_name": "Asha Verma",
			"email":     "asha@example.com",
		},
		"room_id":        roomID,
		"check_in_date":  "2024-05-01",
		"check_out_date": "2024-05-03",
		"adults":         2,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := id(t, resp.Data, "id")
	assert.Equal(t, "CONFIRMED", resp.Data["status"])
	assert.Equal(t, "2400", resp.Data["base_amount"])

	w, resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/check-in", bookingID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CHECKED_IN", resp.Data["status"])

	w, _ = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/charges", bookingID),
		map[string]string{"description": "Laundry", "amount": "200"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Unpaid balance blocks a plain checkout.
	w, resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/check-out", bookingID), nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFIRMATION_REQUIRED", resp.Error.Code)

	w, _ = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID),
		map[string]string{"amount": "2600", "method": "UPI"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d/folio", bookingID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PAID", resp.Data["payment_status"])

	w, resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/check-out", bookingID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, resp.Data["balance_warning"])
	assert.Equal(t, "CHECKED_OUT", resp.Data["booking"].(map[string]interface{})["status"])

	// The vacated room is dirty and has a pending cleaning task.
	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", roomID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DIRTY", resp.Data["status"])

	w, resp = s.request(t, http.MethodGet, "/api/v1/housekeeping/tasks", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	tasks, _ := resp.Data["tasks"].([]interface{})
	require.Len(t, tasks, 1)

	// The activity log saw the whole stay.
	w, resp = s.request(t, http.MethodGet, "/api/v1/activity", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVoidPaymentRoleGate(t *testing.T) {
	s := setupSuite(t)
	deskToken := s.login(t, "desk@test.in", "desk123")
	managerToken := s.login(t, "manager@test.in", "manager123")

	w, resp := s.request(t, http.MethodPost, "/api/v1/rooms", map[string]interface{}{
		"room_number": "202", "room_type": "SUITE", "price_per_night": "3000",
	}, deskToken)
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := id(t, resp.Data, "id")

	w, resp = s.request(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"guest":          map[string]string{"full_name": "Ravi Menon", "email": "ravi@example.com"},
		"room_id":        roomID,
		"check_in_date":  "2024-05-01",
		"check_out_date": "2024-05-02",
	}, deskToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := id(t, resp.Data, "id")

	w, resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID),
		map[string]string{"amount": "3000", "method": "CARD"}, deskToken)
	require.Equal(t, http.StatusCreated, w.Code)
	paymentID, _ := resp.Data["id"].(string)
	require.NotEmpty(t, paymentID)

	voidPath := fmt.Sprintf("/api/v1/bookings/%d/payments/%s/void", bookingID, paymentID)
	voidBody := map[string]string{"reason": "entered twice"}

	w, _ = s.request(t, http.MethodPost, voidPath, voidBody, deskToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = s.request(t, http.MethodPost, voidPath, voidBody, managerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp.Data["void"])
}

func TestCancelBooking(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t, "desk@test.in", "desk123")

	w, resp := s.request(t, http.MethodPost, "/api/v1/bookings", map[string]interface{}{
		"guest":          map[string]string{"full_name": "Meera Iyer", "email": "meera@example.com"},
		"check_in_date":  "2024-07-01",
		"check_out_date": "2024-07-04",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := id(t, resp.Data, "id")

	w, resp = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingID),
		map[string]string{"reason": "plans changed"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CANCELLED", resp.Data["status"])
	assert.Equal(t, "plans changed", resp.Data["cancellation_reason"])

	// Guest history shows the cancelled booking.
	guestID := id(t, resp.Data, "guest_id")
	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/v1/guests/%d/history", guestID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	bookings, _ := resp.Data["bookings"].([]interface{})
	require.Len(t, bookings, 1)
	assert.Equal(t, float64(0), resp.Data["total_stays"])
}
