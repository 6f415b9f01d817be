package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/config"
	"github.com/adityawr/fitstudio/internal/models"
	"github.com/adityawr/fitstudio/internal/server"
	"golang.org/x/crypto/bcrypt"
)

// These tests run against a real database. Point TEST_DATABASE_DSN at a
// throwaway Postgres instance to enable them; they truncate every table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database-backed tests")
	}

	db, err := config.OpenDatabase(dsn)
	require.NoError(t, err)

	err = db.Exec(`TRUNCATE bookings, payments, user_memberships, events, trainer_clubs, classes, trainers, clubs, tariffs, users, accounts CASCADE`).Error
	require.NoError(t, err)
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "integration-secret")
	gin.SetMode(gin.TestMode)
	return server.NewRouter(db)
}

func sendJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *strings.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = strings.NewReader(string(raw))
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sendForm(router *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func memberToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	register := map[string]interface{}{
		"username":   "jane",
		"email":      "jane@example.com",
		"password":   "password123",
		"first_name": "Jane",
		"last_name":  "Doe",
		"gender":     "F",
		"phone":      "+10000000000",
	}
	w := sendJSON(router, http.MethodPost, "/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = sendJSON(router, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

func adminToken(t *testing.T, db *gorm.DB, router *gin.Engine) string {
	t.Helper()
	var role models.Role
	require.NoError(t, db.Where("name = ?", models.RoleAdmin).First(&role).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := models.Account{
		Username:     "boss",
		Email:        "boss@example.com",
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	require.NoError(t, db.Create(&account).Error)
	require.NoError(t, db.Create(&models.User{AccountID: account.ID, FirstName: "Big", LastName: "Boss", Phone: "+1"}).Error)

	w := sendJSON(router, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "boss@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

type fixtures struct {
	club    models.Club
	trainer models.Trainer
	class   models.Class
}

func createFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		club:    models.Club{Name: "Downtown", Address: "1 Main St", Phone: "+1", WorkingHours: "6-22", Amenities: "pool"},
		trainer: models.Trainer{FullName: "Alex Stone", Experience: "5 years", Speciality: "Yoga"},
		class:   models.Class{Title: "Yoga", Category: "Mind & Body", DurationMinutes: 45, Level: 2},
	}
	require.NoError(t, db.Create(&f.club).Error)
	require.NoError(t, db.Create(&f.trainer).Error)
	require.NoError(t, db.Create(&f.class).Error)
	return f
}

func TestEventsRequireAuthentication(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)

	w := sendJSON(router, http.MethodGet, "/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "events")
}

func TestEventCreateMissingStartAt(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	token := memberToken(t, router)
	f := createFixtures(t, db)

	form := url.Values{}
	form.Set("class_id", f.class.ID.String())
	form.Set("trainer_id", f.trainer.ID.String())
	form.Set("club_id", f.club.ID.String())
	form.Set("end_at", "2030-07-01T19:00")
	form.Set("status", "scheduled")

	w := sendForm(router, http.MethodPost, "/events/create", token, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	fieldErrors := body["errors"].(map[string]interface{})
	assert.Contains(t, fieldErrors, "start_at")

	// Submitted values must be echoed back, and nothing written.
	values := body["values"].(map[string]interface{})
	assert.Equal(t, f.class.ID.String(), values["class_id"])

	var count int64
	db.Model(&models.Event{}).Count(&count)
	assert.Zero(t, count)
}

func TestEventDeleteConfirmFlow(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	token := memberToken(t, router)
	f := createFixtures(t, db)

	form := url.Values{}
	form.Set("class_id", f.class.ID.String())
	form.Set("trainer_id", f.trainer.ID.String())
	form.Set("club_id", f.club.ID.String())
	form.Set("start_at", "2030-07-01T18:00")
	form.Set("end_at", "2030-07-01T19:00")

	w := sendForm(router, http.MethodPost, "/events/create", token, form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	eventID := decodeBody(t, w)["event_id"].(string)

	// GET shows the confirmation and must not delete.
	w = sendJSON(router, http.MethodGet, "/events/"+eventID+"/delete", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count)
	assert.EqualValues(t, 1, count)

	// POST performs the deletion.
	w = sendJSON(router, http.MethodPost, "/events/"+eventID+"/delete", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count)
	assert.Zero(t, count)

	// A second attempt hits nothing.
	w = sendJSON(router, http.MethodPost, "/events/"+eventID+"/delete", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClubDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	_ = memberToken(t, router)
	f := createFixtures(t, db)

	event := models.Event{
		ClassID:   f.class.ID,
		TrainerID: f.trainer.ID,
		ClubID:    f.club.ID,
		StartAt:   time.Now().Add(24 * time.Hour),
		EndAt:     time.Now().Add(25 * time.Hour),
		Status:    models.EventStatusScheduled,
	}
	require.NoError(t, db.Create(&event).Error)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	booking := models.Booking{EventID: event.ID, UserID: user.ID, Status: true}
	require.NoError(t, db.Create(&booking).Error)

	require.NoError(t, db.Delete(&f.club).Error)

	var eventCount, bookingCount int64
	db.Model(&models.Event{}).Count(&eventCount)
	db.Model(&models.Booking{}).Count(&bookingCount)
	assert.Zero(t, eventCount)
	assert.Zero(t, bookingCount)
}

func TestHomepageAggregates(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	_ = memberToken(t, router)
	f := createFixtures(t, db)

	// A second class with no events must never reach "popular categories".
	emptyClass := models.Class{Title: "Pilates", Category: "Mind & Body", DurationMinutes: 60, Level: 1}
	require.NoError(t, db.Create(&emptyClass).Error)

	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	for i := 0; i < 6; i++ {
		event := models.Event{
			ClassID:   f.class.ID,
			TrainerID: f.trainer.ID,
			ClubID:    f.club.ID,
			StartAt:   base.Add(time.Duration(i) * time.Hour),
			EndAt:     base.Add(time.Duration(i)*time.Hour + 45*time.Minute),
			Status:    models.EventStatusScheduled,
		}
		require.NoError(t, db.Create(&event).Error)
	}
	completed := models.Event{
		ClassID:   f.class.ID,
		TrainerID: f.trainer.ID,
		ClubID:    f.club.ID,
		StartAt:   base.Add(-48 * time.Hour),
		EndAt:     base.Add(-47 * time.Hour),
		Status:    models.EventStatusCompleted,
	}
	require.NoError(t, db.Create(&completed).Error)

	// Tariff with two active memberships and one expired.
	tariff := models.Tariff{Name: "Gold", PricePerMonth: 50, IsActive: true}
	require.NoError(t, db.Create(&tariff).Error)
	var user models.User
	require.NoError(t, db.First(&user).Error)
	for _, status := range []models.MembershipStatus{
		models.MembershipStatusActive,
		models.MembershipStatusActive,
		models.MembershipStatusExpired,
	} {
		membership := models.UserMembership{
			UserID:    user.ID,
			TariffID:  tariff.ID,
			ClubID:    f.club.ID,
			StartDate: base.Add(-30 * 24 * time.Hour),
			EndDate:   base.Add(30 * 24 * time.Hour),
			Status:    status,
		}
		require.NoError(t, db.Create(&membership).Error)
	}

	w := sendJSON(router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)

	// Upcoming events: scheduled only, ascending, capped at 5.
	latest := body["latest_events"].([]interface{})
	require.Len(t, latest, 5)
	var previous time.Time
	for i, raw := range latest {
		event := raw.(map[string]interface{})
		assert.Equal(t, "scheduled", event["status"])
		startAt, err := time.Parse(time.RFC3339, event["start_at"].(string))
		require.NoError(t, err)
		if i > 0 {
			assert.False(t, startAt.Before(previous), "events must be ordered by start_at ascending")
		}
		previous = startAt
	}

	tariffs := body["active_tariffs"].([]interface{})
	require.Len(t, tariffs, 1)
	assert.EqualValues(t, 2, tariffs[0].(map[string]interface{})["active_memberships_count"])

	popular := body["popular_categories"].([]interface{})
	require.Len(t, popular, 1)
	top := popular[0].(map[string]interface{})
	assert.Equal(t, "Yoga", top["title"])
	assert.EqualValues(t, 7, top["event_count"])

	assert.EqualValues(t, 2, body["total_members"])
	assert.EqualValues(t, 1, body["total_trainers"])
	assert.EqualValues(t, 1, body["total_classes"])
	assert.EqualValues(t, 1, body["clubs_count"])
}

func TestAdminBookingMaintainsBookedCount(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	_ = memberToken(t, router)
	token := adminToken(t, db, router)
	f := createFixtures(t, db)

	event := models.Event{
		ClassID:   f.class.ID,
		TrainerID: f.trainer.ID,
		ClubID:    f.club.ID,
		StartAt:   time.Now().Add(24 * time.Hour),
		EndAt:     time.Now().Add(25 * time.Hour),
		Status:    models.EventStatusScheduled,
	}
	require.NoError(t, db.Create(&event).Error)

	var user models.User
	require.NoError(t, db.First(&user).Error)

	w := sendJSON(router, http.MethodPost, "/admin/bookings", token, map[string]interface{}{
		"event_id": event.ID.String(),
		"user_id":  user.ID.String(),
		"status":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := decodeBody(t, w)["record"].(map[string]interface{})["id"].(string)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, "id = ?", event.ID).Error)
	assert.EqualValues(t, 1, reloaded.BookedCount)

	w = sendJSON(router, http.MethodDelete, "/admin/bookings/"+bookingID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&reloaded, "id = ?", event.ID).Error)
	assert.Zero(t, reloaded.BookedCount)
}

func TestAdminGateAndGenericList(t *testing.T) {
	db := openTestDB(t)
	router := newTestRouter(t, db)
	member := memberToken(t, router)
	admin := adminToken(t, db, router)
	f := createFixtures(t, db)

	w := sendJSON(router, http.MethodGet, "/admin/trainers", member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = sendJSON(router, http.MethodGet, "/admin/trainers?search=stone", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	records := body["records"].([]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, f.trainer.FullName, records[0].(map[string]interface{})["full_name"])

	w = sendJSON(router, http.MethodGet, "/admin/trainers?search=nobody", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["records"], 0)

	w = sendJSON(router, http.MethodGet, "/admin/nonsense", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = sendJSON(router, http.MethodGet, fmt.Sprintf("/admin/trainers/%s", f.trainer.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = sendJSON(router, http.MethodGet, "/admin/trainers/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
