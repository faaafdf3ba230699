package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Attendify-Backend/models"
	"Attendify-Backend/pkg/dateutil"
	"Attendify-Backend/pkg/paseto"
	"Attendify-Backend/repository"
)

// fakeAdjustmentRepo meniru semantik koleksi adjustments di memori.
type fakeAdjustmentRepo struct {
	adjustments []models.Adjustment
}

func (r *fakeAdjustmentRepo) FindOverlapping(_ context.Context, startDate, endDate string) (*models.Adjustment, error) {
	for i := range r.adjustments {
		a := r.adjustments[i]
		if dateutil.Overlaps(a.StartDate, a.EndDate, startDate, endDate) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdjustmentRepo) ListTouching(_ context.Context, monthStart, monthEnd string) ([]models.Adjustment, error) {
	result := []models.Adjustment{}
	for _, a := range r.adjustments {
		if dateutil.Overlaps(a.StartDate, a.EndDate, monthStart, monthEnd) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate < result[j].StartDate })
	return result, nil
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, adjustment *models.Adjustment) (*mongo.InsertOneResult, error) {
	adjustment.ID = primitive.NewObjectID()
	adjustment.CreatedAt = time.Now()
	adjustment.UpdatedAt = time.Now()
	r.adjustments = append(r.adjustments, *adjustment)
	return &mongo.InsertOneResult{InsertedID: adjustment.ID}, nil
}

func (r *fakeAdjustmentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Adjustment, error) {
	for i := range r.adjustments {
		if r.adjustments[i].ID == id {
			a := r.adjustments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdjustmentRepo) Delete(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	for i := range r.adjustments {
		if r.adjustments[i].ID == id {
			r.adjustments = append(r.adjustments[:i], r.adjustments[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{DeletedCount: 0}, nil
}

// fakeHolidayRepo meniru koleksi holidays, termasuk indeks unik compound.
type fakeHolidayRepo struct {
	holidays []models.Holiday
}

func sameOwner(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeHolidayRepo) FindByUniqueKey(_ context.Context, dateString string, holidayType models.HolidayType, userID *primitive.ObjectID) (*models.Holiday, error) {
	for i := range r.holidays {
		h := r.holidays[i]
		if h.DateString == dateString && h.Type == holidayType && sameOwner(h.UserID, userID) {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeHolidayRepo) ListForMonth(_ context.Context, monthStart, monthEnd string, requester primitive.ObjectID) ([]models.Holiday, error) {
	result := []models.Holiday{}
	for _, h := range r.holidays {
		if h.DateString < monthStart || h.DateString > monthEnd {
			continue
		}
		if h.Type.OwnerScoped() && (h.UserID == nil || *h.UserID != requester) {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DateString < result[j].DateString })
	return result, nil
}

func (r *fakeHolidayRepo) Create(_ context.Context, holiday *models.Holiday) (*mongo.InsertOneResult, error) {
	if existing, _ := r.FindByUniqueKey(context.Background(), holiday.DateString, holiday.Type, holiday.UserID); existing != nil {
		return nil, repository.ErrDuplicateHoliday
	}
	holiday.ID = primitive.NewObjectID()
	holiday.CreatedAt = time.Now()
	holiday.UpdatedAt = time.Now()
	r.holidays = append(r.holidays, *holiday)
	return &mongo.InsertOneResult{InsertedID: holiday.ID}, nil
}

func (r *fakeHolidayRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Holiday, error) {
	for i := range r.holidays {
		if r.holidays[i].ID == id {
			h := r.holidays[i]
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	for i := range r.holidays {
		if r.holidays[i].ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{DeletedCount: 0}, nil
}

// testNow adalah "bulan berjalan" deterministik untuk default year/month.
var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func withClaims(userID primitive.ObjectID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &paseto.Claims{UserID: userID, Email: "tester@attendify.local", Role: "karyawan"})
		return c.Next()
	}
}

func newAdjustmentApp(repo repository.AdjustmentRepository, userID primitive.ObjectID) *fiber.App {
	app := fiber.New()
	h := NewAdjustmentHandler(repo)
	h.now = func() time.Time { return testNow }

	app.Use(withClaims(userID))
	app.Get("/api/v1/adjustments", h.GetAdjustments)
	app.Post("/api/v1/adjustments", h.CreateAdjustment)
	app.Delete("/api/v1/adjustments", h.DeleteAdjustment)
	return app
}

func newHolidayApp(repo repository.HolidayRepository, userID primitive.ObjectID) *fiber.App {
	app := fiber.New()
	h := NewHolidayHandler(repo)
	h.now = func() time.Time { return testNow }

	app.Use(withClaims(userID))
	app.Get("/api/v1/holidays", h.GetHolidays)
	app.Post("/api/v1/holidays", h.CreateHoliday)
	app.Delete("/api/v1/holidays", h.DeleteHoliday)
	return app
}

func doJSON(app *fiber.App, method, target string, payload any) (*http.Response, map[string]json.RawMessage) {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}

	raw, _ := io.ReadAll(resp.Body)
	decoded := map[string]json.RawMessage{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func jsonString(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}
