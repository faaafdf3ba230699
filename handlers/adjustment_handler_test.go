package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendify-Backend/models"
)

func createAdjustmentPayload(name, start, end string, minutes int) map[string]any {
	return map[string]any{
		"name":             name,
		"startDate":        start,
		"endDate":          end,
		"reductionMinutes": minutes,
	}
}

func TestCreateAdjustment_Success(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	resp, body := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Ramadan", "2026-03-10", "2026-03-20", 60))

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %v)", resp.StatusCode, body)
	}

	var created models.Adjustment
	if err := json.Unmarshal(body["adjustment"], &created); err != nil {
		t.Fatalf("failed to decode adjustment: %v", err)
	}
	if created.Name != "Ramadan" || created.StartDate != "2026-03-10" || created.EndDate != "2026-03-20" || created.ReductionMinutes != 60 {
		t.Errorf("unexpected adjustment: %+v", created)
	}
	if created.ID.IsZero() {
		t.Error("created adjustment has no id")
	}
}

func TestCreateAdjustment_TrimsName(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	resp, body := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("  Ramadan  ", "2026-03-10", "2026-03-20", 60))

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %v)", resp.StatusCode, body)
	}
	var created models.Adjustment
	_ = json.Unmarshal(body["adjustment"], &created)
	if created.Name != "Ramadan" {
		t.Errorf("name = %q, want trimmed %q", created.Name, "Ramadan")
	}
}

func TestCreateAdjustment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing name", payload: map[string]any{"startDate": "2026-03-10", "endDate": "2026-03-20", "reductionMinutes": 60}},
		{name: "missing reductionMinutes", payload: map[string]any{"name": "X", "startDate": "2026-03-10", "endDate": "2026-03-20"}},
		{name: "malformed startDate", payload: createAdjustmentPayload("X", "10-03-2026", "2026-03-20", 60)},
		{name: "negative reductionMinutes", payload: createAdjustmentPayload("X", "2026-03-10", "2026-03-20", -5)},
		{name: "startDate after endDate", payload: createAdjustmentPayload("X", "2026-03-21", "2026-03-20", 60)},
		{name: "whitespace-only name", payload: createAdjustmentPayload("   ", "2026-03-10", "2026-03-20", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAdjustmentRepo{}
			app := newAdjustmentApp(repo, primitive.NewObjectID())

			resp, _ := doJSON(app, http.MethodPost, "/api/v1/adjustments", tt.payload)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if len(repo.adjustments) != 0 {
				t.Error("invalid payload must not be persisted")
			}
		})
	}
}

func TestCreateAdjustment_OverlapConflict(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	resp, _ := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Ramadan", "2026-03-10", "2026-03-20", 60))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first create: status = %d, want 201", resp.StatusCode)
	}

	// Interval tertutup yang bersinggungan di hari batas tetap konflik.
	resp, body := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Lebaran", "2026-03-20", "2026-03-25", 30))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("boundary create: status = %d, want 409", resp.StatusCode)
	}

	want := `Overlaps with existing adjustment "Ramadan" (2026-03-10 - 2026-03-20)`
	if got := jsonString(body["error"]); got != want {
		t.Errorf("conflict message = %q, want %q", got, want)
	}

	if len(repo.adjustments) != 1 {
		t.Errorf("store holds %d adjustments, want 1", len(repo.adjustments))
	}
}

func TestCreateAdjustment_IdenticalRangeConflict(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	first, _ := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("A", "2026-03-01", "2026-03-05", 15))
	second, _ := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("B", "2026-03-01", "2026-03-05", 15))

	if first.StatusCode != fiber.StatusCreated || second.StatusCode != fiber.StatusConflict {
		t.Errorf("statuses = (%d, %d), want (201, 409)", first.StatusCode, second.StatusCode)
	}
}

func TestGetAdjustments_MonthSelection(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	// Tiga rentang: sepenuhnya Februari, melewati batas bulan, sepenuhnya Maret.
	doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Feb only", "2026-02-10", "2026-02-12", 10))
	doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Feb-Mar", "2026-02-25", "2026-03-02", 20))
	doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Mar only", "2026-03-20", "2026-03-22", 30))

	resp, body := doJSON(app, http.MethodGet, "/api/v1/adjustments?year=2026&month=2", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var adjustments []models.Adjustment
	if err := json.Unmarshal(body["adjustments"], &adjustments); err != nil {
		t.Fatalf("failed to decode adjustments: %v", err)
	}

	if len(adjustments) != 2 {
		t.Fatalf("February query returned %d adjustments, want 2", len(adjustments))
	}
	if adjustments[0].Name != "Feb only" || adjustments[1].Name != "Feb-Mar" {
		t.Errorf("wrong order or selection: %q, %q", adjustments[0].Name, adjustments[1].Name)
	}
}

func TestGetAdjustments_DefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Maret", "2026-03-01", "2026-03-03", 10))
	doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("April", "2026-04-01", "2026-04-03", 10))

	// testNow jatuh pada Maret 2026.
	resp, body := doJSON(app, http.MethodGet, "/api/v1/adjustments", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var adjustments []models.Adjustment
	_ = json.Unmarshal(body["adjustments"], &adjustments)
	if len(adjustments) != 1 || adjustments[0].Name != "Maret" {
		t.Errorf("default month selection wrong: %+v", adjustments)
	}
}

func TestGetAdjustments_InvalidMonth(t *testing.T) {
	app := newAdjustmentApp(&fakeAdjustmentRepo{}, primitive.NewObjectID())

	resp, _ := doJSON(app, http.MethodGet, "/api/v1/adjustments?year=2026&month=13", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteAdjustment(t *testing.T) {
	repo := &fakeAdjustmentRepo{}
	app := newAdjustmentApp(repo, primitive.NewObjectID())

	_, body := doJSON(app, http.MethodPost, "/api/v1/adjustments", createAdjustmentPayload("Hapus", "2026-03-10", "2026-03-12", 10))
	var created models.Adjustment
	_ = json.Unmarshal(body["adjustment"], &created)

	t.Run("missing id", func(t *testing.T) {
		resp, _ := doJSON(app, http.MethodDelete, "/api/v1/adjustments", nil)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doJSON(app, http.MethodDelete, "/api/v1/adjustments?id="+primitive.NewObjectID().Hex(), nil)
		if resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("success", func(t *testing.T) {
		resp, _ := doJSON(app, http.MethodDelete, "/api/v1/adjustments?id="+created.ID.Hex(), nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
		if len(repo.adjustments) != 0 {
			t.Error("adjustment still present after delete")
		}
	})
}

func TestAdjustments_RequireIdentity(t *testing.T) {
	// Tanpa middleware yang memasang claims, semua operasi harus 401.
	app := fiber.New()
	h := NewAdjustmentHandler(&fakeAdjustmentRepo{})
	app.Get("/api/v1/adjustments", h.GetAdjustments)
	app.Post("/api/v1/adjustments", h.CreateAdjustment)
	app.Delete("/api/v1/adjustments", h.DeleteAdjustment)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/v1/adjustments", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("%s request failed: %v", method, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", method, resp.StatusCode)
		}
	}
}
