package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendify-Backend/models"
	"Attendify-Backend/pkg/dateutil"
	util "Attendify-Backend/pkg/utils"
	"Attendify-Backend/repository"
)

// adjustmentWriteMu menserialisasi urutan cek-irisan-lalu-insert. Seluruh
// koleksi adjustment adalah satu domain konflik, dan Mongo tidak menegakkan
// eksklusivitas interval, jadi penjaganya ada di level aplikasi.
var adjustmentWriteMu sync.Mutex

type AdjustmentHandler struct {
	adjustmentRepo repository.AdjustmentRepository
	now            func() time.Time
}

func NewAdjustmentHandler(adjustmentRepo repository.AdjustmentRepository) *AdjustmentHandler {
	return &AdjustmentHandler{
		adjustmentRepo: adjustmentRepo,
		now:            time.Now,
	}
}

// GetAdjustments mengembalikan adjustment yang rentangnya menyentuh bulan
// yang diminta (default bulan berjalan), diurutkan berdasarkan startDate.
func (h *AdjustmentHandler) GetAdjustments(c *fiber.Ctx) error {
	if _, ok := requesterClaims(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year, month, ok := queryMonth(c, h.now())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year or month"})
	}

	monthStart, monthEnd := dateutil.MonthBounds(year, month)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	adjustments, err := h.adjustmentRepo.ListTouching(ctx, monthStart, monthEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"adjustments": adjustments})
}

// CreateAdjustment memvalidasi payload lalu menolak rentang yang beririsan
// dengan adjustment manapun yang sudah tersimpan.
func (h *AdjustmentHandler) CreateAdjustment(c *fiber.Ctx) error {
	if _, ok := requesterClaims(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var payload models.AdjustmentCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: name, startDate, endDate, reductionMinutes"})
	}

	if payload.StartDate > payload.EndDate {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "startDate must be before or equal to endDate"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	adjustmentWriteMu.Lock()
	defer adjustmentWriteMu.Unlock()

	overlapping, err := h.adjustmentRepo.FindOverlapping(ctx, payload.StartDate, payload.EndDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
	if overlapping != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Overlaps with existing adjustment %q (%s - %s)", overlapping.Name, overlapping.StartDate, overlapping.EndDate),
		})
	}

	adjustment := &models.Adjustment{
		Name:             name,
		StartDate:        payload.StartDate,
		EndDate:          payload.EndDate,
		ReductionMinutes: *payload.ReductionMinutes,
	}

	if _, err := h.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Adjustment created successfully",
		"adjustment": adjustment,
	})
}

// DeleteAdjustment menghapus adjustment berdasarkan id. Adjustment berlaku
// untuk seluruh organisasi, jadi tidak ada pengecekan kepemilikan.
func (h *AdjustmentHandler) DeleteAdjustment(c *fiber.Ctx) error {
	if _, ok := requesterClaims(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing adjustment id"})
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid adjustment id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	adjustment, err := h.adjustmentRepo.FindByID(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
	if adjustment == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Adjustment not found"})
	}

	if _, err := h.adjustmentRepo.Delete(ctx, objectID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Adjustment deleted successfully"})
}
