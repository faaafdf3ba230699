package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendify-Backend/models"
	"Attendify-Backend/pkg/dateutil"
	util "Attendify-Backend/pkg/utils"
	"Attendify-Backend/repository"
)

type HolidayHandler struct {
	holidayRepo repository.HolidayRepository
	now         func() time.Time
}

func NewHolidayHandler(holidayRepo repository.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{
		holidayRepo: holidayRepo,
		now:         time.Now,
	}
}

// GetHolidays mengembalikan entri kalender bulan yang diminta (default bulan
// berjalan): semua entri organisasi plus entri PERSONAL/PIKET milik requester.
func (h *HolidayHandler) GetHolidays(c *fiber.Ctx) error {
	claims, ok := requesterClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year, month, ok := queryMonth(c, h.now())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year or month"})
	}

	monthStart, monthEnd := dateutil.MonthBounds(year, month)

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	holidays, err := h.holidayRepo.ListForMonth(ctx, monthStart, monthEnd, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"holidays": holidays})
}

// CreateHoliday memvalidasi payload, menurunkan date_string/is_deductible/
// user_id dari kebijakan tipe, lalu menolak duplikat pada kunci unik
// (date_string, type, user_id).
func (h *HolidayHandler) CreateHoliday(c *fiber.Ctx) error {
	claims, ok := requesterClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var payload models.HolidayCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: date, name, type"})
	}

	parsedDate, err := dateutil.ParseDateInput(payload.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format", "details": err.Error()})
	}

	holidayType := models.HolidayType(payload.Type)

	// Kunci otoritatif adalah hari kalender WIB; instant yang disimpan hanya
	// jangkar tengah hari UTC yang diturunkan dari kunci itu.
	dateString := dateutil.ToDateKey(parsedDate)
	anchoredDate, err := dateutil.ToAnchoredInstant(dateString)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format", "details": err.Error()})
	}

	var ownerID *primitive.ObjectID
	if holidayType.OwnerScoped() {
		requester := claims.UserID
		ownerID = &requester
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.holidayRepo.FindByUniqueKey(ctx, dateString, holidayType, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("A %s already exists on %s.", holidayType.Label(), dateString),
		})
	}

	holiday := &models.Holiday{
		Date:         anchoredDate,
		DateString:   dateString,
		Name:         name,
		Type:         holidayType,
		IsDeductible: models.EffectiveIsDeductible(holidayType, payload.IsDeductible),
		UserID:       ownerID,
	}

	if _, err := h.holidayRepo.Create(ctx, holiday); err != nil {
		// Indeks unik adalah penjaga terakhir saat dua insert berpacu.
		if errors.Is(err, repository.ErrDuplicateHoliday) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A holiday already exists for this date and type."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Holiday created successfully",
		"holiday": holiday,
	})
}

// DeleteHoliday menghapus entri berdasarkan id. Entri PERSONAL/PIKET hanya
// boleh dihapus pemiliknya; entri organisasi boleh dihapus requester manapun.
func (h *HolidayHandler) DeleteHoliday(c *fiber.Ctx) error {
	claims, ok := requesterClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing holiday id"})
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid holiday id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	holiday, err := h.holidayRepo.FindByID(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}
	if holiday == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Holiday not found"})
	}

	if holiday.Type.OwnerScoped() && (holiday.UserID == nil || *holiday.UserID != claims.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot delete another user's entry"})
	}

	if _, err := h.holidayRepo.Delete(ctx, objectID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Holiday deleted successfully"})
}
