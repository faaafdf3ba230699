package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Attendify-Backend/pkg/dateutil"
	"Attendify-Backend/pkg/paseto"
)

// requesterClaims mengambil identitas requester yang dipasang oleh
// AuthMiddleware. Tanpa identitas, request tidak boleh menyentuh store.
func requesterClaims(c *fiber.Ctx) (*paseto.Claims, bool) {
	claims, ok := c.Locals("user").(*paseto.Claims)
	return claims, ok
}

// queryMonth membaca parameter year/month dengan default bulan berjalan
// menurut jam WIB yang diberikan. Month di luar 1-12 dianggap tidak valid.
func queryMonth(c *fiber.Ctx, now time.Time) (int, time.Month, bool) {
	wibNow := now.In(dateutil.WIB)

	year := c.QueryInt("year", wibNow.Year())
	month := c.QueryInt("month", int(wibNow.Month()))

	if year < 1 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
