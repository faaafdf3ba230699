package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Attendify-Backend/models"
	"Attendify-Backend/pkg/dateutil"
	util "Attendify-Backend/pkg/utils"
	"Attendify-Backend/repository"
)

// SeedNationalHolidays mengisi koleksi holiday dengan hari libur nasional
// tahun berjalan sebagai entri GLOBAL. Entri yang sudah ada dilewati, jadi
// aman dijalankan berulang.
func SeedNationalHolidays(holidayRepo repository.HolidayRepository, year int) {
	log.Printf("Memulai seeding hari libur nasional %d...", year)

	national, err := util.GetNationalHolidays(fmt.Sprintf("%d", year))
	if err != nil {
		log.Printf("Gagal mengambil hari libur nasional: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	added := 0
	for _, nh := range national {
		// API eksternal kadang mengembalikan bulan/hari tanpa padding nol.
		parsed, err := time.Parse("2006-1-2", nh.Date)
		if err != nil {
			log.Printf("Tanggal libur tidak valid dari API, dilewati: %q", nh.Date)
			continue
		}
		dateString := dateutil.ToDateKey(parsed)

		existing, err := holidayRepo.FindByUniqueKey(ctx, dateString, models.HolidayGlobal, nil)
		if err != nil {
			log.Printf("Gagal cek duplikat untuk %s: %v", dateString, err)
			continue
		}
		if existing != nil {
			continue
		}

		anchored, err := dateutil.ToAnchoredInstant(dateString)
		if err != nil {
			continue
		}

		holiday := &models.Holiday{
			Date:         anchored,
			DateString:   dateString,
			Name:         nh.Name,
			Type:         models.HolidayGlobal,
			IsDeductible: models.EffectiveIsDeductible(models.HolidayGlobal, nil),
		}

		if _, err := holidayRepo.Create(ctx, holiday); err != nil {
			if errors.Is(err, repository.ErrDuplicateHoliday) {
				continue
			}
			log.Printf("Gagal menyimpan hari libur %s: %v", dateString, err)
			continue
		}
		added++
	}

	log.Printf("Seeding selesai. %d hari libur nasional ditambahkan.", added)
}
