package util

import (
	"encoding/json"
	"io"
	"net/http"
)

// NationalHoliday adalah satu hari libur nasional dari API eksternal.
type NationalHoliday struct {
	Date string
	Name string
}

// holidayAPIData adalah struct helper untuk parsing JSON dari API
type holidayAPIData struct {
	Date              string `json:"holiday_date"`
	Name              string `json:"holiday_name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

// GetNationalHolidays mengambil daftar hari libur nasional untuk satu tahun
// dari API eksternal.
func GetNationalHolidays(year string) ([]NationalHoliday, error) {
	resp, err := http.Get("https://api-harilibur.vercel.app/api?year=" + year)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rawHolidays []holidayAPIData
	if err := json.Unmarshal(body, &rawHolidays); err != nil {
		return nil, err
	}

	var holidays []NationalHoliday
	for _, rawHoliday := range rawHolidays {
		if rawHoliday.IsNationalHoliday {
			holidays = append(holidays, NationalHoliday{
				Date: rawHoliday.Date,
				Name: rawHoliday.Name,
			})
		}
	}
	return holidays, nil
}
