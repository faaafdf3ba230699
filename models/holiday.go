package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HolidayType string

const (
	HolidayGlobal      HolidayType = "GLOBAL"
	HolidayCutiBersama HolidayType = "CUTI_BERSAMA"
	HolidayPersonal    HolidayType = "PERSONAL"
	HolidayPiket       HolidayType = "PIKET"
)

// Holiday adalah penanda kalender satu hari. DateString adalah kunci
// otoritatif untuk semua logika rentang; Date hanya turunan (jangkar tengah
// hari UTC) untuk kompatibilitas tampilan.
type Holiday struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Date         time.Time           `json:"date" bson:"date"`
	DateString   string              `json:"dateString" bson:"date_string"`
	Name         string              `json:"name" bson:"name"`
	Type         HolidayType         `json:"type" bson:"type"`
	IsDeductible bool                `json:"isDeductible" bson:"is_deductible"`
	UserID       *primitive.ObjectID `json:"userId,omitempty" bson:"user_id"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at,omitempty"`
}

type HolidayCreatePayload struct {
	Date         string `json:"date" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Type         string `json:"type" validate:"required,oneof=GLOBAL CUTI_BERSAMA PERSONAL PIKET"`
	IsDeductible *bool  `json:"isDeductible,omitempty"`
}

// HolidayTypePolicy menentukan perilaku per tipe: label untuk pesan error,
// nilai is_deductible yang dipaksa (nil berarti mengikuti input, default
// true), dan apakah entri terikat pada pemiliknya (menentukan kewajiban
// user_id, visibilitas baca, dan hak hapus).
type HolidayTypePolicy struct {
	Label           string
	ForceDeductible *bool
	OwnerScoped     bool
}

var (
	forceTrue  = true
	forceFalse = false
)

var holidayTypePolicies = map[HolidayType]HolidayTypePolicy{
	HolidayGlobal:      {Label: "Global Holiday", ForceDeductible: &forceTrue, OwnerScoped: false},
	HolidayCutiBersama: {Label: "Cuti Bersama", ForceDeductible: &forceTrue, OwnerScoped: false},
	HolidayPersonal:    {Label: "Personal Leave", ForceDeductible: nil, OwnerScoped: true},
	HolidayPiket:       {Label: "Piket", ForceDeductible: &forceFalse, OwnerScoped: true},
}

// PolicyFor mengembalikan kebijakan untuk tipe yang diberikan.
func PolicyFor(t HolidayType) (HolidayTypePolicy, bool) {
	policy, ok := holidayTypePolicies[t]
	return policy, ok
}

// IsValid reports whether t is one of the four known holiday types.
func (t HolidayType) IsValid() bool {
	_, ok := holidayTypePolicies[t]
	return ok
}

// Label mengembalikan label tipe untuk pesan yang dibaca manusia.
func (t HolidayType) Label() string {
	if policy, ok := holidayTypePolicies[t]; ok {
		return policy.Label
	}
	return string(t)
}

// OwnerScoped reports whether entries of this type belong to a single user.
func (t HolidayType) OwnerScoped() bool {
	policy, ok := holidayTypePolicies[t]
	return ok && policy.OwnerScoped
}

// EffectiveIsDeductible menerapkan nilai paksa dari kebijakan; untuk tipe
// tanpa paksaan, mengikuti input caller (default true jika tidak diisi).
func EffectiveIsDeductible(t HolidayType, supplied *bool) bool {
	if policy, ok := holidayTypePolicies[t]; ok && policy.ForceDeductible != nil {
		return *policy.ForceDeductible
	}
	if supplied != nil {
		return *supplied
	}
	return true
}
