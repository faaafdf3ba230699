package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Adjustment mengurangi target menit bulanan karyawan selama rentang tanggal
// tertutup [StartDate, EndDate]. Seluruh adjustment yang tersimpan harus
// saling lepas (tidak ada dua rentang yang beririsan).
type Adjustment struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	StartDate        string             `json:"startDate" bson:"start_date"`
	EndDate          string             `json:"endDate" bson:"end_date"`
	ReductionMinutes int                `json:"reductionMinutes" bson:"reduction_minutes"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type AdjustmentCreatePayload struct {
	Name             string `json:"name" validate:"required,min=1,max=100"`
	StartDate        string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"endDate" validate:"required,datetime=2006-01-02"`
	ReductionMinutes *int   `json:"reductionMinutes" validate:"required,min=0"`
}
