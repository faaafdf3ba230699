package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Attendify-Backend/config"
	"Attendify-Backend/models"
)

// ErrDuplicateHoliday dikembalikan ketika indeks unik compound
// (date_string, type, user_id) menolak insert. Indeks tersebut adalah penjaga
// otoritatif; pengecekan duplikat di handler hanya untuk pesan yang ramah.
var ErrDuplicateHoliday = errors.New("holiday untuk tanggal, tipe, dan pemilik yang sama sudah ada")

type HolidayRepository interface {
	// FindByUniqueKey mencari entri dengan kunci unik (dateString, type,
	// userID); userID nil untuk tipe organisasi. Mengembalikan nil jika tidak ada.
	FindByUniqueKey(ctx context.Context, dateString string, holidayType models.HolidayType, userID *primitive.ObjectID) (*models.Holiday, error)
	// ListForMonth mengembalikan entri dalam rentang [monthStart, monthEnd]
	// yang boleh dilihat requester: semua GLOBAL/CUTI_BERSAMA, plus
	// PERSONAL/PIKET miliknya sendiri. Diurutkan berdasarkan date_string menaik.
	ListForMonth(ctx context.Context, monthStart, monthEnd string, requester primitive.ObjectID) ([]models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Holiday, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type holidayRepository struct {
	collection *mongo.Collection
}

func NewHolidayRepository() HolidayRepository {
	return &holidayRepository{
		collection: config.GetCollection(config.HolidayCollection),
	}
}

func (r *holidayRepository) FindByUniqueKey(ctx context.Context, dateString string, holidayType models.HolidayType, userID *primitive.ObjectID) (*models.Holiday, error) {
	var holiday models.Holiday

	filter := bson.M{
		"date_string": dateString,
		"type":        holidayType,
		"user_id":     userID,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&holiday)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari holiday duplikat: %w", err)
	}
	return &holiday, nil
}

func (r *holidayRepository) ListForMonth(ctx context.Context, monthStart, monthEnd string, requester primitive.ObjectID) ([]models.Holiday, error) {
	filter := bson.M{
		"date_string": bson.M{"$gte": monthStart, "$lte": monthEnd},
		"$or": []bson.M{
			{"type": models.HolidayGlobal},
			{"type": models.HolidayCutiBersama},
			{"type": models.HolidayPersonal, "user_id": requester},
			{"type": models.HolidayPiket, "user_id": requester},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date_string", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan holiday: %w", err)
	}
	defer cursor.Close(ctx)

	var holidays []models.Holiday
	if err = cursor.All(ctx, &holidays); err != nil {
		return nil, fmt.Errorf("gagal mendecode holiday: %w", err)
	}

	if len(holidays) == 0 {
		return []models.Holiday{}, nil
	}
	return holidays, nil
}

func (r *holidayRepository) Create(ctx context.Context, holiday *models.Holiday) (*mongo.InsertOneResult, error) {
	holiday.ID = primitive.NewObjectID()
	holiday.CreatedAt = time.Now()
	holiday.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, holiday)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateHoliday
		}
		return nil, fmt.Errorf("gagal membuat holiday: %w", err)
	}
	return result, nil
}

func (r *holidayRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Holiday, error) {
	var holiday models.Holiday

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&holiday)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan holiday berdasarkan ID: %w", err)
	}
	return &holiday, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus holiday: %w", err)
	}
	return result, nil
}
