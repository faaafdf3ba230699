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

type AdjustmentRepository interface {
	// FindOverlapping mengembalikan satu adjustment yang rentangnya beririsan
	// dengan [startDate, endDate] (interval tertutup), atau nil jika tidak ada.
	FindOverlapping(ctx context.Context, startDate, endDate string) (*models.Adjustment, error)
	// ListTouching mengembalikan semua adjustment yang menyentuh rentang
	// [monthStart, monthEnd], diurutkan berdasarkan start_date menaik.
	ListTouching(ctx context.Context, monthStart, monthEnd string) ([]models.Adjustment, error)
	Create(ctx context.Context, adjustment *models.Adjustment) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Adjustment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

type adjustmentRepository struct {
	collection *mongo.Collection
}

func NewAdjustmentRepository() AdjustmentRepository {
	return &adjustmentRepository{
		collection: config.GetCollection(config.AdjustmentCollection),
	}
}

func (r *adjustmentRepository) FindOverlapping(ctx context.Context, startDate, endDate string) (*models.Adjustment, error) {
	var adjustment models.Adjustment

	// Irisan interval tertutup: start_date <= endDate DAN end_date >= startDate
	filter := bson.M{
		"start_date": bson.M{"$lte": endDate},
		"end_date":   bson.M{"$gte": startDate},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&adjustment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari adjustment yang beririsan: %w", err)
	}
	return &adjustment, nil
}

func (r *adjustmentRepository) ListTouching(ctx context.Context, monthStart, monthEnd string) ([]models.Adjustment, error) {
	filter := bson.M{
		"start_date": bson.M{"$lte": monthEnd},
		"end_date":   bson.M{"$gte": monthStart},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal menemukan adjustment: %w", err)
	}
	defer cursor.Close(ctx)

	var adjustments []models.Adjustment
	if err = cursor.All(ctx, &adjustments); err != nil {
		return nil, fmt.Errorf("gagal mendecode adjustment: %w", err)
	}

	if len(adjustments) == 0 {
		return []models.Adjustment{}, nil
	}
	return adjustments, nil
}

func (r *adjustmentRepository) Create(ctx context.Context, adjustment *models.Adjustment) (*mongo.InsertOneResult, error) {
	adjustment.ID = primitive.NewObjectID()
	adjustment.CreatedAt = time.Now()
	adjustment.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, adjustment)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat adjustment: %w", err)
	}
	return result, nil
}

func (r *adjustmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Adjustment, error) {
	var adjustment models.Adjustment

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&adjustment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan adjustment berdasarkan ID: %w", err)
	}
	return &adjustment, nil
}

func (r *adjustmentRepository) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("gagal menghapus adjustment: %w", err)
	}
	return result, nil
}
