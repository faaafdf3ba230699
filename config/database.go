package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "attendify-db"
var UserCollection string = "users"
var AdjustmentCollection string = "adjustments"
var HolidayCollection string = "holidays"

func MongoConnect() {

	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING belum di setting di env. coba setting dulu")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase membuat indeks yang dibutuhkan aplikasi. Indeks unik compound
// pada holidays adalah penjaga utama duplikasi; pengecekan di handler hanya
// untuk pesan error yang ramah.
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := GetCollection(UserCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Fatalf("Gagal membuat indeks users: %v", err)
	}

	adjustmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
		},
	}
	if _, err := GetCollection(AdjustmentCollection).Indexes().CreateMany(ctx, adjustmentIndexes); err != nil {
		log.Fatalf("Gagal membuat indeks adjustments: %v", err)
	}

	holidayIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date_string", Value: 1}, {Key: "type", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date_string", Value: 1}},
		},
	}
	if _, err := GetCollection(HolidayCollection).Indexes().CreateMany(ctx, holidayIndexes); err != nil {
		log.Fatalf("Gagal membuat indeks holidays: %v", err)
	}

	log.Println("Semua indeks database berhasil dibuat")
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB untuk client tidak di inisialisasi. Panggil MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnect from MongoDB")
	}
}
