package repository

import (
	"context"
	"fmt"
	"time"

	"Presensi-QR-Karyawan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxScanLogLimit = 100

type ScanLogRepository interface {
	Create(ctx context.Context, log *models.ScanLog) (*mongo.InsertOneResult, error)
	FindRecentByGuard(ctx context.Context, guardID string, limit int64) ([]models.ScanLog, error)
}

type scanLogRepository struct {
	scanLogCollection *mongo.Collection
}

func NewScanLogRepository(collection *mongo.Collection) ScanLogRepository {
	return &scanLogRepository{scanLogCollection: collection}
}

func (r *scanLogRepository) Create(ctx context.Context, log *models.ScanLog) (*mongo.InsertOneResult, error) {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	if log.ScannedAt.IsZero() {
		log.ScannedAt = time.Now()
	}
	res, err := r.scanLogCollection.InsertOne(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan log scan: %w", err)
	}
	return res, nil
}

// FindRecentByGuard mengembalikan log scan terbaru milik satu satpam.
func (r *scanLogRepository) FindRecentByGuard(ctx context.Context, guardID string, limit int64) ([]models.ScanLog, error) {
	if limit <= 0 || limit > maxScanLogLimit {
		limit = maxScanLogLimit
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "scanned_at", Value: -1}})
	findOptions.SetLimit(limit)

	cursor, err := r.scanLogCollection.Find(ctx, bson.M{"guard_id": guardID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari log scan: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.ScanLog
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode log scan: %w", err)
	}

	if len(results) == 0 {
		return []models.ScanLog{}, nil
	}
	return results, nil
}
