package repository

import (
	"context"
	"testing"
	"time"

	"Presensi-QR-Karyawan/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestScanLogCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("success", func(mt *mtest.T) {
		repo := NewScanLogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		log := &models.ScanLog{GuardID: "g1", Mode: models.ModeCheckIn, EmployeeName: "Budi"}
		if _, err := repo.Create(context.Background(), log); err != nil {
			mt.Fatalf("Create() error = %v", err)
		}
		if log.ID.IsZero() || log.ScannedAt.IsZero() {
			mt.Errorf("Create() did not fill id/scanned_at: %+v", log)
		}
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := NewScanLogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		if _, err := repo.Create(context.Background(), &models.ScanLog{GuardID: "g1"}); err == nil {
			mt.Error("Create() error = nil")
		}
	})
}

func TestScanLogFindRecentByGuard(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("found", func(mt *mtest.T) {
		repo := NewScanLogRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		scannedAt := time.Date(2026, 2, 2, 8, 1, 0, 0, time.UTC)

		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "guard_id", Value: "g1"},
			{Key: "mode", Value: models.ModeCheckOut},
			{Key: "employee_name", Value: "Siti"},
			{Key: "scanned_at", Value: scannedAt},
		})
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		logs, err := repo.FindRecentByGuard(context.Background(), "g1", 10)
		if err != nil {
			mt.Fatalf("FindRecentByGuard() error = %v", err)
		}
		if len(logs) != 1 || logs[0].EmployeeName != "Siti" || logs[0].Mode != models.ModeCheckOut {
			mt.Errorf("logs = %+v", logs)
		}
		if !logs[0].ScannedAt.Equal(scannedAt) {
			mt.Errorf("ScannedAt = %v, want %v", logs[0].ScannedAt, scannedAt)
		}
	})

	mt.Run("empty", func(mt *mtest.T) {
		repo := NewScanLogRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		logs, err := repo.FindRecentByGuard(context.Background(), "g2", 0)
		if err != nil {
			mt.Fatalf("FindRecentByGuard() error = %v", err)
		}
		if logs == nil || len(logs) != 0 {
			mt.Errorf("logs = %#v, want empty non-nil slice", logs)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewScanLogRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		if _, err := repo.FindRecentByGuard(context.Background(), "g1", 5); err == nil {
			mt.Error("FindRecentByGuard() error = nil")
		}
	})
}
