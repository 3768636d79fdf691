package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for drivers, tours, and route segments.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		driver_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		warehouse_id BIGINT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createToursQuery := `
	CREATE TABLE IF NOT EXISTS tours (
		tour_id BIGINT PRIMARY KEY,
		driver_id BIGINT NOT NULL REFERENCES drivers(driver_id),
		warehouse_id BIGINT NOT NULL,
		tour_date DATE NOT NULL,
		start_time TEXT,
		end_time TEXT,
		status TEXT NOT NULL,
		planned_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		start_km DOUBLE PRECISION,
		end_km DOUBLE PRECISION,
		planned_duration_seconds INTEGER NOT NULL DEFAULT 0,
		start_km_pic BYTEA,
		end_km_pic BYTEA,
		vehicle_front_pic BYTEA,
		vehicle_back_pic BYTEA,
		vehicle_left_pic BYTEA,
		vehicle_right_pic BYTEA,
		cargo_area_pic BYTEA,
		fuel_receipt_pic BYTEA,
		parking_pic BYTEA,
		overall_performance_rating DOUBLE PRECISION
	);
	`

	createSegmentsQuery := `
	CREATE TABLE IF NOT EXISTS route_segments (
		segment_id BIGINT PRIMARY KEY,
		tour_id BIGINT NOT NULL REFERENCES tours(tour_id),
		order_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		recipient_type TEXT NOT NULL DEFAULT 'customer',
		delivered_at TIMESTAMPTZ,
		customer_signature BYTEA,
		delivered_item_pic BYTEA,
		neighbour_signature BYTEA,
		delivered_pic_neighbour BYTEA
	);
	`

	createTourIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_tours_driver_date
	ON tours(driver_id, tour_date);
	`

	createSegmentIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_segments_tour
	ON route_segments(tour_id);
	`

	statements := []string{
		createDriversQuery,
		createToursQuery,
		createSegmentsQuery,
		createTourIndexQuery,
		createSegmentIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// placeholderArtifact stands in for binary photo/signature content in seeded
// rows; presence is what the engine reads, not the payload.
var placeholderArtifact = []byte{0x01}

type DriverSeed struct {
	DriverID    int64  `json:"driver_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WarehouseID int64  `json:"warehouse_id"`
	Active      bool   `json:"active"`
}

type TourSeed struct {
	TourID                 int64    `json:"tour_id"`
	DriverID               int64    `json:"driver_id"`
	WarehouseID            int64    `json:"warehouse_id"`
	TourDate               string   `json:"tour_date"`
	StartTime              *string  `json:"start_time"`
	EndTime                *string  `json:"end_time"`
	Status                 string   `json:"status"`
	PlannedKM              float64  `json:"planned_km"`
	StartKM                *float64 `json:"start_km"`
	EndKM                  *float64 `json:"end_km"`
	PlannedDurationSeconds int      `json:"planned_duration_seconds"`
	PhotosUploaded         int      `json:"photos_uploaded"` // 0-9, fills flags left to right
	OverallRating          *float64 `json:"overall_performance_rating"`
}

type SegmentSeed struct {
	SegmentID     int64   `json:"segment_id"`
	TourID        int64   `json:"tour_id"`
	OrderID       int64   `json:"order_id"`
	Status        string  `json:"status"`
	RecipientType string  `json:"recipient_type"`
	DeliveredAt   *string `json:"delivered_at"`
	HasSignature  bool    `json:"has_signature"`
	HasPhoto      bool    `json:"has_photo"`
}

type Seed struct {
	Drivers  []DriverSeed  `json:"drivers"`
	Tours    []TourSeed    `json:"tours"`
	Segments []SegmentSeed `json:"segments"`
}

// Populate the database with demo data from a JSON file. Existing rows with
// the same ids are replaced.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed data: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed data: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedDrivers(tx, seed.Drivers); err != nil {
		return err
	}
	if err := seedTours(tx, seed.Tours); err != nil {
		return err
	}
	if err := seedSegments(tx, seed.Segments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed data: commit tx: %w", err)
	}

	return nil
}

func seedDrivers(tx *sql.Tx, drivers []DriverSeed) error {
	query := `
	INSERT INTO drivers (driver_id, name, email, phone, warehouse_id, active)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (driver_id) DO UPDATE
	SET name = EXCLUDED.name,
		email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		warehouse_id = EXCLUDED.warehouse_id,
		active = EXCLUDED.active;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed drivers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range drivers {
		if d.DriverID <= 0 {
			return fmt.Errorf("seed drivers: invalid driver_id at index %d: %d", i+1, d.DriverID)
		}
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("seed drivers: driver_id=%d: name cannot be empty", d.DriverID)
		}

		if _, err := stmt.Exec(d.DriverID, d.Name, d.Email, d.Phone, d.WarehouseID, d.Active); err != nil {
			return fmt.Errorf("seed drivers: insert driver_id=%d: %w", d.DriverID, err)
		}
	}

	return nil
}

func seedTours(tx *sql.Tx, tours []TourSeed) error {
	query := `
	INSERT INTO tours (
		tour_id, driver_id, warehouse_id, tour_date, start_time, end_time,
		status, planned_km, start_km, end_km, planned_duration_seconds,
		start_km_pic, end_km_pic, vehicle_front_pic, vehicle_back_pic,
		vehicle_left_pic, vehicle_right_pic, cargo_area_pic, fuel_receipt_pic,
		parking_pic, overall_performance_rating
	)
	VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	ON CONFLICT (tour_id) DO NOTHING;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed tours: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tours {
		if t.PhotosUploaded < 0 || t.PhotosUploaded > 9 {
			return fmt.Errorf("seed tours: tour_id=%d: photos_uploaded must be 0-9, got %d", t.TourID, t.PhotosUploaded)
		}

		photos := make([]any, 9)
		for p := 0; p < t.PhotosUploaded; p++ {
			photos[p] = placeholderArtifact
		}

		args := []any{
			t.TourID, t.DriverID, t.WarehouseID, t.TourDate, t.StartTime, t.EndTime,
			t.Status, t.PlannedKM, t.StartKM, t.EndKM, t.PlannedDurationSeconds,
		}
		args = append(args, photos...)
		args = append(args, t.OverallRating)

		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("seed tours: insert tour_id=%d: %w", t.TourID, err)
		}
	}

	return nil
}

func seedSegments(tx *sql.Tx, segments []SegmentSeed) error {
	query := `
	INSERT INTO route_segments (
		segment_id, tour_id, order_id, status, recipient_type, delivered_at,
		customer_signature, delivered_item_pic, neighbour_signature, delivered_pic_neighbour
	)
	VALUES ($1, $2, $3, $4, $5, $6::timestamptz, $7, $8, $9, $10)
	ON CONFLICT (segment_id) DO NOTHING;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed segments: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range segments {
		var customerSig, itemPic, neighbourSig, neighbourPic any
		switch s.RecipientType {
		case "neighbour":
			if s.HasSignature {
				neighbourSig = placeholderArtifact
			}
			if s.HasPhoto {
				neighbourPic = placeholderArtifact
			}
		default:
			if s.HasSignature {
				customerSig = placeholderArtifact
			}
			if s.HasPhoto {
				itemPic = placeholderArtifact
			}
		}

		_, err := stmt.Exec(
			s.SegmentID, s.TourID, s.OrderID, s.Status, s.RecipientType, s.DeliveredAt,
			customerSig, itemPic, neighbourSig, neighbourPic,
		)
		if err != nil {
			return fmt.Errorf("seed segments: insert segment_id=%d: %w", s.SegmentID, err)
		}
	}

	return nil
}
