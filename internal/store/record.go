package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ideal206/fitlens/internal/measure"
)

// MeasurementRecord is one stored estimation result. Values are always
// centimeters; unit conversion happens at the API boundary.
type MeasurementRecord struct {
	ID         string
	ProfileID  string
	Set        measure.Set
	Confidence float64
	CreatedAt  time.Time
}

// MeasurementRepository provides operations on measurement records.
type MeasurementRepository struct {
	db *sql.DB
}

// Measurements returns the measurement repository for this store.
func (s *Store) Measurements() *MeasurementRepository {
	return &MeasurementRepository{db: s.db}
}

// recordColumns fixes the order in which the sparse measurement set maps
// onto nullable SQL columns. Missing measurements are stored as NULL, not
// zero.
var recordColumns = []measure.Name{
	measure.ShoulderWidth,
	measure.Chest,
	measure.Waist,
	measure.Hip,
	measure.Height,
	measure.Inseam,
}

func nullable(set measure.Set, name measure.Name) any {
	if v, ok := set[name]; ok {
		return v
	}
	return nil
}

// Create inserts a new measurement record, assigning an ID when the caller
// has not set one.
func (r *MeasurementRepository) Create(m *MeasurementRecord) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO measurements (id, profile_id, shoulder_width, chest, waist, hip, height, inseam, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProfileID,
		nullable(m.Set, measure.ShoulderWidth),
		nullable(m.Set, measure.Chest),
		nullable(m.Set, measure.Waist),
		nullable(m.Set, measure.Hip),
		nullable(m.Set, measure.Height),
		nullable(m.Set, measure.Inseam),
		m.Confidence, m.CreatedAt,
	)
	return err
}

func scanRecord(scan func(dest ...any) error) (*MeasurementRecord, error) {
	m := &MeasurementRecord{Set: measure.Set{}}
	vals := make([]sql.NullFloat64, len(recordColumns))

	dest := []any{&m.ID, &m.ProfileID}
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	dest = append(dest, &m.Confidence, &m.CreatedAt)

	if err := scan(dest...); err != nil {
		return nil, err
	}

	for i, name := range recordColumns {
		if vals[i].Valid {
			m.Set[name] = vals[i].Float64
		}
	}
	return m, nil
}

const recordSelect = `SELECT id, profile_id, shoulder_width, chest, waist, hip, height, inseam, confidence, created_at
	 FROM measurements`

// GetByID retrieves a measurement record by its ID.
func (r *MeasurementRepository) GetByID(id string) (*MeasurementRecord, error) {
	row := r.db.QueryRow(recordSelect+` WHERE id = ?`, id)
	m, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByProfile retrieves all measurement records for a profile, newest
// first.
func (r *MeasurementRepository) ListByProfile(profileID string) ([]*MeasurementRecord, error) {
	rows, err := r.db.Query(recordSelect+` WHERE profile_id = ? ORDER BY created_at DESC, id`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*MeasurementRecord
	for rows.Next() {
		m, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Latest retrieves the most recent measurement record for a profile.
func (r *MeasurementRepository) Latest(profileID string) (*MeasurementRecord, error) {
	row := r.db.QueryRow(recordSelect+` WHERE profile_id = ? ORDER BY created_at DESC, id LIMIT 1`, profileID)
	m, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes a measurement record by its ID.
func (r *MeasurementRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
