package postgres

import (
	"database/sql"
	"time"
)

// configRecord is one scanned row of push_notification_configs with the
// payload left serialized. Deserialization happens at the query layer so
// a failure can be attributed to the offending task/config pair.
type configRecord struct {
	taskID    string
	configID  string
	payload   []byte
	createdAt time.Time // zero when the column is NULL
}

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanConfigRecord scans a single row in configColumns order.
func scanConfigRecord(row scannable) (configRecord, error) {
	var (
		rec       configRecord
		createdAt sql.NullTime
	)
	if err := row.Scan(&rec.taskID, &rec.configID, &rec.payload, &createdAt); err != nil {
		return configRecord{}, err
	}
	if createdAt.Valid {
		rec.createdAt = createdAt.Time
	}
	return rec, nil
}

// scanConfigRecords scans all rows of a page query.
func scanConfigRecords(rows *sql.Rows) ([]configRecord, error) {
	var recs []configRecord
	for rows.Next() {
		rec, err := scanConfigRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
