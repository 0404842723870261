package sqlutil

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Helper functions for converting between Go types and sql.Null* types

// ToSqlString converts a Go string pointer to sql.NullString
func ToSqlString(val *string) sql.NullString {
	if val == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *val, Valid: true}
}

// ToSqlInt32 converts a Go int pointer to sql.NullInt32
func ToSqlInt32(val *int) sql.NullInt32 {
	if val == nil {
		return sql.NullInt32{Valid: false}
	}
	return sql.NullInt32{Int32: int32(*val), Valid: true}
}

// FromSqlInt32 converts sql.NullInt32 to Go int pointer
func FromSqlInt32(val sql.NullInt32) *int {
	if !val.Valid {
		return nil
	}
	i := int(val.Int32)
	return &i
}

// ToNullUUID converts a Go UUID pointer to uuid.NullUUID
func ToNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{Valid: false}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// FromNullUUID converts uuid.NullUUID to Go UUID pointer
func FromNullUUID(val uuid.NullUUID) *uuid.UUID {
	if !val.Valid {
		return nil
	}
	return &val.UUID
}

// ToSqlTime converts a Go time pointer to sql.NullTime
func ToSqlTime(val *time.Time) sql.NullTime {
	if val == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *val, Valid: true}
}

// FromSqlTime converts sql.NullTime to Go time pointer
func FromSqlTime(val sql.NullTime) *time.Time {
	if !val.Valid {
		return nil
	}
	return &val.Time
}

// ToSqlSeconds converts a Go duration pointer to fractional seconds
func ToSqlSeconds(val *time.Duration) sql.NullFloat64 {
	if val == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: val.Seconds(), Valid: true}
}

// FromSqlSeconds converts fractional seconds to a Go duration pointer
func FromSqlSeconds(val sql.NullFloat64) *time.Duration {
	if !val.Valid {
		return nil
	}
	d := time.Duration(val.Float64 * float64(time.Second))
	return &d
}
