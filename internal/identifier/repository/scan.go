package repository

import (
	"database/sql"

	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/identifier/domain"
)

func scanRecords(rows *sql.Rows) ([]*domain.Record, error) {
	records := make([]*domain.Record, 0)
	for rows.Next() {
		var record domain.Record
		err := rows.Scan(
			&record.IDHash,
			&record.ID,
			&record.Controller,
			&record.Registrant,
			&record.DocumentRef,
			&record.PublicKey,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan identifier")
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate identifiers")
	}
	return records, nil
}
