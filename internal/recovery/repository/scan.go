package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

func queryGuardians(
	ctx context.Context,
	querier database.Querier,
	query string,
	owner principal.Principal,
) ([]principal.Principal, error) {
	rows, err := querier.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list guardians")
	}
	defer func() {
		_ = rows.Close()
	}()

	var guardians []principal.Principal
	for rows.Next() {
		var guardian principal.Principal
		if err := rows.Scan(&guardian); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan guardian")
		}
		guardians = append(guardians, guardian)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate guardians")
	}
	return guardians, nil
}
