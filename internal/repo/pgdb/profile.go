package pgdb

import (
	"context"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ProfileRepo struct {
	*postgres.Postgres
}

func NewProfileRepo(pgdb *postgres.Postgres) *ProfileRepo {
	return &ProfileRepo{pgdb}
}

// GetProfiles returns the profiles that exist for the given users. Users
// without a profile are simply absent from the map.
func (r *ProfileRepo) GetProfiles(ctx context.Context, userIds []uuid.UUID) (map[uuid.UUID]entity.Profile, error) {
	profiles := make(map[uuid.UUID]entity.Profile, len(userIds))
	if len(userIds) == 0 {
		return profiles, nil
	}

	ids := make([]string, 0, len(userIds))
	for _, id := range userIds {
		ids = append(ids, id.String())
	}

	sqlReq, args, err := r.SqlBuilder.
		Select("user_id", "display_name", "avatar_url").
		From("profile").
		Where(squirrel.Eq{"user_id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.UserId, &p.DisplayName, &p.AvatarUrl); err != nil {
			return nil, err
		}
		profiles[p.UserId] = p
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
