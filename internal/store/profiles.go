package store

import "context"

type ProfilesStore struct {
	db Querier
}

// FilterBySegments keeps the user ids whose profile belongs to at least one of segments.
func (s *ProfilesStore) FilterBySegments(ctx context.Context, userIDs, segments []string) ([]string, error) {
	if len(userIDs) == 0 || len(segments) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `SELECT id FROM user_profiles WHERE id = ANY($1) AND segments && $2::text[]`
	rows, err := s.db.Query(ctx, q, userIDs, segments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
