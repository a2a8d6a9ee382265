package service

import (
	"context"
	"fmt"
	"time"

	"releaseradar/backend/internal/analytics"
	"releaseradar/backend/internal/models"
)

// SnapshotEmitter converts a reconciled game set into denormalized fact rows
// and appends them to the analytics store in one best-effort batch.
type SnapshotEmitter struct {
	snapshots analytics.SnapshotStore
}

// NewSnapshotEmitter creates a SnapshotEmitter over the given store.
func NewSnapshotEmitter(snapshots analytics.SnapshotStore) *SnapshotEmitter {
	return &SnapshotEmitter{snapshots: snapshots}
}

// Emit expands each game into one row per associated tag and appends the
// batch with the given snapshot time. Games without tags produce no rows and
// stay invisible to genre analytics. Returns the number of rows appended;
// a write failure surfaces as ErrSinkUnavailable.
func (e *SnapshotEmitter) Emit(ctx context.Context, at time.Time, games []models.Game) (int, error) {
	var rows []models.SnapshotRow
	for _, g := range games {
		if g.SteamAppID == nil {
			continue
		}

		followers := 0
		if g.Followers != nil {
			followers = *g.Followers
		}
		var release time.Time
		if g.ReleaseDate != nil {
			release = g.ReleaseDate.UTC()
		}

		for _, tag := range g.Tags {
			rows = append(rows, models.SnapshotRow{
				AppID:       *g.SteamAppID,
				Name:        g.Name,
				Genre:       tag.Name,
				Followers:   followers,
				ReleaseDate: release,
			})
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := e.snapshots.AppendSnapshot(ctx, at, rows); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return len(rows), nil
}
