package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// Decide computes the terminal action for a medium referenced by the deleting record.
//
//   - owned, used elsewhere: reparent to the first other referrer
//   - owned, unused elsewhere: delete
//   - not owned, unused elsewhere: delete
//   - not owned, used elsewhere: skip as still in use
func Decide(media *domain.MediaRecord, deleting int64, usage domain.Usage) domain.Outcome {
	outcome := domain.Outcome{MediaID: media.ID}
	others := usage.Others(deleting)

	switch {
	case len(others) == 0:
		outcome.Action = domain.ActionDelete
	case media.IsOwnedBy(deleting):
		outcome.Action = domain.ActionReparent
		outcome.NewParentID = others[0]
	default:
		outcome.Action = domain.ActionSkip
		outcome.Reason = domain.SkipStillInUse
		outcome.Blockers = others
		outcome.Err = fmt.Errorf("%w: media %d", domain.ErrStillInUse, media.ID)
	}
	return outcome
}

// Apply carries out a delete or reparent decision against the store.
// Deletion is permanent. Skip outcomes are left untouched.
func Apply(ctx context.Context, store driven.ContentStore, outcome *domain.Outcome) error {
	var err error
	switch outcome.Action {
	case domain.ActionDelete:
		err = store.DeleteMedia(ctx, outcome.MediaID, true)
	case domain.ActionReparent:
		err = store.SetFieldOwner(ctx, outcome.MediaID, outcome.NewParentID)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s media %d: %w", domain.ErrStoreQuery, outcome.Action, outcome.MediaID, err)
	}
	outcome.Applied = true
	return nil
}
