package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driven"
)

// eventLog implements driven.EventLog.
type eventLog struct {
	store *Store
}

var _ driven.EventLog = (*eventLog)(nil)

// Append stores a report, replacing any previous report with the same event ID.
func (e *eventLog) Append(ctx context.Context, report *domain.Report) error {
	if report == nil || report.EventID == "" {
		return domain.ErrInvalidInput
	}

	return e.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", report.EventID); err != nil {
			return fmt.Errorf("replacing event: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, record_id, dry_run, encodings, started_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, report.EventID, report.RecordID, report.DryRun, joinEncodings(report.Encodings),
			report.StartedAt, report.FinishedAt); err != nil {
			return fmt.Errorf("saving event: %w", err)
		}

		for i, o := range report.Outcomes {
			blockers, err := json.Marshal(o.Blockers)
			if err != nil {
				return fmt.Errorf("marshalling blockers: %w", err)
			}
			var errText string
			if o.Err != nil {
				errText = o.Err.Error()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO event_outcomes
					(event_id, position, media_id, encodings, action, new_parent_id, reason, blockers, applied, error)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, report.EventID, i, o.MediaID, joinEncodings(o.Encodings), string(o.Action),
				o.NewParentID, string(o.Reason), string(blockers), o.Applied, errText); err != nil {
				return fmt.Errorf("saving outcome for media %d: %w", o.MediaID, err)
			}
		}

		for _, f := range report.Failures {
			var errText string
			if f.Err != nil {
				errText = f.Err.Error()
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO event_failures (event_id, encoding, error) VALUES (?, ?, ?)
			`, report.EventID, string(f.Encoding), errText); err != nil {
				return fmt.Errorf("saving failure for %s: %w", f.Encoding, err)
			}
		}
		return nil
	})
}

// Get retrieves a report by event ID.
func (e *eventLog) Get(ctx context.Context, eventID string) (*domain.Report, error) {
	row := e.store.db.QueryRowContext(ctx, `
		SELECT id, record_id, dry_run, encodings, started_at, finished_at
		FROM events WHERE id = ?
	`, eventID)

	report, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	if err := e.loadDetails(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Recent returns up to limit reports, newest first.
func (e *eventLog) Recent(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := e.store.db.QueryContext(ctx, `
		SELECT id, record_id, dry_run, encodings, started_at, finished_at
		FROM events ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}

	var reports []domain.Report //nolint:prealloc // size unknown from query
	for rows.Next() {
		report, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	rows.Close()

	for i := range reports {
		if err := e.loadDetails(ctx, &reports[i]); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (e *eventLog) loadDetails(ctx context.Context, report *domain.Report) error {
	rows, err := e.store.db.QueryContext(ctx, `
		SELECT media_id, encodings, action, new_parent_id, reason, blockers, applied, error
		FROM event_outcomes WHERE event_id = ? ORDER BY position
	`, report.EventID)
	if err != nil {
		return fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o domain.Outcome
		var encodings, action, reason, blockers, errText string
		if err := rows.Scan(&o.MediaID, &encodings, &action, &o.NewParentID, &reason,
			&blockers, &o.Applied, &errText); err != nil {
			return fmt.Errorf("scanning outcome: %w", err)
		}
		o.Encodings = splitEncodings(encodings)
		o.Action = domain.Action(action)
		o.Reason = domain.SkipReason(reason)
		if err := json.Unmarshal([]byte(blockers), &o.Blockers); err != nil {
			return fmt.Errorf("unmarshalling blockers: %w", err)
		}
		if errText != "" {
			o.Err = errors.New(errText)
		}
		report.Outcomes = append(report.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating outcomes: %w", err)
	}

	failures, err := e.store.db.QueryContext(ctx, `
		SELECT encoding, error FROM event_failures WHERE event_id = ? ORDER BY encoding
	`, report.EventID)
	if err != nil {
		return fmt.Errorf("querying failures: %w", err)
	}
	defer failures.Close()

	for failures.Next() {
		var encoding, errText string
		if err := failures.Scan(&encoding, &errText); err != nil {
			return fmt.Errorf("scanning failure: %w", err)
		}
		report.Failures = append(report.Failures, domain.EncodingFailure{
			Encoding: domain.Encoding(encoding),
			Err:      errors.New(errText),
		})
	}
	return failures.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Report, error) {
	var report domain.Report
	var encodings string
	var started, finished sql.NullTime
	if err := row.Scan(&report.EventID, &report.RecordID, &report.DryRun, &encodings,
		&started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	report.Encodings = splitEncodings(encodings)
	if started.Valid {
		report.StartedAt = started.Time
	}
	if finished.Valid {
		report.FinishedAt = finished.Time
	}
	return &report, nil
}

func joinEncodings(encodings []domain.Encoding) string {
	parts := make([]string, len(encodings))
	for i, e := range encodings {
		parts[i] = string(e)
	}
	return strings.Join(parts, ",")
}

func splitEncodings(s string) []domain.Encoding {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.Encoding, len(parts))
	for i, p := range parts {
		out[i] = domain.Encoding(p)
	}
	return out
}
