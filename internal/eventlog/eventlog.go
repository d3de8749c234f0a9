// Package eventlog appends quiz lifecycle events to the event_log table. Event
// types are named by the emitter (quiz.EventQuizStarted and friends).
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Event struct {
	Seq        int64  `json:"seq"`
	SiteID     string `json:"siteId"`
	Type       string `json:"type"`
	SessionKey string `json:"sessionKey"`
	DataJSON   string `json:"data"`
	CreatedAt  int64  `json:"createdAt"`
}

type EventRepo struct {
	db     *sql.DB
	siteID string
	now    func() time.Time
}

func NewEventRepo(db *sql.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID, now: time.Now}
}

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = r.siteID
	}
	if e.DataJSON == "" {
		e.DataJSON = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, session_key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.SiteID, e.Type, e.SessionKey, e.DataJSON, r.now().Unix())
	return err
}

// Emit marshals data and appends it as an event of type typ.
func (r *EventRepo) Emit(ctx context.Context, sessionKey, typ string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.Append(ctx, Event{Type: typ, SessionKey: sessionKey, DataJSON: string(b)})
}

// List returns events in append order. An empty sessionKey lists all
// sessions; limit <= 0 means 100.
func (r *EventRepo) List(ctx context.Context, sessionKey string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	var (
		rows *sql.Rows
		err  error
	)
	if sessionKey == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT seq, site_id, typ, session_key, data, created_at
			   FROM event_log ORDER BY seq LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT seq, site_id, typ, session_key, data, created_at
			   FROM event_log WHERE session_key=$1 ORDER BY seq LIMIT $2`, sessionKey, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.SiteID, &e.Type, &e.SessionKey, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
