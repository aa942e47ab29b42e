// Package audit keeps an append-only trail of the actions that change a
// settlement case or its configuration. Labor settlements are disputed years
// later; the trail records who asked for what and with which data.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionCaseCalculated    = "case.calculated"
	ActionDocumentGenerated = "case.document_generated"
	ActionMotivoUpserted    = "motivo.upserted"
)

const (
	EntityCase   = "finiquito_case"
	EntityMotivo = "motivo_config"
)

type Event struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
}

type Service struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Record appends one event. Before and after snapshots are optional and
// stored as JSON.
func (s *Service) Record(ctx context.Context, action, entityType, entityID, requestID, ip string, before, after any) error {
	beforeJSON, err := marshalSnapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshalSnapshot(after)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO audit_events (action, entity_type, entity_id, request_id, ip, before_json, after_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, action, entityType, entityID, requestID, ip, beforeJSON, afterJSON)
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns events newest first. Snapshots are only fetched when asked
// for; the trail is mostly browsed without them.
func (s *Service) List(ctx context.Context, filter Filter, includeSnapshots bool, limit, offset int) ([]Event, error) {
	columns := "id, action, entity_type, entity_id, request_id, ip, created_at"
	if includeSnapshots {
		columns += ", before_json, after_json"
	}
	query, args := buildBaseQuery("SELECT "+columns, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if includeSnapshots {
			err = rows.Scan(&evt.ID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt, &evt.Before, &evt.After)
		} else {
			err = rows.Scan(&evt.ID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	args := []any{}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", len(args)+1)
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		query += fmt.Sprintf(" AND entity_id = $%d", len(args)+1)
		args = append(args, filter.EntityID)
	}
	return query, args
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
