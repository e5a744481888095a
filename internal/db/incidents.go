package db

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/skycopilot/backend/internal/model"
)

// EnsureIncidentSchema - incident_records 테이블과 pgvector 확장을 준비한다.
// seq 컬럼은 삽입 순서를 고정해 검색 동점 처리를 결정적으로 만든다.
// 임베딩 차원은 저장소 단위로 고정이므로 스키마에 박아 넣는다.
func (db *Postgres) EnsureIncidentSchema(ctx context.Context, dim int) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS incident_records (
			flight_id TEXT PRIMARY KEY,
			seq BIGINT GENERATED ALWAYS AS IDENTITY,
			title TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`, dim),
		`CREATE INDEX IF NOT EXISTS incident_records_seq_idx ON incident_records(seq)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertIncident - flight_id 기준 멱등 교체. 재수집 시 기존 행을 통째로
// 덮어쓰며 seq/created_at은 최초 삽입 값을 유지한다 (부분 갱신 없음).
func (db *Postgres) UpsertIncident(ctx context.Context, record model.IncidentRecord) error {
	query := `
		INSERT INTO incident_records (flight_id, title, summary, metadata, embedding, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (flight_id) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding,
			model = EXCLUDED.model,
			updated_at = NOW()
	`

	metadata := record.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	_, err := db.Pool.Exec(ctx, query,
		record.FlightID,
		record.Title,
		record.Summary,
		metadata,
		pgvector.NewVector(record.Embedding),
		record.Model,
	)
	return err
}

// GetAllIncidents - 전체 스냅샷 읽기. 단일 SELECT이므로 하나의 MVCC
// 스냅샷이며, 삽입 순서(seq)로 정렬해 반환한다.
func (db *Postgres) GetAllIncidents(ctx context.Context) ([]model.IncidentRecord, error) {
	query := `
		SELECT flight_id, title, summary, metadata, embedding, model, created_at
		FROM incident_records
		ORDER BY seq ASC
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.IncidentRecord
	for rows.Next() {
		var r model.IncidentRecord
		var embedding pgvector.Vector
		if err := rows.Scan(&r.FlightID, &r.Title, &r.Summary, &r.Metadata, &embedding, &r.Model, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Embedding = embedding.Slice()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []model.IncidentRecord{}
	}
	return records, nil
}

func (db *Postgres) ListIncidents(ctx context.Context) ([]model.IncidentListItem, error) {
	query := `
		SELECT flight_id, title, summary, model, created_at
		FROM incident_records
		ORDER BY seq ASC
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.IncidentListItem
	for rows.Next() {
		var i model.IncidentListItem
		if err := rows.Scan(&i.FlightID, &i.Title, &i.Summary, &i.Model, &i.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.IncidentListItem{}
	}
	return list, nil
}
