package repository

import (
	"context"

	"trademind/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const structureColumns = `id::text, instrument, structure_type, direction, price_level,
	screenshot_url, notes, created_at`

type StructureRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewStructureRepository(pool PgxPool, tracer trace.Tracer) *StructureRepository {
	return &StructureRepository{pool: pool, tracer: tracer}
}

func (r *StructureRepository) InsertStructure(ctx context.Context, s domain.NewStructure) (*domain.Structure, error) {
	_, span := r.tracer.Start(ctx, "structure-repo.insert-structure")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO structures (instrument, structure_type, direction, price_level, screenshot_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+structureColumns,
		s.Instrument, string(s.StructureType), string(s.Direction), s.PriceLevel, s.ScreenshotURL, s.Notes,
	)
	out, err := scanStructure(row)
	if err != nil {
		return nil, classify("insert structure", err)
	}
	return out, nil
}

func (r *StructureRepository) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	_, span := r.tracer.Start(ctx, "structure-repo.list-structures")
	defer span.End()

	rows, err := r.pool.Query(ctx, `SELECT `+structureColumns+` FROM structures ORDER BY created_at DESC`)
	if err != nil {
		return nil, classify("list structures", err)
	}
	defer rows.Close()

	structures := make([]domain.Structure, 0)
	for rows.Next() {
		s, err := scanStructure(rows)
		if err != nil {
			return nil, classify("list structures", err)
		}
		structures = append(structures, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list structures", err)
	}
	return structures, nil
}

func scanStructure(row pgx.Row) (*domain.Structure, error) {
	var (
		s            domain.Structure
		id, typ, dir string
	)
	if err := row.Scan(&id, &s.Instrument, &typ, &dir, &s.PriceLevel, &s.ScreenshotURL, &s.Notes, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.ID = domain.ID(id)
	s.StructureType = domain.StructureType(typ)
	s.Direction = domain.StructureDirection(dir)
	return &s, nil
}
