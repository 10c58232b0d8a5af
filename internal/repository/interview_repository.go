package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/interview-service/internal/domain"
)

// InterviewRepository encapsulates interview persistence. Each mutation is a
// single-row write; atomicity comes from the storage layer, so two racing
// writers resolve last-writer-wins.
type InterviewRepository interface {
	Create(ctx context.Context, interview *domain.Interview) error
	Update(ctx context.Context, interview *domain.Interview) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Interview, error)
	GetByStreamCallID(ctx context.Context, streamCallID string) (*domain.Interview, error)
	ListAll(ctx context.Context) ([]domain.Interview, error)
}

type interviewRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewRepository returns a Postgres-backed implementation.
func NewInterviewRepository(pool *pgxpool.Pool) InterviewRepository {
	return &interviewRepository{pool: pool}
}

const interviewColumns = `id, title, description, start_time, actual_start_time, end_time,
               status, is_started, stream_call_id, candidate_id, interviewer_ids,
               created_at, updated_at`

func (r *interviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	const query = `
        INSERT INTO interviews (title, description, start_time, status, is_started, stream_call_id, candidate_id, interviewer_ids)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		interview.Title,
		interview.Description,
		interview.StartTime,
		interview.Status,
		interview.IsStarted,
		interview.StreamCallID,
		interview.CandidateID,
		interview.InterviewerIDs,
	).Scan(&interview.ID, &interview.CreatedAt, &interview.UpdatedAt)
}

func (r *interviewRepository) Update(ctx context.Context, interview *domain.Interview) error {
	// StreamCallID and CandidateID are immutable after creation and are
	// deliberately absent from the SET list.
	const query = `
        UPDATE interviews SET title=$1, description=$2, start_time=$3, actual_start_time=$4,
            end_time=$5, status=$6, is_started=$7, interviewer_ids=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		interview.Title,
		interview.Description,
		interview.StartTime,
		interview.ActualStartTime,
		interview.EndTime,
		interview.Status,
		interview.IsStarted,
		interview.InterviewerIDs,
		interview.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *interviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM interviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *interviewRepository) GetByStreamCallID(ctx context.Context, streamCallID string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE stream_call_id=$1`
	return r.fetchSingle(ctx, query, streamCallID)
}

func (r *interviewRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Interview, error) {
	var interview domain.Interview
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&interview.ID,
		&interview.Title,
		&interview.Description,
		&interview.StartTime,
		&interview.ActualStartTime,
		&interview.EndTime,
		&interview.Status,
		&interview.IsStarted,
		&interview.StreamCallID,
		&interview.CandidateID,
		&interview.InterviewerIDs,
		&interview.CreatedAt,
		&interview.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) ListAll(ctx context.Context) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews ORDER BY start_time ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interview
	for rows.Next() {
		var interview domain.Interview
		if err := rows.Scan(
			&interview.ID,
			&interview.Title,
			&interview.Description,
			&interview.StartTime,
			&interview.ActualStartTime,
			&interview.EndTime,
			&interview.Status,
			&interview.IsStarted,
			&interview.StreamCallID,
			&interview.CandidateID,
			&interview.InterviewerIDs,
			&interview.CreatedAt,
			&interview.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, interview)
	}
	return result, rows.Err()
}
