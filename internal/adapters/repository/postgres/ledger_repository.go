package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) ports.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) LoadGateway(ctx context.Context) (*domain.GatewayConfig, error) {
	query := `SELECT address, hash, public_key FROM gateway_config WHERE id = 1`

	var gateway domain.GatewayConfig
	err := r.db.QueryRowContext(ctx, query).Scan(&gateway.Address, &gateway.Hash, &gateway.PublicKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to get gateway: %w", err)
	}
	return &gateway, nil
}

func (r *ledgerRepository) SaveGateway(ctx context.Context, gateway *domain.GatewayConfig) error {
	query := `
		INSERT INTO gateway_config (id, address, hash, public_key)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, gateway.Address, gateway.Hash, gateway.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to insert gateway: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert gateway: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyInitialized
	}
	return nil
}

func (r *ledgerRepository) LoadPollCount(ctx context.Context) (uint64, error) {
	query := `SELECT poll_count FROM poll_counter WHERE id = 1`

	var pollCount int64
	err := r.db.QueryRowContext(ctx, query).Scan(&pollCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get poll count: %w", err)
	}
	return uint64(pollCount), nil
}

func (r *ledgerRepository) LoadPolls(ctx context.Context) (domain.Polls, error) {
	query := `
		SELECT id, uri, created_at, validity::TEXT, tally, voted, vote_count
		FROM polls
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get polls: %w", err)
	}
	defer rows.Close()

	polls := domain.Polls{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		if poll.ID != uint64(len(polls)) {
			return nil, fmt.Errorf("poll ledger has a gap at id %d", len(polls))
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

func (r *ledgerRepository) SavePolls(ctx context.Context, polls domain.Polls, pollCount uint64) error {
	if pollCount > math.MaxInt64 {
		return fmt.Errorf("poll count %d out of range", pollCount)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, uri, created_at, validity, tally, voted, vote_count)
		VALUES ($1, $2, $3, $4::NUMERIC, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET tally = EXCLUDED.tally,
		    voted = EXCLUDED.voted,
		    vote_count = EXCLUDED.vote_count
	`
	stmt, err := tx.PrepareContext(ctx, queryPoll)
	if err != nil {
		return fmt.Errorf("failed to prepare poll statement: %w", err)
	}
	defer stmt.Close()

	for _, poll := range polls {
		tally, err := json.Marshal(poll.Tally)
		if err != nil {
			return fmt.Errorf("failed to encode tally of poll %d: %w", poll.ID, err)
		}
		voted, err := json.Marshal(poll.Voted)
		if err != nil {
			return fmt.Errorf("failed to encode voters of poll %d: %w", poll.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			int64(poll.ID), poll.URI, poll.CreatedAt,
			strconv.FormatUint(poll.Validity, 10),
			tally, voted, int64(poll.VoteCount),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert poll %d: %w", poll.ID, err)
		}
	}

	queryCount := `
		INSERT INTO poll_counter (id, poll_count)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET poll_count = EXCLUDED.poll_count
	`
	if _, err := tx.ExecContext(ctx, queryCount, int64(pollCount)); err != nil {
		return fmt.Errorf("failed to update poll count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanPoll(rows *sql.Rows) (domain.Poll, error) {
	var (
		poll      domain.Poll
		id        int64
		validity  string
		tally     []byte
		voted     []byte
		voteCount int64
	)
	if err := rows.Scan(&id, &poll.URI, &poll.CreatedAt, &validity, &tally, &voted, &voteCount); err != nil {
		return domain.Poll{}, fmt.Errorf("failed to scan poll: %w", err)
	}

	v, err := strconv.ParseUint(validity, 10, 64)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("failed to parse validity of poll %d: %w", id, err)
	}
	poll.ID = uint64(id)
	poll.Validity = v
	poll.VoteCount = uint64(voteCount)
	poll.CreatedAt = poll.CreatedAt.UTC()

	poll.Tally = domain.Tally{}
	if err := json.Unmarshal(tally, &poll.Tally); err != nil {
		return domain.Poll{}, fmt.Errorf("failed to decode tally of poll %d: %w", id, err)
	}
	poll.Voted = domain.VoterSet{}
	if err := json.Unmarshal(voted, &poll.Voted); err != nil {
		return domain.Poll{}, fmt.Errorf("failed to decode voters of poll %d: %w", id, err)
	}
	return poll, nil
}
