package results

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns one result per election. Elections without candidates are
// included with an empty candidate list.
func (r *PostgresRepository) List(ctx context.Context) ([]models.ElectionResult, error) {
	query :=
		`SELECT e.id, e.name, e.status,
		        c.id, c.name, c.position, c.party, c.image_url, c.votes
		 FROM elections e
		 LEFT JOIN candidates c ON c.election_id = e.id
		 ORDER BY e.id, c.votes DESC NULLS LAST, c.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.ElectionResult, 0)
	for rows.Next() {
		var (
			electionID int64
			name       string
			status     string
			cid        sql.NullInt64
			cname      sql.NullString
			position   sql.NullString
			party      sql.NullString
			imageURL   sql.NullString
			votes      sql.NullInt64
		)
		if err := rows.Scan(&electionID, &name, &status, &cid, &cname, &position, &party, &imageURL, &votes); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if n := len(out); n == 0 || out[n-1].ElectionID != electionID {
			out = append(out, models.ElectionResult{
				ElectionID:   electionID,
				ElectionName: name,
				Status:       status,
				Candidates:   []models.CandidateResult{},
			})
		}
		if !cid.Valid {
			continue
		}
		cur := &out[len(out)-1]
		cur.Candidates = append(cur.Candidates, models.CandidateResult{
			ID:         cid.Int64,
			Name:       cname.String,
			Position:   position.String,
			Party:      party.String,
			ElectionID: electionID,
			ImageURL:   imageURL.String,
			VoteCount:  votes.Int64,
		})
		cur.TotalVotes += votes.Int64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
