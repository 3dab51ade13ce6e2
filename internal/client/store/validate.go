package store

import (
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

// MaxTokensPerBatch caps GenerateTokens.
const MaxTokensPerBatch = 1000

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cleanElectionDraft trims the draft, defaults the status to Draft and checks
// the date range when both ends parse.
func cleanElectionDraft(d models.ElectionDraft) (models.ElectionDraft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)

	if err := required("name", d.Name); err != nil {
		return d, err
	}

	if d.Status == "" {
		d.Status = models.StatusDraft
	} else {
		st, ok := models.ParseElectionStatus(string(d.Status))
		if !ok {
			return d, &ValidationError{Field: "status", Reason: "unknown status " + string(d.Status)}
		}
		d.Status = st
	}

	start, okStart := parseDate(d.StartDate)
	end, okEnd := parseDate(d.EndDate)
	if okStart && okEnd && end.Before(start) {
		return d, &ValidationError{Field: "endDate", Reason: "is before startDate"}
	}

	positions := make([]string, 0, len(d.Positions))
	for _, p := range d.Positions {
		if p = strings.TrimSpace(p); p != "" {
			positions = append(positions, p)
		}
	}
	d.Positions = nil
	if len(positions) > 0 {
		d.Positions = positions
	}
	return d, nil
}

func cleanCandidateDraft(d models.CandidateDraft) (models.CandidateDraft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Position = strings.TrimSpace(d.Position)
	d.Party = strings.TrimSpace(d.Party)
	d.ElectionID = strings.TrimSpace(d.ElectionID)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if err := required("name", d.Name); err != nil {
		return d, err
	}
	if err := required("position", d.Position); err != nil {
		return d, err
	}
	if err := required("electionId", d.ElectionID); err != nil {
		return d, err
	}
	return d, nil
}

func cleanVoterDraft(d models.VoterDraft) (models.VoterDraft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.ElectionID = strings.TrimSpace(d.ElectionID)

	if err := required("name", d.Name); err != nil {
		return d, err
	}
	if err := required("email", d.Email); err != nil {
		return d, err
	}
	if addr, err := mail.ParseAddress(d.Email); err != nil || addr.Address != d.Email {
		return d, &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if err := required("electionId", d.ElectionID); err != nil {
		return d, err
	}
	return d, nil
}

// cleanIDs trims ids, dropping blanks and duplicates while keeping order.
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
