package normalize

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

func decode(t *testing.T, s string) models.Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var r models.Record
	require.NoError(t, dec.Decode(&r))
	return r
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"float integral", float64(12), "12"},
		{"float fractional", 1.5, "1.5"},
		{"large float", float64(1e15), "1000000000000000"},
		{"json number", json.Number("42"), "42"},
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
		{"bool", true, "true"},
		{"nan", math.NaN(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestInt_And_Count(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantInt   int
		wantCount int
	}{
		{"nil", nil, 0, 0},
		{"float", float64(5), 5, 5},
		{"negative float", float64(-4), -4, 0},
		{"numeric string", "17", 17, 17},
		{"float string", "3.9", 3, 3},
		{"garbage string", "abc", 0, 0},
		{"json number", json.Number("8"), 8, 8},
		{"json float", json.Number("2.5"), 2, 2},
		{"bool", true, 0, 0},
		{"inf", math.Inf(1), 0, 0},
		{"nan", math.NaN(), 0, 0},
		{"float above int range", 1e300, math.MaxInt, math.MaxInt},
		{"float below int range", -1e300, math.MinInt, 0},
		{"json number above int range", json.Number("1e30"), math.MaxInt, math.MaxInt},
		{"string above int range", "99999999999999999999", math.MaxInt, math.MaxInt},
		{"float32", float32(6.5), 6, 6},
		{"int8", int8(-2), -2, 0},
		{"uint16", uint16(9), 9, 9},
		{"uint64 above int range", uint64(math.MaxUint64), math.MaxInt, math.MaxInt},
		{"object", map[string]any{"x": 1}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantInt, Int(tt.in))
			assert.Equal(t, tt.wantCount, Count(tt.in))
		})
	}
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool(nil, false))
	assert.True(t, Bool(true, false))
	assert.False(t, Bool("false", true))
	assert.True(t, Bool("1", false))
	assert.True(t, Bool("maybe", true))
	assert.True(t, Bool(float64(1), false))
	assert.False(t, Bool(json.Number("0"), true))
}

func TestBool_AllNumericKinds(t *testing.T) {
	for _, v := range []any{int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint16(1), uint32(1), uint64(1), float32(0.5), float64(-1)} {
		assert.True(t, Bool(v, false), "%T", v)
	}
	for _, v := range []any{int8(0), int16(0), int32(0), uint(0), uint8(0), uint16(0), uint32(0), uint64(0), float32(0)} {
		assert.False(t, Bool(v, true), "%T", v)
	}
	assert.True(t, Bool(math.NaN(), true))
	assert.False(t, Bool(float32(math.NaN()), false))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "1"}, Strings([]any{"a", nil, float64(1)}))
	assert.Equal(t, []string{"x"}, Strings([]string{"x"}))
	assert.Nil(t, Strings("not a list"))
}

func TestCandidate_DefaultsAndCoercion(t *testing.T) {
	got := Candidate(models.Record{"id": float64(5), "name": "Al", "position": "Mayor", "electionId": "e1"})

	want := models.Candidate{ID: "5", Name: "Al", Position: "Mayor", ElectionID: "e1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidate mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidate_SnakeCaseAndInvalidVotes(t *testing.T) {
	r := decode(t, `{"id": 9, "name": "Bo", "party": null, "election_id": 3, "vote_count": "x", "image_url": "http://img"}`)
	got := Candidate(r)

	assert.Equal(t, "9", got.ID)
	assert.Equal(t, "", got.Party)
	assert.Equal(t, "3", got.ElectionID)
	assert.Equal(t, 0, got.Votes)
	assert.Equal(t, "http://img", got.ImageURL)
}

func TestCandidate_NegativeVotesClamped(t *testing.T) {
	got := Candidate(models.Record{"id": "c", "votes": float64(-10)})
	assert.Equal(t, 0, got.Votes)
}

func TestCandidate_IsIdempotent(t *testing.T) {
	first := Candidate(decode(t, `{"id": 1, "name": "N", "votes": "12", "electionId": 2}`))

	b, err := json.Marshal(first)
	require.NoError(t, err)
	again := Candidate(decode(t, string(b)))

	assert.Equal(t, first, again)
}

func TestVoter_Defaults(t *testing.T) {
	got := Voter(models.Record{"id": float64(1), "name": "V", "email": "v@x", "electionId": "e"})
	assert.Equal(t, models.Voter{ID: "1", Name: "V", Email: "v@x", ElectionID: "e", HasVoted: false, IsActive: true}, got)

	got = Voter(models.Record{"id": "2", "has_voted": true, "is_active": false})
	assert.True(t, got.HasVoted)
	assert.False(t, got.IsActive)
}

func TestElection_StatusAndKeys(t *testing.T) {
	got := Election(decode(t, `{"id": 4, "name": "City", "status": "active", "start_date": "2025-01-01", "endDate": "2025-02-01", "created_at": "c", "positions": ["Mayor"]}`))

	want := models.Election{
		ID: "4", Name: "City", Status: models.StatusActive,
		StartDate: "2025-01-01", EndDate: "2025-02-01", CreatedAt: "c",
		Positions: []string{"Mayor"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("election mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, models.StatusDraft, Election(models.Record{"status": "weird"}).Status)
}

func TestTokenBatch(t *testing.T) {
	got := TokenBatch(decode(t, `{
		"batch_id": 17,
		"elections": [{"id": 1, "name": "A"}, "junk"],
		"tokens": [{"id": 1, "token": 123456, "is_used": true}, {"id": 2, "token": "654321"}]
	}`))

	assert.Equal(t, "17", got.BatchID)
	assert.Equal(t, []models.ElectionRef{{ID: "1", Name: "A"}}, got.Elections)
	require.Len(t, got.Tokens, 2)
	assert.Equal(t, models.Token{ID: "1", Token: "123456", IsUsed: true}, got.Tokens[0])
	assert.Equal(t, 1, got.Unused())
}

func TestTokenBatch_EmptyCollectionsNotNil(t *testing.T) {
	got := TokenBatch(models.Record{"batchId": "b"})
	assert.NotNil(t, got.Elections)
	assert.NotNil(t, got.Tokens)
}

func TestElectionResult_SortsAndSums(t *testing.T) {
	got := ElectionResult(decode(t, `{
		"election_id": 1, "election_name": "E", "status": "Ended",
		"candidates": [
			{"id": 1, "name": "Low", "vote_count": 2},
			{"id": 2, "name": "High", "voteCount": 7}
		]
	}`))

	require.Len(t, got.Candidates, 2)
	assert.Equal(t, "High", got.Candidates[0].Name)
	assert.Equal(t, 9, got.TotalVotes)

	got = ElectionResult(models.Record{"electionId": "x", "totalVotes": float64(100)})
	assert.Equal(t, 100, got.TotalVotes)
	assert.Empty(t, got.Candidates)
}

func TestLists_SkipNilRecords(t *testing.T) {
	got := Candidates([]models.Record{{"id": "a"}, nil, {"id": "b"}})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)

	assert.Empty(t, Voters(nil))
	assert.NotNil(t, Elections(nil))
}
