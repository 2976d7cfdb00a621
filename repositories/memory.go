package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bracketline/tournament-engine/models"
)

// MemoryStore keeps all tournament state in process memory. It satisfies
// every repository interface, so the service layer runs unchanged against
// it. Used by tests and by deployments that run without Postgres.
type MemoryStore struct {
	mu sync.RWMutex

	nextTournamentID int
	nextTeamID       int
	nextMatchID      int
	nextHistoryID    int

	tournaments map[int]*models.Tournament
	teams       map[int]*models.Team
	matches     map[int]*models.Match
	history     map[int]*models.EloHistory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextTournamentID: 1,
		nextTeamID:       1,
		nextMatchID:      1,
		nextHistoryID:    1,
		tournaments:      make(map[int]*models.Tournament),
		teams:            make(map[int]*models.Team),
		matches:          make(map[int]*models.Match),
		history:          make(map[int]*models.EloHistory),
	}
}

func copyTournament(t *models.Tournament) *models.Tournament {
	c := *t
	c.Teams = nil
	c.Matches = nil
	if t.WinnerTeamID != nil {
		w := *t.WinnerTeamID
		c.WinnerTeamID = &w
	}
	return &c
}

func copyTeam(t *models.Team) *models.Team {
	c := *t
	c.EloHistory = nil
	if t.GroupName != nil {
		g := *t.GroupName
		c.GroupName = &g
	}
	return &c
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyIntPtr(i *int) *int {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

func copyFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyMatch(m *models.Match) *models.Match {
	c := *m
	c.Team1ID = copyStringPtr(m.Team1ID)
	c.Team2ID = copyStringPtr(m.Team2ID)
	c.WinnerID = copyStringPtr(m.WinnerID)
	c.Team1Score = copyIntPtr(m.Team1Score)
	c.Team2Score = copyIntPtr(m.Team2Score)
	c.GroupName = copyStringPtr(m.GroupName)
	c.Team1WinProbability = copyFloatPtr(m.Team1WinProbability)
	c.Team2WinProbability = copyFloatPtr(m.Team2WinProbability)
	return &c
}

// --- TournamentRepository ---

func (s *MemoryStore) Create(_ context.Context, tournament *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament.ID = s.nextTournamentID
	s.nextTournamentID++
	now := time.Now().UTC()
	tournament.CreatedAt = now
	tournament.UpdatedAt = now
	s.tournaments[tournament.ID] = copyTournament(tournament)
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (s *MemoryStore) GetByPublicID(_ context.Context, tournamentID string) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tournaments {
		if t.TournamentID == tournamentID {
			return copyTournament(t), nil
		}
	}
	return nil, ErrTournamentNotFound
}

func (s *MemoryStore) List(_ context.Context, status *models.TournamentStatus, limit, offset int) ([]*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		if status != nil && t.Status != *status {
			continue
		}
		all = append(all, copyTournament(t))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(all) {
			return []*models.Tournament{}, nil
		}
		all = all[offset:]
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) Update(_ context.Context, tournament *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[tournament.ID]; !ok {
		return ErrTournamentNotFound
	}
	tournament.UpdatedAt = time.Now().UTC()
	s.tournaments[tournament.ID] = copyTournament(tournament)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(s.tournaments, id)
	for dbID, team := range s.teams {
		if team.TournamentID == id {
			delete(s.teams, dbID)
		}
	}
	for dbID, match := range s.matches {
		if match.TournamentID == id {
			delete(s.matches, dbID)
		}
	}
	return nil
}

// --- TeamRepository ---

func (s *MemoryStore) CreateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.teams {
		if existing.TournamentID == team.TournamentID && existing.TeamID == team.TeamID {
			return ErrTeamConflict
		}
	}

	team.ID = s.nextTeamID
	s.nextTeamID++
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	s.teams[team.ID] = copyTeam(team)
	return nil
}

func (s *MemoryStore) GetByTeamID(_ context.Context, tournamentDBID int, teamID string) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teams {
		if t.TournamentID == tournamentDBID && t.TeamID == teamID {
			return copyTeam(t), nil
		}
	}
	return nil, ErrTeamNotFound
}

func (s *MemoryStore) ListByTournament(_ context.Context, tournamentDBID int) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]*models.Team, 0)
	for _, t := range s.teams {
		if t.TournamentID == tournamentDBID {
			teams = append(teams, copyTeam(t))
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (s *MemoryStore) CountByTournament(_ context.Context, tournamentDBID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.teams {
		if t.TournamentID == tournamentDBID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) UpdateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.ID]; !ok {
		return ErrTeamNotFound
	}
	team.UpdatedAt = time.Now().UTC()
	s.teams[team.ID] = copyTeam(team)
	return nil
}

func (s *MemoryStore) DeleteTeam(_ context.Context, tournamentDBID int, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for dbID, t := range s.teams {
		if t.TournamentID == tournamentDBID && t.TeamID == teamID {
			delete(s.teams, dbID)
			return nil
		}
	}
	return ErrTeamNotFound
}

// --- MatchRepository ---

func (s *MemoryStore) CreateBatch(_ context.Context, matches []*models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, m := range matches {
		m.ID = s.nextMatchID
		s.nextMatchID++
		m.CreatedAt = now
		m.UpdatedAt = now
		s.matches[m.ID] = copyMatch(m)
	}
	return nil
}

func (s *MemoryStore) GetByMatchID(_ context.Context, tournamentDBID int, matchID string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.matches {
		if m.TournamentID == tournamentDBID && m.MatchID == matchID {
			return copyMatch(m), nil
		}
	}
	return nil, ErrMatchNotFound
}

func (s *MemoryStore) ListMatchesByTournament(_ context.Context, tournamentDBID int, filter MatchFilter) ([]*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.Match, 0)
	for _, m := range s.matches {
		if m.TournamentID != tournamentDBID {
			continue
		}
		if filter.Round != nil && m.Round != *filter.Round {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.Stage != nil && m.Stage != *filter.Stage {
			continue
		}
		matches = append(matches, copyMatch(m))
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}

func (s *MemoryStore) CountPending(_ context.Context, tournamentDBID int, round int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.matches {
		if m.TournamentID == tournamentDBID && m.Round == round && m.Status == models.MatchStatusPending {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) UpdateMatch(_ context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[match.ID]; !ok {
		return ErrMatchNotFound
	}
	match.UpdatedAt = time.Now().UTC()
	s.matches[match.ID] = copyMatch(match)
	return nil
}

// --- EloHistoryRepository ---

func (s *MemoryStore) CreateEloHistory(_ context.Context, entry *models.EloHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextHistoryID
	s.nextHistoryID++
	entry.CreatedAt = time.Now().UTC()
	c := *entry
	s.history[entry.ID] = &c
	return nil
}

func (s *MemoryStore) ListEloHistoryByTeam(_ context.Context, teamDBID int) ([]*models.EloHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.EloHistory, 0)
	for _, e := range s.history {
		if e.TeamDBID == teamDBID {
			c := *e
			entries = append(entries, &c)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Interface adapters. The store has one method namespace, so each interface
// is exposed through a thin view struct.

type memoryTeamRepository struct{ s *MemoryStore }

func (r memoryTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.s.CreateTeam(ctx, team)
}
func (r memoryTeamRepository) GetByTeamID(ctx context.Context, tournamentDBID int, teamID string) (*models.Team, error) {
	return r.s.GetByTeamID(ctx, tournamentDBID, teamID)
}
func (r memoryTeamRepository) ListByTournament(ctx context.Context, tournamentDBID int) ([]*models.Team, error) {
	return r.s.ListByTournament(ctx, tournamentDBID)
}
func (r memoryTeamRepository) CountByTournament(ctx context.Context, tournamentDBID int) (int, error) {
	return r.s.CountByTournament(ctx, tournamentDBID)
}
func (r memoryTeamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.s.UpdateTeam(ctx, team)
}
func (r memoryTeamRepository) Delete(ctx context.Context, tournamentDBID int, teamID string) error {
	return r.s.DeleteTeam(ctx, tournamentDBID, teamID)
}

type memoryMatchRepository struct{ s *MemoryStore }

func (r memoryMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	return r.s.CreateBatch(ctx, matches)
}
func (r memoryMatchRepository) GetByMatchID(ctx context.Context, tournamentDBID int, matchID string) (*models.Match, error) {
	return r.s.GetByMatchID(ctx, tournamentDBID, matchID)
}
func (r memoryMatchRepository) ListByTournament(ctx context.Context, tournamentDBID int, filter MatchFilter) ([]*models.Match, error) {
	return r.s.ListMatchesByTournament(ctx, tournamentDBID, filter)
}
func (r memoryMatchRepository) CountPending(ctx context.Context, tournamentDBID int, round int) (int, error) {
	return r.s.CountPending(ctx, tournamentDBID, round)
}
func (r memoryMatchRepository) Update(ctx context.Context, match *models.Match) error {
	return r.s.UpdateMatch(ctx, match)
}

type memoryEloHistoryRepository struct{ s *MemoryStore }

func (r memoryEloHistoryRepository) Create(ctx context.Context, entry *models.EloHistory) error {
	return r.s.CreateEloHistory(ctx, entry)
}
func (r memoryEloHistoryRepository) ListByTeam(ctx context.Context, teamDBID int) ([]*models.EloHistory, error) {
	return r.s.ListEloHistoryByTeam(ctx, teamDBID)
}

func (s *MemoryStore) Tournaments() TournamentRepository { return s }
func (s *MemoryStore) TeamsRepo() TeamRepository         { return memoryTeamRepository{s} }
func (s *MemoryStore) MatchesRepo() MatchRepository      { return memoryMatchRepository{s} }
func (s *MemoryStore) EloHistoryRepo() EloHistoryRepository {
	return memoryEloHistoryRepository{s}
}
