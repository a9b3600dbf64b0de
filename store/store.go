// Package store owns the canonical in-session copy of the financial profile.
// It is an explicit, injectable state container: every mutation goes through
// its API, recomputes the derived summary, optionally asks the reaction
// engine for a comment, writes the full envelope to the local cache before
// returning, and fires a best-effort remote write.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"finance-advisor/api/langpref"
	"finance-advisor/api/logger"
	"finance-advisor/api/metrics"
	"finance-advisor/api/migrate"
	"finance-advisor/api/models"
	"finance-advisor/api/reaction"
	"finance-advisor/api/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned by update/delete operations addressing an unknown
// id. The previous behavior was a silent no-op; failing loudly was the
// deliberate replacement.
var ErrNotFound = errors.New("entry not found")

// LocalCache is the synchronous persistence path. Writes must complete
// before the next read.
type LocalCache interface {
	SaveState(models.PersistedState) error
	StateRaw() ([]byte, bool, error)
	User() (*models.AuthUser, error)
	ClearSession() error
	ClearAll() error
}

// RemoteStore is the asynchronous, best-effort persistence path.
type RemoteStore interface {
	FetchMe(ctx context.Context, token string) (*remote.MeRaw, error)
	SaveState(ctx context.Context, token string, state models.PersistedState) error
}

type Store struct {
	mu      sync.Mutex
	state   models.PersistedState
	summary metrics.Summary

	buckets   metrics.BucketMap
	reactions *reaction.Engine
	local     LocalCache
	remote    RemoteStore
	token     string
	urlLang   string
	now       func() time.Time

	saves sync.WaitGroup
}

type Options struct {
	Local   LocalCache
	Remote  RemoteStore
	Token   string // empty means no authenticated session; remote writes are skipped
	URLLang string // optional language code from the bot deep link
	Buckets metrics.BucketMap
	Now     func() time.Time
}

func New(opts Options) *Store {
	if opts.Buckets == nil {
		opts.Buckets = metrics.DefaultBucketMap()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		state:     models.EmptyState(models.DefaultLanguage),
		buckets:   opts.Buckets,
		reactions: reaction.NewEngine(),
		local:     opts.Local,
		remote:    opts.Remote,
		token:     opts.Token,
		urlLang:   opts.URLLang,
		now:       opts.Now,
	}
	s.summary = metrics.Compute(s.state, s.buckets, s.now())
	return s
}

// LoadResult reports what Load reconciled.
type LoadResult struct {
	NeedsOnboarding bool
	Language        models.Language
	// FromRemote is false when the session ran on the local cache alone.
	FromRemote bool
}

// Load reconciles URL, local-cache and remote-record inputs into the
// authoritative in-session state. Remote auth failure clears cached
// credentials and is the only error surfaced; any other remote trouble falls
// back to the local copy.
func (s *Store) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cachedUser, err := s.local.User()
	if err != nil {
		logger.Get().Warn("reading cached user failed", zap.Error(err))
	}
	localState := s.loadLocalState()

	lang := langpref.Resolve(langpref.Sources{
		URLParam:    s.urlLang,
		CachedUser:  cachedUser,
		CachedState: localState,
	})
	hadURLParam := false
	if _, ok := langpref.Normalize(s.urlLang); ok {
		hadURLParam = true
	}

	result := LoadResult{Language: lang}

	if s.token != "" && s.remote != nil {
		me, err := s.remote.FetchMe(ctx, s.token)
		switch {
		case errors.Is(err, remote.ErrSessionExpired):
			if cerr := s.local.ClearSession(); cerr != nil {
				logger.Get().Warn("clearing cached session failed", zap.Error(cerr))
			}
			return result, err
		case err != nil:
			logger.Get().Warn("remote fetch failed, continuing on local cache", zap.Error(err))
		default:
			if me.State != nil {
				migrated, merr := migrate.State(me.State)
				if merr != nil {
					// FromRemote stays false: the session runs on the local copy.
					logger.Get().Error("remote state unreadable, falling back to local", zap.Error(merr))
				} else {
					result.FromRemote = true
					lang = langpref.ApplyRemote(lang, migrated.Lang, hadURLParam)
					s.state = migrated
					s.state.Lang = lang
					s.finishLoad(&result)
					return result, nil
				}
			} else {
				// Brand-new account: empty state, onboarding required.
				result.FromRemote = true
				s.state = models.EmptyState(lang)
				s.finishLoad(&result)
				return result, nil
			}
		}
	}

	if localState != nil {
		s.state = *localState
		s.state.Lang = lang
	} else {
		s.state = models.EmptyState(lang)
	}
	s.finishLoad(&result)
	return result, nil
}

func (s *Store) finishLoad(result *LoadResult) {
	result.Language = s.state.Lang
	result.NeedsOnboarding = migrate.NeedsOnboarding(s.state.Profile)
	s.refreshExpenseCache()
	s.summary = metrics.Compute(s.state, s.buckets, s.now())
	s.persistLocked()
}

func (s *Store) loadLocalState() *models.PersistedState {
	raw, ok, err := s.local.StateRaw()
	if err != nil || !ok {
		if err != nil {
			logger.Get().Warn("reading local cache failed", zap.Error(err))
		}
		return nil
	}
	state, err := migrate.State(raw)
	if err != nil {
		// Malformed cache never crashes the session; defaults win.
		logger.Get().Warn("local cache unreadable, ignoring", zap.Error(err))
		return nil
	}
	return &state
}

// Snapshot returns a deep copy of the current envelope.
func (s *Store) Snapshot() models.PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Summary returns the derived figures from the last recompute.
func (s *Store) Summary() metrics.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *Store) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Lang
}

// --- salary ---

// AddSalary records an income entry. Income draws no reaction.
func (s *Store) AddSalary(entry models.SalaryEntry) models.SalaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.state.Profile.SalaryHistory = append(s.state.Profile.SalaryHistory, entry)
	s.afterMutationLocked()
	return entry
}

// --- expenses ---

func (s *Store) AddExpense(e models.Expense) (models.Expense, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.state.Expenses = append(s.state.Expenses, e)
	s.refreshExpenseCache()
	s.afterMutationLocked()
	msg, ok := s.reactions.React(reaction.ExpenseAdded(e), s.state.Profile, s.state.Lang)
	return e, msg, ok
}

func (s *Store) UpdateExpense(e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Expenses {
		if s.state.Expenses[i].ID == e.ID {
			s.state.Expenses[i] = e
			s.refreshExpenseCache()
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Expenses {
		if s.state.Expenses[i].ID == id {
			s.state.Expenses = append(s.state.Expenses[:i], s.state.Expenses[i+1:]...)
			s.refreshExpenseCache()
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// --- loans ---

func (s *Store) AddLoan(l models.Loan) (models.Loan, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	s.state.Loans = append(s.state.Loans, l)
	s.afterMutationLocked()
	msg, ok := s.reactions.React(reaction.LoanAdded(l), s.state.Profile, s.state.Lang)
	return l, msg, ok
}

func (s *Store) UpdateLoan(l models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Loans {
		if s.state.Loans[i].ID == l.ID {
			s.state.Loans[i] = l
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteLoan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Loans {
		if s.state.Loans[i].ID == id {
			s.state.Loans = append(s.state.Loans[:i], s.state.Loans[i+1:]...)
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// RecordLoanPayment adds to the loan's paid amount. Payments are not clamped
// to the remaining balance: overpaying yields a negative remainder, which the
// metrics treat as-is.
func (s *Store) RecordLoanPayment(id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Loans {
		if s.state.Loans[i].ID == id {
			s.state.Loans[i].PaidAmount += amount
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// --- lendings ---

func (s *Store) AddLending(l models.Lending) (models.Lending, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	s.state.Lendings = append(s.state.Lendings, l)
	s.afterMutationLocked()
	msg, ok := s.reactions.React(reaction.LendingAdded(l), s.state.Profile, s.state.Lang)
	return l, msg, ok
}

func (s *Store) UpdateLending(l models.Lending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Lendings {
		if s.state.Lendings[i].ID == l.ID {
			s.state.Lendings[i] = l
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteLending(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Lendings {
		if s.state.Lendings[i].ID == id {
			s.state.Lendings = append(s.state.Lendings[:i], s.state.Lendings[i+1:]...)
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) RecordLendingRepayment(id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Lendings {
		if s.state.Lendings[i].ID == id {
			s.state.Lendings[i].RepaidAmount += amount
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// --- goals ---

func (s *Store) AddGoal(g models.Goal) (models.Goal, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.state.Profile.Goals = append(s.state.Profile.Goals, g)
	s.afterMutationLocked()
	msg, ok := s.reactions.React(reaction.GoalAdded(g), s.state.Profile, s.state.Lang)
	return g, msg, ok
}

func (s *Store) UpdateGoal(g models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Profile.Goals {
		if s.state.Profile.Goals[i].ID == g.ID {
			s.state.Profile.Goals[i] = g
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Profile.Goals {
		if s.state.Profile.Goals[i].ID == id {
			s.state.Profile.Goals = append(s.state.Profile.Goals[:i], s.state.Profile.Goals[i+1:]...)
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// AddGoalProgress moves savedAmount toward (or past) the target; saved
// amounts are unbounded above the target.
func (s *Store) AddGoalProgress(id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Profile.Goals {
		if s.state.Profile.Goals[i].ID == id {
			s.state.Profile.Goals[i].SavedAmount += amount
			s.afterMutationLocked()
			return nil
		}
	}
	return ErrNotFound
}

// --- profile, language, chat ---

// SetProfile replaces the profile (onboarding and edits). The tax rate is
// clamped into [0,100].
func (s *Store) SetProfile(p models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.TaxRate < 0 {
		p.TaxRate = 0
	}
	if p.TaxRate > 100 {
		p.TaxRate = 100
	}
	if p.SalaryHistory == nil {
		p.SalaryHistory = []models.SalaryEntry{}
	}
	if p.Goals == nil {
		p.Goals = []models.Goal{}
	}
	s.state.Profile = p
	s.refreshExpenseCache()
	s.afterMutationLocked()
}

// SetLanguage persists the new language locally at once and remotely
// best-effort. It never changes the URL.
func (s *Store) SetLanguage(lang models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !models.IsSupportedLanguage(lang) {
		return
	}
	s.state.Lang = lang
	s.afterMutationLocked()
}

func (s *Store) AppendChatMessage(msg models.AiMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Timestamp == 0 {
		msg.Timestamp = s.now().UnixMilli()
	}
	s.state.ChatHistory = append(s.state.ChatHistory, msg)
	s.afterMutationLocked()
}

// Logout clears the local cache and resets the session state. The remote
// record is left untouched.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.state = models.EmptyState(s.state.Lang)
	s.summary = metrics.Compute(s.state, s.buckets, s.now())
	return s.local.ClearAll()
}

// Flush waits for in-flight remote writes. Shutdown and tests only.
func (s *Store) Flush() {
	s.saves.Wait()
}

// --- internals ---

// afterMutationLocked recomputes the summary, writes the local cache, and
// fires the remote write. Callers hold the mutex.
func (s *Store) afterMutationLocked() {
	s.summary = metrics.Compute(s.state, s.buckets, s.now())
	s.persistLocked()
}

func (s *Store) persistLocked() {
	snap := cloneState(s.state)

	if err := s.local.SaveState(snap); err != nil {
		// The session keeps running on the in-memory copy.
		logger.Get().Error("local cache write failed", zap.Error(err))
	}

	if s.token == "" || s.remote == nil {
		return
	}
	token := s.token
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.remote.SaveState(ctx, token, snap); err != nil {
			// Best-effort: logged, swallowed, never retried.
			logger.Get().Warn("remote save failed, continuing on local cache", zap.Error(err))
		}
	}()
}

// refreshExpenseCache rebuilds the profile's derived category→amount map for
// the current month. The expense list stays authoritative.
func (s *Store) refreshExpenseCache() {
	s.state.Profile.Expenses = metrics.MonthCategoryTotals(s.state.Expenses, s.now())
}

// cloneState copies the envelope deeply enough that the async remote write
// can serialize it while the caller keeps mutating.
func cloneState(in models.PersistedState) models.PersistedState {
	out := in
	out.Profile.SalaryHistory = append([]models.SalaryEntry{}, in.Profile.SalaryHistory...)
	out.Profile.Goals = append([]models.Goal{}, in.Profile.Goals...)
	out.Profile.Expenses = make(map[string]float64, len(in.Profile.Expenses))
	for k, v := range in.Profile.Expenses {
		out.Profile.Expenses[k] = v
	}
	out.Expenses = append([]models.Expense{}, in.Expenses...)
	out.Loans = append([]models.Loan{}, in.Loans...)
	out.Lendings = append([]models.Lending{}, in.Lendings...)
	out.ChatHistory = append([]models.AiMessage{}, in.ChatHistory...)
	return out
}
