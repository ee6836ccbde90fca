package store

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T, backend *fakeBackend, backing storage.Storage) *Store {
	t.Helper()
	if backing == nil {
		backing = storage.NewMemoryStorage()
	}
	s := New(context.Background(), Options{
		Services:      backend.collaborators(),
		Storage:       backing,
		Logger:        zerolog.Nop(),
		ViewportWidth: 1280,
	})
	t.Cleanup(s.Wait)
	return s
}

func jwtWithExpiry(t *testing.T, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return signed
}

type phaseRecorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *phaseRecorder) listener(flag func(RootState) bool) Listener {
	return func(state RootState, action Action) {
		r.mu.Lock()
		defer r.mu.Unlock()
		mark := "idle"
		if flag(state) {
			mark = "busy"
		}
		r.entries = append(r.entries, action.Type+"="+mark)
	}
}

func (r *phaseRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

func TestBusyFlagTrueOnlyBetweenPendingAndSettlement(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		flag   func(RootState) bool
		start  func(ctx context.Context, s *Store) func(context.Context) error
	}{
		{"login", PrefixLogin, SelectAuthLoading, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.Login(ctx, "a@b.com", "x")
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
		{"challenges", PrefixFetchChallenges, SelectChallengeLoading, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.FetchChallenges(ctx)
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
		{"submission", PrefixFetchSubmissionByID, SelectSubmissionLoading, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.FetchSubmissionByID(ctx, "s-1")
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
		{"create", PrefixCreateSubmission, SelectSubmissionSubmitting, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.CreateSubmission(ctx, validCreateRequest())
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
		{"notifications", PrefixFetchNotifications, SelectNotificationLoading, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.FetchNotifications(ctx, false)
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
		{"mark read", PrefixMarkAsRead, SelectNotificationLoading, func(ctx context.Context, s *Store) func(context.Context) error {
			task := s.MarkNotificationAsRead(ctx, "n-1")
			return func(c context.Context) error { _, err := task.Wait(c); return err }
		}},
	}

	for _, outcome := range []string{"fulfilled", "rejected"} {
		for _, tc := range cases {
			t.Run(tc.name+"/"+outcome, func(t *testing.T) {
				backend := newFakeBackend()
				if outcome == "rejected" {
					backend.fail(errBackendDown)
				}
				gate := backend.hold()
				s := newTestStore(t, backend, nil)

				recorder := &phaseRecorder{}
				unsubscribe := s.Subscribe(recorder.listener(tc.flag))
				defer unsubscribe()

				require.False(t, tc.flag(s.GetState()))
				wait := tc.start(context.Background(), s)
				require.True(t, tc.flag(s.GetState()))

				close(gate)
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				err := wait(ctx)
				if outcome == "rejected" {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
				}

				require.False(t, tc.flag(s.GetState()))
				require.Equal(t, []string{
					Pending(tc.prefix) + "=busy",
					tc.prefix + "/" + outcome + "=idle",
				}, recorder.snapshot())
			})
		}
	}
}

func TestOverlappingOperationsKeepFlagUntilLastSettles(t *testing.T) {
	backend := newFakeBackend()
	gate := backend.hold()
	s := newTestStore(t, backend, nil)

	first := s.FetchChallenges(context.Background())
	second := s.FetchRecommendedChallenges(context.Background())
	require.True(t, SelectChallengeLoading(s.GetState()))

	close(gate)
	_, err := first.Wait(context.Background())
	require.NoError(t, err)
	_, err = second.Wait(context.Background())
	require.NoError(t, err)
	require.False(t, SelectChallengeLoading(s.GetState()))
}

func TestRejectionMessageSources(t *testing.T) {
	backend := newFakeBackend()
	backend.fail(&service.APIError{StatusCode: 404, Detail: "Challenge not found"})
	s := newTestStore(t, backend, nil)

	_, err := s.FetchChallengeByID(context.Background(), "missing").Wait(context.Background())
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, "Challenge not found", rejection.Message)
	require.Equal(t, "Challenge not found", SelectChallengeError(s.GetState()))

	backend.fail(errBackendDown)
	_, err = s.FetchChallenges(context.Background()).Wait(context.Background())
	require.Error(t, err)
	require.Equal(t, "Failed to fetch challenges", SelectChallengeError(s.GetState()))
}

func TestErrorClearedByNextAttempt(t *testing.T) {
	backend := newFakeBackend()
	backend.fail(errBackendDown)
	s := newTestStore(t, backend, nil)

	_, _ = s.FetchUserSubmissions(context.Background(), "").Wait(context.Background())
	require.Equal(t, "Failed to fetch your submissions", SelectSubmissionError(s.GetState()))

	backend.fail(nil)
	gate := backend.hold()
	task := s.FetchUserSubmissions(context.Background(), "")
	require.Empty(t, SelectSubmissionError(s.GetState()))
	close(gate)
	_, err := task.Wait(context.Background())
	require.NoError(t, err)
	require.Empty(t, SelectSubmissionError(s.GetState()))
}

func TestCancelledContextRejectsWithDefaultMessage(t *testing.T) {
	backend := newFakeBackend()
	backend.hold()
	s := newTestStore(t, backend, nil)

	ctx, cancel := context.WithCancel(context.Background())
	task := s.FetchNotifications(ctx, false)
	cancel()

	_, err := task.Wait(context.Background())
	require.Error(t, err)
	require.Equal(t, "Failed to fetch notifications", SelectNotificationError(s.GetState()))
	require.False(t, SelectNotificationLoading(s.GetState()))
}

func TestTaskMetadata(t *testing.T) {
	backend := newFakeBackend()
	s := newTestStore(t, backend, nil)

	var mu sync.Mutex
	ids := map[string]string{}
	unsubscribe := s.Subscribe(func(_ RootState, action Action) {
		mu.Lock()
		defer mu.Unlock()
		ids[action.Type] = action.Meta.RequestID
	})
	defer unsubscribe()

	task := s.FetchChallengeByID(context.Background(), "c-7")
	<-task.Done()
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, task.RequestID())
	require.Equal(t, task.RequestID(), ids[Pending(PrefixFetchChallengeByID)])
	require.Equal(t, task.RequestID(), ids[Fulfilled(PrefixFetchChallengeByID)])
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	s := newTestStore(t, newFakeBackend(), nil)

	var calls []string
	first := s.Subscribe(func(RootState, Action) { calls = append(calls, "first") })
	second := s.Subscribe(func(RootState, Action) { calls = append(calls, "second") })

	s.ToggleDrawer()
	require.Equal(t, []string{"first", "second"}, calls)

	first()
	first()
	s.ToggleDrawer()
	require.Equal(t, []string{"first", "second", "second"}, calls)
	second()
}

func TestSnapshotsAreStable(t *testing.T) {
	backend := newFakeBackend()
	s := newTestStore(t, backend, nil)
	s.AddNotification(notification("n-1", false))

	before := s.GetState()
	s.AddNotification(notification("n-2", false))
	_, err := s.MarkAllNotificationsAsRead(context.Background()).Wait(context.Background())
	require.NoError(t, err)

	require.Len(t, before.Notifications.Notifications, 1)
	require.False(t, before.Notifications.Notifications[0].Read)
	require.Equal(t, 1, before.Notifications.UnreadCount)
}

func TestCustomMiddlewareSeesEveryAction(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	recorder := func(MiddlewareAPI) func(DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action Action) Action {
				mu.Lock()
				seen = append(seen, action.Type)
				mu.Unlock()
				return next(action)
			}
		}
	}

	s := New(context.Background(), Options{
		Services:   newFakeBackend().collaborators(),
		Logger:     zerolog.Nop(),
		Middleware: []Middleware{recorder},
	})
	_, err := s.FetchUnreadCount(context.Background()).Wait(context.Background())
	require.NoError(t, err)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{Pending(PrefixFetchUnreadCount), Fulfilled(PrefixFetchUnreadCount)}, seen)
}

func TestPersistenceMiddleware(t *testing.T) {
	backing := storage.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, storage.KeyToken, "tok-old"))

	s := newTestStore(t, newFakeBackend(), backing)
	require.Equal(t, "tok-old", s.GetState().Auth.Token)

	s.ToggleDarkMode()
	require.Equal(t, "true", storage.GetOr(ctx, backing, storage.KeyDarkMode, ""))
	s.SetDarkMode(false)
	require.Equal(t, "false", storage.GetOr(ctx, backing, storage.KeyDarkMode, ""))

	s.Logout()
	_, err := backing.Get(ctx, storage.KeyToken)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInitialStateFromStorage(t *testing.T) {
	ctx := context.Background()

	expired := storage.NewMemoryStorage()
	require.NoError(t, expired.Set(ctx, storage.KeyToken, jwtWithExpiry(t, time.Now().Add(-time.Hour))))
	require.NoError(t, expired.Set(ctx, storage.KeyDarkMode, "true"))

	state := InitialState(ctx, expired, 500, zerolog.Nop())
	require.Empty(t, state.Auth.Token)
	require.False(t, state.Auth.IsAuthenticated)
	require.True(t, state.UI.DarkMode)
	require.True(t, state.UI.IsMobile)
	_, err := expired.Get(ctx, storage.KeyToken)
	require.ErrorIs(t, err, storage.ErrNotFound)

	live := storage.NewMemoryStorage()
	token := jwtWithExpiry(t, time.Now().Add(time.Hour))
	require.NoError(t, live.Set(ctx, storage.KeyToken, token))

	state = InitialState(ctx, live, 1280, zerolog.Nop())
	require.Equal(t, token, state.Auth.Token)
	require.False(t, state.Auth.IsAuthenticated)
	require.False(t, state.UI.DarkMode)
	require.False(t, state.UI.IsMobile)
	require.Equal(t, SeverityInfo, state.UI.Snackbar.Severity)
	require.Equal(t, DefaultSnackbarDuration, state.UI.Snackbar.Duration)
	require.Equal(t, DefaultChallengeFilters(), state.Challenges.Filters)
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(validCreateRequestWith("not-a-url"))
	require.Error(t, err)
	require.True(t, strings.Contains(validationMessage(err), "repo_url must be a valid url"))
}
