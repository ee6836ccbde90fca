package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
	"github.com/noah-isme/elitebuilders-client/internal/push"
	"github.com/noah-isme/elitebuilders-client/internal/store"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":         {"login <email> <password>", cmdLogin},
	"register":      {"register <email> <password> <name>", cmdRegister},
	"profile":       {"profile", cmdProfile},
	"logout":        {"logout", cmdLogout},
	"challenges":    {"challenges [-all] [-sponsor id] [-season id] [-search text]", cmdChallenges},
	"challenge":     {"challenge <id>", cmdChallenge},
	"recommended":   {"recommended", cmdRecommended},
	"submissions":   {"submissions [-challenge id]", cmdSubmissions},
	"submission":    {"submission <id>", cmdSubmission},
	"submit":        {"submit -challenge id -repo url [-deck url] [-video url] [-description text]", cmdSubmit},
	"resubmit":      {"resubmit <id> [-repo url] [-deck url] [-video url] [-description text]", cmdResubmit},
	"evaluate":      {"evaluate <id>", cmdEvaluate},
	"notifications": {"notifications [-unread]", cmdNotifications},
	"unread":        {"unread", cmdUnread},
	"read":          {"read <id>", cmdRead},
	"read-all":      {"read-all", cmdReadAll},
	"watch":         {"watch", cmdWatch},
	"dark-mode":     {"dark-mode [on|off|toggle]", cmdDarkMode},
}

// errRejected marks a command whose store operation was rejected. The slice
// error has already been printed.
var errRejected = errors.New("operation rejected")

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n", args[0])
		printUsage(errOut)
		return 2
	}

	a, err := bootstrap(ctx, out, errOut)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer a.Close()

	err = cmd.run(ctx, a, args[1:])
	a.store.Wait()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRejected):
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(errOut, "%s: %v\nusage: elitebuilders %s\n", args[0], err, cmd.usage)
		return 1
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: elitebuilders <command> [arguments]")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

type waiter[R any] interface {
	Wait(ctx context.Context) (R, error)
}

// settle waits for the task and prints the selected slice. A rejection prints
// the slice error instead.
func settle[R any](ctx context.Context, a *app, task waiter[R], view func(store.RootState) any, errorOf func(store.RootState) string) error {
	_, err := task.Wait(ctx)
	state := a.store.GetState()
	var rejection *store.Rejection
	if errors.As(err, &rejection) {
		_ = printJSON(a.out, map[string]string{"error": errorOf(state)})
		return errRejected
	}
	if err != nil {
		return err
	}
	return printJSON(a.out, view(state))
}

func positional(args []string, n int) ([]string, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return args, nil
}

func authView(state store.RootState) any { return state.Auth }

func cmdLogin(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 2)
	if err != nil {
		return err
	}
	return settle[dto.TokenResponse](ctx, a, a.store.Login(ctx, args[0], args[1]), authView, store.SelectAuthError)
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 3)
	if err != nil {
		return err
	}
	payload := dto.RegisterRequest{Email: args[0], Password: args[1], Name: strings.Join(args[2:], " ")}
	return settle[dto.TokenResponse](ctx, a, a.store.Register(ctx, payload), authView, store.SelectAuthError)
}

func cmdProfile(ctx context.Context, a *app, _ []string) error {
	return settle[models.User](ctx, a, a.store.GetUserProfile(ctx), authView, store.SelectAuthError)
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.store.Services().Auth.Logout(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("server logout failed")
	}
	a.store.Logout()
	return printJSON(a.out, a.store.GetState().Auth)
}

func challengesView(state store.RootState) any { return state.Challenges }

func cmdChallenges(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("challenges", flag.ContinueOnError)
	all := fs.Bool("all", false, "include inactive challenges")
	sponsor := fs.String("sponsor", "", "sponsor id")
	season := fs.String("season", "", "season id")
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.store.SetFilter(store.ActiveOnly(!*all))
	a.store.SetFilter(store.SponsorID(*sponsor))
	a.store.SetFilter(store.SeasonID(*season))
	a.store.SetFilter(store.SearchQuery(*search))
	return settle[[]models.Challenge](ctx, a, a.store.FetchChallenges(ctx), challengesView, store.SelectChallengeError)
}

func cmdChallenge(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 1)
	if err != nil {
		return err
	}
	return settle[models.Challenge](ctx, a, a.store.FetchChallengeByID(ctx, args[0]), func(state store.RootState) any {
		return store.SelectCurrentChallenge(state)
	}, store.SelectChallengeError)
}

func cmdRecommended(ctx context.Context, a *app, _ []string) error {
	return settle[[]models.Challenge](ctx, a, a.store.FetchRecommendedChallenges(ctx), func(state store.RootState) any {
		return store.SelectRecommendedChallenges(state)
	}, store.SelectChallengeError)
}

func submissionsView(state store.RootState) any { return state.Submissions }

func cmdSubmissions(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("submissions", flag.ContinueOnError)
	challenge := fs.String("challenge", "", "challenge id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return settle[[]models.Submission](ctx, a, a.store.FetchUserSubmissions(ctx, *challenge), func(state store.RootState) any {
		return store.SelectUserSubmissions(state)
	}, store.SelectSubmissionError)
}

func currentSubmissionView(state store.RootState) any { return store.SelectCurrentSubmission(state) }

func cmdSubmission(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 1)
	if err != nil {
		return err
	}
	return settle[models.SubmissionWithEvaluation](ctx, a, a.store.FetchSubmissionByID(ctx, args[0]), currentSubmissionView, store.SelectSubmissionError)
}

type artefactFlags struct {
	repo, deck, video, description *string
}

func bindArtefacts(fs *flag.FlagSet) artefactFlags {
	return artefactFlags{
		repo:        fs.String("repo", "", "repository url"),
		deck:        fs.String("deck", "", "deck url"),
		video:       fs.String("video", "", "video url"),
		description: fs.String("description", "", "description"),
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func cmdSubmit(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	challenge := fs.String("challenge", "", "challenge id")
	artefacts := bindArtefacts(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := dto.SubmissionCreateRequest{
		ChallengeID: *challenge,
		RepoURL:     *artefacts.repo,
		DeckURL:     optional(*artefacts.deck),
		VideoURL:    optional(*artefacts.video),
		Description: *artefacts.description,
	}
	return settle[models.Submission](ctx, a, a.store.CreateSubmission(ctx, payload), submissionsView, store.SelectSubmissionError)
}

func cmdResubmit(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 1)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("resubmit", flag.ContinueOnError)
	artefacts := bindArtefacts(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	payload := dto.SubmissionUpdateRequest{
		RepoURL:     optional(*artefacts.repo),
		DeckURL:     optional(*artefacts.deck),
		VideoURL:    optional(*artefacts.video),
		Description: optional(*artefacts.description),
	}
	return settle[models.Submission](ctx, a, a.store.UpdateSubmission(ctx, args[0], payload), submissionsView, store.SelectSubmissionError)
}

func cmdEvaluate(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 1)
	if err != nil {
		return err
	}
	return settle[models.SubmissionWithEvaluation](ctx, a, a.store.EvaluateSubmission(ctx, args[0]), currentSubmissionView, store.SelectSubmissionError)
}

func notificationsView(state store.RootState) any { return state.Notifications }

func cmdNotifications(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	unread := fs.Bool("unread", false, "only unread notifications")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return settle[[]models.Notification](ctx, a, a.store.FetchNotifications(ctx, *unread), notificationsView, store.SelectNotificationError)
}

func cmdUnread(ctx context.Context, a *app, _ []string) error {
	return settle[int](ctx, a, a.store.FetchUnreadCount(ctx), func(state store.RootState) any {
		return map[string]int{"unread_count": store.SelectUnreadCount(state)}
	}, store.SelectNotificationError)
}

func cmdRead(ctx context.Context, a *app, args []string) error {
	args, err := positional(args, 1)
	if err != nil {
		return err
	}
	if _, err := a.store.FetchNotifications(ctx, false).Wait(ctx); err != nil {
		a.logger.Debug().Err(err).Msg("could not preload notifications")
	}
	return settle[models.Notification](ctx, a, a.store.MarkNotificationAsRead(ctx, args[0]), notificationsView, store.SelectNotificationError)
}

func cmdReadAll(ctx context.Context, a *app, _ []string) error {
	if _, err := a.store.FetchNotifications(ctx, false).Wait(ctx); err != nil {
		a.logger.Debug().Err(err).Msg("could not preload notifications")
	}
	return settle[struct{}](ctx, a, a.store.MarkAllNotificationsAsRead(ctx), notificationsView, store.SelectNotificationError)
}

// cmdWatch prints pushed notifications until interrupted.
func cmdWatch(ctx context.Context, a *app, _ []string) error {
	if !a.cfg.PushEnabled() {
		return errors.New("no push source configured; set ELITE_PUSH_REDIS_CHANNEL, ELITE_PUSH_NATS_SUBJECT or ELITE_PUSH_WEBSOCKET_URL")
	}

	sources, err := a.pushSources(ctx)
	if err != nil {
		return err
	}

	unsubscribe := a.store.Subscribe(func(state store.RootState, action store.Action) {
		if action.Type != store.ActionNotificationsAdd {
			return
		}
		_ = printJSON(a.out, map[string]any{
			"notification": action.Payload,
			"unread_count": store.SelectUnreadCount(state),
		})
	})
	defer unsubscribe()

	listener := push.NewListener(a.store, a.logger, sources...)
	listener.Start(ctx)
	<-ctx.Done()
	listener.Wait()
	return nil
}

func cmdDarkMode(_ context.Context, a *app, args []string) error {
	mode := "toggle"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}

	switch mode {
	case "on", "true":
		a.store.SetDarkMode(true)
	case "off", "false":
		a.store.SetDarkMode(false)
	case "toggle":
		a.store.ToggleDarkMode()
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return printJSON(a.out, a.store.GetState().UI)
}
