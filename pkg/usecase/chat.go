package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/central-square/centralsquare/pkg/domain/interfaces"
	"github.com/central-square/centralsquare/pkg/domain/model"
	"github.com/central-square/centralsquare/pkg/domain/types"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/central-square/centralsquare/pkg/utils/errutil"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// learnThreshold is the minimum transcript length, counting both speakers,
// before the learning pass runs after a chat turn.
const learnThreshold = 4

// ChatUseCase handles one conversation turn between a user and their AI
// host: persist the user turn, generate a reply, persist it, and learn
// from the transcript once it is long enough.
type ChatUseCase struct {
	repo      interfaces.Repository
	responder *aihost.Responder
	extractor *aihost.Extractor

	mu        sync.Mutex
	hostLocks map[types.HostID]*sync.Mutex
}

// NewChatUseCase creates a new ChatUseCase instance
func NewChatUseCase(repo interfaces.Repository, responder *aihost.Responder, extractor *aihost.Extractor) *ChatUseCase {
	return &ChatUseCase{
		repo:      repo,
		responder: responder,
		extractor: extractor,
		hostLocks: make(map[types.HostID]*sync.Mutex),
	}
}

// hostLock returns the mutex serializing message handling for one host.
// Concurrent messages for the same host would otherwise interleave their
// turn appends and produce an inconsistent transcript.
func (uc *ChatUseCase) hostLock(hostID types.HostID) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lock, exists := uc.hostLocks[hostID]
	if !exists {
		lock = &sync.Mutex{}
		uc.hostLocks[hostID] = lock
	}
	return lock
}

// ensureHost returns the user's AI host, creating it on first contact
func (uc *ChatUseCase) ensureHost(ctx context.Context, userID types.UserID) (*model.AIHost, error) {
	host, err := uc.repo.Host().GetByUserID(ctx, userID)
	if err == nil {
		return host, nil
	}

	host, err = uc.repo.Host().Create(ctx, model.NewAIHost(userID))
	if err != nil {
		// Lost a creation race: the host exists now, fetch it
		if existing, getErr := uc.repo.Host().GetByUserID(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, goerr.Wrap(err, "failed to create AI host", goerr.V("userID", userID))
	}
	return host, nil
}

// HandleMessage processes one inbound chat message and returns the
// assistant reply. Only persistence failures surface as errors; generation
// always succeeds via the deterministic fallback.
func (uc *ChatUseCase) HandleMessage(ctx context.Context, userID types.UserID, message string) (string, types.HostID, error) {
	if strings.TrimSpace(message) == "" {
		return "", "", goerr.New("message must not be empty")
	}

	user, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		return "", "", goerr.Wrap(ErrUserNotFound, "user not found", goerr.V("userID", userID))
	}

	host, err := uc.ensureHost(ctx, userID)
	if err != nil {
		return "", "", err
	}

	lock := uc.hostLock(host.ID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := uc.repo.Conversation().AppendTurn(ctx, host.ID, &model.DialogueTurn{
		HostID:  host.ID,
		Speaker: types.SpeakerUser,
		Text:    message,
	}); err != nil {
		return "", "", goerr.Wrap(err, "failed to append user turn", goerr.V("hostID", host.ID))
	}

	history, err := uc.repo.Conversation().ListTurns(ctx, host.ID)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to load conversation history", goerr.V("hostID", host.ID))
	}

	profile := aihost.Profile{
		Name: user.DisplayName,
		Bio:  user.Bio,
	}
	if stored, err := uc.repo.Preference().Get(ctx, userID); err == nil {
		profile.Interests = stored.Interests
	}

	reply := uc.responder.Generate(ctx, history, profile)

	assistantTurn, err := uc.repo.Conversation().AppendTurn(ctx, host.ID, &model.DialogueTurn{
		HostID:  host.ID,
		Speaker: types.SpeakerAssistant,
		Text:    reply,
	})
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to append assistant turn", goerr.V("hostID", host.ID))
	}
	history = append(history, assistantTurn)

	if len(history) >= learnThreshold {
		uc.learn(ctx, userID, history)
	}

	return reply, host.ID, nil
}

// learn runs the extraction pass and overwrites the stored profile when
// the extraction carries signal. Failures here are logged and swallowed:
// the chat reply has already been produced and must not be affected.
func (uc *ChatUseCase) learn(ctx context.Context, userID types.UserID, history []*model.DialogueTurn) {
	extraction := uc.extractor.Extract(ctx, history)
	if !extraction.HasSignal() {
		logging.From(ctx).Debug("extraction produced no signal, keeping stored profile",
			"userID", userID,
			"turns", len(history),
		)
		return
	}

	if _, err := uc.repo.Preference().Upsert(ctx, &model.PreferenceProfile{
		UserID:    userID,
		Interests: extraction.Interests,
		Values:    extraction.Values,
		Goals:     extraction.Goals,
		Dislikes:  extraction.Dislikes,
	}); err != nil {
		errutil.Handle(ctx, err, "failed to store preference profile")
	}
}

// History returns the user's host and full transcript, creating the host
// on first access so the client always has a host ID to address.
func (uc *ChatUseCase) History(ctx context.Context, userID types.UserID) (*model.AIHost, []*model.DialogueTurn, error) {
	if _, err := uc.repo.User().Get(ctx, userID); err != nil {
		return nil, nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V("userID", userID))
	}

	host, err := uc.ensureHost(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	turns, err := uc.repo.Conversation().ListTurns(ctx, host.ID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load conversation history", goerr.V("hostID", host.ID))
	}

	return host, turns, nil
}
