package board

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/contextutil"
	"github.com/fatali-fataliyev/lesson_board/internal/dataset"
	"github.com/fatali-fataliyev/lesson_board/internal/imagefx"
	"github.com/fatali-fataliyev/lesson_board/internal/lessons"
	"github.com/fatali-fataliyev/lesson_board/internal/render"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/internal/upload"
	"github.com/fatali-fataliyev/lesson_board/logging"
)

type Storage interface {
	SaveSession(ctx context.Context, s session.Session) error
	GetSessionByToken(ctx context.Context, token string) (session.Session, error)
	UpdateSession(ctx context.Context, token string, fn func(s *session.Session) error) error
	DeleteSession(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context, now time.Time) int
	GetStorageType() string
}

// Board runs the lessons on behalf of sessions held in a Storage.
type Board struct {
	storage     Storage
	StorageType string
	ttl         time.Duration
	maxUpload   int64
	now         func() time.Time
	newRand     func() *rand.Rand
	cache       *lessons.Cache
}

type Option func(*Board)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithRand replaces the random source handed to every event.
func WithRand(newRand func() *rand.Rand) Option {
	return func(b *Board) { b.newRand = newRand }
}

func NewBoard(s Storage, ttl time.Duration, maxUpload int64, opts ...Option) Board {
	b := Board{
		storage:     s,
		StorageType: s.GetStorageType(),
		ttl:         ttl,
		maxUpload:   maxUpload,
		now:         func() time.Time { return time.Now().UTC() },
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		cache: lessons.NewCache(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Board) env() lessons.Env {
	return lessons.Env{Now: b.now(), Rand: b.newRand(), Cache: b.cache}
}

func (b *Board) CreateSession(ctx context.Context) (session.Session, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	s, err := session.New(b.now(), b.ttl)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to create session in CreateSession() function | Error: %v", traceID, err)
		return session.Session{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to start a session, please try again later.",
		}
	}
	if err := b.storage.SaveSession(ctx, s); err != nil {
		return session.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | session %s started", traceID, s.ID)
	return s, nil
}

// CheckSession returns the live session of token. Expired sessions are
// purged and rejected; a session close to expiry is extended by a full ttl.
func (b *Board) CheckSession(ctx context.Context, token string) (session.Session, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	s, err := b.storage.GetSessionByToken(ctx, token)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	now := b.now()
	if s.Expired(now) {
		b.storage.PurgeExpired(ctx, now)
		return session.Session{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Session expired, please start a new session.",
		}
	}

	if s.NeedsRenewal(now, b.ttl) {
		newExpireAt := now.Add(b.ttl)
		err := b.storage.UpdateSession(ctx, token, func(s *session.Session) error {
			s.ExpireAt = newExpireAt
			return nil
		})
		if err != nil {
			return session.Session{}, fmt.Errorf("failed to update session: %w", err)
		}
		logging.Logger.Debugf("[TraceID=%s] | session %s renewed until %s", traceID, s.ID, newExpireAt.Format(time.RFC3339))
		s.ExpireAt = newExpireAt
	}
	return s, nil
}

func (b *Board) EndSession(ctx context.Context, token string) error {
	if _, err := b.CheckSession(ctx, token); err != nil {
		return err
	}
	if err := b.storage.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (b *Board) Lessons() []lessons.Summary {
	return lessons.List()
}

func (b *Board) Render(ctx context.Context, token string, lesson string) (render.Page, error) {
	id, err := lessons.Parse(lesson)
	if err != nil {
		return render.Page{}, err
	}
	s, err := b.CheckSession(ctx, token)
	if err != nil {
		return render.Page{}, err
	}
	return lessons.Render(b.env(), s.State, id)
}

// Dispatch applies one event to the session's state and renders the lesson
// again. Invalid input leaves the state untouched and comes back as an error
// message in the page feedback.
func (b *Board) Dispatch(ctx context.Context, token string, lesson string, ev lessons.Event) (render.Page, error) {
	id, err := lessons.Parse(lesson)
	if err != nil {
		return render.Page{}, err
	}
	if _, err := b.CheckSession(ctx, token); err != nil {
		return render.Page{}, err
	}

	env := b.env()
	return b.apply(ctx, token, env, id, "Dispatch", func(st *session.State) ([]render.Block, error) {
		return lessons.Handle(env, st, id, ev)
	})
}

// Upload parses a file and hands it to the upload slot of a lesson.
func (b *Board) Upload(ctx context.Context, token string, lesson string, slot string, fileName string, data []byte) (render.Page, error) {
	id, err := lessons.Parse(lesson)
	if err != nil {
		return render.Page{}, err
	}
	if _, err := b.CheckSession(ctx, token); err != nil {
		return render.Page{}, err
	}

	env := b.env()
	return b.apply(ctx, token, env, id, "Upload", func(st *session.State) ([]render.Block, error) {
		parsedSlot, err := upload.ParseSlot(slot)
		if err != nil {
			return nil, err
		}
		res, err := upload.Parse(fileName, data, b.maxUpload)
		if err != nil {
			return nil, err
		}
		return lessons.Upload(st, id, parsedSlot, res)
	})
}

func (b *Board) apply(ctx context.Context, token string, env lessons.Env, id lessons.ID, caller string, fn func(st *session.State) ([]render.Block, error)) (render.Page, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var page render.Page
	err := b.storage.UpdateSession(ctx, token, func(s *session.Session) error {
		feedback, err := fn(&s.State)
		if err != nil {
			return err
		}
		page, err = lessons.Render(env, s.State, id)
		if err != nil {
			return err
		}
		page.Feedback = feedback
		return nil
	})
	if err == nil {
		return page, nil
	}

	var appErr appErrors.ErrorResponse
	if !errors.As(err, &appErr) || appErr.Code != appErrors.ErrInvalidInput {
		logging.Logger.Errorf("[TraceID=%s] | failed to apply %s in %s() function | Error: %v", traceID, id, caller, err)
		return render.Page{}, err
	}

	s, getErr := b.storage.GetSessionByToken(ctx, token)
	if getErr != nil {
		return render.Page{}, fmt.Errorf("failed to get session by token: %w", getErr)
	}
	page, renderErr := lessons.Render(env, s.State, id)
	if renderErr != nil {
		return render.Page{}, renderErr
	}
	page.Feedback = []render.Block{render.Error(appErr.Message)}
	return page, nil
}

// Export encodes a data set of the session in the requested format.
func (b *Board) Export(ctx context.Context, token string, name string, format string) (data []byte, fileName string, mime string, err error) {
	export, err := lessons.ParseExport(name)
	if err != nil {
		return nil, "", "", err
	}
	f, err := dataset.ParseFormat(format)
	if err != nil {
		return nil, "", "", err
	}
	s, err := b.CheckSession(ctx, token)
	if err != nil {
		return nil, "", "", err
	}

	table, base, err := lessons.ExportTable(b.env(), s.State, export)
	if err != nil {
		return nil, "", "", err
	}
	data, err = table.Bytes(f)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to encode %s as %s in Export() function | Error: %v", contextutil.TraceIDFromContext(ctx), export, f, err)
		return nil, "", "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to export data, please try again later.",
		}
	}
	return data, f.FileName(base), f.MIME(), nil
}

// ProcessImage applies opts to an uploaded image and returns it as PNG. The
// session only authorises the call; nothing is stored.
func (b *Board) ProcessImage(ctx context.Context, token string, data []byte, opts imagefx.Options) ([]byte, error) {
	if _, err := b.CheckSession(ctx, token); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, appErrors.InvalidInput("image is empty")
	}
	if b.maxUpload > 0 && int64(len(data)) > b.maxUpload {
		return nil, appErrors.InvalidInput("image is larger than %d MB", b.maxUpload>>20)
	}

	img, _, err := imagefx.Decode(data)
	if err != nil {
		return nil, err
	}
	out, err := imagefx.Process(img, opts)
	if err != nil {
		return nil, err
	}
	png, err := imagefx.PNGBytes(out)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to encode image in ProcessImage() function | Error: %v", contextutil.TraceIDFromContext(ctx), err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to process image, please try again later.",
		}
	}
	return png, nil
}
