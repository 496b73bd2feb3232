package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/credstore"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/events"
)

// Session is the portal's derived belief about who is using it. The zero
// value is unauthenticated; an authenticated session is only constructed from
// a credential that decoded and has a strictly-future expiry.
type Session struct {
	Authenticated bool
	SubjectID     string
	Role          domain.Role
}

// IsEgresado reports an authenticated graduate session.
func (s Session) IsEgresado() bool {
	return s.Authenticated && s.Role == domain.RoleEgresado
}

// IsEmpresa reports an authenticated company session.
func (s Session) IsEmpresa() bool {
	return s.Authenticated && s.Role == domain.RoleEmpresa
}

// HasRole reports whether the session's role is in the given set.
func (s Session) HasRole(roles ...domain.Role) bool {
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

// Resolver recomputes the current session from the credential store on every
// call. Nothing is cached across calls: the store can be cleared between two
// navigations, and a credential valid at decode time may be expired by the
// time an action occurs.
type Resolver struct {
	store      credstore.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewResolver builds a resolver over the given store.
func NewResolver(store credstore.Store, dispatcher events.Dispatcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Resolve returns the current session. Side effect: a credential that fails
// decode or is expired is cleared from the store (lazy logout) and a
// session_ended event is published. With a valid credential the call mutates
// nothing and is idempotent.
func (r *Resolver) Resolve(ctx context.Context) Session {
	token, err := r.store.Get(ctx)
	if err != nil {
		// A store read failure is transport trouble, not proof the
		// credential is bad: stay unauthenticated for this request but
		// leave the slot alone.
		r.logger.Warn("credential store read failed", zap.Error(err))
		return Session{}
	}
	if token == "" {
		return Session{}
	}

	claims, err := DecodeToken(token)
	if err != nil {
		r.discard(ctx, "", events.ReasonInvalid)
		return Session{}
	}
	if !claims.ExpiresAt.After(r.now()) {
		r.discard(ctx, claims.SubjectID, events.ReasonExpired)
		return Session{}
	}

	return Session{Authenticated: true, SubjectID: claims.SubjectID, Role: claims.Role}
}

// StartSession decodes and stores a freshly issued credential, publishing
// session_started. The credential is rejected up front when it would not
// yield an authenticated session.
func (r *Resolver) StartSession(ctx context.Context, token string) (Session, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		return Session{}, err
	}
	if !claims.ExpiresAt.After(r.now()) {
		return Session{}, ErrMissingClaims
	}
	if err := r.store.Set(ctx, token); err != nil {
		return Session{}, err
	}
	_ = r.dispatcher.Publish(ctx, events.NewSessionStarted(claims.SubjectID, claims.Role))
	return Session{Authenticated: true, SubjectID: claims.SubjectID, Role: claims.Role}, nil
}

// EndSession clears the credential slot and publishes session_ended. Used for
// explicit logout and for backend 401/403 rejections.
func (r *Resolver) EndSession(ctx context.Context, reason events.EndReason) error {
	subjectID := ""
	if token, err := r.store.Get(ctx); err == nil && token != "" {
		if claims, err := DecodeToken(token); err == nil {
			subjectID = claims.SubjectID
		}
	}
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	_ = r.dispatcher.Publish(ctx, events.NewSessionEnded(subjectID, reason))
	return nil
}

func (r *Resolver) discard(ctx context.Context, subjectID string, reason events.EndReason) {
	if err := r.store.Clear(ctx); err != nil {
		r.logger.Warn("failed to clear invalid credential", zap.Error(err))
		return
	}
	r.logger.Info("discarded stored credential", zap.String("reason", string(reason)))
	_ = r.dispatcher.Publish(ctx, events.NewSessionEnded(subjectID, reason))
}
