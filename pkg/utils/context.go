package utils

import (
	"context"

	"ticket-service/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionKey contextKey = "session"
	TokenKey   contextKey = "token"
)

// SetSessionContext menyimpan session yang sudah di-resolve ke context request
func SetSessionContext(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return session.UserID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return string(session.Role), true
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
