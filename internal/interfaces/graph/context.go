package graph

import "context"

type ctxKey int

const (
	viewerKey ctxKey = iota
	sessionKey
)

// SessionWriter lo implementa la capa HTTP: traduce a Set-Cookie al terminar la petición.
type SessionWriter interface {
	SetSession(token string)
	ClearSession()
}

// WithViewer guarda el ID del usuario autenticado ("" = anónimo).
func WithViewer(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerKey, userID)
}

// ViewerID devuelve el usuario de la petición o "".
func ViewerID(ctx context.Context) string {
	id, _ := ctx.Value(viewerKey).(string)
	return id
}

// WithSession adjunta el writer de la cookie de sesión.
func WithSession(ctx context.Context, w SessionWriter) context.Context {
	return context.WithValue(ctx, sessionKey, w)
}

func session(ctx context.Context) SessionWriter {
	if w, ok := ctx.Value(sessionKey).(SessionWriter); ok {
		return w
	}
	return noopSession{}
}

type noopSession struct{}

func (noopSession) SetSession(string) {}
func (noopSession) ClearSession()     {}
