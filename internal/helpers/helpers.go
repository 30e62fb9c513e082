package helpers

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pkg/errors"
)

// GetUsername - логин администратора из claims JWT токена запроса
func GetUsername(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", errors.Wrap(err, "no token in request context")
	}
	login, ok := claims["username"].(string)
	if !ok || login == "" {
		return "", errors.New("undefined username")
	}
	return login, nil
}
