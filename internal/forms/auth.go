package forms

import (
	"context"

	"chatterly/internal/api"
	"chatterly/internal/core"
)

type LoginDraft struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginForm struct {
	Draft LoginDraft

	auth     core.AuthAPI
	sessions core.SessionStore
}

func NewLoginForm(auth core.AuthAPI, sessions core.SessionStore) *LoginForm {
	return &LoginForm{auth: auth, sessions: sessions}
}

// Submit logs in and persists the token. The token is stored only after a
// successful login; an existing session skips the call entirely.
func (f *LoginForm) Submit(ctx context.Context) Outcome {
	if next, err := redirectIfLoggedIn(ctx, f.sessions); err != nil || next != RouteNone {
		return loggedIn(next, err)
	}

	if err := check(f.Draft); err != nil {
		return invalid(err)
	}

	session, err := f.auth.Login(ctx, f.Draft.Email, f.Draft.Password)
	if err != nil {
		return Outcome{Message: Failure(api.MessageOf(err, "Login failed"))}
	}
	if session.Token == "" {
		return Outcome{Message: Failure("Login failed")}
	}

	if err := f.sessions.SetToken(ctx, session.Token); err != nil {
		return Outcome{Message: Failure("Failed to save session: " + err.Error())}
	}

	return Outcome{Message: Success("Logged in"), Next: RouteFeed}
}

type SignupDraft struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Bio      string
}

type SignupForm struct {
	Draft SignupDraft

	auth     core.AuthAPI
	sessions core.SessionStore
}

func NewSignupForm(auth core.AuthAPI, sessions core.SessionStore) *SignupForm {
	return &SignupForm{auth: auth, sessions: sessions}
}

// Submit registers the account. It does not log in, the next stop is the
// login form.
func (f *SignupForm) Submit(ctx context.Context) Outcome {
	if next, err := redirectIfLoggedIn(ctx, f.sessions); err != nil || next != RouteNone {
		return loggedIn(next, err)
	}

	if err := check(f.Draft); err != nil {
		return invalid(err)
	}

	err := f.auth.Signup(ctx, f.Draft.Username, f.Draft.Email, f.Draft.Password, f.Draft.Bio)
	if err != nil {
		return Outcome{Message: Failure(api.MessageOf(err, "Signup failed"))}
	}

	return Outcome{Message: Success("Account created, please log in"), Next: RouteLogin}
}

func Logout(ctx context.Context, sessions core.SessionStore) Outcome {
	if err := sessions.Clear(ctx); err != nil {
		return Outcome{Message: Failure("Failed to log out: " + err.Error())}
	}
	return Outcome{Message: Info("Logged out"), Next: RouteLogin}
}

func redirectIfLoggedIn(ctx context.Context, sessions core.SessionStore) (Route, error) {
	token, err := sessions.Token(ctx)
	if err != nil {
		return RouteNone, err
	}
	if token != "" {
		return RouteFeed, nil
	}
	return RouteNone, nil
}

func loggedIn(next Route, err error) Outcome {
	if err != nil {
		return Outcome{Message: Failure("Failed to read session: " + err.Error())}
	}
	return Outcome{Message: Info("Already logged in"), Next: next}
}
