package forms

import (
	"context"

	"chatterly/internal/api"
	"chatterly/internal/core"
)

type ProfileDraft struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Bio      string
}

type ProfileForm struct {
	Draft ProfileDraft

	users core.UserAPI
}

func NewProfileForm(users core.UserAPI) *ProfileForm {
	return &ProfileForm{users: users}
}

// Load fills the draft with the current profile.
func (f *ProfileForm) Load(ctx context.Context) Message {
	user, err := f.users.GetUser(ctx)
	if err != nil {
		return Failure("Failed to load user")
	}

	f.fill(user)
	return Message{}
}

// Save submits the whole draft and replaces it with what the backend stored.
func (f *ProfileForm) Save(ctx context.Context) Outcome {
	if err := check(f.Draft); err != nil {
		return invalid(err)
	}

	user, err := f.users.UpdateUser(ctx, core.User{
		Username: f.Draft.Username,
		Email:    f.Draft.Email,
		Bio:      f.Draft.Bio,
	})
	if err != nil {
		return Outcome{Message: Failure(api.MessageOf(err, "Failed to update profile"))}
	}

	f.fill(user)
	return Outcome{Message: Success("Profile updated successfully!")}
}

func (f *ProfileForm) fill(user *core.User) {
	f.Draft = ProfileDraft{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
	}
}

// User is the profile as currently drafted.
func (f *ProfileForm) User() *core.User {
	return &core.User{
		Username: f.Draft.Username,
		Email:    f.Draft.Email,
		Bio:      f.Draft.Bio,
	}
}
