package models

import "github.com/dmitrijs2005/inmobix/internal/common"

// Identity is the user profile and role as known to the client. The token
// fields are only populated on the responses that issue them.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Document  string `json:"documento,omitempty"`
	Role      string `json:"role,omitempty"`

	Token              string `json:"token,omitempty"`
	VerificationToken  string `json:"verificationToken,omitempty"`
	ResetPasswordToken string `json:"resetPasswordToken,omitempty"`
	Message            string `json:"message,omitempty"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == common.RoleAdmin
}

// Clone returns a copy of i, or nil.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Public strips the one-shot tokens and message, leaving what is worth
// persisting as the session identity.
func (i Identity) Public() Identity {
	i.VerificationToken = ""
	i.ResetPasswordToken = ""
	i.Message = ""
	return i
}

// UserRequest registers a new account.
type UserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Document  string `json:"documento,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse accepts both login payload shapes the backend has used:
// the identity inline with a token, or {token, user:{...}}.
type LoginResponse struct {
	Identity
	User *Identity `json:"user,omitempty"`
}

// Resolve returns the authenticated identity with its bearer token.
func (r LoginResponse) Resolve() Identity {
	if r.User == nil {
		return r.Identity
	}
	id := *r.User
	if id.Token == "" {
		id.Token = r.Token
	}
	return id
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	VerificationToken string `json:"verificationToken"`
	Code              string `json:"code"`
}

type ResetPasswordRequest struct {
	ResetPasswordToken string `json:"resetPasswordToken"`
	Code               string `json:"code"`
	NewPassword        string `json:"newPassword"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// UserUpdateRequest carries the profile fields to change; empty fields are
// left out of the payload.
type UserUpdateRequest struct {
	Name      string `json:"name,omitempty"`
	Username  string `json:"username,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Document  string `json:"documento,omitempty"`
}

// Identity returns the submitted changes as a partial identity, for when
// the backend acknowledges an update without echoing the profile.
func (r UserUpdateRequest) Identity() Identity {
	return Identity{
		Name:      r.Name,
		Username:  r.Username,
		Phone:     r.Phone,
		BirthDate: r.BirthDate,
		Document:  r.Document,
	}
}

// Merge applies a refreshed profile on top of i. A field the update leaves
// blank keeps its current value; the one-shot tokens and message are
// dropped.
func (i Identity) Merge(update Identity) Identity {
	out := i.Public()
	u := update.Public()
	keep(&out.ID, u.ID)
	keep(&out.Name, u.Name)
	keep(&out.Email, u.Email)
	keep(&out.Username, u.Username)
	keep(&out.Phone, u.Phone)
	keep(&out.BirthDate, u.BirthDate)
	keep(&out.Document, u.Document)
	keep(&out.Role, u.Role)
	keep(&out.Token, u.Token)
	return out
}

func keep(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
