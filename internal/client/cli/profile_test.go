package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

func TestProfile(t *testing.T) {
	a := newTestApp(t, regularUser())
	a.users.ProfileFn = func() (*models.Identity, error) {
		return &models.Identity{ID: "42", Name: "Ana", Phone: "+54 11 5555", Document: "30111222"}, nil
	}

	require.NoError(t, a.Execute(context.Background(), "profile", nil))
	assert.Contains(t, a.out.String(), "+54 11 5555")
	assert.Contains(t, a.out.String(), "30111222")
}

func TestEditProfile_FullFlow(t *testing.T) {
	a := newTestApp(t, regularUser(),
		"tok-edit",
		"", "ana.p", "+54 11 5555", "", "30111222",
		"",
	)
	a.users.RequestEditFn = func() (string, error) { return "Token enviado", nil }
	var got forms.Profile
	a.users.ConfirmEditFn = func(f forms.Profile) (*models.Identity, error) {
		got = f
		return &models.Identity{ID: "42", Name: f.Name, Username: f.Username}, nil
	}

	require.NoError(t, a.Execute(context.Background(), "edit-profile", nil))

	assert.Equal(t, []string{"RequestEdit", "ProvideEditToken", "ConfirmEdit"}, a.users.calls)
	assert.Equal(t, "tok-edit", a.users.editToken)
	assert.Equal(t, forms.Profile{Name: "Ana", Username: "ana.p", Phone: "+54 11 5555", Document: "30111222"}, got)

	out := a.out.String()
	assert.Contains(t, out, "[ok] Confirmation requested")
	assert.Contains(t, out, "Token enviado")
	assert.Contains(t, out, "[ok] Profile updated")
}

func TestEditProfile_ReusesRequestedToken(t *testing.T) {
	a := newTestApp(t, regularUser(), "", "", "", "", "", "", "y")
	a.users.editState = workflow.StateTokenRequested
	a.users.editToken = "held"
	a.users.ConfirmEditFn = func(forms.Profile) (*models.Identity, error) {
		return &models.Identity{ID: "42"}, nil
	}

	require.NoError(t, a.Execute(context.Background(), "edit-profile", nil))
	assert.Equal(t, []string{"ProvideEditToken", "ConfirmEdit"}, a.users.calls)
	assert.Equal(t, "held", a.users.editToken)
}

func TestEditProfile_CancelAtToken(t *testing.T) {
	a := newTestApp(t, regularUser(), "cancel")
	a.users.RequestEditFn = func() (string, error) { return "", nil }

	require.NoError(t, a.Execute(context.Background(), "edit-profile", nil))
	assert.Equal(t, []string{"RequestEdit", "CancelEdit"}, a.users.calls)
	assert.Equal(t, workflow.StateAbandoned, a.users.editState)
	assert.Contains(t, a.out.String(), "Profile edit cancelled.")
}

func TestEditProfile_DeclineApply(t *testing.T) {
	a := newTestApp(t, regularUser(), "tok", "", "", "", "", "", "n")
	a.users.RequestEditFn = func() (string, error) { return "", nil }

	require.NoError(t, a.Execute(context.Background(), "edit-profile", nil))
	assert.Equal(t, []string{"RequestEdit", "ProvideEditToken", "CancelEdit"}, a.users.calls)
}

func TestEditProfile_ConfirmFailureKeepsToken(t *testing.T) {
	a := newTestApp(t, regularUser(), "tok", "", "", "", "", "", "")
	a.users.RequestEditFn = func() (string, error) { return "", nil }
	a.users.ConfirmEditFn = func(forms.Profile) (*models.Identity, error) {
		return nil, &client.APIError{StatusCode: 400, Message: "Token inválido"}
	}

	err := a.Execute(context.Background(), "edit-profile", nil)
	require.Error(t, err)
	assert.Contains(t, a.out.String(), "[error] Token inválido")
	assert.Equal(t, workflow.StateTokenRequested, a.users.editState)
}

func TestDeleteAccount(t *testing.T) {
	a := newTestApp(t, regularUser(), "y", "tok-del")
	a.users.RequestDeleteFn = func() (string, error) { return "Token enviado", nil }
	a.users.ConfirmDeleteFn = func() (string, error) { return "Cuenta eliminada", nil }

	require.NoError(t, a.Execute(context.Background(), "delete-account", nil))
	assert.Equal(t, []string{"RequestDelete", "ProvideDeleteToken", "ConfirmDelete"}, a.users.calls)
	assert.Equal(t, "tok-del", a.users.deleteToken)
	assert.Contains(t, a.out.String(), "[ok] Account deleted")
	assert.Contains(t, a.out.String(), "You have been signed out.")
}

func TestDeleteAccount_DeclinedUpFront(t *testing.T) {
	a := newTestApp(t, regularUser(), "")

	require.NoError(t, a.Execute(context.Background(), "delete-account", nil))
	assert.Empty(t, a.users.calls)
	assert.Contains(t, a.out.String(), "Account deletion cancelled.")
}

func TestDeleteAccount_CancelAtToken(t *testing.T) {
	a := newTestApp(t, regularUser(), "yes", "cancel")
	a.users.RequestDeleteFn = func() (string, error) { return "", nil }

	require.NoError(t, a.Execute(context.Background(), "delete-account", nil))
	assert.Equal(t, []string{"RequestDelete", "CancelDelete"}, a.users.calls)
	assert.Equal(t, workflow.StateAbandoned, a.users.deleteState)
}

func TestDeleteAccount_MissingToken(t *testing.T) {
	a := newTestApp(t, regularUser(), "y", "")
	a.users.RequestDeleteFn = func() (string, error) { return "", nil }
	a.users.ConfirmDeleteFn = func() (string, error) { return "", workflow.ErrTokenMissing }

	err := a.Execute(context.Background(), "delete-account", nil)
	require.ErrorIs(t, err, workflow.ErrTokenMissing)
	assert.Contains(t, a.out.String(), "[error] No confirmation token yet")
}
