package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/services"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

type fakeSession struct {
	id      *models.Identity
	pending string
	expiry  time.Time
}

func (s *fakeSession) Identity() *models.Identity { return s.id.Clone() }
func (s *fakeSession) IsAuthenticated() bool     { return s.id != nil && s.id.ID != "" }
func (s *fakeSession) IsAdmin() bool             { return s.id.IsAdmin() }
func (s *fakeSession) PendingEmail() string      { return s.pending }
func (s *fakeSession) TokenExpiry() (time.Time, bool) {
	return s.expiry, !s.expiry.IsZero()
}

func anonymous() *fakeSession { return &fakeSession{} }

func regularUser() *fakeSession {
	return &fakeSession{id: &models.Identity{ID: "42", Name: "Ana", Username: "ana", Email: "ana@example.com", Role: "USER"}}
}

func admin() *fakeSession {
	return &fakeSession{id: &models.Identity{ID: "1", Name: "Root", Username: "root", Email: "root@example.com", Role: "ADMIN"}}
}

// The fakes embed the service interfaces; calling a method a test did not
// stub panics on the nil embedded value.

type fakeAuth struct {
	services.AuthService
	calls []string

	LoginFn    func(forms.Login) (*models.Identity, error)
	RegisterFn func(forms.Register) (*models.Identity, error)
	VerifyFn   func(forms.Verify) (string, error)
	ResendFn   func(string) (string, error)
	ForgotFn   func(forms.ForgotPassword) (string, error)
	ResetFn    func(forms.ResetPassword) (string, error)
	LogoutFn   func() error
}

func (f *fakeAuth) Login(_ context.Context, form forms.Login) (*models.Identity, error) {
	f.calls = append(f.calls, "Login")
	return f.LoginFn(form)
}

func (f *fakeAuth) Register(_ context.Context, form forms.Register) (*models.Identity, error) {
	f.calls = append(f.calls, "Register")
	return f.RegisterFn(form)
}

func (f *fakeAuth) VerifyEmail(_ context.Context, form forms.Verify) (string, error) {
	f.calls = append(f.calls, "VerifyEmail")
	return f.VerifyFn(form)
}

func (f *fakeAuth) ResendVerification(_ context.Context, email string) (string, error) {
	f.calls = append(f.calls, "ResendVerification")
	return f.ResendFn(email)
}

func (f *fakeAuth) ForgotPassword(_ context.Context, form forms.ForgotPassword) (string, error) {
	f.calls = append(f.calls, "ForgotPassword")
	return f.ForgotFn(form)
}

func (f *fakeAuth) ResetPassword(_ context.Context, form forms.ResetPassword) (string, error) {
	f.calls = append(f.calls, "ResetPassword")
	return f.ResetFn(form)
}

func (f *fakeAuth) Logout(context.Context) error {
	f.calls = append(f.calls, "Logout")
	return f.LogoutFn()
}

type fakeUsers struct {
	services.UserService
	calls []string

	editState   workflow.State
	deleteState workflow.State
	editToken   string
	deleteToken string

	ProfileFn       func() (*models.Identity, error)
	GetFn           func(string) (*models.Identity, error)
	ListFn          func() ([]models.Identity, error)
	FindFn          func(forms.DocumentSearch) (*models.Identity, error)
	RequestEditFn   func() (string, error)
	ConfirmEditFn   func(forms.Profile) (*models.Identity, error)
	RequestDeleteFn func() (string, error)
	ConfirmDeleteFn func() (string, error)
	DownloadFn      func(string, models.ReportFormat) (*models.Report, string, error)
}

func (f *fakeUsers) Profile(context.Context) (*models.Identity, error) {
	f.calls = append(f.calls, "Profile")
	return f.ProfileFn()
}

func (f *fakeUsers) Get(_ context.Context, id string) (*models.Identity, error) {
	f.calls = append(f.calls, "Get")
	return f.GetFn(id)
}

func (f *fakeUsers) List(context.Context) ([]models.Identity, error) {
	f.calls = append(f.calls, "List")
	return f.ListFn()
}

func (f *fakeUsers) FindByDocument(_ context.Context, form forms.DocumentSearch) (*models.Identity, error) {
	f.calls = append(f.calls, "FindByDocument")
	return f.FindFn(form)
}

func (f *fakeUsers) RequestEdit(context.Context) (string, error) {
	f.calls = append(f.calls, "RequestEdit")
	msg, err := f.RequestEditFn()
	if err == nil {
		f.editState = workflow.StateTokenRequested
	}
	return msg, err
}

func (f *fakeUsers) ProvideEditToken(_ context.Context, token string) error {
	f.calls = append(f.calls, "ProvideEditToken")
	if token != "" {
		f.editToken = token
	}
	return nil
}

func (f *fakeUsers) ConfirmEdit(_ context.Context, form forms.Profile) (*models.Identity, error) {
	f.calls = append(f.calls, "ConfirmEdit")
	return f.ConfirmEditFn(form)
}

func (f *fakeUsers) CancelEdit(context.Context) error {
	f.calls = append(f.calls, "CancelEdit")
	f.editState = workflow.StateAbandoned
	return nil
}

func (f *fakeUsers) EditState() workflow.State { return f.editState }

func (f *fakeUsers) RequestDelete(context.Context) (string, error) {
	f.calls = append(f.calls, "RequestDelete")
	msg, err := f.RequestDeleteFn()
	if err == nil {
		f.deleteState = workflow.StateTokenRequested
	}
	return msg, err
}

func (f *fakeUsers) ProvideDeleteToken(_ context.Context, token string) error {
	f.calls = append(f.calls, "ProvideDeleteToken")
	if token != "" {
		f.deleteToken = token
	}
	return nil
}

func (f *fakeUsers) ConfirmDelete(context.Context) (string, error) {
	f.calls = append(f.calls, "ConfirmDelete")
	return f.ConfirmDeleteFn()
}

func (f *fakeUsers) CancelDelete(context.Context) error {
	f.calls = append(f.calls, "CancelDelete")
	f.deleteState = workflow.StateAbandoned
	return nil
}

func (f *fakeUsers) DeleteState() workflow.State { return f.deleteState }

func (f *fakeUsers) DownloadReport(_ context.Context, userID string, format models.ReportFormat) (*models.Report, string, error) {
	f.calls = append(f.calls, "DownloadReport")
	return f.DownloadFn(userID, format)
}

type fakeProps struct {
	services.PropertyService
	calls []string

	ListFn          func() ([]models.Property, error)
	ListAvailableFn func() ([]models.Property, error)
	GetFn           func(int64) (*models.Property, error)
	ListByUserFn    func(string) ([]models.Property, error)
	ByCityFn        func(forms.City) ([]models.Property, error)
	ByTypeFn        func(forms.PropertyTypeFilter) ([]models.Property, error)
	ByTransactionFn func(forms.TransactionFilter) ([]models.Property, error)
	ByPriceFn       func(forms.PriceRange) ([]models.Property, error)
	SaveFn          func(int64, forms.Property, string) (*models.Property, error)
	DeleteFn        func(models.Property) error
	RemoveImageFn   func(*forms.Property) error
}

func (f *fakeProps) List(context.Context) ([]models.Property, error) {
	f.calls = append(f.calls, "List")
	return f.ListFn()
}

func (f *fakeProps) ListAvailable(context.Context) ([]models.Property, error) {
	f.calls = append(f.calls, "ListAvailable")
	return f.ListAvailableFn()
}

func (f *fakeProps) Get(_ context.Context, id int64) (*models.Property, error) {
	f.calls = append(f.calls, "Get")
	return f.GetFn(id)
}

func (f *fakeProps) ListByUser(_ context.Context, userID string) ([]models.Property, error) {
	f.calls = append(f.calls, "ListByUser")
	return f.ListByUserFn(userID)
}

func (f *fakeProps) SearchByCity(_ context.Context, form forms.City) ([]models.Property, error) {
	f.calls = append(f.calls, "SearchByCity")
	return f.ByCityFn(form)
}

func (f *fakeProps) SearchByType(_ context.Context, form forms.PropertyTypeFilter) ([]models.Property, error) {
	f.calls = append(f.calls, "SearchByType")
	return f.ByTypeFn(form)
}

func (f *fakeProps) SearchByTransaction(_ context.Context, form forms.TransactionFilter) ([]models.Property, error) {
	f.calls = append(f.calls, "SearchByTransaction")
	return f.ByTransactionFn(form)
}

func (f *fakeProps) SearchByPriceRange(_ context.Context, form forms.PriceRange) ([]models.Property, error) {
	f.calls = append(f.calls, "SearchByPriceRange")
	return f.ByPriceFn(form)
}

func (f *fakeProps) Save(_ context.Context, id int64, form forms.Property, image string) (*models.Property, error) {
	f.calls = append(f.calls, "Save")
	return f.SaveFn(id, form, image)
}

func (f *fakeProps) Delete(_ context.Context, p models.Property) error {
	f.calls = append(f.calls, "Delete")
	return f.DeleteFn(p)
}

func (f *fakeProps) RemoveImage(_ context.Context, form *forms.Property) error {
	f.calls = append(f.calls, "RemoveImage")
	return f.RemoveImageFn(form)
}

type testApp struct {
	*App
	out   *bytes.Buffer
	auth  *fakeAuth
	users *fakeUsers
	props *fakeProps
}

// newTestApp builds an App over fakes. input is what the user types, one
// answer per line; passwords are read from it too.
func newTestApp(t *testing.T, sess *fakeSession, input ...string) *testApp {
	t.Helper()

	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	ta := &testApp{
		out:   &bytes.Buffer{},
		auth:  &fakeAuth{},
		users: &fakeUsers{editState: workflow.StateIdle, deleteState: workflow.StateIdle},
		props: &fakeProps{},
	}
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	ta.App = newApp(sess, ta.auth, ta.users, ta.props, logging.Nop(), in, ta.out)
	return ta
}
