package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/client/session"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

var errNotStubbed = errors.New("fake: not stubbed")

// fakeAPI implements client.Client; each call is forwarded to the matching
// func field and recorded by name.
type fakeAPI struct {
	calls []string

	RegisterFn           func(models.UserRequest) (*models.Identity, error)
	LoginFn              func(models.LoginRequest) (*models.Identity, error)
	ForgotPasswordFn     func(models.ForgotPasswordRequest) (*models.Ack, error)
	VerifyEmailFn        func(models.VerifyRequest) (string, error)
	ResetPasswordFn      func(models.ResetPasswordRequest) (string, error)
	ResendVerificationFn func(models.ResendVerificationRequest) (*models.Identity, error)

	GetUserFn            func(string) (*models.Identity, error)
	ListUsersFn          func() ([]models.Identity, error)
	FindUserByDocumentFn func(string) (*models.Identity, error)
	RequestEditFn        func(string) (*models.Ack, error)
	ConfirmEditFn        func(string, models.UserUpdateRequest) (*models.Identity, error)
	RequestDeleteFn      func(string) (*models.Ack, error)
	ConfirmDeleteFn      func(string) (string, error)
	DownloadReportFn     func(string, models.ReportFormat) (*models.Report, error)

	ListPropertiesFn          func() ([]models.Property, error)
	ListAvailablePropertiesFn func() ([]models.Property, error)
	GetPropertyFn             func(int64) (*models.Property, error)
	ListPropertiesByUserFn    func(string) ([]models.Property, error)
	PropertiesByCityFn        func(string) ([]models.Property, error)
	PropertiesByTypeFn        func(models.PropertyType) ([]models.Property, error)
	PropertiesByTransactionFn func(models.TransactionType) ([]models.Property, error)
	PropertiesByPriceRangeFn  func(float64, float64) ([]models.Property, error)
	CreatePropertyFn          func(models.PropertyRequest) (*models.Property, error)
	UpdatePropertyFn          func(int64, models.PropertyRequest) (*models.Property, error)
	DeletePropertyFn          func(int64) error
	UploadImageFn             func(string, string, []byte) (string, error)
	DeleteImageFn             func(string) error
}

func (f *fakeAPI) called(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Register(_ context.Context, req models.UserRequest) (*models.Identity, error) {
	f.called("Register")
	if f.RegisterFn == nil {
		return nil, errNotStubbed
	}
	return f.RegisterFn(req)
}

func (f *fakeAPI) Login(_ context.Context, req models.LoginRequest) (*models.Identity, error) {
	f.called("Login")
	if f.LoginFn == nil {
		return nil, errNotStubbed
	}
	return f.LoginFn(req)
}

func (f *fakeAPI) ForgotPassword(_ context.Context, req models.ForgotPasswordRequest) (*models.Ack, error) {
	f.called("ForgotPassword")
	if f.ForgotPasswordFn == nil {
		return nil, errNotStubbed
	}
	return f.ForgotPasswordFn(req)
}

func (f *fakeAPI) VerifyEmail(_ context.Context, req models.VerifyRequest) (string, error) {
	f.called("VerifyEmail")
	if f.VerifyEmailFn == nil {
		return "", errNotStubbed
	}
	return f.VerifyEmailFn(req)
}

func (f *fakeAPI) ResetPassword(_ context.Context, req models.ResetPasswordRequest) (string, error) {
	f.called("ResetPassword")
	if f.ResetPasswordFn == nil {
		return "", errNotStubbed
	}
	return f.ResetPasswordFn(req)
}

func (f *fakeAPI) ResendVerification(_ context.Context, req models.ResendVerificationRequest) (*models.Identity, error) {
	f.called("ResendVerification")
	if f.ResendVerificationFn == nil {
		return nil, errNotStubbed
	}
	return f.ResendVerificationFn(req)
}

func (f *fakeAPI) GetUser(_ context.Context, id string) (*models.Identity, error) {
	f.called("GetUser")
	if f.GetUserFn == nil {
		return nil, errNotStubbed
	}
	return f.GetUserFn(id)
}

func (f *fakeAPI) ListUsers(context.Context) ([]models.Identity, error) {
	f.called("ListUsers")
	if f.ListUsersFn == nil {
		return nil, errNotStubbed
	}
	return f.ListUsersFn()
}

func (f *fakeAPI) FindUserByDocument(_ context.Context, doc string) (*models.Identity, error) {
	f.called("FindUserByDocument")
	if f.FindUserByDocumentFn == nil {
		return nil, errNotStubbed
	}
	return f.FindUserByDocumentFn(doc)
}

func (f *fakeAPI) RequestEdit(_ context.Context, id string) (*models.Ack, error) {
	f.called("RequestEdit")
	if f.RequestEditFn == nil {
		return nil, errNotStubbed
	}
	return f.RequestEditFn(id)
}

func (f *fakeAPI) ConfirmEdit(_ context.Context, token string, req models.UserUpdateRequest) (*models.Identity, error) {
	f.called("ConfirmEdit")
	if f.ConfirmEditFn == nil {
		return nil, errNotStubbed
	}
	return f.ConfirmEditFn(token, req)
}

func (f *fakeAPI) RequestDelete(_ context.Context, id string) (*models.Ack, error) {
	f.called("RequestDelete")
	if f.RequestDeleteFn == nil {
		return nil, errNotStubbed
	}
	return f.RequestDeleteFn(id)
}

func (f *fakeAPI) ConfirmDelete(_ context.Context, token string) (string, error) {
	f.called("ConfirmDelete")
	if f.ConfirmDeleteFn == nil {
		return "", errNotStubbed
	}
	return f.ConfirmDeleteFn(token)
}

func (f *fakeAPI) DownloadReport(_ context.Context, userID string, format models.ReportFormat) (*models.Report, error) {
	f.called("DownloadReport")
	if f.DownloadReportFn == nil {
		return nil, errNotStubbed
	}
	return f.DownloadReportFn(userID, format)
}

func (f *fakeAPI) ListProperties(context.Context) ([]models.Property, error) {
	f.called("ListProperties")
	if f.ListPropertiesFn == nil {
		return nil, errNotStubbed
	}
	return f.ListPropertiesFn()
}

func (f *fakeAPI) ListAvailableProperties(context.Context) ([]models.Property, error) {
	f.called("ListAvailableProperties")
	if f.ListAvailablePropertiesFn == nil {
		return nil, errNotStubbed
	}
	return f.ListAvailablePropertiesFn()
}

func (f *fakeAPI) GetProperty(_ context.Context, id int64) (*models.Property, error) {
	f.called("GetProperty")
	if f.GetPropertyFn == nil {
		return nil, errNotStubbed
	}
	return f.GetPropertyFn(id)
}

func (f *fakeAPI) ListPropertiesByUser(_ context.Context, userID string) ([]models.Property, error) {
	f.called("ListPropertiesByUser")
	if f.ListPropertiesByUserFn == nil {
		return nil, errNotStubbed
	}
	return f.ListPropertiesByUserFn(userID)
}

func (f *fakeAPI) PropertiesByCity(_ context.Context, city string) ([]models.Property, error) {
	f.called("PropertiesByCity")
	if f.PropertiesByCityFn == nil {
		return nil, errNotStubbed
	}
	return f.PropertiesByCityFn(city)
}

func (f *fakeAPI) PropertiesByType(_ context.Context, t models.PropertyType) ([]models.Property, error) {
	f.called("PropertiesByType")
	if f.PropertiesByTypeFn == nil {
		return nil, errNotStubbed
	}
	return f.PropertiesByTypeFn(t)
}

func (f *fakeAPI) PropertiesByTransaction(_ context.Context, t models.TransactionType) ([]models.Property, error) {
	f.called("PropertiesByTransaction")
	if f.PropertiesByTransactionFn == nil {
		return nil, errNotStubbed
	}
	return f.PropertiesByTransactionFn(t)
}

func (f *fakeAPI) PropertiesByPriceRange(_ context.Context, minPrice, maxPrice float64) ([]models.Property, error) {
	f.called("PropertiesByPriceRange")
	if f.PropertiesByPriceRangeFn == nil {
		return nil, errNotStubbed
	}
	return f.PropertiesByPriceRangeFn(minPrice, maxPrice)
}

func (f *fakeAPI) CreateProperty(_ context.Context, req models.PropertyRequest) (*models.Property, error) {
	f.called("CreateProperty")
	if f.CreatePropertyFn == nil {
		return nil, errNotStubbed
	}
	return f.CreatePropertyFn(req)
}

func (f *fakeAPI) UpdateProperty(_ context.Context, id int64, req models.PropertyRequest) (*models.Property, error) {
	f.called("UpdateProperty")
	if f.UpdatePropertyFn == nil {
		return nil, errNotStubbed
	}
	return f.UpdatePropertyFn(id, req)
}

func (f *fakeAPI) DeleteProperty(_ context.Context, id int64) error {
	f.called("DeleteProperty")
	if f.DeletePropertyFn == nil {
		return errNotStubbed
	}
	return f.DeletePropertyFn(id)
}

func (f *fakeAPI) UploadImage(_ context.Context, name, contentType string, data []byte) (string, error) {
	f.called("UploadImage")
	if f.UploadImageFn == nil {
		return "", errNotStubbed
	}
	return f.UploadImageFn(name, contentType, data)
}

func (f *fakeAPI) DeleteImage(_ context.Context, url string) error {
	f.called("DeleteImage")
	if f.DeleteImageFn == nil {
		return errNotStubbed
	}
	return f.DeleteImageFn(url)
}

var _ client.Client = (*fakeAPI)(nil)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSession(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(setupDB(t), logging.Nop())
}

// signedIn returns a session with a signed-in regular user "42".
func signedIn(t *testing.T) *session.Store {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.SetSession(context.Background(), models.Identity{
		ID: "42", Name: "Ana", Email: "ana@example.com", Username: "ana", Role: "USER", Token: "tok",
	}))
	return s
}
