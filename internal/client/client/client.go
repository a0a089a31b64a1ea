package client

import (
	"context"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
)

// Credentials supplies the identity headers of outgoing requests. Empty
// values are not sent.
type Credentials interface {
	Token() string
	UserID() string
	Role() string
}

type AuthAPI interface {
	Register(ctx context.Context, req models.UserRequest) (*models.Identity, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.Ack, error)
	VerifyEmail(ctx context.Context, req models.VerifyRequest) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error)
	ResendVerification(ctx context.Context, req models.ResendVerificationRequest) (*models.Identity, error)
}

type UserAPI interface {
	GetUser(ctx context.Context, id string) (*models.Identity, error)
	ListUsers(ctx context.Context) ([]models.Identity, error)
	FindUserByDocument(ctx context.Context, document string) (*models.Identity, error)
	RequestEdit(ctx context.Context, id string) (*models.Ack, error)
	ConfirmEdit(ctx context.Context, token string, req models.UserUpdateRequest) (*models.Identity, error)
	RequestDelete(ctx context.Context, id string) (*models.Ack, error)
	ConfirmDelete(ctx context.Context, token string) (string, error)
	// DownloadReport fetches the report of one user, or of all users when
	// userID is empty.
	DownloadReport(ctx context.Context, userID string, format models.ReportFormat) (*models.Report, error)
}

type PropertyAPI interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	ListAvailableProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	ListPropertiesByUser(ctx context.Context, userID string) ([]models.Property, error)
	PropertiesByCity(ctx context.Context, city string) ([]models.Property, error)
	PropertiesByType(ctx context.Context, t models.PropertyType) ([]models.Property, error)
	PropertiesByTransaction(ctx context.Context, t models.TransactionType) ([]models.Property, error)
	PropertiesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Property, error)
	CreateProperty(ctx context.Context, req models.PropertyRequest) (*models.Property, error)
	UpdateProperty(ctx context.Context, id int64, req models.PropertyRequest) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, fileName, contentType string, data []byte) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

type Client interface {
	AuthAPI
	UserAPI
	PropertyAPI
	Close() error
}
