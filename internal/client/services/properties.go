package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

var ErrNotImage = errors.New("file is not an image")

// PropertyService is the listing CRUD and search surface.
type PropertyService interface {
	List(ctx context.Context) ([]models.Property, error)
	ListAvailable(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id int64) (*models.Property, error)
	// ListByUser lists the listings of userID, or of the signed-in user
	// when userID is empty.
	ListByUser(ctx context.Context, userID string) ([]models.Property, error)

	SearchByCity(ctx context.Context, form forms.City) ([]models.Property, error)
	SearchByType(ctx context.Context, form forms.PropertyTypeFilter) ([]models.Property, error)
	SearchByTransaction(ctx context.Context, form forms.TransactionFilter) ([]models.Property, error)
	SearchByPriceRange(ctx context.Context, form forms.PriceRange) ([]models.Property, error)

	// Save creates the listing when id is 0 and updates it otherwise. A
	// non-empty imagePath is uploaded first and its URL stored on the
	// listing.
	Save(ctx context.Context, id int64, form forms.Property, imagePath string) (*models.Property, error)
	// Delete removes the listing. Its image is removed first; failing to
	// remove the image does not stop the deletion.
	Delete(ctx context.Context, p models.Property) error
	// RemoveImage deletes the image referenced by form and clears the
	// reference whether or not the deletion succeeded.
	RemoveImage(ctx context.Context, form *forms.Property) error
}

type propertyService struct {
	api     client.PropertyAPI
	session Session
	log     logging.Logger
}

func NewPropertyService(api client.PropertyAPI, session Session, log logging.Logger) PropertyService {
	if log == nil {
		log = logging.Nop()
	}
	return &propertyService{api: api, session: session, log: log.With("service", "properties")}
}

func (p *propertyService) List(ctx context.Context) ([]models.Property, error) {
	props, err := p.api.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

func (p *propertyService) ListAvailable(ctx context.Context) ([]models.Property, error) {
	props, err := p.api.ListAvailableProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available properties: %w", err)
	}
	return props, nil
}

func (p *propertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	if id <= 0 {
		return nil, forms.ValidationErrors{{Field: "id", Message: "must be a positive number"}}
	}
	prop, err := p.api.GetProperty(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return prop, nil
}

func (p *propertyService) ListByUser(ctx context.Context, userID string) ([]models.Property, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = p.session.UserID()
	}
	if userID == "" {
		return nil, ErrNotSignedIn
	}
	props, err := p.api.ListPropertiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list properties of user %s: %w", userID, err)
	}
	return props, nil
}

func (p *propertyService) SearchByCity(ctx context.Context, form forms.City) ([]models.Property, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	props, err := p.api.PropertiesByCity(ctx, strings.TrimSpace(form.City))
	if err != nil {
		return nil, fmt.Errorf("search by city: %w", err)
	}
	return props, nil
}

func (p *propertyService) SearchByType(ctx context.Context, form forms.PropertyTypeFilter) ([]models.Property, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	props, err := p.api.PropertiesByType(ctx, form.Type)
	if err != nil {
		return nil, fmt.Errorf("search by type: %w", err)
	}
	return props, nil
}

func (p *propertyService) SearchByTransaction(ctx context.Context, form forms.TransactionFilter) ([]models.Property, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	props, err := p.api.PropertiesByTransaction(ctx, form.Type)
	if err != nil {
		return nil, fmt.Errorf("search by transaction: %w", err)
	}
	return props, nil
}

func (p *propertyService) SearchByPriceRange(ctx context.Context, form forms.PriceRange) ([]models.Property, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}
	props, err := p.api.PropertiesByPriceRange(ctx, *form.Min, *form.Max)
	if err != nil {
		return nil, fmt.Errorf("search by price range: %w", err)
	}
	return props, nil
}

func (p *propertyService) Save(ctx context.Context, id int64, form forms.Property, imagePath string) (*models.Property, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	owner := form.Owner
	if id == 0 || owner == "" {
		owner = models.Ref(p.session.UserID())
	}
	if owner == "" {
		return nil, ErrNotSignedIn
	}

	if imagePath = strings.TrimSpace(imagePath); imagePath != "" {
		url, err := p.uploadImage(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		form.ImageURL = url
	}

	req := form.Request(owner)
	if id == 0 {
		created, err := p.api.CreateProperty(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create property: %w", err)
		}
		p.log.Info(ctx, "property created", "id", created.ID)
		return created, nil
	}

	updated, err := p.api.UpdateProperty(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update property %d: %w", id, err)
	}
	p.log.Info(ctx, "property updated", "id", id)
	return updated, nil
}

func (p *propertyService) uploadImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s is %s", ErrNotImage, filepath.Base(path), mt.String())
	}

	url, err := p.api.UploadImage(ctx, filepath.Base(path), mt.String(), data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func (p *propertyService) Delete(ctx context.Context, prop models.Property) error {
	if prop.ImageURL != "" {
		if err := p.api.DeleteImage(ctx, prop.ImageURL); err != nil {
			p.log.Warn(ctx, "failed to delete property image", "id", prop.ID, "image_url", prop.ImageURL, "error", err)
		}
	}

	if err := p.api.DeleteProperty(ctx, prop.ID); err != nil {
		return fmt.Errorf("delete property %d: %w", prop.ID, err)
	}
	p.log.Info(ctx, "property deleted", "id", prop.ID)
	return nil
}

func (p *propertyService) RemoveImage(ctx context.Context, form *forms.Property) error {
	url := form.ImageURL
	form.ImageURL = ""
	if url == "" {
		return nil
	}

	if err := p.api.DeleteImage(ctx, url); err != nil {
		p.log.Warn(ctx, "failed to delete image", "image_url", url, "error", err)
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
