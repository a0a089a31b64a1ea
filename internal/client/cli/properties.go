package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
)

func (a *App) listProperties(ctx context.Context, _ []string) error {
	props, err := a.props.List(ctx)
	if err != nil {
		return err
	}
	renderProperties(a.out, props)
	return nil
}

func (a *App) listAvailable(ctx context.Context, _ []string) error {
	props, err := a.props.ListAvailable(ctx)
	if err != nil {
		return err
	}
	renderProperties(a.out, props)
	return nil
}

func (a *App) listMine(ctx context.Context, _ []string) error {
	props, err := a.props.ListByUser(ctx, "")
	if err != nil {
		return err
	}
	renderProperties(a.out, props)
	return nil
}

// propertyID reads the id from args or asks for it.
func (a *App) propertyID(args []string) (int64, error) {
	raw, err := a.argOrAsk(args, 0, "Property ID")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, forms.ValidationErrors{{Field: "id", Message: "must be a positive number"}}
	}
	return id, nil
}

func (a *App) showProperty(ctx context.Context, args []string) error {
	id, err := a.propertyID(args)
	if err != nil {
		return err
	}
	p, err := a.props.Get(ctx, id)
	if err != nil {
		return err
	}
	renderProperty(a.out, *p)
	return nil
}

func (a *App) createProperty(ctx context.Context, _ []string) error {
	f, err := a.propertyForm(forms.NewProperty())
	if err != nil {
		return err
	}
	image, err := a.ask("Image file path (optional)")
	if err != nil {
		return err
	}

	p, err := a.props.Save(ctx, 0, f, image)
	if err != nil {
		return err
	}
	a.success(fmt.Sprintf("Property %d published", p.ID))
	renderProperty(a.out, *p)
	return nil
}

func (a *App) editProperty(ctx context.Context, args []string) error {
	id, err := a.propertyID(args)
	if err != nil {
		return err
	}
	current, err := a.props.Get(ctx, id)
	if err != nil {
		return err
	}

	f, err := a.propertyForm(forms.PropertyFrom(*current))
	if err != nil {
		return err
	}

	if f.ImageURL != "" {
		remove, err := a.confirm("Remove the current image?", false)
		if err != nil {
			return err
		}
		if remove {
			if err := a.props.RemoveImage(ctx, &f); err != nil {
				a.warn(fmt.Sprintf("The image could not be deleted from storage (%v); it is no longer linked to the property.", err))
			}
		}
	}

	image, err := a.ask("New image file path (optional)")
	if err != nil {
		return err
	}

	p, err := a.props.Save(ctx, id, f, image)
	if err != nil {
		return err
	}
	a.success(fmt.Sprintf("Property %d updated", p.ID))
	renderProperty(a.out, *p)
	return nil
}

func (a *App) deleteProperty(ctx context.Context, args []string) error {
	id, err := a.propertyID(args)
	if err != nil {
		return err
	}
	p, err := a.props.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := a.confirm(fmt.Sprintf("Delete %q (%d)?", p.Title, p.ID), false)
	if err != nil {
		return err
	}
	if !ok {
		a.warn("Nothing deleted.")
		return nil
	}

	if err := a.props.Delete(ctx, *p); err != nil {
		return err
	}
	a.success(fmt.Sprintf("Property %d deleted", p.ID))
	return nil
}

// propertyForm prompts for every listing field, offering the values of
// current as defaults.
func (a *App) propertyForm(current forms.Property) (forms.Property, error) {
	fr := a.fields()
	f := current
	f.Title = fr.text("Title", current.Title)
	f.Description = fr.multiline("Description", current.Description)
	f.Address = fr.text("Address", current.Address)
	f.City = fr.text("City", current.City)
	f.State = fr.text("State / region", current.State)
	f.Price = fr.decimal("price", "Price", current.Price)
	f.Area = fr.decimal("area", "Area in m²", current.Area)
	f.Bedrooms = fr.integer("bedrooms", "Bedrooms", current.Bedrooms)
	f.Bathrooms = fr.integer("bathrooms", "Bathrooms", current.Bathrooms)
	f.Garages = fr.integer("garages", "Garages", current.Garages)
	f.PropertyType = models.PropertyType(strings.ToUpper(fr.text(
		"Type ("+joinTypes(models.PropertyTypes)+")", string(current.PropertyType))))
	f.TransactionType = models.TransactionType(strings.ToUpper(fr.text(
		"Deal ("+joinTypes(models.TransactionTypes)+")", string(current.TransactionType))))
	f.Available = fr.yesNo("Available?", current.Available)

	if err := fr.done(); err != nil {
		return forms.Property{}, err
	}
	return f, nil
}

func joinTypes[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, "/")
}

// search runs one of the property filters. Without arguments it asks
// which one.
func (a *App) search(ctx context.Context, args []string) error {
	by, err := a.argOrAsk(args, 0, "Search by: city, type, transaction or price")
	if err != nil {
		return err
	}
	rest := []string{}
	if len(args) > 1 {
		rest = args[1:]
	}

	var props []models.Property
	switch strings.ToLower(by) {
	case "city":
		city := strings.Join(rest, " ")
		if city == "" {
			if city, err = a.ask("City"); err != nil {
				return err
			}
		}
		props, err = a.props.SearchByCity(ctx, forms.City{City: city})

	case "type":
		t, aerr := a.argOrAsk(rest, 0, "Type ("+joinTypes(models.PropertyTypes)+")")
		if aerr != nil {
			return aerr
		}
		props, err = a.props.SearchByType(ctx, forms.PropertyTypeFilter{Type: models.PropertyType(strings.ToUpper(t))})

	case "transaction", "deal":
		t, aerr := a.argOrAsk(rest, 0, "Deal ("+joinTypes(models.TransactionTypes)+")")
		if aerr != nil {
			return aerr
		}
		props, err = a.props.SearchByTransaction(ctx, forms.TransactionFilter{Type: models.TransactionType(strings.ToUpper(t))})

	case "price":
		r, perr := a.priceRange(rest)
		if perr != nil {
			return perr
		}
		props, err = a.props.SearchByPriceRange(ctx, r)

	default:
		return forms.ValidationErrors{{Field: "search", Message: "must be one of city, type, transaction, price"}}
	}
	if err != nil {
		return err
	}
	renderProperties(a.out, props)
	return nil
}

// priceRange reads both bounds; a blank bound stays nil so validation
// reports it as required.
func (a *App) priceRange(args []string) (forms.PriceRange, error) {
	var (
		r    forms.PriceRange
		errs forms.ValidationErrors
	)
	bound := func(i int, field, prompt string) (*float64, error) {
		raw, err := a.argOrAsk(args, i, prompt)
		if err != nil || raw == "" {
			return nil, err
		}
		v, perr := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if perr != nil {
			errs = append(errs, forms.FieldError{Field: field, Message: "must be a number"})
			return nil, nil
		}
		return &v, nil
	}

	var err error
	if r.Min, err = bound(0, "min_price", "Minimum price"); err != nil {
		return r, err
	}
	if r.Max, err = bound(1, "max_price", "Maximum price"); err != nil {
		return r, err
	}
	if len(errs) > 0 {
		return r, errs
	}
	return r, nil
}
