package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/models"
)

func (a *App) listUsers(ctx context.Context, _ []string) error {
	users, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	renderUsers(a.out, users)
	return nil
}

func (a *App) findUser(ctx context.Context, args []string) error {
	doc, err := a.argOrAsk(args, 0, "Document number")
	if err != nil {
		return err
	}
	u, err := a.users.FindByDocument(ctx, forms.DocumentSearch{Document: doc})
	if err != nil {
		return err
	}
	renderIdentity(a.out, *u)
	return nil
}

// showUser prints a user and the properties they published.
func (a *App) showUser(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, 0, "User ID")
	if err != nil {
		return err
	}
	u, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}
	renderIdentity(a.out, *u)

	props, err := a.props.ListByUser(ctx, id)
	if err != nil {
		a.warn(fmt.Sprintf("Could not load the user's properties: %v", err))
		return nil
	}
	fmt.Fprintln(a.out)
	renderProperties(a.out, props)
	return nil
}

// downloadReport downloads the all-users report, or a single user's report when a
// user id follows the format.
func (a *App) downloadReport(ctx context.Context, args []string) error {
	format := models.ReportPDF
	if len(args) > 0 {
		f, err := models.ParseReportFormat(args[0])
		if err != nil {
			return forms.ValidationErrors{{Field: "format", Message: "must be pdf or excel"}}
		}
		format = f
	}
	userID := ""
	if len(args) > 1 {
		userID = args[1]
	}

	rep, path, err := a.users.DownloadReport(ctx, userID, format)
	if err != nil {
		return err
	}
	a.success("Report downloaded", rep.FileName, "Saved to "+path)
	return nil
}
