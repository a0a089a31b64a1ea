package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
)

func formatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && intPart[i-1] != '-' {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String() + "." + frac
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func renderProperties(w io.Writer, props []models.Property) {
	if len(props) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCITY\tTYPE\tDEAL\tPRICE\tAVAILABLE")
	for _, p := range props {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.City, p.PropertyType, p.TransactionType, formatPrice(p.Price), yesNo(p.Available))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d properties\n", len(props))
}

func renderProperty(w io.Writer, p models.Property) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}

	row("ID", strconv.FormatInt(p.ID, 10))
	row("Title", p.Title)
	row("Description", p.Description)
	row("Address", joinNonEmpty(p.Address, p.City, p.State))
	row("Type", string(p.PropertyType))
	row("Deal", string(p.TransactionType))
	row("Price", formatPrice(p.Price))
	if p.Area > 0 {
		row("Area", strconv.FormatFloat(p.Area, 'f', -1, 64)+" m²")
	}
	row("Rooms", fmt.Sprintf("%d bed, %d bath, %d garage", p.Bedrooms, p.Bathrooms, p.Garages))
	row("Available", yesNo(p.Available))
	row("Image", p.ImageURL)
	row("Owner", ownerLine(p))
	row("Created", p.CreatedAt)
	row("Updated", p.UpdatedAt)
	_ = tw.Flush()
}

func ownerLine(p models.Property) string {
	if s := joinNonEmpty(p.UserName, p.UserEmail, p.UserPhone); s != "" {
		return s
	}
	if p.UserID != "" {
		return "user " + string(p.UserID)
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

func renderIdentity(w io.Writer, id models.Identity) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}

	row("ID", id.ID)
	row("Name", id.Name)
	row("Username", id.Username)
	row("Email", id.Email)
	row("Phone", id.Phone)
	row("Birth date", id.BirthDate)
	row("Document", id.Document)
	row("Role", id.Role)
	_ = tw.Flush()
}

func renderUsers(w io.Writer, users []models.Identity) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL\tDOCUMENT\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email, u.Document, u.Role)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d users\n", len(users))
}
