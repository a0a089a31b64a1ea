package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/inmobix/internal/client/client"
	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/client/services"
	"github.com/dmitrijs2005/inmobix/internal/client/workflow"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantLines []string
	}{
		{
			name:      "validation",
			err:       forms.ValidationErrors{{Field: "city", Message: "is required"}},
			wantTitle: "Please correct the following fields",
			wantLines: []string{"city: is required"},
		},
		{
			name:      "transport",
			err:       fmt.Errorf("GET /properties: %w", client.ErrUnavailable),
			wantTitle: "Cannot reach the server. Check your connection and try again.",
		},
		{
			name:      "backend message verbatim",
			err:       &client.APIError{StatusCode: 409, Message: " El email ya está registrado "},
			wantTitle: "El email ya está registrado",
		},
		{
			name:      "backend without message",
			err:       &client.APIError{StatusCode: 500},
			wantTitle: "request failed (status 500)",
		},
		{
			name:      "busy",
			err:       workflow.ErrBusy,
			wantTitle: "Please wait for the current request to finish",
		},
		{
			name:      "not signed in",
			err:       services.ErrNotSignedIn,
			wantTitle: "You need to log in first",
		},
		{
			name:      "forbidden",
			err:       ErrForbidden,
			wantTitle: "Only administrators can do that",
		},
		{
			name:      "other",
			err:       errors.New("disk full"),
			wantTitle: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, lines := describe(tt.err)
			assert.Equal(t, tt.wantTitle, title)
			if tt.wantLines != nil {
				assert.Equal(t, tt.wantLines, lines)
			}
		})
	}
}

func TestReport_PrintsOnce(t *testing.T) {
	a := newTestApp(t, anonymous())

	err := a.report(errors.New("boom"))
	a.fail(err)
	a.fail(fmt.Errorf("wrapped: %w", err))

	assert.True(t, Reported(err))
	assert.Equal(t, 1, strings.Count(a.out.String(), "[error] boom"))
	assert.False(t, Reported(errors.New("fresh")))
}

func TestSuccessSkipsBlankLines(t *testing.T) {
	a := newTestApp(t, anonymous())
	a.success("Done", "", "detail")

	assert.Equal(t, "\n[ok] Done\n     detail\n\n", a.out.String())
}

func TestFormatPrice(t *testing.T) {
	tests := map[float64]string{
		0:          "$0.00",
		999.5:      "$999.50",
		1000:       "$1,000.00",
		1234567.89: "$1,234,567.89",
		-2500:      "$-2,500.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatPrice(in), "%v", in)
	}
}
