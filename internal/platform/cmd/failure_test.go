package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/mealmax/internal/platform/errors"
	"google.golang.org/grpc/codes"
)

func TestDescribeFailure(t *testing.T) {
	notFound := fmt.Errorf("battle: %w", apperrors.WithMetadata(apperrors.CodeMealNotFound,
		"meal Soup not found", map[string]string{"Meal": "Soup"}))
	unavailable := fmt.Errorf("draw: %w", apperrors.Wrap(apperrors.CodeRandomUnavailable,
		"fetch random number", errors.New("connection refused")))

	tests := []struct {
		name      string
		err       error
		locale    string
		want      Failure
		wantExit  int
		wantLines []string
	}{
		{
			name:   "plain error",
			err:    errors.New("disk full"),
			locale: "en-US",
			want: Failure{
				Code:    apperrors.CodeUnknown,
				Status:  codes.Internal,
				Message: "disk full",
			},
			wantExit:  ExitFailure,
			wantLines: []string{"Error: disk full"},
		},
		{
			name:   "domain error keeps wrapping context",
			err:    notFound,
			locale: "en-US",
			want: Failure{
				Code:    apperrors.CodeMealNotFound,
				Status:  codes.NotFound,
				Message: "Meal Soup not found",
				Detail:  "battle: meal Soup not found",
			},
			wantExit: ExitFailure,
			wantLines: []string{
				"Error: Meal Soup not found [MEAL_NOT_FOUND NotFound]",
				"  cause: battle: meal Soup not found",
			},
		},
		{
			name:   "localized message",
			err:    notFound,
			locale: "pt-BR",
			want: Failure{
				Code:    apperrors.CodeMealNotFound,
				Status:  codes.NotFound,
				Message: "Refeição Soup não encontrada",
				Detail:  "battle: meal Soup not found",
			},
			wantExit: ExitFailure,
			wantLines: []string{
				"Error: Refeição Soup não encontrada [MEAL_NOT_FOUND NotFound]",
				"  cause: battle: meal Soup not found",
			},
		},
		{
			name:   "transient error",
			err:    unavailable,
			locale: "en-US",
			want: Failure{
				Code:      apperrors.CodeRandomUnavailable,
				Status:    codes.Unavailable,
				Message:   "Random number service is unavailable, try again",
				Detail:    "draw: fetch random number: connection refused",
				Transient: true,
			},
			wantExit: ExitTemporary,
			wantLines: []string{
				"Error: Random number service is unavailable, try again [RANDOM_UNAVAILABLE Unavailable] (temporary, retry later)",
				"  cause: draw: fetch random number: connection refused",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DescribeFailure(tc.err, tc.locale)
			if got != tc.want {
				t.Fatalf("failure = %+v, want %+v", got, tc.want)
			}
			if code := got.ExitCode(); code != tc.wantExit {
				t.Fatalf("exit code = %d, want %d", code, tc.wantExit)
			}
			if text := got.String(); text != strings.Join(tc.wantLines, "\n") {
				t.Fatalf("text = %q, want %q", text, strings.Join(tc.wantLines, "\n"))
			}
		})
	}
}

func TestDescribeFailureNil(t *testing.T) {
	if got := DescribeFailure(nil, "en-US"); got != (Failure{}) {
		t.Fatalf("failure = %+v, want zero value", got)
	}
}

func TestReportFailureWritesAndReturnsExitCode(t *testing.T) {
	var buf bytes.Buffer
	err := apperrors.Wrap(apperrors.CodeRandomUnavailable, "fetch random number", errors.New("timeout"))

	code := ReportFailure(&buf, err, "en-US")
	if code != ExitTemporary {
		t.Fatalf("exit code = %d, want %d", code, ExitTemporary)
	}
	if !strings.HasPrefix(buf.String(), "Error: Random number service is unavailable") {
		t.Fatalf("output = %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "cause: fetch random number: timeout\n") {
		t.Fatalf("output = %q", buf.String())
	}
}
