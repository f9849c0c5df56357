package cmd

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/louisbranch/mealmax/internal/platform/errors"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Exit statuses for failed commands. ExitTemporary follows sysexits
// EX_TEMPFAIL so wrappers can retry.
const (
	ExitFailure   = 1
	ExitTemporary = 75
)

// Failure is a fatal command error rendered for an operator.
type Failure struct {
	Code   apperrors.Code
	Status codes.Code
	// Message is the localized user-facing text.
	Message string
	// Detail is the full error chain when it says more than Message.
	Detail    string
	Transient bool
}

// DescribeFailure renders err through its gRPC status so the operator sees
// the same localized message and status a remote caller would.
func DescribeFailure(err error, locale string) Failure {
	if err == nil {
		return Failure{}
	}
	code := apperrors.CodeOf(err)
	st := status.Convert(apperrors.ToGRPCStatus(err, locale))
	failure := Failure{
		Code:      code,
		Status:    st.Code(),
		Message:   st.Message(),
		Transient: code.Transient(),
	}
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.LocalizedMessage:
			failure.Message = d.GetMessage()
		case *errdetails.ErrorInfo:
			failure.Code = apperrors.Code(d.GetReason())
		}
	}
	if full := err.Error(); full != failure.Message {
		failure.Detail = full
	}
	return failure
}

// ExitCode returns the process exit status for the failure.
func (f Failure) ExitCode() int {
	if f.Transient {
		return ExitTemporary
	}
	return ExitFailure
}

// String formats the failure as one or two lines.
func (f Failure) String() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(f.Message)
	if f.Code != apperrors.CodeUnknown {
		fmt.Fprintf(&b, " [%s %s]", f.Code, f.Status)
	}
	if f.Transient {
		b.WriteString(" (temporary, retry later)")
	}
	if f.Detail != "" {
		b.WriteString("\n  cause: ")
		b.WriteString(f.Detail)
	}
	return b.String()
}

// ReportFailure writes err to w and returns the exit status to use.
func ReportFailure(w io.Writer, err error, locale string) int {
	failure := DescribeFailure(err, locale)
	fmt.Fprintln(w, failure.String())
	return failure.ExitCode()
}
