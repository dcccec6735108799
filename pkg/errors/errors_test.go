package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		exitCode  int
		publicMsg string
		detailsOK bool
	}{
		{code: CodeConfiguration, exitCode: 2, publicMsg: "invalid generation configuration", detailsOK: true},
		{code: CodeDataIntegrity, exitCode: 3, publicMsg: "dataset failed integrity checks", detailsOK: true},
		{code: CodeArithmetic, exitCode: 4, publicMsg: "undefined arithmetic result", detailsOK: true},
		{code: CodeIO, exitCode: 5, publicMsg: "artifact read/write failed"},
		{code: CodeInternal, exitCode: 1, publicMsg: "internal error"},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.ExitCode != tt.exitCode {
			t.Fatalf("code %s expected exit code %d got %d", tt.code, tt.exitCode, meta.ExitCode)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.ExitCode != 1 {
		t.Fatalf("expected internal exit code, got %d", meta.ExitCode)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeConfiguration, "city weights must sum to 1")
	if base.Code() != CodeConfiguration {
		t.Fatalf("expected configuration code, got %s", base.Code())
	}
	if base.Message() != "city weights must sum to 1" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detailed := base.WithDetails(map[string]any{"sum": 0.97})
	if detailed.Details() == nil {
		t.Fatalf("expected details to be set")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("open payments.csv: no such file")
	wrapped := Wrap(CodeIO, cause, "loading payments table")

	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to match cause")
	}
	if As(wrapped) == nil {
		t.Fatalf("expected typed error from As")
	}
	if As(wrapped).Code() != CodeIO {
		t.Fatalf("expected io code, got %s", As(wrapped).Code())
	}
}

func TestExitCodeResolution(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		exitCode int
	}{
		{
			name:     "coded error",
			err:      New(CodeConfiguration, "city weights must sum to 1"),
			exitCode: 2,
		},
		{
			name:     "wrapped coded error",
			err:      Wrap(CodeDataIntegrity, stdErrors.New("root"), "order ORD0000001 has no payment"),
			exitCode: 3,
		},
		{
			name:     "plain error falls back to internal",
			err:      stdErrors.New("something unexpected"),
			exitCode: 1,
		},
	}

	for _, tt := range tests {
		got := MetadataFor(As(tt.err).Code()).ExitCode
		if got != tt.exitCode {
			t.Fatalf("%s: expected exit code %d got %d", tt.name, tt.exitCode, got)
		}
	}
}

func TestDumpBuildsChain(t *testing.T) {
	cause := stdErrors.New("root")
	wrapped := Wrap(CodeDataIntegrity, cause, "order ORD0000001 has no payment")

	dump := Dump(wrapped)
	if dump.Code != CodeDataIntegrity {
		t.Fatalf("expected data integrity code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
