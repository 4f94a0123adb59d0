package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NotFound("group not found", "userId", "paulao", "groupId", "euro")
	want := "NOT_FOUND: group not found groupId=euro userId=paulao"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindNames(t *testing.T) {
	cases := map[Kind]string{
		KindFail:            "FAIL",
		KindNotFound:        "NOT_FOUND",
		KindAlreadyExists:   "ALREADY_EXISTS",
		KindBadRequest:      "BAD_REQUEST",
		KindUnauthenticated: "UNAUTHENTICATED",
		KindExternalService: "EXT_SVC_FAIL",
	}
	for kind, name := range cases {
		if kind.String() != name {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), name)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(AlreadyExists("user exists")); got != KindAlreadyExists {
		t.Errorf("KindOf = %v, want KindAlreadyExists", got)
	}
	if got := KindOf(fmt.Errorf("wrapped: %w", Unauthenticated("missing token"))); got != KindUnauthenticated {
		t.Errorf("KindOf through wrapping = %v, want KindUnauthenticated", got)
	}
	if got := KindOf(errors.New("plain")); got != KindFail {
		t.Errorf("KindOf(plain) = %v, want KindFail", got)
	}
}

func TestFields(t *testing.T) {
	violations := map[string]string{"name": "required property missing"}
	if got := Fields(BadRequest(violations)); got["name"] != violations["name"] {
		t.Errorf("Fields = %v, want %v", got, violations)
	}
	if got := Fields(NotFound("nope")); got != nil {
		t.Errorf("Fields on non-BAD_REQUEST = %v, want nil", got)
	}
}

func TestExternalServiceUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := ExternalService("catalog unreachable", cause)
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable through Unwrap")
	}
	if KindOf(err) != KindExternalService {
		t.Errorf("KindOf = %v, want KindExternalService", KindOf(err))
	}
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Unauthenticated("token does not match user", "userId", "alice"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Context map[string]string `json:"context"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Kind != "UNAUTHENTICATED" {
		t.Errorf("kind = %q, want UNAUTHENTICATED", decoded.Kind)
	}
	if decoded.Context["userId"] != "alice" {
		t.Errorf("context = %v", decoded.Context)
	}
}
