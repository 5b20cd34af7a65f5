package kimai

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIError_ErrorIncludesDetailAndHint(t *testing.T) {
	err := classifyStatus(401, "Invalid credentials")
	msg := err.Error()
	for _, want := range []string{"401", "Invalid credentials", "API token"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestClassifyStatus_Kinds(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{401, KindAuthentication},
		{403, KindAuthentication},
		{404, KindNotFound},
		{400, KindUpstream},
		{422, KindUpstream},
		{500, KindUpstream},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.status, "").Kind; got != tt.want {
			t.Errorf("classifyStatus(%d).Kind = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestIsKind_IgnoresOtherErrors(t *testing.T) {
	if IsKind(errors.New("plain"), KindNetwork) {
		t.Error("IsKind matched a non-API error")
	}
	if IsKind(nil, KindNetwork) {
		t.Error("IsKind matched nil")
	}
}
