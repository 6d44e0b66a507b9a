package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantMsg  string
	}{
		{name: "config", err: ConfigError("loading config", cause), wantCode: ExitConfig, wantMsg: "loading config: dial tcp: refused"},
		{name: "generate", err: GenerateError("generating tables", nil), wantCode: ExitGenerate, wantMsg: "generating tables"},
		{name: "connect", err: DBConnectError("connecting", cause), wantCode: ExitDBConnect, wantMsg: "connecting: dial tcp: refused"},
		{name: "general", err: GeneralError("failed", cause), wantCode: ExitGeneral, wantMsg: "failed: dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			if tt.err.Err != nil {
				assert.ErrorIs(t, tt.err, cause)
			}
		})
	}
}
