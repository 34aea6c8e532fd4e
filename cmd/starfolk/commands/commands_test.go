package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"starfolk-client/cmd/starfolk/commands"
	"starfolk-client/internal/config"
	"starfolk-client/internal/models"
	"starfolk-client/internal/routes"
	"starfolk-client/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewSeededDB()
	require.NoError(t, err)
	srv := httptest.NewServer(routes.SetupStubRoutes(db, 0))
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvAPIBase, "")
	cli := commands.New()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cli.SetOutput(out, errOut)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "starfolk version dev")
}

func TestCommands_Route(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/character/12", "detail(12) /character/12\n"},
		{"/about", "about /about\n"},
		{"/character/abc", "home /\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out, err := execute(t, "route", tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCommands_SearchAndShow(t *testing.T) {
	base := stubServer(t)

	out, err := execute(t, "--api-base", base, "search", "darth")
	require.NoError(t, err)
	var found []models.Character
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Darth Vader", found[0].Name)

	out, err = execute(t, "--api-base", base, "show", "5")
	require.NoError(t, err)
	var yoda models.Character
	require.NoError(t, json.Unmarshal([]byte(out), &yoda))
	assert.Equal(t, "Yoda", yoda.Name)

	out, err = execute(t, "--api-base", base, "featured")
	require.NoError(t, err)
	var featured []models.Character
	require.NoError(t, json.Unmarshal([]byte(out), &featured))
	assert.Len(t, featured, 3)
}

func TestCommands_ShowRejectsBadID(t *testing.T) {
	_, err := execute(t, "show", "zero")
	require.ErrorIs(t, err, commands.ErrInvalidID)

	_, err = execute(t, "show", "0")
	require.ErrorIs(t, err, commands.ErrInvalidID)
}

func TestCommands_GatewayRefusesDevelopmentSecret(t *testing.T) {
	t.Setenv(config.EnvSessionSecret, "")
	_, err := execute(t, "gateway")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.Contains(t, err.Error(), "gateway.secret")
}

func TestCommands_ConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfolk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  min_query_length: 0\n"), 0o600))

	_, err := execute(t, "--config", path, "version")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "--log-level", "loud", "version")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
