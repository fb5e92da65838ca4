package telemetry_test

import (
	"context"
	"seafadmin/lib/telemetry"
	"seafadmin/lib/testutil"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := telemetry.Setup(context.Background(), "test:telemetry", telemetry.Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestScopedAPI(t *testing.T) {
	inner := testutil.NewRecordingAPI()
	api := telemetry.NewScopedAPI("seafile_core", inner)

	api.ReportBroken("client.login", "details")
	api.ReportWarning("client.fetch")
	api.ReportDebug("logged in")
	api.ReportCount("users.build", 3)

	require.Equal(t, []string{"seafile_core: client.login"}, inner.Ids("broken"))
	require.Equal(t, []string{"seafile_core: client.fetch"}, inner.Ids("warning"))
	require.Equal(t, []string{"seafile_core: logged in"}, inner.Ids("debug"))
	n, ok := inner.Count("seafile_core: users.build")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
}
