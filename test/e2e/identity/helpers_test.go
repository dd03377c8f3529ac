package identity_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/Soulfra/agent-router-sub005/pkg/identsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end
 * tests: container setup, identity creation and handshake helpers.
 */

const (
	testImageName = "identityd-test:latest"

	sealPassphrase = "test-seal-passphrase-12345"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Identity Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Identity Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/identityd/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupIdentityContainer starts the identity service in a container and
// returns the base URL.
func setupIdentityContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"IDENTITY_SEAL_PASSPHRASE": sealPassphrase,
			"IDENTITY_DATABASE_FILE":   "/tmp/identity.db",
			"IDENTITY_ISSUER":          "identityd",
			"ENV":                      "test",
			"LOG_LEVEL":                "info",
			"LOG_FORMAT":               "json",
			// Raise edge rate limits so rapid test requests don't trip the
			// production defaults.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_LENIENT_REQUESTS":  "5000",
			"RATELIMIT_LENIENT_BURST":     "5000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// createIdentity creates a server-held identity and returns its id.
func createIdentity(t *testing.T, client *identsdk.SDKClient) string {
	t.Helper()

	created, err := client.CreateIdentity(context.Background(), identsdk.CreateIdentityRequest{
		Metadata: map[string]string{"origin": "e2e"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.IdentityID)
	require.NotEmpty(t, created.Identity)

	return created.IdentityID
}

// authenticate runs the full challenge-response handshake for a server-held
// identity and returns the session token.
func authenticate(t *testing.T, client *identsdk.SDKClient, identityID string) string {
	t.Helper()
	ctx := context.Background()

	ch, err := client.BeginAuth(ctx)
	require.NoError(t, err)

	resp, err := client.Respond(ctx, identityID, identsdk.RespondRequest{
		Challenge: ch.Challenge,
		SessionID: ch.SessionID,
	})
	require.NoError(t, err)

	verdict, err := client.VerifyAuth(ctx, identsdk.VerifyRequest{
		SessionID: ch.SessionID,
		Response:  resp,
	})
	require.NoError(t, err)
	require.True(t, verdict.Valid, "handshake rejected: %s", verdict.Reason)
	require.NotEmpty(t, verdict.SessionToken)

	return verdict.SessionToken
}
