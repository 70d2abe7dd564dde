package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	azfake "github.com/Azure/azure-sdk-for-go/sdk/azcore/fake"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6/fake"

	"github.com/neoclaw-ai/privatelink/internal/azure"
	"github.com/neoclaw-ai/privatelink/internal/config"
	"github.com/neoclaw-ai/privatelink/internal/connections"
)

const testSubscription = "11111111-1111-1111-1111-111111111111"

func createTestHome(t *testing.T) string {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), ".privatelink")
	t.Setenv(config.EnvHome, dataDir)
	return dataDir
}

func writeConfig(t *testing.T, dataDir, body string) {
	t.Helper()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvClientID, "00000000-0000-0000-0000-000000000001")
	t.Setenv(config.EnvClientSecret, "s3cret-value")
	t.Setenv(config.EnvTenantID, "00000000-0000-0000-0000-000000000002")
	t.Setenv(config.EnvSubscriptionID, testSubscription)
	t.Setenv(config.EnvCloud, "")
	t.Setenv(config.EnvOutput, "")
}

// useFakeServer routes the CLI's Azure client through srv. It returns a
// pointer to the number of clients built.
func useFakeServer(t *testing.T, srv *fake.PrivateLinkServicesServer) *int {
	t.Helper()
	built := 0
	orig := clientFactory
	t.Cleanup(func() { clientFactory = orig })
	clientFactory = func(cfg config.AzureConfig) (connections.Client, error) {
		built++
		client, err := azure.NewPrivateLinkServicesClient(cfg, &azfake.TokenCredential{}, &arm.ClientOptions{
			ClientOptions: azcore.ClientOptions{
				Transport: fake.NewPrivateLinkServicesServerTransport(srv),
			},
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return &built
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func serviceID(resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/privateLinkServices/%s", testSubscription, resourceGroup, name)
}

func connectionID(resourceGroup, service, name string) string {
	return serviceID(resourceGroup, service) + "/privateEndpointConnections/" + name
}

func endpointID(subscription, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/consumer/providers/Microsoft.Network/privateEndpoints/%s", subscription, name)
}

func testConnection(resourceGroup, service, name, status, linkID, endpoint string) *armnetwork.PrivateEndpointConnection {
	return &armnetwork.PrivateEndpointConnection{
		ID:   to.Ptr(connectionID(resourceGroup, service, name)),
		Name: to.Ptr(name),
		Properties: &armnetwork.PrivateEndpointConnectionProperties{
			LinkIdentifier:  to.Ptr(linkID),
			PrivateEndpoint: &armnetwork.PrivateEndpoint{ID: to.Ptr(endpoint)},
			PrivateLinkServiceConnectionState: &armnetwork.PrivateLinkServiceConnectionState{
				Status:      to.Ptr(status),
				Description: to.Ptr("requested"),
			},
		},
	}
}
