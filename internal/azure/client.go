// Package azure builds authenticated Azure Resource Manager clients from configuration.
package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"

	"github.com/neoclaw-ai/privatelink/internal/config"
)

// CloudConfiguration maps a configured cloud name to its endpoints.
func CloudConfiguration(name string) (cloud.Configuration, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.CloudPublic, "":
		return cloud.AzurePublic, nil
	case config.CloudChina:
		return cloud.AzureChina, nil
	case config.CloudGovernment:
		return cloud.AzureGovernment, nil
	default:
		return cloud.Configuration{}, fmt.Errorf("unsupported cloud %q", name)
	}
}

// NewCredential returns a client-secret credential for the configured service principal.
func NewCredential(cfg config.AzureConfig) (azcore.TokenCredential, error) {
	cloudCfg, err := CloudConfiguration(cfg.Cloud)
	if err != nil {
		return nil, err
	}
	cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, &azidentity.ClientSecretCredentialOptions{
		ClientOptions: azcore.ClientOptions{Cloud: cloudCfg},
	})
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return cred, nil
}

// NewPrivateLinkServicesClient returns a Private Link services client scoped
// to the configured subscription. options may be nil.
func NewPrivateLinkServicesClient(cfg config.AzureConfig, cred azcore.TokenCredential, options *arm.ClientOptions) (*armnetwork.PrivateLinkServicesClient, error) {
	cloudCfg, err := CloudConfiguration(cfg.Cloud)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = &arm.ClientOptions{}
	}
	options.Cloud = cloudCfg

	client, err := armnetwork.NewPrivateLinkServicesClient(cfg.SubscriptionID, cred, options)
	if err != nil {
		return nil, fmt.Errorf("create private link services client: %w", err)
	}
	return client, nil
}
