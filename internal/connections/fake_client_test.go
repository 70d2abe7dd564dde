package connections

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

const testSubscription = "11111111-1111-1111-1111-111111111111"

type updateCall struct {
	resourceGroup string
	service       string
	connection    string
	parameters    armnetwork.PrivateEndpointConnection
}

type fakeClient struct {
	servicePages [][]*armnetwork.PrivateLinkService
	servicesErr  error
	connections  map[string][]*armnetwork.PrivateEndpointConnection
	connsErr     error

	current   *armnetwork.PrivateEndpointConnection
	getErr    error
	updateErr error

	listedServices []string
	gets           []string
	updates        []updateCall
}

func (f *fakeClient) NewListBySubscriptionPager(_ *armnetwork.PrivateLinkServicesClientListBySubscriptionOptions) *runtime.Pager[armnetwork.PrivateLinkServicesClientListBySubscriptionResponse] {
	pages := make([]armnetwork.PrivateLinkServicesClientListBySubscriptionResponse, 0, len(f.servicePages))
	for _, value := range f.servicePages {
		pages = append(pages, armnetwork.PrivateLinkServicesClientListBySubscriptionResponse{
			PrivateLinkServiceListResult: armnetwork.PrivateLinkServiceListResult{Value: value},
		})
	}
	return pagerOf(pages, f.servicesErr)
}

func (f *fakeClient) NewListPrivateEndpointConnectionsPager(resourceGroupName string, serviceName string, _ *armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsOptions) *runtime.Pager[armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsResponse] {
	f.listedServices = append(f.listedServices, resourceGroupName+"/"+serviceName)
	page := armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsResponse{
		PrivateEndpointConnectionListResult: armnetwork.PrivateEndpointConnectionListResult{Value: f.connections[serviceName]},
	}
	return pagerOf([]armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsResponse{page}, f.connsErr)
}

func (f *fakeClient) GetPrivateEndpointConnection(_ context.Context, resourceGroupName string, serviceName string, peConnectionName string, _ *armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionOptions) (armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionResponse, error) {
	f.gets = append(f.gets, resourceGroupName+"/"+serviceName+"/"+peConnectionName)
	if f.getErr != nil {
		return armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionResponse{}, f.getErr
	}
	return armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionResponse{PrivateEndpointConnection: *f.current}, nil
}

func (f *fakeClient) UpdatePrivateEndpointConnection(_ context.Context, resourceGroupName string, serviceName string, peConnectionName string, parameters armnetwork.PrivateEndpointConnection, _ *armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionOptions) (armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionResponse, error) {
	f.updates = append(f.updates, updateCall{
		resourceGroup: resourceGroupName,
		service:       serviceName,
		connection:    peConnectionName,
		parameters:    parameters,
	})
	if f.updateErr != nil {
		return armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionResponse{}, f.updateErr
	}
	return armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionResponse{PrivateEndpointConnection: parameters}, nil
}

func pagerOf[T any](pages []T, err error) *runtime.Pager[T] {
	next := 0
	return runtime.NewPager(runtime.PagingHandler[T]{
		More: func(T) bool {
			return next < len(pages)
		},
		Fetcher: func(context.Context, *T) (T, error) {
			var zero T
			if err != nil {
				return zero, err
			}
			if next >= len(pages) {
				return zero, nil
			}
			page := pages[next]
			next++
			return page, nil
		},
	})
}

func testService(resourceGroup, name string) *armnetwork.PrivateLinkService {
	return &armnetwork.PrivateLinkService{
		ID:   to.Ptr(fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/privateLinkServices/%s", testSubscription, resourceGroup, name)),
		Name: to.Ptr(name),
	}
}

func testConnection(resourceGroup, service, name, status, linkID, endpointID string) *armnetwork.PrivateEndpointConnection {
	return &armnetwork.PrivateEndpointConnection{
		ID:   to.Ptr(fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/privateLinkServices/%s/privateEndpointConnections/%s", testSubscription, resourceGroup, service, name)),
		Name: to.Ptr(name),
		Type: to.Ptr("Microsoft.Network/privateLinkServices/privateEndpointConnections"),
		Etag: to.Ptr("W/\"etag-" + name + "\""),
		Properties: &armnetwork.PrivateEndpointConnectionProperties{
			LinkIdentifier: to.Ptr(linkID),
			PrivateEndpoint: &armnetwork.PrivateEndpoint{
				ID: to.Ptr(endpointID),
			},
			PrivateLinkServiceConnectionState: &armnetwork.PrivateLinkServiceConnectionState{
				Status:          to.Ptr(status),
				Description:     to.Ptr("please approve"),
				ActionsRequired: to.Ptr("None"),
			},
		},
	}
}

func endpointIn(subscription, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/consumer-rg/providers/Microsoft.Network/privateEndpoints/%s", subscription, name)
}
