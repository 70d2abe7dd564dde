package connections

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"

	"github.com/neoclaw-ai/privatelink/internal/logging"
	"github.com/neoclaw-ai/privatelink/internal/resourceid"
)

// Client is the subset of *armnetwork.PrivateLinkServicesClient used here.
type Client interface {
	NewListBySubscriptionPager(options *armnetwork.PrivateLinkServicesClientListBySubscriptionOptions) *runtime.Pager[armnetwork.PrivateLinkServicesClientListBySubscriptionResponse]
	NewListPrivateEndpointConnectionsPager(resourceGroupName string, serviceName string, options *armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsOptions) *runtime.Pager[armnetwork.PrivateLinkServicesClientListPrivateEndpointConnectionsResponse]
	GetPrivateEndpointConnection(ctx context.Context, resourceGroupName string, serviceName string, peConnectionName string, options *armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionOptions) (armnetwork.PrivateLinkServicesClientGetPrivateEndpointConnectionResponse, error)
	UpdatePrivateEndpointConnection(ctx context.Context, resourceGroupName string, serviceName string, peConnectionName string, parameters armnetwork.PrivateEndpointConnection, options *armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionOptions) (armnetwork.PrivateLinkServicesClientUpdatePrivateEndpointConnectionResponse, error)
}

// Service lists and approves connections through a Client.
type Service struct {
	client Client
}

// NewService wraps client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// List walks every Private Link service in the subscription and yields its
// connections accepted by filter, in provider order. The sequence stops at the
// first error.
func (s *Service) List(ctx context.Context, filter Filter) iter.Seq2[Details, error] {
	if filter == nil {
		filter = All
	}
	return func(yield func(Details, error) bool) {
		services := s.client.NewListBySubscriptionPager(nil)
		for services.More() {
			page, err := services.NextPage(ctx)
			if err != nil {
				yield(Details{}, fmt.Errorf("list private link services: %w", err))
				return
			}
			for _, svc := range page.Value {
				if svc == nil {
					continue
				}
				if !s.listService(ctx, deref(svc.ID), filter, yield) {
					return
				}
			}
		}
	}
}

// listService yields the connections of one service. It returns false when
// iteration must stop.
func (s *Service) listService(ctx context.Context, serviceID string, filter Filter, yield func(Details, error) bool) bool {
	sid, err := resourceid.ParseService(serviceID)
	if err != nil {
		yield(Details{}, err)
		return false
	}

	logging.Logger().Debug("listing private endpoint connections", "resource_group", sid.ResourceGroup, "service", sid.ServiceName)
	conns := s.client.NewListPrivateEndpointConnectionsPager(sid.ResourceGroup, sid.ServiceName, nil)
	for conns.More() {
		page, err := conns.NextPage(ctx)
		if err != nil {
			yield(Details{}, fmt.Errorf("list connections of service %q: %w", sid.ServiceName, err))
			return false
		}
		for _, conn := range page.Value {
			d, err := FromProvider(conn)
			if err != nil {
				yield(Details{}, err)
				return false
			}
			if !filter(d) {
				continue
			}
			if !yield(d, nil) {
				return false
			}
		}
	}
	return true
}

// Approve approves the connection with the given id. The prior status is not
// checked. Provider errors, including not-found, are returned unchanged.
func (s *Service) Approve(ctx context.Context, connectionID string) (Details, error) {
	id, err := resourceid.Parse(connectionID)
	if err != nil {
		return Details{}, err
	}

	current, err := s.client.GetPrivateEndpointConnection(ctx, id.ResourceGroup, id.ServiceName, id.ConnectionName, nil)
	if err != nil {
		return Details{}, err
	}

	approved := Approved(current.PrivateEndpointConnection)
	if _, err := s.client.UpdatePrivateEndpointConnection(ctx, id.ResourceGroup, id.ServiceName, id.ConnectionName, approved, nil); err != nil {
		return Details{}, err
	}

	d, err := FromProvider(&approved)
	if err != nil {
		return Details{}, fmt.Errorf("map approved connection: %w", err)
	}
	return d, nil
}

// Approved returns a copy of conn with status Approved and a description
// carrying its link identifier. conn is not modified.
func Approved(conn armnetwork.PrivateEndpointConnection) armnetwork.PrivateEndpointConnection {
	var props armnetwork.PrivateEndpointConnectionProperties
	if conn.Properties != nil {
		props = *conn.Properties
	}
	var state armnetwork.PrivateLinkServiceConnectionState
	if props.PrivateLinkServiceConnectionState != nil {
		state = *props.PrivateLinkServiceConnectionState
	}

	state.Status = to.Ptr(StatusApproved)
	state.Description = to.Ptr("Your linkID is " + deref(props.LinkIdentifier))
	props.PrivateLinkServiceConnectionState = &state
	conn.Properties = &props
	return conn
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
