// Package connections lists and approves private endpoint connections of Azure Private Link services.
package connections

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"

	"github.com/neoclaw-ai/privatelink/internal/resourceid"
)

const (
	// StatusPending is the connection state awaiting approval.
	StatusPending = "Pending"
	// StatusApproved is the connection state after approval.
	StatusApproved = "Approved"
)

// Details is a flattened view of one private endpoint connection.
type Details struct {
	ID            string
	Name          string
	LinkID        string
	Status        string
	EndpointID    string
	ResourceGroup string
	ServiceName   string
}

// Filter selects connections.
type Filter func(Details) bool

// All accepts every connection.
func All(Details) bool { return true }

// IsPending reports whether the connection awaits approval.
func IsPending(d Details) bool {
	return d.Status == StatusPending
}

// IsSubscription selects connections whose private endpoint lives in subscriptionID.
func IsSubscription(subscriptionID string) Filter {
	prefix := "/subscriptions/" + subscriptionID
	return func(d Details) bool {
		return d.EndpointID == prefix || strings.HasPrefix(d.EndpointID, prefix+"/")
	}
}

// FromProvider maps a provider record. A record whose id does not parse is an error.
func FromProvider(conn *armnetwork.PrivateEndpointConnection) (Details, error) {
	if conn == nil {
		return Details{}, fmt.Errorf("private endpoint connection is nil")
	}
	id := deref(conn.ID)
	parsed, err := resourceid.Parse(id)
	if err != nil {
		return Details{}, err
	}

	d := Details{
		ID:            id,
		Name:          parsed.ConnectionName,
		ResourceGroup: parsed.ResourceGroup,
		ServiceName:   parsed.ServiceName,
	}
	if props := conn.Properties; props != nil {
		d.LinkID = deref(props.LinkIdentifier)
		if state := props.PrivateLinkServiceConnectionState; state != nil {
			d.Status = deref(state.Status)
		}
		if pe := props.PrivateEndpoint; pe != nil {
			d.EndpointID = deref(pe.ID)
		}
	}
	return d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
