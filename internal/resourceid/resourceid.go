// Package resourceid decomposes Azure resource ids for Private Link services and their endpoint connections.
package resourceid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// ConnectionPattern matches a fully-qualified private endpoint connection id.
// The connection name is greedy and may contain '/'.
const ConnectionPattern = `/subscriptions/([^/]+)/resourceGroups/(?P<resourceGroup>[^/]+)/providers/Microsoft.Network/privateLinkServices/(?P<serviceName>[^/]+)/privateEndpointConnections/(?P<connectionName>.+)`

const privateLinkServiceType = "Microsoft.Network/privateLinkServices"

var connectionRegexp = regexp.MustCompile(`^` + ConnectionPattern + `$`)

// ErrInvalidIdentifier is matched by every InvalidIdentifierError.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// InvalidIdentifierError reports an id that does not match the expected pattern.
type InvalidIdentifierError struct {
	ID      string
	Pattern string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("connection id=%q doesn't match the pattern %q", e.ID, e.Pattern)
}

// Is reports whether target is ErrInvalidIdentifier.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// ConnectionID is a parsed private endpoint connection id.
type ConnectionID struct {
	SubscriptionID string
	ResourceGroup  string
	ServiceName    string
	ConnectionName string
}

// Parse decomposes a private endpoint connection id.
func Parse(id string) (ConnectionID, error) {
	m := connectionRegexp.FindStringSubmatch(id)
	if m == nil {
		return ConnectionID{}, &InvalidIdentifierError{ID: id, Pattern: ConnectionPattern}
	}
	return ConnectionID{
		SubscriptionID: m[1],
		ResourceGroup:  m[connectionRegexp.SubexpIndex("resourceGroup")],
		ServiceName:    m[connectionRegexp.SubexpIndex("serviceName")],
		ConnectionName: m[connectionRegexp.SubexpIndex("connectionName")],
	}, nil
}

// String re-assembles the fully-qualified id.
func (c ConnectionID) String() string {
	return fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/privateLinkServices/%s/privateEndpointConnections/%s",
		c.SubscriptionID, c.ResourceGroup, c.ServiceName, c.ConnectionName,
	)
}

// ServiceID is a parsed Private Link service id.
type ServiceID struct {
	SubscriptionID string
	ResourceGroup  string
	ServiceName    string
}

// ParseService decomposes a Private Link service id.
func ParseService(id string) (ServiceID, error) {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return ServiceID{}, fmt.Errorf("parse private link service id %q: %w", id, err)
	}
	if !strings.EqualFold(rid.ResourceType.String(), privateLinkServiceType) {
		return ServiceID{}, fmt.Errorf("resource %q has type %q, expected %q", id, rid.ResourceType.String(), privateLinkServiceType)
	}
	return ServiceID{
		SubscriptionID: rid.SubscriptionID,
		ResourceGroup:  rid.ResourceGroupName,
		ServiceName:    rid.Name,
	}, nil
}
