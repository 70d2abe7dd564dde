package cli

import (
	"fmt"
	"io"
)

const usageText = `Azure Private Link Connection Helper

Flags:
-h                 :  show help
-s SUBSCRIPTION_ID :  show connections for the given subscription
-p                 :  list pending connections
-a CONNECTION_ID   :  approve the connection with the given ID

Optional flags:
-o FORMAT          :  output format: legacy (default), json, yaml
-v                 :  verbose logging

Required env variables:
- AZURE_CLIENT_ID
- AZURE_CLIENT_SECRET
- AZURE_TENANT_ID
- AZURE_SUBSCRIPTION_ID
`

func printUsage(w io.Writer) error {
	_, err := fmt.Fprint(w, usageText)
	return err
}
