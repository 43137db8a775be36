// Package lrcapi provides the minimal client for a self-hosted LrcApi
// deployment, which serves lyrics and covers directly from query parameters.
package lrcapi
