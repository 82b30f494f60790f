// Package client talks to the Troweb GraphQL API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the two operations the loaders need: CreateRecords and GetUploadGrants.
//  2. A concrete implementation (see GraphQLClient) that posts GraphQL
//     documents to {organizationDomain}/api/v1/graphql, injects the bearer
//     credential through an http.RoundTripper and maps failures to the
//     sentinel errors in package common.
//
// # Error Handling
//
// HTTP 401/403 surface as common.ErrConfiguration. Transport errors, GraphQL
// error payloads and responses that do not match the expected shape surface
// as common.ErrRequestFailed with the remote message kept in the chain.
// Nothing is retried.
//
// Concurrency & Contexts
//
// GraphQLClient holds no mutable state after construction and is safe for
// concurrent use. All operations accept context.Context.
package client
