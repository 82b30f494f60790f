package common

// AuthorizationHeaderName is the HTTP header carrying the API key on every
// GraphQL request.
const AuthorizationHeaderName = "Authorization"

// GraphQLPath is appended to the organization domain to build the endpoint.
const GraphQLPath = "/api/v1/graphql"

// BearerToken formats the authorization header value. An empty key still
// yields a well-formed header so the remote rejection is the only signal of
// a missing credential.
func BearerToken(apiKey string) string {
	return "Bearer " + apiKey
}
