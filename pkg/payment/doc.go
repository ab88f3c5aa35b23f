// Package payment holds the wire model of the payment backend: the LIST
// result with its applicable networks and registered accounts, input element
// descriptors, interactions, and the error envelope. DecodeListResult turns a
// response body into a ListResult or a typed failure, and Contract checks a
// body against the bundled OpenAPI description (contract/list_result.yaml)
// using kin-openapi.
package payment
